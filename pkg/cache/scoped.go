package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several deployments or environments share one Redis
// instance and must not read each other's artifacts.
//
// Example usage:
//
//	// Staging keys
//	staging := NewScopedKeyer(NewDefaultKeyer(), "staging:")
//
//	// Production keys
//	prod := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(configHash, opts)
}

// PaletteKey generates a prefixed key for palette caching.
func (k *ScopedKeyer) PaletteKey(opts PaletteKeyOpts) string {
	return k.prefix + k.inner.PaletteKey(opts)
}
