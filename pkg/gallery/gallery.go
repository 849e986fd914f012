// Package gallery stores saved posters.
//
// A [Record] keeps the normalized configuration a poster was rendered from
// rather than its image bytes: rendering is deterministic, so the image is
// reproduced on demand (and served from the artifact cache when warm).
//
// Backends:
//   - [MemoryStore]: in-process storage for tests and single-instance servers
//   - [FileStore]: JSON files for the CLI's local gallery
//   - [MongoStore]: MongoDB for shared deployments
package gallery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/posterforge/pkg/errors"
	"github.com/matzehuels/posterforge/pkg/poster"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New(errors.ErrCodeNotFound, "poster not found")

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Record is a saved poster.
type Record struct {
	ID        string        `json:"id" bson:"_id"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Title     string        `json:"title,omitempty" bson:"title,omitempty"`
	Config    poster.Config `json:"config" bson:"config"`
	Palette   []string      `json:"palette" bson:"palette"`
	Hash      string        `json:"hash" bson:"hash"`
	Formats   []string      `json:"formats" bson:"formats"`
}

// New creates a record with a fresh ID for a rendered configuration.
func New(cfg poster.Config, palette []string, hash string, formats []string) Record {
	r := Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
		Palette:   palette,
		Hash:      hash,
		Formats:   formats,
	}
	if cfg.Caption != nil {
		r.Title = cfg.Caption.Title
	}
	return r
}

// Store is the interface for gallery backends.
type Store interface {
	// Save inserts or replaces a record.
	Save(ctx context.Context, r Record) error

	// Get returns the record with id, or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// List returns up to limit records, newest first. A non-positive
	// limit selects DefaultListLimit.
	List(ctx context.Context, limit int) ([]Record, error)

	// Delete removes the record with id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// ValidateID checks that id is a well-formed record ID.
func ValidateID(id string) error {
	if err := errors.ValidateID(id); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return errors.InvalidParameter("id", id, "must be a UUID")
	}
	return nil
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
