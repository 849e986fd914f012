package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirs(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		env  string
		val  string
		fn   func() (string, error)
		want string
	}{
		{"cache default", "XDG_CACHE_HOME", "", cacheDir, filepath.Join(home, ".cache", appName)},
		{"cache xdg", "XDG_CACHE_HOME", "/tmp/custom-cache", cacheDir, filepath.Join("/tmp/custom-cache", appName)},
		{"gallery default", "XDG_CONFIG_HOME", "", galleryDir, filepath.Join(home, ".config", appName, "gallery")},
		{"gallery xdg", "XDG_CONFIG_HOME", "/tmp/custom-config", galleryDir, filepath.Join("/tmp/custom-config", appName, "gallery")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			got, err := tt.fn()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
