package io

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/posterforge/pkg/errors"
	"github.com/matzehuels/posterforge/pkg/poster"
)

// Format names a configuration file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var extFormats = map[string]Format{
	".toml": FormatTOML,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".json": FormatJSON,
}

// FormatFromPath returns the configuration format implied by path's
// extension.
func FormatFromPath(path string) (Format, error) {
	f, ok := extFormats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported config file %q (want .toml, .yaml, .yml or .json)", filepath.Base(path))
	}
	return f, nil
}

// ReadConfig decodes a poster configuration from r. Absent keys keep
// their defaults; explicit values, zeros included, are validated as given.
//
// ReadConfig does not close r.
func ReadConfig(r io.Reader, format Format) (poster.Config, error) {
	cfg := poster.DefaultConfig()
	if err := decode(r, format, &cfg); err != nil {
		return poster.Config{}, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return poster.Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, format Format, cfg *poster.Config) error {
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(cfg)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown config key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", format)
	}
	return nil
}

// LoadConfig reads the configuration file at path.
func LoadConfig(path string) (poster.Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return poster.Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return poster.Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return poster.Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return ReadConfig(bytes.NewReader(data), format)
}
