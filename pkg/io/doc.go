// Package io reads poster inputs from files and writes rendered artifacts.
//
// # Overview
//
// The render core (palette, shape, poster) performs no I/O. This package is
// the caller side: it decodes configuration files, loads external palettes
// and persists outputs.
//
// # Configuration Files
//
// [LoadConfig] picks the decoder from the file extension:
//
//   - .toml: BurntSushi/toml
//   - .yaml, .yml: gopkg.in/yaml.v3
//   - .json: encoding/json
//
// Decoding starts from poster.DefaultConfig, so absent keys keep their
// defaults while explicit zeros survive. Unknown keys are rejected.
//
//	cfg, err := io.LoadConfig("poster.toml")
//
// # External Palettes
//
// [ReadPaletteCSV] reads a table with r, g and b columns in [0, 255]:
//
//	r,g,b
//	255,204,170
//	24,16,36
//
// [ExtractPalette] derives a palette from a reference image, either from
// weighted dominant colours or from k-means clusters in RGB space.
//
// # Artifacts
//
// [WriteFile] writes bytes to a path, creating parent directories.
// [WriteJSON] encodes a poster manifest; [WriteFile] stores artifacts.
package io
