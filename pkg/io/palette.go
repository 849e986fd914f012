package io

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/posterforge/pkg/errors"
	"github.com/matzehuels/posterforge/pkg/palette"
)

const paletteParam = "custom_palette"

// ReadPaletteCSV reads a colour table from r. The header row must name r,
// g and b columns (any order, case-insensitive); other columns are
// ignored. Channel values are returned as read; range checks happen when
// the palette is generated.
//
// ReadPaletteCSV does not close r.
func ReadPaletteCSV(r io.Reader) ([]palette.Triple, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.Configuration(paletteParam, "palette csv is empty")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read palette csv header")
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	idx := [3]int{}
	for i, ch := range []string{"r", "g", "b"} {
		j, ok := cols[ch]
		if !ok {
			return nil, errors.Configuration(paletteParam, "palette csv header must name r, g and b columns (got %s)", strings.Join(header, ","))
		}
		idx[i] = j
	}

	var out []palette.Triple
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read palette csv")
		}
		var v [3]float64
		for i, ch := range []string{"r", "g", "b"} {
			if idx[i] >= len(rec) {
				return nil, errors.InvalidParameter(fmt.Sprintf("%s[%d].%s", paletteParam, row, ch), "", "missing value")
			}
			field := strings.TrimSpace(rec[idx[i]])
			f, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.InvalidParameter(fmt.Sprintf("%s[%d].%s", paletteParam, row, ch), field, "not a number")
			}
			v[i] = f
		}
		out = append(out, palette.Triple{R: v[0], G: v[1], B: v[2]})
	}

	if len(out) == 0 {
		return nil, errors.Configuration(paletteParam, "palette csv has no colour rows")
	}
	return out, nil
}

// LoadPaletteCSV reads the colour table at path.
func LoadPaletteCSV(path string) ([]palette.Triple, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "palette %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadPaletteCSV(f)
}
