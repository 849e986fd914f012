package io

import (
	stderrors "errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/posterforge/pkg/errors"
	"github.com/matzehuels/posterforge/pkg/palette"
)

// ExtractMethod selects how a palette is derived from an image.
type ExtractMethod string

const (
	// ExtractDominant uses weighted dominant colours.
	ExtractDominant ExtractMethod = "dominant"
	// ExtractKMeans clusters subsampled pixels in RGB space.
	ExtractKMeans ExtractMethod = "kmeans"
)

// maxSamples bounds the number of pixels fed to k-means.
const maxSamples = 12000

// ParseExtractMethod converts a user-supplied name into an ExtractMethod.
func ParseExtractMethod(s string) (ExtractMethod, error) {
	switch ExtractMethod(s) {
	case "", ExtractDominant:
		return ExtractDominant, nil
	case ExtractKMeans:
		return ExtractKMeans, nil
	}
	return "", errors.InvalidParameter("extract_method", s, "must be %q or %q", ExtractDominant, ExtractKMeans)
}

// ExtractPalette derives up to k colours from img, most prominent first.
// K-means falls back to dominant colours when it yields no clusters.
func ExtractPalette(img image.Image, k int, method ExtractMethod) ([]palette.Triple, error) {
	if err := errors.RequireAtLeast("palette_size", k, 1); err != nil {
		return nil, err
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "reference image is empty")
	}

	var out []palette.Triple
	if method == ExtractKMeans {
		out = extractKMeans(img, k)
	}
	if len(out) == 0 {
		out = extractDominant(img, k)
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no colours found in reference image")
	}
	return out, nil
}

func extractDominant(img image.Image, k int) []palette.Triple {
	colors := dominantcolor.FindWeight(img, k)
	out := make([]palette.Triple, 0, len(colors))
	for _, c := range colors {
		out = append(out, palette.Triple{R: float64(c.RGBA.R), G: float64(c.RGBA.G), B: float64(c.RGBA.B)})
	}
	return out
}

func extractKMeans(img image.Image, k int) []palette.Triple {
	b := img.Bounds()
	step := 1
	if n := b.Dx() * b.Dy(); n > maxSamples {
		step = int(math.Sqrt(float64(n)/maxSamples)) + 1
	}

	var dataset clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r) / 0xffff,
				float64(g) / 0xffff,
				float64(bl) / 0xffff,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	cc, err := kmeans.New().Partition(dataset, min(k, len(dataset)))
	if err != nil || len(cc) == 0 {
		return nil
	}
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make([]palette.Triple, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		out = append(out, palette.Triple{
			R: math.Round(clamp01(c.Center[0]) * 255),
			G: math.Round(clamp01(c.Center[1]) * 255),
			B: math.Round(clamp01(c.Center[2]) * 255),
		})
	}
	return out
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

// LoadPaletteImage decodes the PNG, JPEG, GIF or WebP image at path and
// extracts a palette from it.
func LoadPaletteImage(path string, k int, method ExtractMethod) ([]palette.Triple, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", path)
	}
	return ExtractPalette(img, k, method)
}
