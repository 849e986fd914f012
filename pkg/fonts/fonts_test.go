package fonts

import (
	"testing"

	"golang.org/x/image/font"
)

func TestFace(t *testing.T) {
	small, err := Face(10)
	if err != nil {
		t.Fatal(err)
	}
	large, err := Face(40)
	if err != nil {
		t.Fatal(err)
	}
	ws := font.MeasureString(small, "Poster")
	wl := font.MeasureString(large, "Poster")
	if ws <= 0 || wl <= ws {
		t.Errorf("advance: 10px=%v 40px=%v", ws, wl)
	}
}

func TestRegularIsShared(t *testing.T) {
	a, err := Regular()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Regular()
	if a != b {
		t.Error("Regular should parse once")
	}
}

func TestFallbackFontFamilyLeadsWithFamily(t *testing.T) {
	want := "'" + FontFamily + "'"
	if got := FallbackFontFamily[:len(want)]; got != want {
		t.Errorf("FallbackFontFamily starts with %q, want %q", got, want)
	}
}
