package errors

import (
	"math"
	"testing"
)

func TestRequireRange(t *testing.T) {
	tests := []struct {
		v       float64
		wantErr bool
	}{
		{0, false},
		{0.5, false},
		{1, false},
		{-0.01, true},
		{1.01, true},
		{math.NaN(), true},
		{math.Inf(1), true},
	}

	for _, tt := range tests {
		err := RequireRange("alpha", tt.v, 0, 1)
		if (err != nil) != tt.wantErr {
			t.Errorf("RequireRange(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidParameter) {
			t.Errorf("RequireRange(%v) code = %v, want INVALID_PARAMETER", tt.v, GetCode(err))
		}
	}
}

func TestRequireHalfOpen(t *testing.T) {
	if err := RequireHalfOpen("base_hue", 0, 0, 1); err != nil {
		t.Errorf("0 should be accepted: %v", err)
	}
	if err := RequireHalfOpen("base_hue", 1, 0, 1); err == nil {
		t.Error("upper bound should be rejected")
	}
}

func TestRequirePositive(t *testing.T) {
	if err := RequirePositive("base_radius", 0.1); err != nil {
		t.Errorf("0.1 should be accepted: %v", err)
	}
	if err := RequirePositive("base_radius", 0); err == nil {
		t.Error("0 should be rejected")
	}
	if err := RequireNonNegative("wobble", 0); err != nil {
		t.Errorf("0 should be accepted: %v", err)
	}
	if err := RequireNonNegative("wobble", -0.5); err == nil {
		t.Error("-0.5 should be rejected")
	}
}

func TestRequireAtLeast(t *testing.T) {
	if err := RequireAtLeast("point_count", 3, 3); err != nil {
		t.Errorf("3 should be accepted: %v", err)
	}
	err := RequireAtLeast("point_count", 2, 3)
	if err == nil {
		t.Fatal("2 should be rejected")
	}
	if Param(err) != "point_count" {
		t.Errorf("Param() = %q, want point_count", Param(err))
	}
}

func TestRequireAtMost(t *testing.T) {
	if err := RequireAtMost("layer_count", 500, 500); err != nil {
		t.Errorf("500 should be accepted: %v", err)
	}
	err := RequireAtMost("layer_count", 501, 500)
	if !Is(err, ErrCodeInvalidParameter) {
		t.Fatalf("501 should be rejected as invalid parameter, got %v", err)
	}
	if Param(err) != "layer_count" {
		t.Errorf("Param() = %q, want layer_count", Param(err))
	}
}

func TestRequireInterval(t *testing.T) {
	tests := []struct {
		name      string
		min, max  float64
		wantParam string
	}{
		{"valid", 0.1, 0.4, ""},
		{"degenerate", 0.3, 0.3, ""},
		{"inverted", 0.5, 0.2, "radius_range"},
		{"min out of range", -0.1, 0.2, "radius_range.min"},
		{"max out of range", 0.1, 2, "radius_range.max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireInterval("radius_range", tt.min, tt.max, 0, 1)
			if tt.wantParam == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if got := Param(err); got != tt.wantParam {
				t.Errorf("Param() = %q, want %q", got, tt.wantParam)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"6f1c1f5e-8a51-4f0c-9d3c-1a2b3c4d5e6f", false},
		{"", true},
		{"../etc/passwd", true},
		{"a/b", true},
		{"bad\x00id", true},
		{string(make([]byte, 65)), true},
	}

	for _, tt := range tests {
		err := ValidateID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
	}
}
