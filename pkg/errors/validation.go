package errors

import (
	"math"
	"strings"
	"unicode"
)

// RequireFinite rejects NaN and infinite values.
func RequireFinite(param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return InvalidParameter(param, v, "must be a finite number")
	}
	return nil
}

// RequireRange checks lo <= v <= hi.
func RequireRange(param string, v, lo, hi float64) error {
	if err := RequireFinite(param, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return InvalidParameter(param, v, "must be in [%g, %g]", lo, hi)
	}
	return nil
}

// RequireHalfOpen checks lo <= v < hi.
func RequireHalfOpen(param string, v, lo, hi float64) error {
	if err := RequireFinite(param, v); err != nil {
		return err
	}
	if v < lo || v >= hi {
		return InvalidParameter(param, v, "must be in [%g, %g)", lo, hi)
	}
	return nil
}

// RequirePositive checks v > 0.
func RequirePositive(param string, v float64) error {
	if err := RequireFinite(param, v); err != nil {
		return err
	}
	if v <= 0 {
		return InvalidParameter(param, v, "must be > 0")
	}
	return nil
}

// RequireNonNegative checks v >= 0.
func RequireNonNegative(param string, v float64) error {
	if err := RequireFinite(param, v); err != nil {
		return err
	}
	if v < 0 {
		return InvalidParameter(param, v, "must be >= 0")
	}
	return nil
}

// RequireAtLeast checks an integer lower bound.
func RequireAtLeast(param string, v, lo int) error {
	if v < lo {
		return InvalidParameter(param, v, "must be >= %d", lo)
	}
	return nil
}

// RequireAtMost checks an integer upper bound.
func RequireAtMost(param string, v, hi int) error {
	if v > hi {
		return InvalidParameter(param, v, "must be <= %d", hi)
	}
	return nil
}

// RequireInterval checks that [min, max] is a well-formed interval inside
// [lo, hi]. Interval endpoints are reported as param.min / param.max.
func RequireInterval(param string, min, max, lo, hi float64) error {
	if err := RequireRange(param+".min", min, lo, hi); err != nil {
		return err
	}
	if err := RequireRange(param+".max", max, lo, hi); err != nil {
		return err
	}
	if min > max {
		return InvalidParameter(param, [2]float64{min, max}, "min must not exceed max")
	}
	return nil
}

// ValidateID validates an opaque identifier received from a client, such as
// a gallery record ID. It rejects control characters, path separators and
// overly long values.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "id too long (max 64 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "id contains invalid control characters")
		}
	}
	if strings.ContainsAny(id, "/\\.") {
		return New(ErrCodeInvalidInput, "id contains invalid characters")
	}
	return nil
}
