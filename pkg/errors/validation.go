package errors

import "math"

// ValidateDimensions checks that a chart extent is finite and non-negative.
func ValidateDimensions(width, height float64) error {
	if !finite(width) || !finite(height) {
		return New(ErrCodeInvalidSize, "chart size must be finite (got %gx%g)", width, height)
	}
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidSize, "chart size cannot be negative (got %gx%g)", width, height)
	}
	return nil
}

// ValidateWeight checks a leaf weight: finite and non-negative.
func ValidateWeight(name string, v float64) error {
	if !finite(v) {
		return New(ErrCodeInvalidInput, "value of %q must be finite", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "value of %q cannot be negative (got %g)", name, v)
	}
	return nil
}

// ValidateOpacity checks that an opacity lies in [0, 1].
func ValidateOpacity(field string, v float64) error {
	if !finite(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidConfig, "%s must be between 0 and 1 (got %g)", field, v)
	}
	return nil
}

// ValidateNonNegative checks a spacing value such as a padding or band height.
func ValidateNonNegative(field string, v float64) error {
	if !finite(v) || v < 0 {
		return New(ErrCodeInvalidConfig, "%s must be a non-negative number (got %g)", field, v)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
