package geo

import (
	"fmt"
	"math"
)

// CoordinateError describes an invalid latitude or longitude.
type CoordinateError struct {
	Field   string
	Value   float64
	Message string
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s: %s (value: %.6f)", e.Field, e.Message, e.Value)
}

// ValidateLatitude rejects NaN, infinities and values outside [-90, 90].
func ValidateLatitude(lat float64, field string) error {
	return validateRange(lat, -90, 90, field)
}

// ValidateLongitude rejects NaN, infinities and values outside [-180, 180].
func ValidateLongitude(lng float64, field string) error {
	return validateRange(lng, -180, 180, field)
}

// ValidateCoordinatePair validates both components, naming fields with prefix.
func ValidateCoordinatePair(lat, lng float64, prefix string) error {
	if err := ValidateLatitude(lat, prefix+"_lat"); err != nil {
		return err
	}
	return ValidateLongitude(lng, prefix+"_lng")
}

func validateRange(v, lo, hi float64, field string) error {
	switch {
	case math.IsNaN(v):
		return &CoordinateError{Field: field, Value: v, Message: "NaN is not allowed"}
	case math.IsInf(v, 0):
		return &CoordinateError{Field: field, Value: v, Message: "infinite value is not allowed"}
	case v < lo || v > hi:
		return &CoordinateError{Field: field, Value: v, Message: fmt.Sprintf("must be between %g and %g", lo, hi)}
	}
	return nil
}
