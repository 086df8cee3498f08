package encode

import "github.com/pkg/errors"

// Sentinel errors. Callers branch with errors.Is; the encoders wrap them with
// the offending arguments.
var (
	// ErrZeroDomain indicates a thermometer domain of width zero
	// (max == 0 for Thermometer, max == min for Signed).
	ErrZeroDomain = errors.New("encode: domain width must be positive")

	// ErrOutOfRange indicates a signed value outside [min, max], or min > max.
	ErrOutOfRange = errors.New("encode: value out of range")

	// ErrChannelMismatch indicates that values and basis differ in length.
	ErrChannelMismatch = errors.New("encode: values and basis length differ")
)
