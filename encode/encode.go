// Package encode maps integer sensor readings to hypervectors.
//
// Scalars are thermometer coded: the number of set bits, filled from
// dimension 0 upward, is proportional to the value. Nearby values therefore
// produce vectors with a small Hamming distance. Multi-channel records bind
// each channel's code to a per-channel role vector and bundle the results.
//
// Encoders never allocate and never read hardware. Readings that may carry a
// failure sentinel must be filtered by the caller (see package sensor) before
// they get here: the sentinel saturates exactly like a legitimate full-scale
// reading.
package encode

import (
	"github.com/pkg/errors"

	"github.com/Amansingh-afk/edgehdc/hdc"
)

const (
	// Levels is the number of thermometer steps; one per dimension.
	Levels = hdc.Dims

	// SensorDomain is the exclusive upper bound of a 10-bit analog sample.
	SensorDomain = 1024
)

// Thermometer encodes value from the half-open domain [0, max) into out.
// Exactly value*128/max bits are set, contiguous from dimension 0.
// value >= max saturates to the all-ones vector.
//
// Returns ErrZeroDomain if max is 0; out is left cleared.
func Thermometer(out *hdc.Vector, value, max uint16) error {
	hdc.Clear(out)
	if max == 0 {
		return errors.Wrapf(ErrZeroDomain, "thermometer value=%d max=0", value)
	}
	if value >= max {
		hdc.Fill(out, 0xFF)
		return nil
	}

	level := uint32(value) * Levels / uint32(max)
	full := level / 8
	for i := uint32(0); i < full; i++ {
		out[i] = 0xFF
	}
	if rem := level % 8; rem > 0 {
		out[full] = byte(1<<rem) - 1
	}
	return nil
}

// Sensor encodes a 10-bit analog reading over [0, SensorDomain).
func Sensor(out *hdc.Vector, reading uint16) error {
	return Thermometer(out, reading, SensorDomain)
}

// Signed encodes a bipolar value by shifting [min, max] onto [0, max-min).
// The midpoint of the range sets about half the bits; value == max saturates.
//
// Returns ErrZeroDomain if min == max and ErrOutOfRange if min > max or value
// lies outside [min, max]. out is left cleared on error.
func Signed(out *hdc.Vector, value, min, max int16) error {
	if min > max {
		hdc.Clear(out)
		return errors.Wrapf(ErrOutOfRange, "signed min=%d > max=%d", min, max)
	}
	if min == max {
		hdc.Clear(out)
		return errors.Wrapf(ErrZeroDomain, "signed min=max=%d", min)
	}
	if value < min || value > max {
		hdc.Clear(out)
		return errors.Wrapf(ErrOutOfRange, "signed value=%d not in [%d, %d]", value, min, max)
	}
	width := uint16(int32(max) - int32(min))
	shifted := uint16(int32(value) - int32(min))
	return Thermometer(out, shifted, width)
}

// MultiChannel encodes an ordered record of sensor readings into out.
// For each channel c, Sensor(values[c]) is bound to basis[c] and bundled into
// out, which is cleared first. Channel order does not affect the result.
//
// Basis vectors should be distinct and near 50% density (see Basis); this is
// not checked. Returns ErrChannelMismatch if the slice lengths differ.
func MultiChannel(out *hdc.Vector, values []uint16, basis []hdc.Vector) error {
	hdc.Clear(out)
	if len(values) != len(basis) {
		return errors.Wrapf(ErrChannelMismatch, "%d values, %d basis vectors", len(values), len(basis))
	}

	var tmp hdc.Vector
	for c, v := range values {
		if err := Sensor(&tmp, v); err != nil {
			return errors.Wrapf(err, "channel %d", c)
		}
		hdc.Bind(&tmp, &tmp, &basis[c])
		hdc.Bundle(out, &tmp)
	}
	return nil
}

// Basis returns n deterministic role vectors derived from seed, one per channel.
func Basis(n int, seed uint64) []hdc.Vector {
	if n < 0 {
		panic("encode: basis size must be non-negative")
	}
	out := make([]hdc.Vector, n)
	for i := range out {
		// Knuth multiplicative hash keeps per-channel seeds far apart.
		out[i] = hdc.Random(seed ^ (uint64(i)+1)*2654435761)
	}
	return out
}
