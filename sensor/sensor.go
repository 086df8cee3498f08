// Package sensor defines the narrow boundary between the encoders and the
// hardware sampling layer.
//
// The hardware layer reports a failed conversion by returning ErrorValue in
// place of a sample. Under thermometer saturation that sentinel encodes
// exactly like a full-scale reading, so Filter must run before encoding
// whenever the distinction matters.
package sensor

import "github.com/pkg/errors"

const (
	// MaxReading is the largest legitimate 10-bit sample.
	MaxReading = 1023

	// ErrorValue is the sample reported when a conversion times out.
	ErrorValue = 0xFFFF

	// VRefMillivolts is the reference voltage of a full-scale reading.
	VRefMillivolts = 5000
)

var (
	// ErrReadFailed indicates the hardware sentinel or a Sampler error.
	ErrReadFailed = errors.New("sensor: read failed")

	// ErrOutOfRange indicates a raw sample above MaxReading that is not the sentinel.
	ErrOutOfRange = errors.New("sensor: sample out of range")

	// ErrInvalidChannel indicates a channel the Sampler does not provide.
	ErrInvalidChannel = errors.New("sensor: invalid channel")
)

// Sampler reads the current sample of one analog channel as an unsigned value
// in [0, MaxReading]. Implementations may return ErrorValue with a nil error
// on timeout, as register-level drivers do; Filter catches both forms.
type Sampler interface {
	Read(channel uint8) (uint16, error)
}

// SamplerFunc adapts a function to a Sampler.
type SamplerFunc func(channel uint8) (uint16, error)

// Read calls f(channel).
func (f SamplerFunc) Read(channel uint8) (uint16, error) { return f(channel) }

// Filter validates a raw sample before it reaches an encoder.
// Returns ErrReadFailed for ErrorValue and ErrOutOfRange for any other value
// above MaxReading.
func Filter(raw uint16) (uint16, error) {
	switch {
	case raw == ErrorValue:
		return 0, ErrReadFailed
	case raw > MaxReading:
		return 0, errors.Wrapf(ErrOutOfRange, "raw=%d", raw)
	}
	return raw, nil
}

// ReadFiltered reads one sample from channel and passes it through Filter.
func ReadFiltered(s Sampler, channel uint8) (uint16, error) {
	raw, err := s.Read(channel)
	if err != nil {
		return 0, errors.Wrapf(wrapRead(err), "channel %d", channel)
	}
	v, err := Filter(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "channel %d", channel)
	}
	return v, nil
}

// ReadAveraged returns the integer mean of samples filtered reads of channel.
// Any failed read fails the whole average, so a timeout never drags the mean
// toward the sentinel. samples <= 0 is treated as 1.
func ReadAveraged(s Sampler, channel uint8, samples int) (uint16, error) {
	if samples <= 0 {
		samples = 1
	}
	var sum uint32
	for i := 0; i < samples; i++ {
		v, err := ReadFiltered(s, channel)
		if err != nil {
			return 0, err
		}
		sum += uint32(v)
	}
	return uint16(sum / uint32(samples)), nil
}

// Millivolts converts a raw sample to millivolts against VRefMillivolts.
func Millivolts(raw uint16) uint16 {
	return uint16(uint32(raw) * VRefMillivolts / 1024)
}

// Celsius converts a raw sample from a 10 mV/°C sensor with a 500 mV offset
// (TMP36 style) to whole degrees, truncated toward zero. Readings below the
// offset give negative temperatures down to -50.
func Celsius(raw uint16) int16 {
	return int16((int32(Millivolts(raw)) - 500) / 10)
}

// wrapRead makes sure a Sampler error satisfies errors.Is(err, ErrReadFailed)
// unless it already names a more specific sensor failure.
func wrapRead(err error) error {
	if errors.Is(err, ErrReadFailed) || errors.Is(err, ErrInvalidChannel) {
		return err
	}
	return &readError{cause: err}
}

type readError struct{ cause error }

func (e *readError) Error() string        { return ErrReadFailed.Error() + ": " + e.cause.Error() }
func (e *readError) Unwrap() error        { return e.cause }
func (e *readError) Is(target error) bool { return target == ErrReadFailed }
