package hdc

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// HexLen is the length of the textual form of a Vector.
const HexLen = Bytes * 2

var (
	// ErrHexLength is returned when a textual vector is not exactly HexLen digits.
	ErrHexLength = errors.New("hdc: hex vector must be 32 digits")
	// ErrHexDigit is returned when a textual vector contains a non-hex character.
	ErrHexDigit = errors.New("hdc: invalid hex digit")
)

const upperHex = "0123456789ABCDEF"

// AppendHex appends the textual form of v to dst: two uppercase hex digits
// per byte, byte 0 first, no separators.
func AppendHex(dst []byte, v *Vector) []byte {
	for _, b := range v {
		dst = append(dst, upperHex[b>>4], upperHex[b&0x0F])
	}
	return dst
}

// String returns the 32-digit uppercase hex form of v.
func (v Vector) String() string {
	var buf [HexLen]byte
	return string(AppendHex(buf[:0], &v))
}

// MarshalText implements encoding.TextMarshaler.
func (v Vector) MarshalText() ([]byte, error) {
	return AppendHex(make([]byte, 0, HexLen), &v), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Digits are case-insensitive.
func (v *Vector) UnmarshalText(text []byte) error {
	if len(text) != HexLen {
		return errors.Wrapf(ErrHexLength, "got %d", len(text))
	}
	var tmp Vector
	if _, err := hex.Decode(tmp[:], text); err != nil {
		return errors.Wrapf(ErrHexDigit, "%q", text)
	}
	*v = tmp
	return nil
}

// ParseHex parses the textual form produced by String.
func ParseHex(s string) (Vector, error) {
	var v Vector
	err := v.UnmarshalText([]byte(s))
	return v, err
}
