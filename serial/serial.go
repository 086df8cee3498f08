// Package serial reads and writes the line-oriented text form of hypervectors
// used on the device's serial console: 32 uppercase hex digits, byte 0 first,
// terminated by "\r\n".
package serial

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/Amansingh-afk/edgehdc/hdc"
)

// Newline terminates every vector line.
const Newline = "\r\n"

// LineLen is the length of one encoded line including its terminator.
const LineLen = hdc.HexLen + len(Newline)

// Writer writes one vector per line. It is not safe for concurrent use.
type Writer struct {
	w   io.Writer
	buf [LineLen]byte
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// Write emits v as a single line.
func (w *Writer) Write(v *hdc.Vector) error {
	line := hdc.AppendHex(w.buf[:0], v)
	line = append(line, Newline...)
	if _, err := w.w.Write(line); err != nil {
		return errors.Wrap(err, "serial: write")
	}
	return nil
}

// AppendLine appends the line form of v, terminator included, to dst.
func AppendLine(dst []byte, v *hdc.Vector) []byte {
	return append(hdc.AppendHex(dst, v), Newline...)
}

// Scanner reads vector lines. Both "\r\n" and "\n" terminators are accepted
// and blank lines are skipped.
type Scanner struct {
	s    *bufio.Scanner
	line int
	vec  hdc.Vector
	err  error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{s: bufio.NewScanner(r)}
}

// Scan advances to the next vector. It returns false at end of input or on
// the first malformed line; Err reports which.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.s.Scan() {
		s.line++
		text := bytes.TrimSpace(s.s.Bytes())
		if len(text) == 0 {
			continue
		}
		if err := s.vec.UnmarshalText(text); err != nil {
			s.err = errors.Wrapf(err, "serial: line %d", s.line)
			return false
		}
		return true
	}
	if err := s.s.Err(); err != nil {
		s.err = errors.Wrap(err, "serial: read")
	}
	return false
}

// Vector returns the most recent vector read by Scan.
func (s *Scanner) Vector() hdc.Vector { return s.vec }

// Line returns the 1-based input line of the most recent vector.
func (s *Scanner) Line() int { return s.line }

// Err returns the first non-EOF error encountered.
func (s *Scanner) Err() error { return s.err }

// ReadAll reads every vector from r.
func ReadAll(r io.Reader) ([]hdc.Vector, error) {
	var out []hdc.Vector
	sc := NewScanner(r)
	for sc.Scan() {
		out = append(out, sc.Vector())
	}
	return out, sc.Err()
}
