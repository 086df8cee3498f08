// Package hdc implements a fixed-width Hyperdimensional Computing algebra.
// Vectors are 128-bit values stored as [16]byte; every operation writes to an
// explicit output and none of them allocate.
package hdc

import "math/bits"

const (
	// Dims is the number of dimensions (bits) in a Vector.
	Dims = 128
	// Bytes is the storage size of a Vector.
	Bytes = Dims / 8
)

// Vector is a 128-bit binary hypervector.
// Dimension i lives in byte i/8 at bit i%8, counting from the least-significant bit.
type Vector [Bytes]byte

// PopCountByte returns the number of set bits in b (0-8).
func PopCountByte(b byte) int { return bits.OnesCount8(b) }

// PopCount returns the number of set bits in v (0-128).
func PopCount(v *Vector) int {
	n := 0
	for _, b := range v {
		n += PopCountByte(b)
	}
	return n
}

// Xor writes a XOR b into out. out may alias a or b.
// Xor(Xor(a, b), b) == a; the zero vector is the identity.
func Xor(out, a, b *Vector) {
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
}

// Bind associates two vectors. It is Xor under its algebraic name.
func Bind(out, a, b *Vector) { Xor(out, a, b) }

// Or writes a OR b into out. out may alias a or b.
func Or(out, a, b *Vector) {
	for i := range out {
		out[i] = a[i] | b[i]
	}
}

// And writes a AND b into out. out may alias a or b.
func And(out, a, b *Vector) {
	for i := range out {
		out[i] = a[i] & b[i]
	}
}

// Bundle accumulates pattern into memory with a bitwise OR.
// The set-bit count of memory never decreases, so repeated bundling saturates
// toward the all-ones vector. Use Majority for a threshold superposition.
func Bundle(memory, pattern *Vector) {
	for i := range memory {
		memory[i] |= pattern[i]
	}
}

// Hamming returns the number of differing bits between a and b (0-128).
func Hamming(a, b *Vector) int {
	d := 0
	for i := range a {
		d += PopCountByte(a[i] ^ b[i])
	}
	return d
}

// Similarity returns Dims - Hamming(a, b): 128 for identical vectors,
// 0 for complements, ~64 for unrelated random vectors.
func Similarity(a, b *Vector) int {
	return Dims - Hamming(a, b)
}

// Clear zeroes every bit of v.
func Clear(v *Vector) { *v = Vector{} }

// Fill sets every byte of v to b. The byte pattern repeats 16 times.
func Fill(v *Vector, b byte) {
	for i := range v {
		v[i] = b
	}
}

// Copy duplicates src into dst.
func Copy(dst, src *Vector) { *dst = *src }

// Permute rotates v left by shifts positions in place: bit i moves to
// dimension (i+shifts) mod 128, crossing byte boundaries. Negative shifts
// rotate right. The set-bit count is preserved and Permute(v, 128) is a no-op.
// Used for positional encoding in sequences.
func Permute(v *Vector, shifts int) {
	s := shifts % Dims
	if s < 0 {
		s += Dims
	}
	if s == 0 {
		return
	}

	byteShift := s / 8
	bitShift := uint(s % 8)

	var tmp Vector
	for i, b := range v {
		dst := (i + byteShift) % Bytes
		if bitShift == 0 {
			tmp[dst] = b
			continue
		}
		tmp[dst] |= b << bitShift
		tmp[(dst+1)%Bytes] |= b >> (8 - bitShift)
	}
	*v = tmp
}
