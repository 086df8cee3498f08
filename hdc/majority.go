package hdc

// Majority accumulates vectors into per-dimension counters and produces their
// majority-vote superposition. Unlike Bundle it does not saturate: a bit is set
// in the result only if it was set in more than half of the added vectors.
// With an even count, ties resolve to 0.
//
// The zero value is ready to use. A Majority is not safe for concurrent use.
type Majority struct {
	counts [Dims]uint32
	n      uint32
}

// Add counts every set bit of v.
func (m *Majority) Add(v *Vector) {
	for i, b := range v {
		base := i * 8
		for bit := 0; bit < 8; bit++ {
			m.counts[base+bit] += uint32(b>>uint(bit)) & 1
		}
	}
	m.n++
}

// Count returns the number of vectors added since the last Reset.
func (m *Majority) Count() int { return int(m.n) }

// Result writes the majority vector into out.
// With no vectors added the result is the zero vector.
func (m *Majority) Result(out *Vector) {
	Clear(out)
	threshold := m.n / 2
	for i, c := range m.counts {
		if c > threshold {
			out[i/8] |= 1 << uint(i%8)
		}
	}
}

// Reset discards all accumulated counts.
func (m *Majority) Reset() { *m = Majority{} }
