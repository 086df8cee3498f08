package sensor

import "sync"

// MockChannels is the number of channels a Mock provides.
const MockChannels = 8

// Mock is an in-memory Sampler for host-side tests and demos.
// Every channel starts at mid-scale (512). It is safe for concurrent use.
type Mock struct {
	mu      sync.Mutex
	values  [MockChannels]uint16
	timeout bool
	reads   uint64
}

// NewMock returns a Mock with every channel at mid-scale.
func NewMock() *Mock {
	m := &Mock{}
	for i := range m.values {
		m.values[i] = 512
	}
	return m
}

// Set sets the value reported for channel. Out-of-range channels are ignored.
func (m *Mock) Set(channel uint8, value uint16) {
	if int(channel) >= MockChannels {
		return
	}
	m.mu.Lock()
	m.values[channel] = value
	m.mu.Unlock()
}

// SetTimeout makes every subsequent Read report ErrorValue while enabled.
func (m *Mock) SetTimeout(enable bool) {
	m.mu.Lock()
	m.timeout = enable
	m.mu.Unlock()
}

// Reads returns the number of successful reads served.
func (m *Mock) Reads() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Read implements Sampler. A timed-out read returns ErrorValue and a nil error,
// like the register-level driver; an unknown channel returns ErrInvalidChannel.
func (m *Mock) Read(channel uint8) (uint16, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timeout {
		return ErrorValue, nil
	}
	if int(channel) >= MockChannels {
		return ErrorValue, ErrInvalidChannel
	}
	m.reads++
	return m.values[channel], nil
}

var _ Sampler = (*Mock)(nil)
