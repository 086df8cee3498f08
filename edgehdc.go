// Package edgehdc samples analog channels and encodes each sample set into a
// single 128-bit hypervector.
//
// Basic usage:
//
//	enc := edgehdc.New(adc, edgehdc.WithChannels(0, 1, 2), edgehdc.WithSeed(7))
//	var hv hdc.Vector
//	readings, err := enc.Encode(&hv)
//
// The algebra lives in package hdc and the scalar encoders in package encode;
// this package only wires a sensor.Sampler to them.
package edgehdc

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/Amansingh-afk/edgehdc/encode"
	"github.com/Amansingh-afk/edgehdc/hdc"
	"github.com/Amansingh-afk/edgehdc/sensor"
)

// SentinelPolicy decides what happens to a failed or out-of-range read.
type SentinelPolicy int

const (
	// Reject fails Encode on a failed read. This is the default.
	Reject SentinelPolicy = iota
	// Saturate encodes a failed read as full scale, reproducing the firmware,
	// where the timeout sentinel aliases the maximum reading.
	Saturate
)

// Stats is a point-in-time snapshot of Encoder counters.
type Stats struct {
	Samples   uint64 // channels sampled, each averaged over one or more reads
	Encoded   uint64 // vectors produced
	Failed    uint64 // Encode calls rejected because of a read
	Saturated uint64 // reads replaced by full scale under Saturate
}

// Encoder samples a fixed set of channels and encodes them with
// encode.MultiChannel. It is safe for concurrent use.
type Encoder struct {
	src       sensor.Sampler
	channels  []uint8
	basis     []hdc.Vector
	averaging int
	policy    SentinelPolicy
	log       logrus.FieldLogger
	metrics   *metrics

	mu    sync.Mutex
	stats Stats
}

// Option configures an Encoder.
type Option func(*options)

type options struct {
	channels  []uint8
	basis     []hdc.Vector
	seed      uint64
	averaging int
	policy    SentinelPolicy
	logger    logrus.FieldLogger
	reg       prometheus.Registerer
}

func defaultOptions() options {
	return options{
		channels:  []uint8{0},
		averaging: 1,
		policy:    Reject,
	}
}

// WithChannels sets the analog channels to sample, in record order (default 0).
func WithChannels(ch ...uint8) Option {
	return func(o *options) { o.channels = append([]uint8(nil), ch...) }
}

// WithBasis sets one role vector per channel. When unset, roles are derived
// from the seed with encode.Basis.
func WithBasis(basis []hdc.Vector) Option {
	return func(o *options) { o.basis = append([]hdc.Vector(nil), basis...) }
}

// WithSeed sets the seed for generated role vectors (default 0).
// Encoders with different seeds produce incompatible vectors.
func WithSeed(s uint64) Option { return func(o *options) { o.seed = s } }

// WithAveraging sets how many reads are averaged per channel (default 1).
func WithAveraging(n int) Option { return func(o *options) { o.averaging = n } }

// WithSentinelPolicy selects how failed reads are handled (default Reject).
func WithSentinelPolicy(p SentinelPolicy) Option { return func(o *options) { o.policy = p } }

// WithLogger sets the logger for dropped and saturated reads (default: discard).
func WithLogger(l logrus.FieldLogger) Option { return func(o *options) { o.logger = l } }

// WithRegisterer registers the Encoder's Prometheus counters with r.
func WithRegisterer(r prometheus.Registerer) Option { return func(o *options) { o.reg = r } }

// New creates an Encoder reading from src.
// Panics if src is nil or any option value is invalid (no channels, averaging
// below 1, unknown policy, or a basis whose length differs from the channel count).
func New(src sensor.Sampler, opts ...Option) *Encoder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case src == nil:
		panic("edgehdc: sampler must not be nil")
	case len(o.channels) == 0:
		panic("edgehdc: at least one channel is required")
	case o.averaging < 1:
		panic("edgehdc: averaging must be >= 1")
	case o.policy != Reject && o.policy != Saturate:
		panic("edgehdc: unknown sentinel policy")
	case o.basis != nil && len(o.basis) != len(o.channels):
		panic("edgehdc: basis length must match channel count")
	}
	if o.basis == nil {
		o.basis = encode.Basis(len(o.channels), o.seed)
	}
	if o.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.logger = l
	}

	e := &Encoder{
		src:       src,
		channels:  o.channels,
		basis:     o.basis,
		averaging: o.averaging,
		policy:    o.policy,
		log:       o.logger,
	}
	if o.reg != nil {
		e.metrics = newMetrics(o.reg)
	}
	return e
}

// Encode samples every channel and writes the composite vector into out.
// It returns the readings that were encoded, in channel order.
// Under Reject a failed read returns an error wrapping sensor.ErrReadFailed
// or sensor.ErrOutOfRange and leaves out cleared.
func (e *Encoder) Encode(out *hdc.Vector) ([]uint16, error) {
	values := make([]uint16, len(e.channels))
	var saturated uint64

	for i, ch := range e.channels {
		v, err := sensor.ReadAveraged(e.src, ch, e.averaging)
		if err != nil {
			if e.policy == Saturate && saturable(err) {
				e.log.WithField("channel", ch).WithError(err).Warn("saturating failed read")
				values[i] = encode.SensorDomain
				saturated++
				continue
			}
			e.log.WithField("channel", ch).WithError(err).Debug("dropping sample set")
			e.record(uint64(i+1), 0, saturated, 1)
			hdc.Clear(out)
			return nil, err
		}
		values[i] = v
	}

	if err := encode.MultiChannel(out, values, e.basis); err != nil {
		e.record(uint64(len(values)), 0, saturated, 1)
		return nil, errors.Wrap(err, "edgehdc: encode")
	}
	e.record(uint64(len(values)), 1, saturated, 0)
	return values, nil
}

// Channels returns a copy of the sampled channels in record order.
func (e *Encoder) Channels() []uint8 { return append([]uint8(nil), e.channels...) }

// Basis returns a copy of the per-channel role vectors.
func (e *Encoder) Basis() []hdc.Vector { return append([]hdc.Vector(nil), e.basis...) }

// Stats returns a point-in-time snapshot of the Encoder counters.
func (e *Encoder) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *Encoder) record(samples, encoded, saturated, failed uint64) {
	e.mu.Lock()
	e.stats.Samples += samples
	e.stats.Encoded += encoded
	e.stats.Saturated += saturated
	e.stats.Failed += failed
	e.mu.Unlock()

	if m := e.metrics; m != nil {
		m.samples.Add(float64(samples))
		m.encoded.Add(float64(encoded))
		m.saturated.Add(float64(saturated))
		m.failed.Add(float64(failed))
	}
}

func saturable(err error) bool {
	return errors.Is(err, sensor.ErrReadFailed) || errors.Is(err, sensor.ErrOutOfRange)
}
