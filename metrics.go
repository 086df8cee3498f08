package edgehdc

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	samples   prometheus.Counter
	encoded   prometheus.Counter
	saturated prometheus.Counter
	failed    prometheus.Counter
}

// newMetrics creates and registers the Encoder counters.
// Panics if they are already registered with reg.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "edgehdc",
			Name:      "samples_total",
			Help:      "Channels sampled.",
		}),
		encoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "edgehdc",
			Name:      "vectors_encoded_total",
			Help:      "Hypervectors produced.",
		}),
		saturated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "edgehdc",
			Name:      "samples_saturated_total",
			Help:      "Failed reads encoded as full scale.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "edgehdc",
			Name:      "encode_failures_total",
			Help:      "Sample sets rejected because of a failed read.",
		}),
	}
	reg.MustRegister(m.samples, m.encoded, m.saturated, m.failed)
	return m
}
