package driver

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// rpcMetrics counts and times the rpcs issued against the device session.
type rpcMetrics struct {
	rpcs     *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newRPCMetrics() *rpcMetrics {
	return &rpcMetrics{
		rpcs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iosxr",
			Subsystem: "driver",
			Name:      "rpcs_total",
			Help:      "Total number of rpcs issued against the device, per rpc.",
		}, []string{"rpc"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iosxr",
			Subsystem: "driver",
			Name:      "rpc_errors_total",
			Help:      "Total number of failed rpcs, per rpc.",
		}, []string{"rpc"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "iosxr",
			Subsystem: "driver",
			Name:      "rpc_duration_seconds",
			Help:      "Duration of rpcs against the device, per rpc.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"rpc"}),
	}
}

func (m *rpcMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.rpcs, m.errors, m.duration}
}

// RegisterMetrics registers the driver rpc metrics with the given registerer.
func (d *XRDriver) RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range d.metrics.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// observe runs one rpc and records count, duration and error outcome.
func (d *XRDriver) observe(rpc string, fn func() error) error {
	start := time.Now()
	err := fn()
	d.metrics.rpcs.WithLabelValues(rpc).Inc()
	d.metrics.duration.WithLabelValues(rpc).Observe(time.Since(start).Seconds())
	if err != nil {
		d.metrics.errors.WithLabelValues(rpc).Inc()
	}
	return err
}
