package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sa6mwa/scanlaunch"
)

// SpawnBuckets: 1ms to 5s, process creation is normally well under 100ms
var SpawnBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// Recorder counts command invocations. It implements scanlaunch.Observer.
type Recorder struct {
	registry *prometheus.Registry

	InvocationsTotal *prometheus.CounterVec
	SpawnDuration    *prometheus.HistogramVec
}

var _ scanlaunch.Observer = (*Recorder)(nil)

// New registers the scanlaunch collectors together with the Go runtime and
// process collectors on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		InvocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scanlaunch_invocations_total",
				Help: "Command invocations by command and outcome.",
			},
			[]string{"command", "outcome"},
		),
		SpawnDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scanlaunch_spawn_duration_seconds",
				Help:    "Time until the OS confirmed or refused process creation.",
				Buckets: SpawnBuckets,
			},
			[]string{"command"},
		),
	}
	r.registry.MustRegister(
		r.InvocationsTotal,
		r.SpawnDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) Observe(command string, elapsed time.Duration, err error) {
	outcome := scanlaunch.Kind(err)
	r.InvocationsTotal.WithLabelValues(command, outcome).Inc()
	// unsupported calls never reach the OS
	if outcome != scanlaunch.KindUnsupported {
		r.SpawnDuration.WithLabelValues(command).Observe(elapsed.Seconds())
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
