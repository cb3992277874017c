package acquisition

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts what the acquisition loop does during a session.
type Metrics struct {
	SamplesRendered prometheus.Counter
	TicksSkipped    prometheus.Counter
	RunsStarted     prometheus.Counter
	ClampedInputs   prometheus.Counter
	State           prometheus.Gauge
	IntegrationTime prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg when non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SamplesRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spectroview_samples_rendered_total",
			Help: "Spectra forwarded to the chart.",
		}),
		TicksSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spectroview_ticks_skipped_total",
			Help: "Ticks on which the device returned no spectrum.",
		}),
		RunsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spectroview_runs_started_total",
			Help: "Acquisition runs started.",
		}),
		ClampedInputs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spectroview_integration_clamped_total",
			Help: "Integration time inputs clamped into the valid range.",
		}),
		State: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "spectroview_acquisition_state",
			Help: "0 disconnected, 1 idle, 2 acquiring.",
		}),
		IntegrationTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "spectroview_integration_time_ms",
			Help: "Current integration time in milliseconds.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.SamplesRendered,
			m.TicksSkipped,
			m.RunsStarted,
			m.ClampedInputs,
			m.State,
			m.IntegrationTime,
		)
	}
	return m
}
