package acquisition

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/driver"
)

// Integration time bounds and defaults, in milliseconds.
const (
	MinIntegrationTime     = 1.0
	MaxIntegrationTime     = 5000.0
	DefaultIntegrationTime = 10.0
	DefaultInterval        = 50 * time.Millisecond
)

// ErrNotConnected is returned when acquisition is requested without a device.
var ErrNotConnected = errors.New("device not connected")

// Sink consumes spectra. fit is true for the first sample of a run.
type Sink interface {
	Present(s driver.Spectrum, fit bool)
}

// Options configures a Controller. Zero values pick the defaults.
type Options struct {
	Interval time.Duration
	// IntegrationTime is the initial value in ms. Zero means unset and
	// picks DefaultIntegrationTime; any other value is clamped like
	// SetIntegrationTime, so a negative start value becomes
	// MinIntegrationTime.
	IntegrationTime float64
	Logger          logrus.FieldLogger
	Metrics         *Metrics
}

// Controller owns the acquisition state machine. It is not safe for
// concurrent use: every method and every tick must run on the UI thread.
type Controller struct {
	dev      driver.Device
	sched    Scheduler
	sink     Sink
	interval time.Duration
	log      logrus.FieldLogger
	metrics  *Metrics

	state       State
	integration float64
	pendingFit  bool
	stopTick    func()
	run         uint64
	rendered    uint64
	listeners   []func(State)
}

// NewController wires a device, a tick scheduler and a sample sink.
func NewController(dev driver.Device, sched Scheduler, sink Sink, opts Options) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.IntegrationTime == 0 {
		opts.IntegrationTime = DefaultIntegrationTime
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		opts.Logger = l
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(nil)
	}
	c := &Controller{
		dev:      dev,
		sched:    sched,
		sink:     sink,
		interval: opts.Interval,
		log:      opts.Logger.WithField("component", "acquisition"),
		metrics:  opts.Metrics,
	}
	var clamped bool
	c.integration, clamped = ClampIntegrationTime(opts.IntegrationTime)
	if clamped {
		c.log.WithFields(logrus.Fields{"requested": opts.IntegrationTime, "stored": c.integration}).Warn("initial integration time clamped")
	}
	c.metrics.IntegrationTime.Set(c.integration)
	if dev.Connected() {
		c.state = Idle
	}
	c.metrics.State.Set(float64(c.state))
	return c
}

// ClampIntegrationTime bounds v to [MinIntegrationTime, MaxIntegrationTime].
// clamped is true when v had to be changed. NaN maps to the minimum.
func ClampIntegrationTime(v float64) (out float64, clamped bool) {
	switch {
	case math.IsNaN(v) || v < MinIntegrationTime:
		return MinIntegrationTime, true
	case v > MaxIntegrationTime:
		return MaxIntegrationTime, true
	default:
		return v, false
	}
}

func (c *Controller) State() State { return c.state }
func (c *Controller) IntegrationTime() float64 { return c.integration }
func (c *Controller) PendingFit() bool { return c.pendingFit }
func (c *Controller) Interval() time.Duration { return c.interval }
func (c *Controller) SamplesRendered() uint64 { return c.rendered }
func (c *Controller) Metrics() *Metrics { return c.metrics }
func (c *Controller) OnStateChange(fn func(State)) { c.listeners = append(c.listeners, fn) }

// Connect moves Disconnected to Idle. Connecting twice is a no-op.
func (c *Controller) Connect() error {
	if c.state.Connected() {
		return nil
	}
	if err := c.dev.Connect(); err != nil {
		c.log.WithError(err).Warn("connect failed")
		return fmt.Errorf("connect device: %w", err)
	}
	c.setState(Idle)
	return nil
}

// Disconnect stops a running acquisition first, then releases the device.
func (c *Controller) Disconnect() error {
	if !c.state.Connected() {
		return nil
	}
	c.StopAcquisition()
	err := c.dev.Disconnect()
	c.setState(Disconnected)
	if err != nil {
		c.log.WithError(err).Warn("disconnect reported an error")
		return fmt.Errorf("disconnect device: %w", err)
	}
	return nil
}

// StartAcquisition begins the periodic tick and arms the one-shot fit.
func (c *Controller) StartAcquisition() error {
	switch c.state {
	case Disconnected:
		return ErrNotConnected
	case Acquiring:
		return nil
	}
	c.run++
	run := c.run
	c.pendingFit = true
	c.stopTick = c.sched.Every(c.interval, func() { c.tick(run) })
	c.metrics.RunsStarted.Inc()
	c.setState(Acquiring)
	return nil
}

// StopAcquisition cancels the tick. Ticks already queued for the stopped
// run are dropped.
func (c *Controller) StopAcquisition() {
	if c.state != Acquiring {
		return
	}
	if c.stopTick != nil {
		c.stopTick()
		c.stopTick = nil
	}
	c.run++
	c.pendingFit = false
	c.setState(Idle)
}

// SetIntegrationTime stores the clamped value and returns it.
func (c *Controller) SetIntegrationTime(v float64) float64 {
	out, clamped := ClampIntegrationTime(v)
	if clamped {
		c.metrics.ClampedInputs.Inc()
		c.log.WithField("requested", v).WithField("stored", out).Debug("integration time clamped")
	}
	c.integration = out
	c.metrics.IntegrationTime.Set(out)
	return out
}

func (c *Controller) tick(run uint64) {
	if run != c.run || c.state != Acquiring {
		return
	}
	s, ok := c.dev.Generate(c.integration)
	if !ok {
		c.metrics.TicksSkipped.Inc()
		return
	}
	fit := c.pendingFit
	c.pendingFit = false
	c.rendered++
	c.metrics.SamplesRendered.Inc()
	c.sink.Present(s, fit)
	if fit {
		c.log.WithField("run", run).Debug("first sample of run, fitting view")
	}
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	c.log.WithField("from", c.state.String()).WithField("to", s.String()).Info("state changed")
	c.state = s
	c.metrics.State.Set(float64(s))
	for _, fn := range c.listeners {
		fn(s)
	}
}
