// Package ui composes the spectrometer window: control panel, chart and
// status bar around one acquisition controller.
package ui

import (
	"fmt"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/acquisition"
	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/chart"
	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/config"
	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/driver"
	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/i18n"
)

// Title is the window title.
const Title = "Spectrometer Acquisition"

const (
	sidebarWidth  = 280
	hintNoDevice  = "No spectrum: connect the device and start acquisition"
	hintConnected = "Connected: press Start Acquisition"
)

// Options configures a Window. Nil fields get production defaults.
type Options struct {
	Config    *config.Config
	Logger    logrus.FieldLogger
	Registry  *prometheus.Registry
	Device    driver.Device
	Scheduler acquisition.Scheduler
}

// Window owns the device, the controller and the widgets of one session.
type Window struct {
	win       fyne.Window
	device    driver.Device
	ctrl      *acquisition.Controller
	chart     *chart.Widget
	panel     *Panel
	statusBar *widget.Label
	registry  *prometheus.Registry
	log       logrus.FieldLogger

	closeOnce sync.Once
	closeErr  error
}

// NewWindow builds the window on app a. The device starts disconnected.
func NewWindow(a fyne.App, opts Options) *Window {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.GetDefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.Device == nil {
		opts.Device = driver.NewSimulator(driver.SimulatorConfig{
			Pixels:        cfg.Device.Pixels,
			WavelengthMin: cfg.Device.WavelengthMin,
			WavelengthMax: cfg.Device.WavelengthMax,
			Seed:          cfg.Device.Seed,
		})
	}
	if opts.Scheduler == nil {
		opts.Scheduler = acquisition.TickerScheduler{Post: fyne.Do}
	}

	w := &Window{
		win:      a.NewWindow(Title),
		device:   opts.Device,
		registry: opts.Registry,
		log:      opts.Logger.WithField("component", "ui"),
	}
	w.statusBar = widget.NewLabel("")

	w.chart = chart.NewWidget(chart.Options{
		X:             chart.Range{Min: cfg.View.XMin, Max: cfg.View.XMax},
		Y:             chart.Range{Min: cfg.View.YMin, Max: cfg.View.YMax},
		AutoY:         cfg.View.AutoY,
		Style:         chart.DefaultStyle(),
		LocalizeMenus: cfg.View.LocalizeMenus,
		Logger:        opts.Logger,
	})
	w.chart.SetHint(hintNoDevice)

	w.ctrl = acquisition.NewController(w.device, opts.Scheduler, w, acquisition.Options{
		Interval:        cfg.Acquisition.Interval,
		IntegrationTime: cfg.Device.IntegrationMs,
		Logger:          opts.Logger,
		Metrics:         acquisition.NewMetrics(opts.Registry),
	})
	w.ctrl.OnStateChange(w.stateChanged)

	w.panel = NewPanel(w.ctrl, w.chart.View(), w.showError, w.updateStatus)

	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(sidebarWidth, 0))
	sidebar := container.NewStack(spacer, container.NewVScroll(container.NewPadded(w.panel.Content())))
	w.win.SetContent(container.NewBorder(nil, w.statusBar, sidebar, nil, w.chart))
	w.win.SetMainMenu(w.mainMenu(cfg.View.LocalizeMenus))
	w.win.Resize(fyne.NewSize(cfg.View.Width, cfg.View.Height))
	w.win.SetOnClosed(func() {
		if err := w.Close(); err != nil {
			w.log.WithError(err).Warn("close")
		}
	})
	w.updateStatus()
	return w
}

// Window returns the fyne window.
func (w *Window) Window() fyne.Window { return w.win }

// Controller returns the acquisition controller.
func (w *Window) Controller() *acquisition.Controller { return w.ctrl }

// Chart returns the chart widget.
func (w *Window) Chart() *chart.Widget { return w.chart }

// Panel returns the sidebar.
func (w *Window) Panel() *Panel { return w.panel }

// ShowAndRun shows the window and runs the application loop.
func (w *Window) ShowAndRun() { w.win.ShowAndRun() }

// Present forwards a sample to the chart and updates the status line.
func (w *Window) Present(s driver.Spectrum, fit bool) {
	w.chart.SetHint("")
	w.chart.Present(s, fit)
	w.updateStatus()
}

// Close stops acquisition, releases the device and logs the session
// counters. Calling it again returns the first result.
func (w *Window) Close() error {
	w.closeOnce.Do(func() {
		if err := w.ctrl.Disconnect(); err != nil {
			w.closeErr = err
		}
		if err := w.device.Close(); err != nil && w.closeErr == nil {
			w.closeErr = fmt.Errorf("close device: %w", err)
		}
		w.logSummary()
	})
	return w.closeErr
}

func (w *Window) stateChanged(s acquisition.State) {
	if w.chart.View().Data().Empty() {
		if s.Connected() {
			w.chart.SetHint(hintConnected)
		} else {
			w.chart.SetHint(hintNoDevice)
		}
	}
	w.updateStatus()
}

func (w *Window) updateStatus() {
	w.statusBar.SetText(statusLine(w.ctrl.State(), w.ctrl.IntegrationTime(), w.ctrl.SamplesRendered()))
}

func (w *Window) showError(err error) {
	w.log.WithError(err).Error("device error")
	dialog.ShowError(err, w.win)
}

func (w *Window) mainMenu(localize bool) *fyne.MainMenu {
	mm := fyne.NewMainMenu(
		fyne.NewMenu("File", fyne.NewMenuItem("Close", func() { w.win.Close() })),
		fyne.NewMenu("View", fyne.NewMenuItem("View All", func() { w.chart.View().FitToData() })),
	)
	if localize {
		i18n.LocalizeMainMenu(mm)
	}
	return mm
}

func (w *Window) logSummary() {
	families, err := w.registry.Gather()
	if err != nil {
		w.log.WithError(err).Warn("gather session metrics")
		return
	}
	fields := logrus.Fields{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				fields[mf.GetName()] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				fields[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	w.log.WithFields(fields).Info("session summary")
}

func statusLine(s acquisition.State, integrationMs float64, samples uint64) string {
	return fmt.Sprintf("%s  |  integration %s ms  |  %d samples", s, formatMs(integrationMs), samples)
}
