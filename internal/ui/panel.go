package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/acquisition"
	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/chart"
)

const sidebarTitle = "Control Panel"

// Panel is the sidebar. Every control forwards to the controller or the
// chart view; labels and enablement are derived from the acquisition state.
type Panel struct {
	ctrl    *acquisition.Controller
	view    *chart.View
	onError func(error)
	onInput func()

	status      *widget.Label
	connectBtn  *widget.Button
	integration *widget.Entry
	autoY       *widget.Check
	focusBtn    *widget.Button
	startBtn    *widget.Button

	content fyne.CanvasObject
}

// NewPanel builds the sidebar. onError receives device errors; onInput runs
// after any control changed something, so a status line can follow.
func NewPanel(ctrl *acquisition.Controller, view *chart.View, onError func(error), onInput func()) *Panel {
	if onError == nil {
		onError = func(error) {}
	}
	if onInput == nil {
		onInput = func() {}
	}
	p := &Panel{ctrl: ctrl, view: view, onError: onError, onInput: onInput}

	p.status = widget.NewLabel("")
	p.connectBtn = widget.NewButton("", p.toggleConnection)

	p.integration = widget.NewEntry()
	p.integration.SetText(formatMs(ctrl.IntegrationTime()))
	p.integration.OnSubmitted = func(string) { p.commitIntegration() }

	p.autoY = widget.NewCheck("Auto-scale Y axis (Auto-Y)", func(on bool) {
		p.view.SetAutoY(on)
		p.onInput()
	})
	p.autoY.SetChecked(view.AutoY())
	view.OnAutoYChange(func(on bool) {
		if p.autoY.Checked != on {
			p.autoY.SetChecked(on)
		}
	})

	p.focusBtn = widget.NewButton("Focus on Peak", func() {
		p.view.FitToData()
		p.onInput()
	})
	p.startBtn = widget.NewButton("", p.toggleAcquisition)

	p.content = container.NewVBox(
		widget.NewLabelWithStyle(sidebarTitle, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewCard("1. Connection", "", container.NewVBox(p.status, p.connectBtn)),
		widget.NewCard("2. Parameters", "", container.New(
			layout.NewFormLayout(),
			widget.NewLabel("Integration time (ms):"), p.integration,
		)),
		widget.NewCard("3. View", "", container.NewVBox(p.autoY, p.focusBtn)),
		widget.NewCard("4. Acquisition", "", p.startBtn),
	)

	ctrl.OnStateChange(p.refresh)
	p.refresh(ctrl.State())
	return p
}

// Content returns the sidebar object.
func (p *Panel) Content() fyne.CanvasObject { return p.content }

func (p *Panel) refresh(s acquisition.State) {
	p.status.SetText(statusText(s))
	p.connectBtn.SetText(connectLabel(s))
	p.startBtn.SetText(startLabel(s))
	if s.Acquiring() {
		p.startBtn.Importance = widget.DangerImportance
	} else {
		p.startBtn.Importance = widget.HighImportance
	}
	if s.Connected() {
		p.startBtn.Enable()
	} else {
		p.startBtn.Disable()
	}
	p.startBtn.Refresh()
}

func (p *Panel) toggleConnection() {
	var err error
	if p.ctrl.State().Connected() {
		err = p.ctrl.Disconnect()
	} else {
		err = p.ctrl.Connect()
	}
	if err != nil {
		p.onError(err)
	}
	p.onInput()
}

func (p *Panel) toggleAcquisition() {
	p.commitIntegration()
	if p.ctrl.State().Acquiring() {
		p.ctrl.StopAcquisition()
	} else if err := p.ctrl.StartAcquisition(); err != nil {
		p.onError(err)
	}
	p.onInput()
}

// commitIntegration applies the entry text, which happens on Enter and
// before acquisition starts or stops, never per keystroke. The entry then
// shows the stored value, so a clamped or unparseable edit is corrected in
// place.
func (p *Panel) commitIntegration() {
	text := p.integration.Text
	if v, ok := parseMs(text); ok && v != p.ctrl.IntegrationTime() {
		p.ctrl.SetIntegrationTime(v)
	}
	if shown := formatMs(p.ctrl.IntegrationTime()); shown != text {
		p.integration.SetText(shown)
	}
	p.onInput()
}

func statusText(s acquisition.State) string {
	switch s {
	case acquisition.Idle:
		return "● Connected"
	case acquisition.Acquiring:
		return "● Acquiring"
	default:
		return "● Disconnected"
	}
}

func connectLabel(s acquisition.State) string {
	if s.Connected() {
		return "Disconnect Device"
	}
	return "Connect Device"
}

func startLabel(s acquisition.State) string {
	if s.Acquiring() {
		return "Stop Acquisition"
	}
	return "Start Acquisition"
}

func parseMs(text string) (float64, bool) {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "ms"))
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatMs(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
