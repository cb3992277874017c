package chart

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/driver"
	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/i18n"
)

// Approximate distance from the widget edge to the plotted area, in pixels.
// Used until the first frame has measured the real plot area.
const (
	insetLeft   = 20
	insetRight  = 75
	insetTop    = 20
	insetBottom = 60
)

// zoomStep is the span factor applied per wheel notch.
const zoomStep = 0.85

// dotRadius is the point marker radius in widget units.
const dotRadius = 1.5

// Options configures a Widget.
type Options struct {
	X, Y          Range
	AutoY         bool
	Style         Style
	LocalizeMenus bool
	Logger        logrus.FieldLogger
}

// Widget shows a View as a rendered chart. The wheel zooms around the
// pointer, dragging pans, double tap fits the data and right click opens
// the context menu.
type Widget struct {
	widget.BaseWidget

	view  *View
	style Style
	hint  string
	menu  *fyne.Menu
	log   logrus.FieldLogger

	// plot area in widget coordinates, set by the renderer
	plotPos  fyne.Position
	plotSize fyne.Size

	autoYItem  *fyne.MenuItem
	gridItem   *fyne.MenuItem
	pointsItem *fyne.MenuItem
	dsItems    map[Downsample]*fyne.MenuItem
}

var (
	_ fyne.Scrollable        = (*Widget)(nil)
	_ fyne.Draggable         = (*Widget)(nil)
	_ fyne.DoubleTappable    = (*Widget)(nil)
	_ fyne.SecondaryTappable = (*Widget)(nil)
)

// NewWidget creates the chart and its context menu. The menu labels are
// localized once here when requested.
func NewWidget(opts Options) *Widget {
	if opts.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		opts.Logger = l
	}
	w := &Widget{
		view:  NewView(opts.X, opts.Y),
		style: opts.Style,
		log:   opts.Logger.WithField("component", "chart"),
	}
	w.view.SetAutoY(opts.AutoY)
	w.menu = w.buildMenu()
	if opts.LocalizeMenus {
		i18n.LocalizeMenu(w.menu)
	}
	w.view.OnChange(w.Refresh)
	w.view.OnAutoYChange(func(bool) { w.syncMenu() })
	w.ExtendBaseWidget(w)
	return w
}

// View returns the underlying model.
func (w *Widget) View() *View { return w.view }

// Menu returns the context menu tree.
func (w *Widget) Menu() *fyne.Menu { return w.menu }

// Style returns the current display toggles.
func (w *Widget) Style() Style { return w.style }

// Present forwards one sample to the view (acquisition.Sink).
func (w *Widget) Present(s driver.Spectrum, fit bool) { w.view.Present(s, fit) }

// SetStyle replaces the display toggles and redraws.
func (w *Widget) SetStyle(st Style) {
	w.style = st
	w.syncMenu()
	w.Refresh()
}

// SetHint sets the overlay text; empty hides it.
func (w *Widget) SetHint(text string) {
	if text == w.hint {
		return
	}
	w.hint = text
	w.Refresh()
}

func (w *Widget) Scrolled(ev *fyne.ScrollEvent) {
	factor := zoomStep
	if ev.Scrolled.DY < 0 {
		factor = 1 / zoomStep
	}
	fx, fy := w.relative(ev.Position)
	w.view.Zoom(factor, fx, fy)
}

func (w *Widget) Dragged(ev *fyne.DragEvent) {
	_, _, pw, ph := w.plotArea()
	w.view.Pan(-float64(ev.Dragged.DX)/pw, float64(ev.Dragged.DY)/ph)
}

func (w *Widget) DragEnd() {}

func (w *Widget) DoubleTapped(*fyne.PointEvent) { w.view.FitToData() }

func (w *Widget) TappedSecondary(ev *fyne.PointEvent) {
	c := w.canvas()
	if c == nil {
		return
	}
	widget.ShowPopUpMenuAtPosition(w.menu, c, ev.AbsolutePosition)
}

func (w *Widget) CreateRenderer() fyne.WidgetRenderer {
	r := &widgetRenderer{
		w:     w,
		bg:    canvas.NewRectangle(color.Black),
		frame: canvas.NewImageFromImage(blank(minRenderWidth, minRenderHeight)),
		curve: container.NewWithoutLayout(),
	}
	r.frame.FillMode = canvas.ImageFillStretch
	r.Refresh()
	return r
}

// canvas returns the canvas showing w, nil before any window exists.
func (w *Widget) canvas() fyne.Canvas {
	a := fyne.CurrentApp()
	if a == nil || len(a.Driver().AllWindows()) == 0 {
		return nil
	}
	return a.Driver().CanvasForObject(w)
}

// scale returns the canvas pixel density, 1 before the widget is shown.
func (w *Widget) scale() float32 {
	if c := w.canvas(); c != nil && c.Scale() > 0 {
		return c.Scale()
	}
	return 1
}

// plotArea returns origin and size of the plot area in widget coordinates.
func (w *Widget) plotArea() (x, y, width, height float64) {
	if w.plotSize.Width > 0 && w.plotSize.Height > 0 {
		return float64(w.plotPos.X), float64(w.plotPos.Y), float64(w.plotSize.Width), float64(w.plotSize.Height)
	}
	s := w.Size()
	width = math.Max(float64(s.Width)-insetLeft-insetRight, 1)
	height = math.Max(float64(s.Height)-insetTop-insetBottom, 1)
	return insetLeft, insetTop, width, height
}

// relative maps a widget position to 0..1 plot fractions, origin bottom left.
func (w *Widget) relative(p fyne.Position) (float64, float64) {
	x, y, pw, ph := w.plotArea()
	fx := (float64(p.X) - x) / pw
	fy := 1 - (float64(p.Y)-y)/ph
	return clamp01(fx), clamp01(fy)
}

func (w *Widget) buildMenu() *fyne.Menu {
	viewAll := fyne.NewMenuItem("View All", func() { w.view.FitToData() })

	xAxis := fyne.NewMenuItem("X Axis", nil)
	xAxis.ChildMenu = fyne.NewMenu("X Axis", fyne.NewMenuItem("Auto Range", func() { w.view.FitX() }))

	w.autoYItem = fyne.NewMenuItem("Auto Range", func() { w.view.SetAutoY(!w.view.AutoY()) })
	yAxis := fyne.NewMenuItem("Y Axis", nil)
	yAxis.ChildMenu = fyne.NewMenu("Y Axis", w.autoYItem)

	w.gridItem = fyne.NewMenuItem("Grid", func() {
		st := w.style
		st.Grid = !st.Grid
		w.SetStyle(st)
	})
	w.pointsItem = fyne.NewMenuItem("Points", func() {
		st := w.style
		st.Points = !st.Points
		w.SetStyle(st)
	})
	w.dsItems = map[Downsample]*fyne.MenuItem{}
	var dsChildren []*fyne.MenuItem
	for _, d := range []struct {
		mode  Downsample
		label string
	}{
		{DownsampleSubsample, "Subsample"},
		{DownsampleMean, "Mean"},
		{DownsamplePeak, "Peak"},
	} {
		mode := d.mode
		item := fyne.NewMenuItem(d.label, func() {
			st := w.style
			if st.Downsample == mode {
				st.Downsample = DownsampleOff
			} else {
				st.Downsample = mode
			}
			w.SetStyle(st)
		})
		w.dsItems[mode] = item
		dsChildren = append(dsChildren, item)
	}
	downsample := fyne.NewMenuItem("Downsample", nil)
	downsample.ChildMenu = fyne.NewMenu("Downsample", dsChildren...)

	plotOptions := fyne.NewMenuItem("Plot Options", nil)
	plotOptions.ChildMenu = fyne.NewMenu("Plot Options", w.gridItem, w.pointsItem, downsample)

	m := fyne.NewMenu("", viewAll, fyne.NewMenuItemSeparator(), xAxis, yAxis, plotOptions)
	w.syncMenu()
	return m
}

func (w *Widget) syncMenu() {
	if w.autoYItem == nil {
		return
	}
	w.autoYItem.Checked = w.view.AutoY()
	w.gridItem.Checked = w.style.Grid
	w.pointsItem.Checked = w.style.Points
	for mode, item := range w.dsItems {
		item.Checked = w.style.Downsample == mode
	}
	if w.menu != nil {
		w.menu.Refresh()
	}
}

// frameKey identifies what the cached frame image was drawn for.
type frameKey struct {
	width, height int
	x, y          Range
	grid          bool
	hint          string
}

// widgetRenderer keeps the go-chart frame as a cached image and draws the
// curve on top with reused line segments, so a new sample with unchanged
// ranges only moves lines.
type widgetRenderer struct {
	w     *Widget
	bg    *canvas.Rectangle
	frame *canvas.Image
	curve *fyne.Container

	key    frameKey
	plot   gochart.Box // in frame image pixels
	imgW   int
	imgH   int
	lines  []*canvas.Line
	dots   []*canvas.Circle
	frames int // frame renders, for tests
}

func (r *widgetRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.frame.Resize(size)
	r.curve.Resize(size)
	r.Refresh()
}

func (r *widgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(minRenderWidth*2, minRenderHeight*2)
}

func (r *widgetRenderer) Refresh() {
	r.drawFrame()
	r.drawCurve()
}

func (r *widgetRenderer) drawFrame() {
	size := r.w.Size()
	scale := r.w.scale()
	key := frameKey{
		width:  int(size.Width * scale),
		height: int(size.Height * scale),
		x:      r.w.view.XRange(),
		y:      r.w.view.YRange(),
		grid:   r.w.style.Grid,
		hint:   r.w.hint,
	}
	if r.frames > 0 && key == r.key {
		return
	}
	img, plot, err := renderFrame(r.w.view, r.w.style, key.width, key.height, key.hint)
	if err != nil {
		r.w.log.WithError(err).Warn("chart render failed, showing blank")
	}
	r.key, r.plot, r.frames = key, plot, r.frames+1
	r.imgW, r.imgH = img.Bounds().Dx(), img.Bounds().Dy()
	r.frame.Image = img
	r.frame.Refresh()

	sx, sy := r.pixelScale()
	r.w.plotPos = fyne.NewPos(float32(plot.Left)*sx, float32(plot.Top)*sy)
	r.w.plotSize = fyne.NewSize(float32(plot.Width())*sx, float32(plot.Height())*sy)
}

// pixelScale converts frame image pixels to widget coordinates.
func (r *widgetRenderer) pixelScale() (float32, float32) {
	size := r.w.Size()
	if r.imgW == 0 || r.imgH == 0 || size.Width <= 0 || size.Height <= 0 {
		return 1, 1
	}
	return size.Width / float32(r.imgW), size.Height / float32(r.imgH)
}

func (r *widgetRenderer) drawCurve() {
	xr, yr := r.w.view.XRange(), r.w.view.YRange()
	xs, ys := curvePoints(r.w.view, r.w.style, r.plot.Width())

	sx, sy := r.pixelScale()
	left, top := float64(r.plot.Left), float64(r.plot.Top)
	pw, ph := float64(r.plot.Width()), float64(r.plot.Height())
	at := func(i int) fyne.Position {
		px := left + (xs[i]-xr.Min)/xr.Span()*pw
		py := top + ph - (ys[i]-yr.Min)/yr.Span()*ph
		return fyne.NewPos(float32(px)*sx, float32(py)*sy)
	}

	segments := len(xs) - 1
	if segments < 0 {
		segments = 0
	}
	for len(r.lines) < segments {
		l := canvas.NewLine(curveColor)
		l.StrokeWidth = 2
		r.lines = append(r.lines, l)
	}
	objects := make([]fyne.CanvasObject, 0, segments+len(xs))
	for i := 0; i < segments; i++ {
		l := r.lines[i]
		l.Position1, l.Position2 = at(i), at(i+1)
		objects = append(objects, l)
	}
	if r.w.style.Points {
		for len(r.dots) < len(xs) {
			r.dots = append(r.dots, canvas.NewCircle(curveColor))
		}
		for i := range xs {
			p := at(i)
			d := r.dots[i]
			d.Move(p.SubtractXY(dotRadius, dotRadius))
			d.Resize(fyne.NewSize(2*dotRadius, 2*dotRadius))
			objects = append(objects, d)
		}
	}
	r.curve.Objects = objects
	r.curve.Refresh()
}

func (r *widgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.frame, r.curve}
}

func (r *widgetRenderer) Destroy() {}
