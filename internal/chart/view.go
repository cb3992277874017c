package chart

import (
	"math"

	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/driver"
)

// Range is a closed axis interval.
type Range struct {
	Min, Max float64
}

// Span returns Max-Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

func (r Range) valid() bool {
	return !math.IsNaN(r.Min) && !math.IsNaN(r.Max) && !math.IsInf(r.Min, 0) && !math.IsInf(r.Max, 0) && r.Max > r.Min
}

// yFitPadding is the fraction of the intensity span added above and below
// on a Y fit.
const yFitPadding = 0.05

// Zoom never shrinks a span below minSpan, nor below relSpan times the
// magnitude of the zoom pivot, so ticks stay representable far from zero.
const (
	minSpan = 1e-6
	relSpan = 1e-9
)

// View holds the displayed spectrum and the axis ranges. Methods must be
// called from the UI thread.
type View struct {
	data  driver.Spectrum
	x, y  Range
	autoY bool

	onChange      []func()
	onAutoYChange []func(bool)
}

// NewView starts with the given ranges and no data.
func NewView(x, y Range) *View {
	if !x.valid() {
		x = Range{300, 1100}
	}
	if !y.valid() {
		y = Range{0, 100}
	}
	return &View{x: x, y: y}
}

func (v *View) Data() driver.Spectrum { return v.data }
func (v *View) XRange() Range { return v.x }
func (v *View) YRange() Range { return v.y }
func (v *View) AutoY() bool { return v.autoY }

// OnChange registers fn to run after data or ranges change.
func (v *View) OnChange(fn func()) { v.onChange = append(v.onChange, fn) }

// OnAutoYChange registers fn to run when the auto-Y mode flips.
func (v *View) OnAutoYChange(fn func(bool)) { v.onAutoYChange = append(v.onAutoYChange, fn) }

// SetData replaces the curve. In auto-Y mode the Y range follows the data.
func (v *View) SetData(s driver.Spectrum) {
	v.data = s
	if v.autoY {
		v.fitY()
	}
	v.changed()
}

// Present applies one sample: set data, then either the one-shot full fit
// or, failing that, the auto-Y fit.
func (v *View) Present(s driver.Spectrum, fit bool) {
	v.data = s
	switch {
	case fit:
		v.fitX()
		v.fitY()
	case v.autoY:
		v.fitY()
	}
	v.changed()
}

// FitToData bounds both axes to the current data once.
func (v *View) FitToData() {
	v.fitX()
	v.fitY()
	v.changed()
}

// FitX bounds the X axis to the wavelength extent once.
func (v *View) FitX() {
	v.fitX()
	v.changed()
}

// FitY bounds the Y axis to the intensity extent once.
func (v *View) FitY() {
	v.fitY()
	v.changed()
}

// SetAutoY toggles continuous Y fitting. Enabling it fits immediately.
func (v *View) SetAutoY(enabled bool) {
	if v.autoY == enabled {
		return
	}
	v.autoY = enabled
	if enabled {
		v.fitY()
	}
	for _, fn := range v.onAutoYChange {
		fn(enabled)
	}
	v.changed()
}

// SetXRange sets the X axis explicitly. Invalid ranges are ignored.
func (v *View) SetXRange(r Range) {
	if !r.valid() {
		return
	}
	v.x = r
	v.changed()
}

// SetYRange sets the Y axis explicitly. Invalid ranges are ignored.
func (v *View) SetYRange(r Range) {
	if !r.valid() {
		return
	}
	v.y = r
	v.changed()
}

// Zoom scales both spans by factor (<1 zooms in) keeping the point at the
// relative position (fx, fy) fixed; fx, fy run 0..1 from the bottom left.
func (v *View) Zoom(factor, fx, fy float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	v.x = zoomRange(v.x, factor, clamp01(fx))
	v.y = zoomRange(v.y, factor, clamp01(fy))
	v.changed()
}

// Pan shifts the view by fractions of the current spans.
func (v *View) Pan(dx, dy float64) {
	if math.IsNaN(dx) || math.IsNaN(dy) {
		return
	}
	sx, sy := v.x.Span()*dx, v.y.Span()*dy
	v.x = Range{v.x.Min + sx, v.x.Max + sx}
	v.y = Range{v.y.Min + sy, v.y.Max + sy}
	v.changed()
}

func (v *View) fitX() {
	if v.data.Empty() {
		return
	}
	lo, hi := v.data.WavelengthExtent()
	if hi <= lo {
		lo, hi = lo-1, hi+1
	}
	v.x = Range{lo, hi}
}

func (v *View) fitY() {
	if v.data.Empty() {
		return
	}
	lo, hi := v.data.IntensityExtent()
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return
	}
	pad := (hi - lo) * yFitPadding
	if pad <= 0 {
		pad = 1
	}
	v.y = Range{lo - pad, hi + pad}
}

func (v *View) changed() {
	for _, fn := range v.onChange {
		fn()
	}
}

func zoomRange(r Range, factor, anchor float64) Range {
	pivot := r.Min + r.Span()*anchor
	span := r.Span() * factor
	if floor := math.Max(minSpan, math.Abs(pivot)*relSpan); span < floor {
		span = floor
	}
	lo := pivot - span*anchor
	return Range{lo, lo + span}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
