package chart

import (
	"math"
	"testing"
	"time"

	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/driver"
)

func sample(scale float64) driver.Spectrum {
	return driver.Spectrum{
		Wavelengths: []float64{400, 500, 600, 700, 800},
		Intensities: []float64{10 * scale, 40 * scale, 100 * scale, 30 * scale, 12 * scale},
	}
}

func bounds(r Range, s driver.Spectrum) bool {
	lo, hi := s.IntensityExtent()
	return r.Min <= lo && r.Max >= hi
}

func TestView_FitToData(t *testing.T) {
	v := NewView(Range{300, 1100}, Range{0, 100})
	v.FitToData() // no data: no-op
	if v.XRange() != (Range{300, 1100}) || v.YRange() != (Range{0, 100}) {
		t.Fatalf("fit without data moved ranges: %v %v", v.XRange(), v.YRange())
	}
	v.SetData(sample(1))
	v.FitToData()
	if v.XRange() != (Range{400, 800}) {
		t.Fatalf("x after fit %v want 400..800", v.XRange())
	}
	y := v.YRange()
	if math.Abs(y.Min-(10-4.5)) > 1e-9 || math.Abs(y.Max-(100+4.5)) > 1e-9 {
		t.Fatalf("y after fit %v want 5.5..104.5", y)
	}
}

func TestView_FlatDataGetsUnitPadding(t *testing.T) {
	v := NewView(Range{}, Range{})
	v.SetData(driver.Spectrum{Wavelengths: []float64{1, 2}, Intensities: []float64{7, 7}})
	v.FitY()
	if v.YRange() != (Range{6, 8}) {
		t.Fatalf("flat y %v want 6..8", v.YRange())
	}
}

func TestView_InvalidInitialRangesFallBack(t *testing.T) {
	v := NewView(Range{5, 5}, Range{math.NaN(), 1})
	if v.XRange() != (Range{300, 1100}) || v.YRange() != (Range{0, 100}) {
		t.Fatalf("fallback ranges %v %v", v.XRange(), v.YRange())
	}
}

func TestView_AutoYOffKeepsLastRange(t *testing.T) {
	v := NewView(Range{300, 1100}, Range{0, 100})
	v.Present(sample(1), true)
	fitted := v.YRange()
	for _, k := range []float64{5, 0.2, 30} {
		v.Present(sample(k), false)
		if v.YRange() != fitted {
			t.Fatalf("y moved without auto-y: %v want %v", v.YRange(), fitted)
		}
	}
	user := Range{-20, 20}
	v.SetYRange(user)
	v.Present(sample(50), false)
	v.SetData(sample(60))
	if v.YRange() != user {
		t.Fatalf("y %v want user range %v", v.YRange(), user)
	}
}

func TestView_AutoYBoundsEverySample(t *testing.T) {
	v := NewView(Range{300, 1100}, Range{0, 100})
	v.SetAutoY(true)
	x := v.XRange()
	for _, k := range []float64{1, 10, 0.1, 3} {
		s := sample(k)
		v.Present(s, false)
		if !bounds(v.YRange(), s) {
			t.Fatalf("auto-y range %v does not bound sample x%.1f", v.YRange(), k)
		}
		if v.XRange() != x {
			t.Fatalf("auto-y moved x to %v", v.XRange())
		}
	}
	v.SetData(sample(7))
	if !bounds(v.YRange(), sample(7)) {
		t.Fatalf("SetData in auto-y did not refit")
	}
}

func TestView_OneShotFitWinsThenAutoYResumes(t *testing.T) {
	v := NewView(Range{300, 1100}, Range{0, 100})
	v.SetAutoY(true)
	v.Present(sample(2), true)
	if v.XRange() != (Range{400, 800}) {
		t.Fatalf("one-shot fit did not set x: %v", v.XRange())
	}
	v.SetXRange(Range{550, 650})
	v.Present(sample(4), false)
	if v.XRange() != (Range{550, 650}) {
		t.Fatalf("x changed after the fit tick: %v", v.XRange())
	}
	if !bounds(v.YRange(), sample(4)) {
		t.Fatalf("auto-y did not resume")
	}
}

func TestView_AutoYToggleNotifies(t *testing.T) {
	v := NewView(Range{300, 1100}, Range{0, 100})
	var got []bool
	v.OnAutoYChange(func(b bool) { got = append(got, b) })
	v.SetAutoY(true)
	v.SetAutoY(true)
	v.SetAutoY(false)
	if len(got) != 2 || !got[0] || got[1] {
		t.Fatalf("notifications %v want [true false]", got)
	}
}

func TestView_ZoomAndPan(t *testing.T) {
	v := NewView(Range{0, 100}, Range{0, 10})
	changes := 0
	v.OnChange(func() { changes++ })

	v.Zoom(0.5, 0.5, 0.5)
	if v.XRange() != (Range{25, 75}) || v.YRange() != (Range{2.5, 7.5}) {
		t.Fatalf("centered zoom %v %v", v.XRange(), v.YRange())
	}
	v.Zoom(2, 0, 1) // anchored at left / top
	if v.XRange() != (Range{25, 125}) || v.YRange() != (Range{-2.5, 7.5}) {
		t.Fatalf("anchored zoom %v %v", v.XRange(), v.YRange())
	}
	v.Pan(0.1, -0.5)
	if v.XRange() != (Range{35, 135}) || v.YRange() != (Range{-7.5, 2.5}) {
		t.Fatalf("pan %v %v", v.XRange(), v.YRange())
	}
	v.Zoom(-1, 0.5, 0.5)
	v.Zoom(math.NaN(), 0.5, 0.5)
	v.SetXRange(Range{10, 5})
	if changes != 3 {
		t.Fatalf("change notifications %d want 3", changes)
	}
	v.Zoom(1e-12, 0.5, 0.5)
	if v.XRange().Span() < minSpan*0.999 {
		t.Fatalf("zoom collapsed the axis: %v", v.XRange())
	}
}

// Connect, 50 ms, start: the first sample fits both axes, the second leaves
// them alone with auto-Y off.
func TestView_FirstSampleFitsSecondKeeps(t *testing.T) {
	sim := driver.NewSimulator(driver.SimulatorConfig{Seed: 99})
	_ = sim.Connect()
	v := NewView(Range{300, 1100}, Range{0, 100})

	s1, _ := sim.Generate(50)
	v.Present(s1, true)
	x, y := v.XRange(), v.YRange()
	if x.Min != driver.DefaultWavelengthMin || math.Abs(x.Max-driver.DefaultWavelengthMax) > 1e-9 {
		t.Fatalf("x after first sample %v", x)
	}
	if !bounds(y, s1) {
		t.Fatalf("y %v does not bound first sample", y)
	}
	s2, _ := sim.Generate(50)
	v.Present(s2, false)
	if v.XRange() != x || v.YRange() != y {
		t.Fatalf("second sample moved axes: %v %v", v.XRange(), v.YRange())
	}
}

func TestView_ZoomFloorFollowsOffset(t *testing.T) {
	v := NewView(Range{300, 1100}, Range{0, 100})
	for i := 0; i < 160; i++ {
		v.Zoom(1/zoomStep, 0.5, 0.5)
	}
	v.Pan(1, 0)
	for i := 0; i < 400; i++ {
		v.Zoom(zoomStep, 0.5, 0.5)
	}
	x := v.XRange()
	mid := (x.Min + x.Max) / 2
	if x.Span() < math.Abs(mid)*relSpan*0.999 {
		t.Fatalf("span %v collapsed below the float resolution at %v", x.Span(), mid)
	}

	done := make(chan []float64, 1)
	go func() { done <- tickValues(x, tickCountX) }()
	select {
	case vals := <-done:
		if len(vals) == 0 || len(vals) > 4*tickCountX+4 {
			t.Fatalf("ticks for %v: %v", x, vals)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("tick computation did not return for %v", x)
	}
}
