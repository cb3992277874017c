package chart

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Chart colors.
var (
	backgroundColor = drawing.ColorBlack
	curveColor      = drawing.ColorFromHex("00FFFF")
	axisColor       = drawing.Color{R: 160, G: 160, B: 160, A: 255}
	gridColor       = drawing.Color{R: 255, G: 255, B: 255, A: 77} // alpha 0.3
	fallbackColor   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// Axis titles.
const (
	XAxisName = "Wavelength (nm)"
	YAxisName = "Intensity (counts)"
)

const (
	minRenderWidth  = 200
	minRenderHeight = 150
	tickCountX      = 9
	tickCountY      = 6
)

// Style holds the display toggles exposed in the context menu.
type Style struct {
	Grid       bool
	Points     bool
	Downsample Downsample
}

// DefaultStyle shows the grid and draws the curve without decimation.
func DefaultStyle() Style { return Style{Grid: true} }

// renderFrame draws background, axes, ticks and grid for the view's ranges
// at w x h pixels and returns the plot area in image pixels. The curve is
// not part of the frame. A non-empty hint is stamped in the bottom left
// corner. The image is never nil.
func renderFrame(v *View, st Style, w, h int, hint string) (image.Image, gochart.Box, error) {
	if w < minRenderWidth {
		w = minRenderWidth
	}
	if h < minRenderHeight {
		h = minRenderHeight
	}
	xr, yr := v.XRange(), v.YRange()
	plot := gochart.Box{Top: insetTop, Left: insetLeft, Right: w - insetRight, Bottom: h - insetBottom}

	axisStyle := gochart.Style{StrokeColor: axisColor, FontColor: axisColor, FontSize: 9}
	nameStyle := gochart.Style{FontColor: axisColor, FontSize: 10}
	gridStyle := gochart.Style{StrokeColor: gridColor, StrokeWidth: 1}
	if !st.Grid {
		gridStyle = gochart.Style{Hidden: true}
	}
	ch := gochart.Chart{
		Width:      w,
		Height:     h,
		Background: gochart.Style{FillColor: backgroundColor, Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		Canvas:     gochart.Style{FillColor: backgroundColor},
		XAxis: gochart.XAxis{
			Name:           XAxisName,
			NameStyle:      nameStyle,
			Style:          axisStyle,
			Range:          &gochart.ContinuousRange{Min: xr.Min, Max: xr.Max},
			Ticks:          ticks(xr, tickCountX),
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		YAxis: gochart.YAxis{
			Name:           YAxisName,
			NameStyle:      nameStyle,
			Style:          axisStyle,
			Range:          &gochart.ContinuousRange{Min: yr.Min, Max: yr.Max},
			Ticks:          ticks(yr, tickCountY),
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		Series: []gochart.Series{
			// go-chart needs one visible series; this one is transparent
			gochart.ContinuousSeries{
				Name:    "frame",
				Style:   gochart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: 1},
				XValues: []float64{xr.Min, xr.Max},
				YValues: []float64{yr.Min, yr.Max},
			},
		},
		Elements: []gochart.Renderable{
			func(_ gochart.Renderer, canvasBox gochart.Box, _ gochart.Style) { plot = canvasBox },
		},
	}

	out := &gochart.ImageWriter{}
	if err := ch.Render(gochart.PNG, out); err != nil {
		return stampHint(blank(w, h), hint), plot, err
	}
	img, err := out.Image()
	if err != nil {
		return stampHint(blank(w, h), hint), plot, err
	}
	return stampHint(img, hint), plot, nil
}

// curvePoints returns the visible part of the view's data, decimated to
// about one point per plot pixel column when a downsample mode is set.
func curvePoints(v *View, st Style, columns int) ([]float64, []float64) {
	d := v.Data()
	xs, ys := visible(d.Wavelengths, d.Intensities, v.XRange(), v.YRange())
	return decimate(st.Downsample, xs, ys, columns)
}

// visible keeps the points inside the X range plus one neighbour on each
// side so the curve reaches the plot edges, and clamps Y into the range.
func visible(wl, in []float64, xr, yr Range) ([]float64, []float64) {
	n := len(wl)
	if len(in) < n {
		n = len(in)
	}
	lo, hi := -1, -1
	for i := 0; i < n; i++ {
		if xr.Contains(wl[i]) {
			if lo < 0 {
				lo = i
			}
			hi = i
		}
	}
	if lo < 0 {
		return nil, nil
	}
	if lo > 0 {
		lo--
	}
	if hi < n-1 {
		hi++
	}
	xs := make([]float64, 0, hi-lo+1)
	ys := make([]float64, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		x, y := wl[i], in[i]
		if x < xr.Min {
			x = xr.Min
		} else if x > xr.Max {
			x = xr.Max
		}
		if y < yr.Min {
			y = yr.Min
		} else if y > yr.Max {
			y = yr.Max
		}
		xs, ys = append(xs, x), append(ys, y)
	}
	return xs, ys
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(fallbackColor), image.Point{}, draw.Src)
	return img
}

// stampHint writes text on a translucent strip in the bottom left corner.
func stampHint(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: rgba, Src: image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}), Face: face}
	tw := dr.MeasureString(text).Ceil()
	pad := 6
	x := b.Min.X + 8
	y := b.Max.Y - 6
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, image.NewUniform(color.RGBA{A: 200}), image.Point{}, draw.Over)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}
