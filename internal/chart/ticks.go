package chart

import (
	"math"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// tickValues returns about n positions inside r on a 1, 2, 2.5, 5 x 10^k
// grid. Only values within r are kept so the axis never widens the range.
func tickValues(r Range, n int) []float64 {
	if n < 2 || !r.valid() {
		return nil
	}
	span := r.Span()
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	best, bestScore := mag, math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Floor(span/step) + 1
		if score := math.Abs(count - float64(n)); score < bestScore {
			best, bestScore = step, score
		}
	}
	// A step below the float resolution at this offset cannot advance.
	if r.Min+best == r.Min || r.Max+best == r.Max {
		return nil
	}
	limit := 4*n + 4
	var out []float64
	for v := math.Ceil(r.Min/best) * best; v <= r.Max+best*1e-9 && len(out) < limit; v += best {
		out = append(out, round6(v))
	}
	return out
}

// ticks pairs tickValues with compact labels.
func ticks(r Range, n int) []gochart.Tick {
	vals := tickValues(r, n)
	out := make([]gochart.Tick, 0, len(vals))
	for _, v := range vals {
		out = append(out, gochart.Tick{Value: v, Label: formatTick(v)})
	}
	return out
}

func formatTick(v float64) string {
	av := math.Abs(v)
	switch {
	case v == 0:
		return "0"
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'g', 3, 64)
	}
}

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
