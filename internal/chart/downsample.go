package chart

// Downsample selects how the curve is decimated to the pixel width before
// drawing. It never alters the data held by the View.
type Downsample int

const (
	DownsampleOff Downsample = iota
	DownsampleSubsample
	DownsampleMean
	DownsamplePeak
)

func (d Downsample) String() string {
	switch d {
	case DownsampleSubsample:
		return "subsample"
	case DownsampleMean:
		return "mean"
	case DownsamplePeak:
		return "peak"
	default:
		return "off"
	}
}

// decimate reduces xs/ys to about buckets points. Peak keeps the min and max
// of every bucket, so it may return up to 2*buckets points.
func decimate(mode Downsample, xs, ys []float64, buckets int) ([]float64, []float64) {
	n := len(xs)
	if mode == DownsampleOff || buckets < 2 || n <= buckets {
		return xs, ys
	}
	size := float64(n) / float64(buckets)
	switch mode {
	case DownsampleSubsample:
		ox, oy := make([]float64, 0, buckets), make([]float64, 0, buckets)
		for b := 0; b < buckets; b++ {
			i := int(float64(b) * size)
			ox, oy = append(ox, xs[i]), append(oy, ys[i])
		}
		if ox[len(ox)-1] != xs[n-1] {
			ox, oy = append(ox, xs[n-1]), append(oy, ys[n-1])
		}
		return ox, oy
	case DownsampleMean:
		ox, oy := make([]float64, 0, buckets), make([]float64, 0, buckets)
		for b := 0; b < buckets; b++ {
			lo, hi := bucketBounds(b, size, n)
			var sx, sy float64
			for i := lo; i < hi; i++ {
				sx += xs[i]
				sy += ys[i]
			}
			k := float64(hi - lo)
			ox, oy = append(ox, sx/k), append(oy, sy/k)
		}
		return ox, oy
	case DownsamplePeak:
		ox, oy := make([]float64, 0, 2*buckets), make([]float64, 0, 2*buckets)
		for b := 0; b < buckets; b++ {
			lo, hi := bucketBounds(b, size, n)
			minI, maxI := lo, lo
			for i := lo + 1; i < hi; i++ {
				if ys[i] < ys[minI] {
					minI = i
				}
				if ys[i] > ys[maxI] {
					maxI = i
				}
			}
			first, second := minI, maxI
			if first > second {
				first, second = second, first
			}
			ox, oy = append(ox, xs[first]), append(oy, ys[first])
			if second != first {
				ox, oy = append(ox, xs[second]), append(oy, ys[second])
			}
		}
		return ox, oy
	}
	return xs, ys
}

func bucketBounds(b int, size float64, n int) (int, int) {
	lo := int(float64(b) * size)
	hi := int(float64(b+1) * size)
	if hi > n {
		hi = n
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}
