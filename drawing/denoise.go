package drawing

import (
	"github.com/juruen/rmscribe/encoding/strokes"
	"gonum.org/v1/gonum/mat"
)

const (
	smoothWindow = 7
	smoothOrder  = 3
)

var smoothing = savgolCoefficients(smoothWindow, smoothOrder)

// savgolCoefficients returns the Savitzky-Golay smoothing kernel: the
// first row of the pseudo-inverse of the Vandermonde matrix over the
// window positions -half..half.
func savgolCoefficients(window, order int) []float64 {
	half := window / 2
	a := mat.NewDense(window, order+1, nil)
	for i := 0; i < window; i++ {
		t := float64(i - half)
		v := 1.0
		for k := 0; k <= order; k++ {
			a.Set(i, k, v)
			v *= t
		}
	}

	var ata mat.Dense
	ata.Mul(a.T(), a)
	var inv mat.Dense
	if err := inv.Inverse(&ata); err != nil {
		panic("drawing: singular savgol system: " + err.Error())
	}
	var pinv mat.Dense
	pinv.Mul(&inv, a.T())

	out := make([]float64, window)
	copy(out, pinv.RawRowView(0))
	return out
}

// smooth applies the kernel with samples beyond either end replaced by
// the nearest edge sample.
func smooth(values []float64, kernel []float64) []float64 {
	n := len(values)
	half := len(kernel) / 2
	out := make([]float64, n)
	for i := range values {
		var acc float64
		for k, c := range kernel {
			j := i + k - half
			if j < 0 {
				j = 0
			} else if j >= n {
				j = n - 1
			}
			acc += c * values[j]
		}
		out[i] = acc
	}
	return out
}

// Denoise smooths x and y within each stroke. Strokes are split after
// every point with eos set; eos values are kept.
func Denoise(points []strokes.Point) []strokes.Point {
	out := make([]strokes.Point, 0, len(points))
	start := 0
	for i, p := range points {
		if p.Eos == 1 || i == len(points)-1 {
			out = append(out, denoiseStroke(points[start:i+1])...)
			start = i + 1
		}
	}
	return out
}

func denoiseStroke(stroke []strokes.Point) []strokes.Point {
	xs := make([]float64, len(stroke))
	ys := make([]float64, len(stroke))
	for i, p := range stroke {
		xs[i], ys[i] = p.X, p.Y
	}
	xs = smooth(xs, smoothing)
	ys = smooth(ys, smoothing)

	out := make([]strokes.Point, len(stroke))
	for i, p := range stroke {
		out[i] = strokes.Point{X: xs[i], Y: ys[i], Eos: p.Eos}
	}
	return out
}
