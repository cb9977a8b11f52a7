package drawing

import (
	"math"

	"github.com/juruen/rmscribe/encoding/strokes"
	"gonum.org/v1/gonum/stat"
)

// Align removes the baseline skew of a path. It fits y = offset + slope*x
// by least squares, rotates every point by atan(slope) and subtracts the
// offset from both axes. Paths that define no line come back unchanged.
func Align(points []strokes.Point) []strokes.Point {
	out := make([]strokes.Point, len(points))
	copy(out, points)
	if len(points) < 2 {
		return out
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	if stat.Variance(xs, nil) == 0 {
		return out
	}

	offset, slope := stat.LinearRegression(xs, ys, nil, false)
	theta := math.Atan(slope)
	cos, sin := math.Cos(theta), math.Sin(theta)

	for i, p := range points {
		out[i].X = p.X*cos + p.Y*sin - offset
		out[i].Y = -p.X*sin + p.Y*cos - offset
	}
	return out
}
