// Package drawing holds the geometric transforms applied to pen
// trajectories between the model and the page: coordinate conversion,
// smoothing, baseline alignment and scale normalization.
package drawing

import (
	"math"
	"sort"

	"github.com/juruen/rmscribe/encoding/strokes"
)

// OffsetsToCoords accumulates offsets into absolute points. The sum runs
// over the whole sequence; stroke breaks only matter when drawing.
func OffsetsToCoords(seq strokes.Sequence) []strokes.Point {
	points := make([]strokes.Point, len(seq))
	var x, y float64
	for i, o := range seq {
		x += o.DX
		y += o.DY
		points[i] = strokes.Point{X: x, Y: y, Eos: o.Eos}
	}
	return points
}

// CoordsToOffsets is the inverse of OffsetsToCoords.
func CoordsToOffsets(points []strokes.Point) strokes.Sequence {
	seq := make(strokes.Sequence, len(points))
	var px, py float64
	for i, p := range points {
		seq[i] = strokes.Offset{DX: p.X - px, DY: p.Y - py, Eos: p.Eos}
		px, py = p.X, p.Y
	}
	return seq
}

// Scale multiplies dx and dy by f and returns a new sequence.
func Scale(seq strokes.Sequence, f float64) strokes.Sequence {
	out := seq.Clone()
	for i := range out {
		out[i].DX *= f
		out[i].DY *= f
	}
	return out
}

// Normalize divides dx and dy by the median offset length so that
// recordings made at different resolutions end up on one scale.
func Normalize(seq strokes.Sequence) strokes.Sequence {
	if len(seq) == 0 {
		return seq.Clone()
	}
	lengths := make([]float64, len(seq))
	for i, o := range seq {
		lengths[i] = math.Hypot(o.DX, o.DY)
	}
	sort.Float64s(lengths)

	n := len(lengths)
	median := lengths[n/2]
	if n%2 == 0 {
		median = (lengths[n/2-1] + lengths[n/2]) / 2
	}
	if median == 0 {
		return seq.Clone()
	}
	return Scale(seq, 1/median)
}

// Bounds returns the extent of the points on both axes.
func Bounds(points []strokes.Point) (minX, minY, maxX, maxY float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}
