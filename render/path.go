package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/juruen/rmscribe/encoding/strokes"
)

// Op is a path drawing operator.
type Op byte

const (
	MoveTo Op = 'M'
	LineTo Op = 'L'
)

type Command struct {
	Op   Op
	X, Y float64
}

// Commands walks the pen over the points. The pen starts lifted; a point
// whose predecessor ended a stroke begins a new sub-path with a move,
// every other point extends the current one with a line.
func Commands(points []strokes.Point) []Command {
	cmds := make([]Command, len(points))
	penUp := true
	for i, p := range points {
		op := LineTo
		if penUp {
			op = MoveTo
		}
		cmds[i] = Command{Op: op, X: p.X, Y: p.Y}
		penUp = p.Eos == 1
	}
	return cmds
}

// Subpaths splits points into the runs drawn without lifting the pen.
func Subpaths(points []strokes.Point) [][]strokes.Point {
	var out [][]strokes.Point
	start := 0
	for i, c := range Commands(points) {
		if c.Op == MoveTo && i > start {
			out = append(out, points[start:i])
			start = i
		}
	}
	if start < len(points) {
		out = append(out, points[start:])
	}
	return out
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// Data returns the SVG path data: an explicit move to the origin followed
// by one command per point.
func (p Path) Data() string {
	var b strings.Builder
	b.WriteString("M0,0 ")
	for _, c := range Commands(p.Points) {
		b.WriteByte(byte(c.Op))
		b.WriteString(formatCoord(c.X))
		b.WriteByte(',')
		b.WriteString(formatCoord(c.Y))
		b.WriteByte(' ')
	}
	return b.String()
}
