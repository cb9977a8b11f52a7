// Package render lays out generated handwriting lines on a page and
// serializes the page as SVG, PDF or PNG.
package render

import (
	"errors"
	"fmt"

	"github.com/juruen/rmscribe/drawing"
	"github.com/juruen/rmscribe/encoding/strokes"
	"github.com/juruen/rmscribe/log"
)

const (
	ViewWidth   = 1000
	LineHeight  = 60
	StrokeScale = 1.5
	StrokeWidth = 2
)

var ErrEmptySequence = errors.New("empty stroke sequence")

// Error is a rendering failure. Line is -1 when the failure is not tied
// to a single line.
type Error struct {
	Op   string
	Line int
	Err  error
}

func (e *Error) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("render %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("render %s: line %d: %v", e.Op, e.Line, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options toggles the cleanup transforms.
type Options struct {
	Align   bool
	Denoise bool
}

func DefaultOptions() Options {
	return Options{Align: true, Denoise: true}
}

// Line is a sampled stroke sequence and the text it was sampled for.
type Line struct {
	Text    string
	Strokes strokes.Sequence
}

// IsBlank reports whether the line is a deliberate vertical gap. Only
// the empty string is; whitespace is written like any other text.
func (l Line) IsBlank() bool {
	return l.Text == ""
}

// Path is the drawn form of one text line, in page coordinates with y
// growing downwards.
type Path struct {
	Line   int
	Points []strokes.Point
}

// Document is a page of handwriting: a white background of Width x Height
// and one stroked path per non-blank line.
type Document struct {
	Width, Height float64
	Paths         []Path
}

// Layout places each line one line height below the previous one.
// Blank lines take up space but draw nothing.
func Layout(lines []Line, opts Options) (*Document, error) {
	doc := &Document{
		Width:  ViewWidth,
		Height: LineHeight * float64(len(lines)+1),
	}

	cursor := float64(LineHeight)
	for i, line := range lines {
		if !line.IsBlank() {
			points, err := placeLine(line.Strokes, cursor, opts)
			if err != nil {
				return nil, &Error{Op: "layout", Line: i, Err: err}
			}
			doc.Paths = append(doc.Paths, Path{Line: i, Points: points})
		}
		cursor += LineHeight
	}
	log.Trace.Printf("laid out %d lines, %d paths", len(lines), len(doc.Paths))

	return doc, nil
}

// placeLine turns offsets into page points whose baseline sits at cursor,
// centered horizontally.
func placeLine(seq strokes.Sequence, cursor float64, opts Options) ([]strokes.Point, error) {
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}

	points := drawing.OffsetsToCoords(drawing.Scale(seq, StrokeScale))
	if opts.Denoise {
		points = drawing.Denoise(points)
	}
	if opts.Align {
		points = drawing.Align(points)
	}

	for i := range points {
		points[i].Y = -points[i].Y
	}

	minX, minY, _, _ := drawing.Bounds(points)
	// one shift for both axes keeps the aspect of the line
	shift := minX
	if minY < shift {
		shift = minY
	}
	for i := range points {
		points[i].X -= shift
		points[i].Y += cursor - shift
	}

	_, _, maxX, _ := drawing.Bounds(points)
	dx := (ViewWidth - maxX) / 2
	for i := range points {
		points[i].X += dx
	}

	return points, nil
}
