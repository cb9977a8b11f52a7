// Package rm reads and writes the binary .rm page format of reMarkable
// tablets (versions 3 and 5). Pages recorded on a tablet are one of the
// sources handwriting styles are imported from.
package rm

import "errors"

// Version of the .rm file format
type Version int

const (
	V3 Version = iota
	V5
	V6
)

const (
	HeaderV3  = "reMarkable .lines file, version=3          "
	HeaderV5  = "reMarkable .lines file, version=5          "
	HeaderV6  = "reMarkable .lines file, version=6          "
	HeaderLen = 43
)

// ErrUnsupportedVersion is returned for pages in the v6 scene format.
var ErrUnsupportedVersion = errors.New("unsupported .rm version")

type BrushColor uint32

const (
	Black BrushColor = 0
	Grey  BrushColor = 1
	White BrushColor = 2
)

type BrushType uint32

const (
	BallPoint     BrushType = 2
	Marker        BrushType = 3
	Fineliner     BrushType = 4
	SharpPencil   BrushType = 7
	TiltPencil    BrushType = 1
	Brush         BrushType = 0
	Highlighter   BrushType = 5
	Eraser        BrushType = 6
	EraseArea     BrushType = 8
	BallPointV5   BrushType = 15
	MarkerV5      BrushType = 16
	FinelinerV5   BrushType = 17
	SharpPencilV5 BrushType = 13
	TiltPencilV5  BrushType = 14
	BrushV5       BrushType = 12
	HighlighterV5 BrushType = 18
	CalligraphyV5 BrushType = 21
)

// IsPen reports whether lines drawn with the brush leave ink that
// belongs to the handwriting (erasers and highlighters do not).
func (b BrushType) IsPen() bool {
	switch b {
	case Eraser, EraseArea, Highlighter, HighlighterV5:
		return false
	}
	return true
}

type BrushSize float32

const (
	Small  BrushSize = 1.875
	Medium BrushSize = 2.0
	Large  BrushSize = 2.125
)

// Rm is a single page
type Rm struct {
	Version Version
	Layers  []Layer
}

type Layer struct {
	Lines []Line
}

// Line is one continuous pen stroke
type Line struct {
	BrushType  BrushType
	BrushColor BrushColor
	Padding    uint32
	Unknown    float32
	BrushSize  BrushSize
	Points     []Point
}

// Point is in device coordinates (1404x1872 on the tablet)
type Point struct {
	X         float32
	Y         float32
	Speed     float32
	Direction float32
	Width     float32
	Pressure  float32
}

// PenLines returns the non-empty ink lines of all layers in drawing order.
func (rm *Rm) PenLines() []Line {
	var lines []Line
	for _, layer := range rm.Layers {
		for _, line := range layer.Lines {
			if !line.BrushType.IsPen() || len(line.Points) == 0 {
				continue
			}
			lines = append(lines, line)
		}
	}
	return lines
}
