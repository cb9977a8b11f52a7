package styles

import (
	"fmt"

	"github.com/juruen/rmscribe/alphabet"
	"github.com/juruen/rmscribe/drawing"
	"github.com/juruen/rmscribe/encoding/rm"
	"github.com/juruen/rmscribe/encoding/strokes"
	"github.com/pkg/errors"
)

// MaxPoints is the longest recording the model accepts as a primer.
const MaxPoints = 1200

var ErrEmptyPage = errors.New("page has no pen strokes")

// FromPage builds a style from the pen lines of a reMarkable page.
// Every line becomes one stroke; the trajectory is aligned, denoised
// and normalized to the scale the model was trained on.
func FromPage(page *rm.Rm, id int, transcription string) (Style, error) {
	if err := alphabet.Validate(transcription); err != nil {
		return Style{}, errors.Wrap(err, "transcription")
	}

	points := PagePoints(page)
	if len(points) == 0 {
		return Style{}, ErrEmptyPage
	}
	if len(points) > MaxPoints {
		return Style{}, fmt.Errorf("page has %d points, at most %d fit a primer", len(points), MaxPoints)
	}
	points = drawing.Denoise(drawing.Align(points))

	seq := drawing.CoordsToOffsets(points)
	// the model sees the recording as relative moves only
	seq[0].DX, seq[0].DY = 0, 0

	return Style{ID: id, Strokes: drawing.Normalize(seq), Transcription: transcription}, nil
}

// PagePoints flattens the pen lines of a page into absolute points with
// y growing upwards. The last point of every line ends a stroke.
func PagePoints(page *rm.Rm) []strokes.Point {
	var points []strokes.Point
	for _, line := range page.PenLines() {
		for i, p := range line.Points {
			eos := 0.0
			if i == len(line.Points)-1 {
				eos = 1
			}
			// device y grows downwards
			points = append(points, strokes.Point{X: float64(p.X), Y: -float64(p.Y), Eos: eos})
		}
	}
	return points
}
