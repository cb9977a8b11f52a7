package render

import (
	"io"

	svg "github.com/ajstarks/svgo"
)

const (
	backgroundStyle = "fill:white"
	strokeStyle     = "fill:none;stroke:black;stroke-width:2;stroke-linecap:round"
)

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// EncodeSVG writes the document as an SVG image.
func (d *Document) EncodeSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	width, height := int(d.Width), int(d.Height)

	canvas := svg.New(ew)
	canvas.Startview(width, height, 0, 0, width, height)
	canvas.Rect(0, 0, width, height, backgroundStyle)
	for _, p := range d.Paths {
		canvas.Path(p.Data(), strokeStyle)
	}
	canvas.End()

	return ew.err
}
