package render

import (
	"io"

	"github.com/unidoc/unipdf/v3/contentstream"
	"github.com/unidoc/unipdf/v3/contentstream/draw"
	"github.com/unidoc/unipdf/v3/core"
	"github.com/unidoc/unipdf/v3/creator"
)

// round line caps and joins
const pdfRound = 1

// EncodePDF writes the document as a single page PDF with one point per
// canvas unit.
func (d *Document) EncodePDF(w io.Writer) error {
	c := creator.New()
	c.SetPageSize(creator.PageSize{d.Width, d.Height})
	page := c.NewPage()

	if err := page.AppendContentStream(string(d.pdfOperations().Bytes())); err != nil {
		return err
	}
	return c.Write(w)
}

// pdfOperations strokes every sub-path as soon as it is drawn.
func (d *Document) pdfOperations() *contentstream.ContentStreamOperations {
	cc := contentstream.NewContentCreator()
	cc.Add_q()
	cc.Add_w(StrokeWidth)
	cc.Add_RG(0, 0, 0)
	cc.AddOperand(contentstream.ContentStreamOperation{
		Operand: "J",
		Params:  []core.PdfObject{core.MakeInteger(pdfRound)},
	})
	cc.AddOperand(contentstream.ContentStreamOperation{
		Operand: "j",
		Params:  []core.PdfObject{core.MakeInteger(pdfRound)},
	})

	for _, p := range d.Paths {
		for _, sub := range Subpaths(p.Points) {
			path := draw.NewPath()
			for _, pt := range sub {
				// pdf y grows upwards
				path = path.AppendPoint(draw.NewPoint(pt.X, d.Height-pt.Y))
			}
			draw.DrawPathWithCreator(path, cc)
			cc.Add_S()
		}
	}
	cc.Add_Q()

	return cc.Operations()
}
