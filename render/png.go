package render

import (
	"image"
	"image/color"
	stddraw "image/draw"
	"image/png"
	"io"
	"math"

	"github.com/juruen/rmscribe/encoding/strokes"
	"github.com/nfnt/resize"
	"golang.org/x/image/vector"
)

// discSegments approximates round caps and joins
const discSegments = 16

// PNGOptions controls rasterization. Scale is pixels per canvas unit;
// a positive MaxWidth downsamples wider images.
type PNGOptions struct {
	Scale    float64
	MaxWidth uint
}

func DefaultPNGOptions() PNGOptions {
	return PNGOptions{Scale: 1}
}

// Rasterize draws the document into an RGBA image.
func (d *Document) Rasterize(scale float64) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(d.Width * scale))
	h := int(math.Ceil(d.Height * scale))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	stddraw.Draw(img, img.Bounds(), image.White, image.Point{}, stddraw.Src)

	if len(d.Paths) == 0 {
		return img
	}

	r := vector.NewRasterizer(w, h)
	hw := StrokeWidth * scale / 2
	for _, p := range d.Paths {
		for _, sub := range Subpaths(p.Points) {
			strokeSubpath(r, sub, scale, hw)
		}
	}
	r.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{})

	return img
}

// strokeSubpath covers every segment with a quad and every vertex with a
// disc. All shapes are wound clockwise so overlaps add up.
func strokeSubpath(r *vector.Rasterizer, pts []strokes.Point, scale, hw float64) {
	for i, p := range pts {
		x0, y0 := p.X*scale, p.Y*scale
		addDisc(r, x0, y0, hw)
		if i == 0 {
			continue
		}
		px, py := pts[i-1].X*scale, pts[i-1].Y*scale
		dx, dy := x0-px, y0-py
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		r.MoveTo(float32(px+nx), float32(py+ny))
		r.LineTo(float32(x0+nx), float32(y0+ny))
		r.LineTo(float32(x0-nx), float32(y0-ny))
		r.LineTo(float32(px-nx), float32(py-ny))
		r.ClosePath()
	}
}

func addDisc(r *vector.Rasterizer, cx, cy, radius float64) {
	r.MoveTo(float32(cx+radius), float32(cy))
	for k := 1; k < discSegments; k++ {
		a := -2 * math.Pi * float64(k) / discSegments
		r.LineTo(float32(cx+radius*math.Cos(a)), float32(cy+radius*math.Sin(a)))
	}
	r.ClosePath()
}

// EncodePNG rasterizes the document and writes it as PNG.
func (d *Document) EncodePNG(w io.Writer, opts PNGOptions) error {
	var img image.Image = d.Rasterize(opts.Scale)
	if opts.MaxWidth > 0 && uint(img.Bounds().Dx()) > opts.MaxWidth {
		img = resize.Resize(opts.MaxWidth, 0, img, resize.Lanczos3)
	}
	return png.Encode(w, img)
}
