package render

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/juruen/rmscribe/log"
	"github.com/pkg/errors"
)

// Format is an output file format.
type Format string

const (
	SVG Format = "svg"
	PDF Format = "pdf"
	PNG Format = "png"
)

var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat accepts a format name with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case SVG, PDF, PNG:
		return f, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// FormatFromPath derives the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ContentType is the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case PDF:
		return "application/pdf"
	case PNG:
		return "image/png"
	}
	return "image/svg+xml"
}

// Encode writes the document in the given format.
func (d *Document) Encode(w io.Writer, f Format) error {
	var err error
	switch f {
	case SVG:
		err = d.EncodeSVG(w)
	case PDF:
		err = d.EncodePDF(w)
	case PNG:
		err = d.EncodePNG(w, DefaultPNGOptions())
	default:
		err = fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
	}
	if err != nil {
		return &Error{Op: "encode", Line: -1, Err: err}
	}
	return nil
}

// Save writes the document to path, choosing the format from the
// extension. The file appears complete or not at all.
func (d *Document) Save(path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return &Error{Op: "save", Line: -1, Err: err}
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := ioutil.TempFile(dir, "."+base+".tmp-*")
	if err != nil {
		return &Error{Op: "save", Line: -1, Err: errors.Wrap(err, "can't create output file")}
	}
	defer os.Remove(tmp.Name())

	if err := d.Encode(tmp, f); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return &Error{Op: "save", Line: -1, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &Error{Op: "save", Line: -1, Err: errors.Wrap(err, "can't move output file in place")}
	}
	log.Trace.Printf("wrote %s (%s, %d paths)", path, f, len(d.Paths))

	return nil
}
