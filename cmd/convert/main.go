// Command convert renders a stored stroke sequence or a reMarkable page
// without calling the model.
package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/juruen/rmscribe/drawing"
	"github.com/juruen/rmscribe/encoding/rm"
	"github.com/juruen/rmscribe/encoding/strokes"
	"github.com/juruen/rmscribe/render"
	"github.com/juruen/rmscribe/styles"
	"github.com/spf13/pflag"
)

func main() {
	inputName := pflag.StringP("input", "i", "", "file to convert, .strokes or .rm")
	outputName := pflag.StringP("output", "o", "", "output file, defaults to the input name with .svg")
	raw := pflag.Bool("raw", false, "skip baseline alignment and smoothing")
	pflag.Parse()

	if err := convert(*inputName, *outputName, *raw); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readSequence loads a stroke sequence. Pages are converted to offsets
// and normalized the way styles are.
func readSequence(inputName string) (strokes.Sequence, error) {
	data, err := ioutil.ReadFile(inputName)
	if err != nil {
		return nil, fmt.Errorf("can't open file %w", err)
	}

	if strings.EqualFold(filepath.Ext(inputName), ".rm") {
		var page rm.Rm
		if err := page.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		points := styles.PagePoints(&page)
		if len(points) == 0 {
			return nil, styles.ErrEmptyPage
		}
		return drawing.Normalize(drawing.CoordsToOffsets(points)), nil
	}

	var seq strokes.Sequence
	if err := seq.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return seq, nil
}

func convert(inputName, outputName string, raw bool) error {
	if inputName == "" {
		return errors.New("missing input file")
	}
	if outputName == "" {
		nameOnly := strings.TrimSuffix(inputName, filepath.Ext(inputName))
		outputName = nameOnly + ".svg"
	}

	seq, err := readSequence(inputName)
	if err != nil {
		return err
	}

	opts := render.DefaultOptions()
	if raw {
		opts = render.Options{}
	}
	doc, err := render.Layout([]render.Line{{Text: filepath.Base(inputName), Strokes: seq}}, opts)
	if err != nil {
		return err
	}
	return doc.Save(outputName)
}
