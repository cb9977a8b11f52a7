// Package hand runs the handwriting pipeline: it conditions the model on
// text and style, samples strokes and renders them to a file.
package hand

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/juruen/rmscribe/conditioning"
	"github.com/juruen/rmscribe/log"
	"github.com/juruen/rmscribe/render"
	"github.com/juruen/rmscribe/sampler"
	"github.com/juruen/rmscribe/styles"
)

var ErrNoStyleLibrary = errors.New("styles requested but no style library configured")

// Job is one invocation: lines to write and where to put the image.
// Biases and Styles are optional; when set they hold one entry per line.
type Job struct {
	Lines  []string
	Biases []float64
	Styles []int
	Output string
}

// Hand owns the read-only collaborators shared by every job.
type Hand struct {
	Styles  *styles.Library
	Sampler *sampler.Sampler
	Render  render.Options
}

func New(lib *styles.Library, s *sampler.Sampler, opts render.Options) *Hand {
	return &Hand{Styles: lib, Sampler: s, Render: opts}
}

// Document runs the pipeline up to the laid out page.
func (h *Hand) Document(ctx context.Context, job Job) (*render.Document, error) {
	var refs []styles.Style
	if job.Styles != nil {
		if h.Styles == nil {
			return nil, ErrNoStyleLibrary
		}
		if len(job.Styles) != len(job.Lines) {
			return nil, fmt.Errorf("%w: %d lines, %d styles", conditioning.ErrMismatchedInput, len(job.Lines), len(job.Styles))
		}
		var err error
		if refs, err = h.Styles.Lookup(job.Styles); err != nil {
			return nil, err
		}
	}

	batch, err := conditioning.Build(job.Lines, job.Biases, refs)
	if err != nil {
		return nil, err
	}
	log.Trace.Printf("batch: %d lines, primed=%v, %d max steps", batch.NumSamples, batch.Primed, batch.MaxSteps)

	start := time.Now()
	samples, err := h.Sampler.Sample(ctx, batch)
	if err != nil {
		return nil, err
	}
	log.Trace.Printf("sampled %d lines in %v", len(samples), time.Since(start))

	lines := make([]render.Line, len(job.Lines))
	for i, text := range job.Lines {
		lines[i] = render.Line{Text: text, Strokes: samples[i]}
	}
	return render.Layout(lines, h.Render)
}

// Write runs the whole pipeline and saves the image to job.Output.
// Nothing is written unless every line rendered.
func (h *Hand) Write(ctx context.Context, job Job) error {
	if _, err := render.FormatFromPath(job.Output); err != nil {
		return err
	}

	doc, err := h.Document(ctx, job)
	if err != nil {
		return err
	}
	if err := doc.Save(job.Output); err != nil {
		return err
	}
	log.Info.Printf("wrote %d lines to %s", len(job.Lines), job.Output)
	return nil
}
