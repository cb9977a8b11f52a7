// Package sampler invokes the handwriting model and turns its padded
// output into one stroke sequence per line.
package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/juruen/rmscribe/conditioning"
	"github.com/juruen/rmscribe/encoding/strokes"
	"github.com/juruen/rmscribe/log"
)

// Model is the generative model. SampleStrokes blocks until the model
// returns NumSamples sequences of up to MaxSteps offsets each, padded
// with zero rows.
type Model interface {
	SampleStrokes(ctx context.Context, b *conditioning.Batch) ([]strokes.Sequence, error)
}

// ModelInvocationError wraps any failure of the model call.
type ModelInvocationError struct {
	Err error
}

func (e *ModelInvocationError) Error() string {
	return "model invocation failed: " + e.Err.Error()
}

func (e *ModelInvocationError) Unwrap() error {
	return e.Err
}

// Sampler calls a Model and trims its output. A zero Timeout waits for
// the model indefinitely.
type Sampler struct {
	Model   Model
	Timeout time.Duration
}

func New(m Model, timeout time.Duration) *Sampler {
	return &Sampler{Model: m, Timeout: timeout}
}

// Sample runs the model once for the whole batch.
func (s *Sampler) Sample(ctx context.Context, b *conditioning.Batch) ([]strokes.Sequence, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := s.Model.SampleStrokes(ctx, b)
	if err != nil {
		return nil, &ModelInvocationError{Err: err}
	}
	log.Trace.Printf("model returned %d samples in %v", len(raw), time.Since(start))

	if len(raw) != b.NumSamples {
		return nil, &ModelInvocationError{
			Err: fmt.Errorf("model returned %d samples, expected %d", len(raw), b.NumSamples),
		}
	}

	out := make([]strokes.Sequence, len(raw))
	for i, seq := range raw {
		out[i] = strokes.TrimPadding(seq)
		log.Trace.Printf("sample %d: %d steps, %d after trimming", i, len(seq), len(out[i]))
	}
	return out, nil
}
