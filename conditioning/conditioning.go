// Package conditioning assembles the fixed-shape inputs of one sampling
// call from a batch of text lines and, optionally, one style per line.
package conditioning

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/juruen/rmscribe/alphabet"
	"github.com/juruen/rmscribe/encoding/strokes"
	"github.com/juruen/rmscribe/styles"
)

const (
	PrimingCapacity = styles.MaxPoints
	TextCapacity    = 100

	// DefaultBias is used for every line when no biases are given.
	DefaultBias = 0.5

	// StepsPerChar bounds the samples drawn per character of the
	// longest line; the model usually stops well before.
	StepsPerChar = 40
)

var (
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrNoLines          = errors.New("no lines to write")
	ErrMismatchedInput  = errors.New("input lengths differ")
)

// CapacityError reports which line overflowed which buffer.
type CapacityError struct {
	Line     int
	Buffer   string
	Len, Cap int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("line %d: %s needs %d entries, capacity is %d", e.Line, e.Buffer, e.Len, e.Cap)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// Batch is everything the model needs for one call. Priming and Text
// rows always have full capacity; the Lens slices hold the valid prefix.
type Batch struct {
	Primed      bool
	Priming     []strokes.Sequence
	PrimingLens []int
	Text        [][]int
	TextLens    []int
	Bias        []float64
	NumSamples  int
	MaxSteps    int
}

// Build encodes lines into a batch. A nil biases uses DefaultBias for
// every line. A nil refs builds an unprimed batch; otherwise refs must
// hold one style per line and every line is primed with its style.
func Build(lines []string, biases []float64, refs []styles.Style) (*Batch, error) {
	n := len(lines)
	if n == 0 {
		return nil, ErrNoLines
	}
	if biases == nil {
		biases = make([]float64, n)
		for i := range biases {
			biases[i] = DefaultBias
		}
	}
	if len(biases) != n {
		return nil, fmt.Errorf("%w: %d lines, %d biases", ErrMismatchedInput, n, len(biases))
	}
	if refs != nil && len(refs) != n {
		return nil, fmt.Errorf("%w: %d lines, %d styles", ErrMismatchedInput, n, len(refs))
	}

	b := &Batch{
		Primed:      refs != nil,
		Priming:     make([]strokes.Sequence, n),
		PrimingLens: make([]int, n),
		Text:        make([][]int, n),
		TextLens:    make([]int, n),
		Bias:        append([]float64(nil), biases...),
		NumSamples:  n,
	}

	longest := 0
	for i, line := range lines {
		if l := utf8.RuneCountInString(line); l > longest {
			longest = l
		}

		b.Priming[i] = make(strokes.Sequence, PrimingCapacity)
		b.Text[i] = make([]int, TextCapacity)

		text := line
		if refs != nil {
			style := refs[i].Strokes
			if len(style) > PrimingCapacity {
				return nil, &CapacityError{Line: i, Buffer: "priming strokes", Len: len(style), Cap: PrimingCapacity}
			}
			copy(b.Priming[i], style)
			b.PrimingLens[i] = len(style)
			text = refs[i].Transcription + " " + line
		}

		encoded, err := alphabet.Encode(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if len(encoded) > TextCapacity {
			return nil, &CapacityError{Line: i, Buffer: "text", Len: len(encoded), Cap: TextCapacity}
		}
		copy(b.Text[i], encoded)
		b.TextLens[i] = len(encoded)
	}
	b.MaxSteps = StepsPerChar * longest

	return b, nil
}
