// Package strokes defines pen-offset sequences, the unit of data exchanged
// with the handwriting model, and a compact binary file format for them.
package strokes

// Offset is one model step: relative pen movement since the previous point
// and an end-of-stroke flag. Eos is 1 when the next point starts a new stroke.
type Offset struct {
	DX, DY float64
	Eos    float64
}

// IsZero reports whether all three channels are exactly zero.
func (o Offset) IsZero() bool {
	return o.DX == 0 && o.DY == 0 && o.Eos == 0
}

// EndsStroke reports whether the pen is lifted after this step.
func (o Offset) EndsStroke() bool {
	return o.Eos == 1
}

// Sequence is an ordered list of offsets.
type Sequence []Offset

// Point is an absolute pen position with the end-of-stroke flag carried
// over from the offset that produced it.
type Point struct {
	X, Y float64
	Eos  float64
}

// TrimPadding drops trailing all-zero rows. The model pads every sample
// to the requested number of steps with zero rows, so a real step that
// happens to be all zero at the tail is dropped too.
func TrimPadding(seq Sequence) Sequence {
	end := len(seq)
	for end > 0 && seq[end-1].IsZero() {
		end--
	}
	return seq[:end]
}

// Clone returns a copy that does not share storage with seq.
func (seq Sequence) Clone() Sequence {
	if seq == nil {
		return nil
	}
	out := make(Sequence, len(seq))
	copy(out, seq)
	return out
}

// Strokes returns the number of pen-down strokes.
func (seq Sequence) Strokes() int {
	if len(seq) == 0 {
		return 0
	}
	n := 0
	for _, o := range seq {
		if o.EndsStroke() {
			n++
		}
	}
	if !seq[len(seq)-1].EndsStroke() {
		n++
	}
	return n
}
