package conditioning

import (
	"strings"
	"testing"

	"github.com/juruen/rmscribe/alphabet"
	"github.com/juruen/rmscribe/encoding/strokes"
	"github.com/juruen/rmscribe/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUnprimed(t *testing.T) {
	lines := []string{"ab", "", "cd e"}
	b, err := Build(lines, nil, nil)
	require.NoError(t, err)

	assert.False(t, b.Primed)
	assert.Equal(t, 3, b.NumSamples)
	assert.Equal(t, 160, b.MaxSteps)
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, b.Bias)
	assert.Equal(t, []int{0, 0, 0}, b.PrimingLens)

	for i, line := range lines {
		require.Len(t, b.Priming[i], PrimingCapacity)
		for _, o := range b.Priming[i] {
			require.True(t, o.IsZero())
		}

		require.Len(t, b.Text[i], TextCapacity)
		want, err := alphabet.Encode(line)
		require.NoError(t, err)
		assert.Equal(t, len(line)+1, b.TextLens[i])
		assert.Equal(t, want, b.Text[i][:b.TextLens[i]])
		for _, id := range b.Text[i][b.TextLens[i]:] {
			require.Zero(t, id)
		}
	}
}

func TestBuildPrimed(t *testing.T) {
	style := styles.Style{
		ID:            12,
		Transcription: "A MOVE to stop Mr. Gaitskell",
		Strokes:       strokes.Sequence{{DX: 1, DY: 2}, {DX: 3, DY: 4, Eos: 1}, {DX: -1, DY: 0}},
	}
	lines := []string{"hello", "world!"}
	b, err := Build(lines, []float64{0.75, 0.2}, []styles.Style{style, style})
	require.NoError(t, err)

	assert.True(t, b.Primed)
	assert.Equal(t, []float64{0.75, 0.2}, b.Bias)
	assert.Equal(t, 40*6, b.MaxSteps)

	for i, line := range lines {
		assert.Equal(t, len(style.Strokes), b.PrimingLens[i])
		assert.Equal(t, style.Strokes, b.Priming[i][:len(style.Strokes)])
		for _, o := range b.Priming[i][len(style.Strokes):] {
			require.True(t, o.IsZero())
		}

		want, err := alphabet.Encode(style.Transcription + " " + line)
		require.NoError(t, err)
		assert.Equal(t, want, b.Text[i][:b.TextLens[i]])
	}
}

func TestBuildCopiesInputs(t *testing.T) {
	biases := []float64{0.1}
	b, err := Build([]string{"x"}, biases, nil)
	require.NoError(t, err)
	biases[0] = 9
	assert.Equal(t, 0.1, b.Bias[0])
}

func TestBuildTextCapacity(t *testing.T) {
	ok := strings.Repeat("a", TextCapacity-1)
	_, err := Build([]string{ok}, nil, nil)
	require.NoError(t, err)

	_, err = Build([]string{"short", ok + "a"}, nil, nil)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Line)
	assert.Equal(t, TextCapacity+1, ce.Len)
}

func TestBuildPrimedTextCapacity(t *testing.T) {
	// transcription, separator and terminator count against the buffer
	style := styles.Style{Transcription: strings.Repeat("b", 50), Strokes: strokes.Sequence{{DX: 1}}}
	_, err := Build([]string{strings.Repeat("a", 48)}, nil, []styles.Style{style})
	require.NoError(t, err)

	_, err = Build([]string{strings.Repeat("a", 49)}, nil, []styles.Style{style})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestBuildPrimingCapacity(t *testing.T) {
	style := styles.Style{Transcription: "x", Strokes: make(strokes.Sequence, PrimingCapacity+1)}
	_, err := Build([]string{"a"}, nil, []styles.Style{style})

	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "priming strokes", ce.Buffer)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestBuildInvalidInput(t *testing.T) {
	_, err := Build(nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoLines)

	_, err = Build([]string{"a", "b"}, []float64{0.5}, nil)
	assert.ErrorIs(t, err, ErrMismatchedInput)

	_, err = Build([]string{"a", "b"}, nil, []styles.Style{{}})
	assert.ErrorIs(t, err, ErrMismatchedInput)

	_, err = Build([]string{"naïve"}, nil, nil)
	assert.ErrorIs(t, err, alphabet.ErrUnsupportedSymbol)
}

func TestBuildAllBlank(t *testing.T) {
	b, err := Build([]string{"", ""}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, b.MaxSteps)
	assert.Equal(t, []int{1, 1}, b.TextLens)
}
