package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	ids, err := Encode("ab A!")
	require.NoError(t, err)
	assert.Equal(t, []int{47, 48, 1, 24, 2, Terminator}, ids)
}

func TestEncodeIDs(t *testing.T) {
	ids, err := Encode("PRWYaxyz")
	require.NoError(t, err)
	assert.Equal(t, []int{39, 40, 45, 46, 47, 70, 71, 72, Terminator}, ids)
	for _, id := range ids {
		assert.Less(t, id, len(Symbols))
	}
}

func TestEncodeEmpty(t *testing.T) {
	ids, err := Encode("")
	require.NoError(t, err)
	assert.Equal(t, []int{Terminator}, ids)
}

func TestEncodeLength(t *testing.T) {
	for _, s := range []string{"x", "hello world", "It's 10 o'clock."} {
		ids, err := Encode(s)
		require.NoError(t, err)
		assert.Len(t, ids, len(s)+1, s)
	}
}

func TestEncodeUnsupported(t *testing.T) {
	for _, s := range []string{"café", "a\tb", "50%", "nul\x00", "Quiz", "X-ray", "Zoo"} {
		_, err := Encode(s)
		assert.ErrorIs(t, err, ErrUnsupportedSymbol, s)
		assert.ErrorIs(t, Validate(s), ErrUnsupportedSymbol, s)
	}
}

func TestSymbolsUnique(t *testing.T) {
	assert.Len(t, Symbols, 73)
	assert.Len(t, ids, len(Symbols))
}
