// Package alphabet maps text to the symbol ids the handwriting model was
// trained on.
package alphabet

import (
	"errors"
	"fmt"
)

// Terminator is appended to every encoded line.
const Terminator = 0

// Symbols lists the model alphabet; a symbol's id is its index.
// Q, X and Z never occur in the training transcriptions and have no id.
var Symbols = []rune{
	'\x00', ' ', '!', '"', '#', '\'', '(', ')', ',', '-', '.',
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ':', ';',
	'?', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K',
	'L', 'M', 'N', 'O', 'P', 'R', 'S', 'T', 'U', 'V', 'W', 'Y',
	'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l',
	'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x',
	'y', 'z',
}

var ErrUnsupportedSymbol = errors.New("unsupported symbol")

var ids = func() map[rune]int {
	m := make(map[rune]int, len(Symbols))
	for i, r := range Symbols {
		m[r] = i
	}
	return m
}()

// ID returns the symbol id of r.
func ID(r rune) (int, bool) {
	if r == '\x00' {
		return 0, false
	}
	id, ok := ids[r]
	return id, ok
}

// Validate checks that every rune of text is in the alphabet.
func Validate(text string) error {
	pos := 0
	for _, r := range text {
		if _, ok := ID(r); !ok {
			return fmt.Errorf("%w %q at position %d", ErrUnsupportedSymbol, r, pos)
		}
		pos++
	}
	return nil
}

// Encode returns the symbol ids of text followed by the terminator.
func Encode(text string) ([]int, error) {
	out := make([]int, 0, len(text)+1)
	for pos, r := range []rune(text) {
		id, ok := ID(r)
		if !ok {
			return nil, fmt.Errorf("%w %q at position %d", ErrUnsupportedSymbol, r, pos)
		}
		out = append(out, id)
	}
	return append(out, Terminator), nil
}
