package main

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juruen/rmscribe/encoding/rm"
	"github.com/juruen/rmscribe/encoding/strokes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertStrokes(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "line.strokes")
	seq := strokes.Sequence{{DX: 1, DY: 1}, {DX: 2, DY: -1, Eos: 1}, {DX: 1}, {DX: 1, Eos: 1}}
	data, err := seq.MarshalBinary()
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(in, data, 0644))

	require.NoError(t, convert(in, "", false))

	svg, err := ioutil.ReadFile(filepath.Join(dir, "line.svg"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(svg), "<path"))
}

func TestConvertPage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "page.rm")
	page := rm.Rm{Version: rm.V5, Layers: []rm.Layer{{Lines: []rm.Line{{
		BrushType:  rm.BallPoint,
		BrushColor: rm.Black,
		BrushSize:  rm.Medium,
		Points:     []rm.Point{{X: 10, Y: 10}, {X: 20, Y: 30}, {X: 30, Y: 10}},
	}}}}}
	data, err := page.MarshalBinary()
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(in, data, 0644))

	out := filepath.Join(dir, "page.pdf")
	require.NoError(t, convert(in, out, true))
	assert.FileExists(t, out)
}

func TestConvertErrors(t *testing.T) {
	assert.Error(t, convert("", "", false))
	assert.Error(t, convert(filepath.Join(t.TempDir(), "missing.strokes"), "", false))
}
