package styles

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/juruen/rmscribe/alphabet"
	"github.com/juruen/rmscribe/encoding/rm"
	"github.com/juruen/rmscribe/encoding/strokes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStyle(id int) Style {
	return Style{
		ID:            id,
		Transcription: "hello",
		Strokes: strokes.Sequence{
			{DX: 1, DY: 0.5},
			{DX: 2, DY: -0.5, Eos: 1},
			{DX: -1, DY: 1},
		},
	}
}

func TestSaveAndOpen(t *testing.T) {
	dir := t.TempDir()

	lib := New(dir)
	lib.Add(sampleStyle(12))
	lib.Add(sampleStyle(7))
	require.NoError(t, lib.Save())

	read, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 12}, read.IDs())

	s, err := read.Load(12)
	require.NoError(t, err)
	assert.Equal(t, sampleStyle(12), s)

	d1, err := lib.Digest()
	require.NoError(t, err)
	d2, err := read.Digest()
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestOpenEmptyDir(t *testing.T) {
	lib, err := Open(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, lib.IDs())
}

func TestOpenBrokenManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, ManifestName), []byte("styles: [ {id: 1, strokes: missing.strokes} ]"), 0644))

	_, err := Open(dir)
	assert.Error(t, err)
}

func TestLoadMissing(t *testing.T) {
	lib := New(t.TempDir())
	lib.Add(sampleStyle(1))

	_, err := lib.Load(2)
	assert.ErrorIs(t, err, ErrStyleNotFound)

	_, err = lib.Lookup([]int{1, 1, 3})
	assert.ErrorIs(t, err, ErrStyleNotFound)

	got, err := lib.Lookup([]int{1, 1})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDigestChanges(t *testing.T) {
	lib := New(t.TempDir())
	lib.Add(sampleStyle(1))
	before, err := lib.Digest()
	require.NoError(t, err)

	s := sampleStyle(1)
	s.Transcription = "hellO"
	lib.Add(s)
	after, err := lib.Digest()
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func pageWithLines(lines ...[]rm.Point) *rm.Rm {
	page := &rm.Rm{Version: rm.V5, Layers: []rm.Layer{{}}}
	for _, pts := range lines {
		page.Layers[0].Lines = append(page.Layers[0].Lines, rm.Line{BrushType: rm.FinelinerV5, Points: pts})
	}
	return page
}

func TestFromPage(t *testing.T) {
	var a, b []rm.Point
	for i := 0; i < 10; i++ {
		a = append(a, rm.Point{X: float32(100 + 4*i), Y: 300})
		b = append(b, rm.Point{X: float32(200 + 4*i), Y: float32(300 + 2*(i%2))})
	}
	page := pageWithLines(a, b)
	page.Layers[0].Lines = append(page.Layers[0].Lines, rm.Line{BrushType: rm.Eraser, Points: a})

	s, err := FromPage(page, 3, "hi")
	require.NoError(t, err)
	assert.Equal(t, 3, s.ID)
	assert.Equal(t, "hi", s.Transcription)
	require.Len(t, s.Strokes, 20)
	assert.Equal(t, 1.0, s.Strokes[9].Eos)
	assert.Equal(t, 1.0, s.Strokes[19].Eos)
	assert.Equal(t, 2, s.Strokes.Strokes())
}

func TestFromPageErrors(t *testing.T) {
	_, err := FromPage(pageWithLines(), 1, "x")
	assert.ErrorIs(t, err, ErrEmptyPage)

	_, err = FromPage(pageWithLines([]rm.Point{{X: 1, Y: 1}}), 1, "tab\there")
	assert.ErrorIs(t, err, alphabet.ErrUnsupportedSymbol)

	long := make([]rm.Point, MaxPoints+1)
	_, err = FromPage(pageWithLines(long), 1, "x")
	assert.Error(t, err)
}
