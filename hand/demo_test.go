package hand

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var verseText = "one\ntwo\n\nthree\n\nfour\n"

func TestVerses(t *testing.T) {
	assert.Equal(t, []int{0, 0, 1, 1, 2, 2}, verses([]string{"one", "two", "", "three", "", "four"}))
	// only empty lines separate verses
	assert.Equal(t, []int{0, 0, 0, 1}, verses([]string{"one", "  ", "two", ""}))
}

func TestBiasPolicies(t *testing.T) {
	lines := []string{"one", "two", "", "three", "", "four"}

	b, err := BiasPolicy{Policy: BiasFixed, Value: 0.75}.Biases(lines)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.75, 0.75, 0.75, 0.75, 0.75, 0.75}, b)

	b, err = BiasPolicy{Policy: BiasVerseDecay, Value: 0.2}.Biases(lines)
	require.NoError(t, err)
	want := []float64{0.4, 0.4, 0.2, 0.2, 0, 0}
	for i := range want {
		assert.InDelta(t, want[i], b[i], 1e-12)
	}

	_, err = BiasPolicy{Policy: "random"}.Biases(lines)
	assert.Error(t, err)
}

func TestStylePolicies(t *testing.T) {
	lines := []string{"one", "", "two"}

	s, err := StylePolicy{Policy: StyleNone}.Styles(lines)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = StylePolicy{Policy: StyleFixed, ID: 12}.Styles(lines)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 12, 12}, s)

	s, err = StylePolicy{Policy: StylePerVerse, ID: 7}.Styles(lines)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 8, 8}, s)

	_, err = StylePolicy{Policy: "mixed"}.Styles(lines)
	assert.Error(t, err)
}

func TestLoadDemo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.yaml")
	data := `
jobs:
  - name: first
    text: |
      one
      two
    bias: {policy: fixed, value: 0.75}
    style: {policy: fixed, id: 12}
  - name: second
    text: "a\n\nb"
    bias: {policy: verse-decay, value: 0.2}
    output: custom.png
`
	require.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))

	jobs, err := LoadDemo(path, "img")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, filepath.Join("img", "first.svg"), jobs[0].Output)
	assert.Equal(t, "custom.png", jobs[1].Output)

	job, err := jobs[0].Job()
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, job.Lines)
	assert.Equal(t, []int{12, 12}, job.Styles)

	job, err = jobs[1].Job()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "b"}, job.Lines)
	assert.Nil(t, job.Styles)
	assert.InDelta(t, 0.2, job.Biases[0], 1e-12)
}

func TestRunDemo(t *testing.T) {
	dir := t.TempDir()
	m := &scriptedModel{}
	h := newHand(t, m)

	jobs := []DemoJob{
		{Name: "fixed", Text: verseText, Bias: BiasPolicy{Value: 0.75}, Style: StylePolicy{Policy: StyleFixed, ID: 12}},
		{Name: "verses", Text: verseText, Bias: BiasPolicy{Value: 0.75}, Style: StylePolicy{Policy: StylePerVerse, ID: 7}},
		{Name: "decay", Text: verseText, Bias: BiasPolicy{Policy: BiasVerseDecay, Value: 0.2}, Style: StylePolicy{Policy: StyleFixed, ID: 7}},
	}
	for i := range jobs {
		jobs[i].Output = filepath.Join(dir, jobs[i].Name+".svg")
	}

	require.NoError(t, RunDemo(context.Background(), h, jobs, 3))
	assert.Len(t, m.batches, 3)
	for _, j := range jobs {
		assert.FileExists(t, j.Output)
	}
}

func TestRunDemoFailure(t *testing.T) {
	h := newHand(t, &scriptedModel{})
	jobs := []DemoJob{
		{Name: "bad", Text: "x", Style: StylePolicy{Policy: StyleFixed, ID: 404}, Output: filepath.Join(t.TempDir(), "bad.svg")},
	}
	err := RunDemo(context.Background(), h, jobs, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "demo bad")
}
