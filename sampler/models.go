package sampler

// SampleRequest is the wire form of a conditioning batch. Stroke rows are
// [dx, dy, eos] triples.
type SampleRequest struct {
	Primed         bool           `json:"primed"`
	PrimingStrokes [][][3]float64 `json:"priming_strokes"`
	PrimingLengths []int          `json:"priming_lengths"`
	NumSamples     int            `json:"num_samples"`
	MaxSteps       int            `json:"max_steps"`
	Text           [][]int        `json:"text"`
	TextLengths    []int          `json:"text_lengths"`
	Bias           []float64      `json:"bias"`
}

// SampleResponse holds NumSamples sequences of MaxSteps rows.
type SampleResponse struct {
	Samples [][][3]float64 `json:"samples"`
}

// ErrorResponse is returned by the model server on failure
type ErrorResponse struct {
	Error string `json:"error"`
}
