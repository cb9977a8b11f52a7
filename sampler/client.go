package sampler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/juruen/rmscribe/conditioning"
	"github.com/juruen/rmscribe/encoding/strokes"
	"github.com/juruen/rmscribe/log"
	"golang.org/x/sync/semaphore"
)

const samplePath = "/v1/sample"

// Client talks to a model server over HTTP. One Client can be shared by
// concurrent pipelines; at most MaxInFlight requests run at once.
type Client struct {
	Endpoint string
	Token    string
	HMACKey  string

	http *http.Client
	sem  *semaphore.Weighted
}

// NewClient returns a client for endpoint. maxInFlight < 1 means 1.
func NewClient(endpoint, token, hmacKey string, maxInFlight int64) *Client {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Token:    token,
		HMACKey:  hmacKey,
		http:     &http.Client{},
		sem:      semaphore.NewWeighted(maxInFlight),
	}
}

func sign(key string, data []byte) string {
	mac := hmac.New(sha512.New, []byte(key))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

func newSampleRequest(b *conditioning.Batch) SampleRequest {
	req := SampleRequest{
		Primed:         b.Primed,
		PrimingStrokes: make([][][3]float64, len(b.Priming)),
		PrimingLengths: b.PrimingLens,
		NumSamples:     b.NumSamples,
		MaxSteps:       b.MaxSteps,
		Text:           b.Text,
		TextLengths:    b.TextLens,
		Bias:           b.Bias,
	}
	for i, seq := range b.Priming {
		rows := make([][3]float64, len(seq))
		for j, o := range seq {
			rows[j] = [3]float64{o.DX, o.DY, o.Eos}
		}
		req.PrimingStrokes[i] = rows
	}
	return req
}

// SampleStrokes implements Model.
func (c *Client) SampleStrokes(ctx context.Context, b *conditioning.Batch) ([]strokes.Sequence, error) {
	if c.Token != "" {
		if err := checkToken(c.Token); err != nil {
			return nil, err
		}
	}

	data, err := json.Marshal(newSampleRequest(b))
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+samplePath, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if c.HMACKey != "" {
		req.Header.Set("X-Signature", sign(c.HMACKey, data))
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.sem.Release(1)

	log.Trace.Printf("request %s: %d samples, %d steps, %d bytes", requestID, b.NumSamples, b.MaxSteps, len(data))
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		var e ErrorResponse
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return nil, fmt.Errorf("model error: status %d: %s", res.StatusCode, e.Error)
		}
		previewLen := 200
		if len(body) < previewLen {
			previewLen = len(body)
		}
		return nil, fmt.Errorf("model error: status %d, response: %q", res.StatusCode, string(body[:previewLen]))
	}

	var sr SampleResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := make([]strokes.Sequence, len(sr.Samples))
	for i, rows := range sr.Samples {
		seq := make(strokes.Sequence, len(rows))
		for j, r := range rows {
			seq[j] = strokes.Offset{DX: r[0], DY: r[1], Eos: r[2]}
		}
		out[i] = seq
	}
	log.Trace.Printf("request %s: received %d samples", requestID, len(out))
	return out, nil
}
