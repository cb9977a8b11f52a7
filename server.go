package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/juruen/rmscribe/alphabet"
	"github.com/juruen/rmscribe/conditioning"
	"github.com/juruen/rmscribe/hand"
	"github.com/juruen/rmscribe/log"
	"github.com/juruen/rmscribe/render"
	"github.com/juruen/rmscribe/sampler"
	"github.com/juruen/rmscribe/styles"
	"github.com/pkg/errors"
)

const (
	// maxRequestBody bounds the JSON body of a write request.
	maxRequestBody = 1 << 20
	// maxLines bounds the lines of one write request; every line costs
	// a full conditioning row.
	maxLines = 200
)

type ApiServer struct {
	hand   *hand.Hand
	styles *styles.Library
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type WriteRequest struct {
	Lines  []string  `json:"lines"`
	Biases []float64 `json:"biases,omitempty"`
	Styles []int     `json:"styles,omitempty"`
	Format string    `json:"format,omitempty"`
}

type StyleJSON struct {
	ID            int    `json:"id"`
	Transcription string `json:"transcription"`
	Points        int    `json:"points"`
}

func NewApiServer(h *hand.Hand, lib *styles.Library) *ApiServer {
	return &ApiServer{hand: h, styles: lib}
}

func (s *ApiServer) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}

func (s *ApiServer) writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{Data: data})
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	var mie *sampler.ModelInvocationError
	switch {
	case errors.Is(err, styles.ErrStyleNotFound):
		return http.StatusNotFound
	case errors.Is(err, alphabet.ErrUnsupportedSymbol),
		errors.Is(err, conditioning.ErrCapacityExceeded),
		errors.Is(err, conditioning.ErrNoLines),
		errors.Is(err, conditioning.ErrMismatchedInput),
		errors.Is(err, render.ErrUnknownFormat),
		errors.Is(err, hand.ErrNoStyleLibrary):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &mie):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// POST /api/write {"lines": [...], "biases": [...], "styles": [...], "format": "svg"}
func (s *ApiServer) handleWrite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req WriteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
		return
	}
	if len(req.Lines) > maxLines {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("too many lines: %d, at most %d", len(req.Lines), maxLines))
		return
	}

	format := render.SVG
	if req.Format != "" {
		var err error
		if format, err = render.ParseFormat(req.Format); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	start := time.Now()
	doc, err := s.hand.Document(r.Context(), hand.Job{Lines: req.Lines, Biases: req.Biases, Styles: req.Styles})
	if err != nil {
		log.Error.Printf("write: %v", err)
		s.writeError(w, statusFor(err), err)
		return
	}

	var buf bytes.Buffer
	if err := doc.Encode(&buf, format); err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to encode %s: %v", format, err))
		return
	}
	log.Info.Printf("wrote %d lines as %s in %v", len(req.Lines), format, time.Since(start))

	w.Header().Set("Content-Type", format.ContentType())
	w.Write(buf.Bytes())
}

// GET /api/styles
func (s *ApiServer) handleStyles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.styles == nil {
		s.writeSuccess(w, []StyleJSON{})
		return
	}

	digest, err := s.styles.Digest()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	etag := `"` + digest + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	ids := s.styles.IDs()
	out := make([]StyleJSON, 0, len(ids))
	for _, id := range ids {
		st, err := s.styles.Load(id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		out = append(out, StyleJSON{ID: st.ID, Transcription: st.Transcription, Points: len(st.Strokes)})
	}

	w.Header().Set("ETag", etag)
	s.writeSuccess(w, out)
}

// GET /api/health
func (s *ApiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeSuccess(w, map[string]string{"status": "ok"})
}

func (s *ApiServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/write", s.handleWrite)
	mux.HandleFunc("/api/styles", s.handleStyles)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Serve listens on addr until ctx is cancelled.
func (s *ApiServer) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.routes()}

	errc := make(chan error, 1)
	go func() {
		log.Info.Printf("listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
