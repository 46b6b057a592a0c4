package server

import (
	"encoding/json"
	"github.com/bokysan/progress-encode/internal/util/enc"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io"
	"net/http"
)

// EncodeRequest is the body of `POST /encode`
type EncodeRequest struct {
	Input  string `json:"input"`
	Format string `json:"format,omitempty"`
}

// EncodeResponse is returned by `POST /encode`
type EncodeResponse struct {
	Encoded string `json:"encoded"`
}

// VerifyRequest is the body of `POST /verify`
type VerifyRequest struct {
	EncodeRequest
	Encoded string `json:"encoded"`
}

// VerifyResponse is returned by `POST /verify`
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

// ErrorResponse is returned with any 4xx status
type ErrorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	maxBodySize int64
	encoder     enc.ProgressEncoder
}

func (h *handlers) encode(w http.ResponseWriter, r *http.Request) {
	req := &EncodeRequest{}
	if !h.readRequest(w, r, req) {
		return
	}
	input, err := enc.DecodeInput(req.Format, req.Input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJson(w, http.StatusOK, &EncodeResponse{
		Encoded: h.encoder.Encode(input),
	})
}

func (h *handlers) verify(w http.ResponseWriter, r *http.Request) {
	req := &VerifyRequest{}
	if !h.readRequest(w, r, req) {
		return
	}
	if req.Encoded == "" {
		writeError(w, http.StatusBadRequest, errors.New("'encoded' is required"))
		return
	}
	input, err := enc.DecodeInput(req.Format, req.Input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJson(w, http.StatusOK, &VerifyResponse{
		Valid: enc.Verify(input, req.Encoded),
	})
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *handlers) readRequest(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, h.maxBodySize)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrapf(err, "Invalid request"))
		return false
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		writeError(w, http.StatusBadRequest, errors.New("Invalid request: unexpected data after the JSON object"))
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.WithError(err).Debugf("Request failed: %v", err)
	writeJson(w, status, &ErrorResponse{
		Error: err.Error(),
	})
}

func writeJson(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warnf("Could not write response: %v", err)
	}
}
