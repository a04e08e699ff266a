// Package http holds the worker's HTTP handlers: POST /crack-range,
// POST /cancel-job, GET /health (spec section 6.2).
package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/NoaAzoulay/passwords-cracker/internal/api/respond"
	"github.com/NoaAzoulay/passwords-cracker/internal/cancelset"
	"github.com/NoaAzoulay/passwords-cracker/internal/scheme"
	"github.com/NoaAzoulay/passwords-cracker/internal/wire"
	"github.com/NoaAzoulay/passwords-cracker/internal/workerexec"
)

// WorkerHandler serves the worker's HTTP surface over a shared Executor,
// cancellation registry, and scheme registry.
type WorkerHandler struct {
	exec    *workerexec.Executor
	cancels *cancelset.Registry
	schemes *scheme.Registry
	log     zerolog.Logger
}

// NewWorkerHandler constructs a WorkerHandler.
func NewWorkerHandler(exec *workerexec.Executor, cancels *cancelset.Registry, schemes *scheme.Registry, log zerolog.Logger) *WorkerHandler {
	return &WorkerHandler{exec: exec, cancels: cancels, schemes: schemes, log: log}
}

// Register mounts the worker's routes on r.
func (h *WorkerHandler) Register(r *mux.Router) {
	r.HandleFunc("/crack-range", h.CrackRange).Methods(http.MethodPost)
	r.HandleFunc("/cancel-job", h.CancelJob).Methods(http.MethodPost)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

// CrackRange handles POST /crack-range.
func (h *WorkerHandler) CrackRange(w http.ResponseWriter, r *http.Request) {
	var req wire.CrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		msg := "malformed request body: " + err.Error()
		respond.JSON(w, http.StatusOK, wire.CrackResponse{Status: wire.StatusInvalidInput, ErrorMessage: &msg})
		return
	}

	s, err := h.schemes.New(req.PasswordScheme)
	if err != nil {
		msg := err.Error()
		respond.JSON(w, http.StatusOK, wire.CrackResponse{Status: wire.StatusInvalidInput, ErrorMessage: &msg})
		return
	}

	resp := h.exec.Crack(req.Hash, s, req.Range.StartIndex, req.Range.EndIndex, req.JobID)
	h.log.Debug().
		Str("request_id", req.RequestID).
		Str("job_id", req.JobID).
		Str("status", string(resp.Status)).
		Msg("crack-range handled")
	respond.JSON(w, http.StatusOK, resp)
}

// CancelJob handles POST /cancel-job. Idempotent: cancelling an unknown or
// already-cancelled job ID still returns OK.
func (h *WorkerHandler) CancelJob(w http.ResponseWriter, r *http.Request) {
	var req wire.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		msg := "malformed request body: " + err.Error()
		respond.JSON(w, http.StatusOK, wire.CancelResponse{Status: "ERROR", Error: &msg})
		return
	}
	h.cancels.Cancel(req.JobID)
	respond.JSON(w, http.StatusOK, wire.CancelResponse{Status: "OK"})
}

// Health handles GET /health.
func (h *WorkerHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, wire.HealthResponse{Status: "ok"})
}
