package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoaAzoulay/passwords-cracker/internal/cancelset"
	"github.com/NoaAzoulay/passwords-cracker/internal/scheme"
	"github.com/NoaAzoulay/passwords-cracker/internal/wire"
	"github.com/NoaAzoulay/passwords-cracker/internal/workerexec"
)

func newTestHandler() *WorkerHandler {
	exec := workerexec.New(workerexec.DefaultConfig(), cancelset.New())
	return NewWorkerHandler(exec, cancelset.New(), scheme.NewRegistry(), zerolog.Nop())
}

func TestHealth(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp wire.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCrackRange_UnknownScheme(t *testing.T) {
	h := newTestHandler()
	body, _ := json.Marshal(wire.CrackRequest{
		Hash:           "deadbeefdeadbeefdeadbeefdeadbeef",
		PasswordScheme: "nonexistent",
		Range:          wire.Range{StartIndex: 0, EndIndex: 10},
		JobID:          "job-1",
	})
	req := httptest.NewRequest(http.MethodPost, "/crack-range", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.CrackRange(rec, req)

	var resp wire.CrackResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, wire.StatusInvalidInput, resp.Status)
}

func TestCrackRange_MalformedBody(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/crack-range", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	h.CrackRange(rec, req)

	var resp wire.CrackResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, wire.StatusInvalidInput, resp.Status)
}

func TestCancelJob_Idempotent(t *testing.T) {
	h := newTestHandler()
	body, _ := json.Marshal(wire.CancelRequest{JobID: "job-1"})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/cancel-job", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		h.CancelJob(rec, req)

		var resp wire.CancelResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "OK", resp.Status)
	}
	assert.True(t, h.cancels.IsCancelled("job-1"))
}

func TestRegister_RoutesAreMounted(t *testing.T) {
	h := newTestHandler()
	router := NewRouter()
	h.Register(router)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
