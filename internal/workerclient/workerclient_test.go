package workerclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoaAzoulay/passwords-cracker/internal/breaker"
	"github.com/NoaAzoulay/passwords-cracker/internal/model"
	"github.com/NoaAzoulay/passwords-cracker/internal/registry"
	"github.com/NoaAzoulay/passwords-cracker/internal/wire"
)

func testConfig() Config {
	return Config{CrackTimeout: time.Second, CancelTimeout: time.Second, MaxConns: 5}
}

func TestCrack_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(wire.CrackResponse{Status: wire.StatusNotFound, LastIndexProcessed: 99})
	}))
	defer srv.Close()

	reg := registry.New([]string{srv.URL}, breaker.DefaultConfig())
	c := New(reg, testConfig(), zerolog.Nop())

	resp := c.Crack(context.Background(), srv.URL, &model.Chunk{Lo: 0, Hi: 99}, "hash", "md5", "scheme", "job-1")
	assert.Equal(t, wire.StatusNotFound, resp.Status)
	assert.False(t, reg.Breaker(srv.URL).IsUnavailable(), "NOT_FOUND is a logical success")
}

func TestCrack_NonTwoXXRecordsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	reg := registry.New([]string{srv.URL}, breaker.Config{FailureThreshold: 1, OpenDuration: time.Minute})
	c := New(reg, testConfig(), zerolog.Nop())

	resp := c.Crack(context.Background(), srv.URL, &model.Chunk{Lo: 7, Hi: 99}, "hash", "md5", "scheme", "job-1")
	assert.Equal(t, wire.StatusError, resp.Status)
	assert.Equal(t, int64(7), resp.LastIndexProcessed)
	assert.True(t, reg.Breaker(srv.URL).IsUnavailable())
}

func TestCrack_TransportErrorRecordsFailure(t *testing.T) {
	reg := registry.New([]string{"http://127.0.0.1:1"}, breaker.Config{FailureThreshold: 1, OpenDuration: time.Minute})
	c := New(reg, Config{CrackTimeout: 200 * time.Millisecond, CancelTimeout: 200 * time.Millisecond, MaxConns: 5}, zerolog.Nop())

	resp := c.Crack(context.Background(), "http://127.0.0.1:1", &model.Chunk{Lo: 3, Hi: 9}, "hash", "md5", "scheme", "job-1")
	assert.Equal(t, wire.StatusError, resp.Status)
	assert.Equal(t, int64(3), resp.LastIndexProcessed)
	assert.True(t, reg.Breaker("http://127.0.0.1:1").IsUnavailable())
}

func TestCancel_SwallowsErrors(t *testing.T) {
	reg := registry.New([]string{"http://127.0.0.1:1"}, breaker.DefaultConfig())
	c := New(reg, Config{CrackTimeout: time.Second, CancelTimeout: 200 * time.Millisecond, MaxConns: 5}, zerolog.Nop())

	require.NotPanics(t, func() {
		c.Cancel(context.Background(), "http://127.0.0.1:1", "job-1")
	})
}
