// Package workerclient is the master-side transport to workers: typed
// crack and cancel calls that record circuit-breaker outcomes (spec
// section 4.5).
package workerclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NoaAzoulay/passwords-cracker/internal/model"
	"github.com/NoaAzoulay/passwords-cracker/internal/registry"
	"github.com/NoaAzoulay/passwords-cracker/internal/wire"
)

// Config controls per-call timeouts and connection pooling.
type Config struct {
	CrackTimeout  time.Duration
	CancelTimeout time.Duration
	MaxConns      int
}

// DefaultConfig returns the default transport timeouts.
func DefaultConfig() Config {
	return Config{
		CrackTimeout:  5 * time.Second,
		CancelTimeout: 2 * time.Second,
		MaxConns:      20,
	}
}

// Client is the typed HTTP transport to the worker fleet.
type Client struct {
	http *resty.Client
	reg  *registry.Registry
	cfg  Config
	log  zerolog.Logger
}

// New constructs a Client. reg supplies the breaker to record outcomes
// against for each worker URL.
func New(reg *registry.Registry, cfg Config, log zerolog.Logger) *Client {
	h := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTransport(newBoundedTransport(cfg.MaxConns))
	return &Client{http: h, reg: reg, cfg: cfg, log: log}
}

// Crack sends one POST /crack-range call and records the breaker outcome.
// On any transport error, protocol error, or non-2xx it records a breaker
// failure and returns an ERROR Result with LastIndexProcessed = chunk.Lo.
// On a well-formed response (including NOT_FOUND) it records a breaker
// success and returns the parsed Result.
func (c *Client) Crack(ctx context.Context, workerURL string, chunk *model.Chunk, hash, hashType, schemeName, jobID string) wire.CrackResponse {
	b := c.reg.Breaker(workerURL)
	requestID := uuid.NewString()

	req := wire.CrackRequest{
		Hash:           hash,
		HashType:       hashType,
		PasswordScheme: schemeName,
		Range:          wire.Range{StartIndex: chunk.Lo, EndIndex: chunk.Hi},
		JobID:          jobID,
		RequestID:      requestID,
	}

	var result wire.CrackResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetTimeout(c.cfg.CrackTimeout).
		SetBody(&req).
		SetResult(&result).
		ForceContentType("application/json").
		Post(workerURL + "/crack-range")

	if err != nil {
		c.log.Debug().Err(err).Str("worker", workerURL).Str("request_id", requestID).Msg("crack-range transport error")
		b.RecordFailure()
		return errorResult(chunk.Lo, fmt.Sprintf("transport error: %v", err))
	}
	if resp.IsError() {
		c.log.Debug().Int("status", resp.StatusCode()).Str("worker", workerURL).Msg("crack-range non-2xx")
		b.RecordFailure()
		return errorResult(chunk.Lo, fmt.Sprintf("worker returned HTTP %d", resp.StatusCode()))
	}

	// A well-formed response, including NOT_FOUND, is a logical success.
	b.RecordSuccess()
	return result
}

// Cancel sends a best-effort POST /cancel-job call. All errors are
// swallowed and logged at debug; no breaker update is applied.
func (c *Client) Cancel(ctx context.Context, workerURL, jobID string) {
	_, err := c.http.R().
		SetContext(ctx).
		SetTimeout(c.cfg.CancelTimeout).
		SetBody(&wire.CancelRequest{JobID: jobID}).
		Post(workerURL + "/cancel-job")
	if err != nil {
		c.log.Debug().Err(err).Str("worker", workerURL).Str("job_id", jobID).Msg("cancel-job best-effort call failed")
	}
}

// Close releases pooled connections.
func (c *Client) Close() {
	c.http.GetClient().CloseIdleConnections()
}

func errorResult(lastIndex int64, msg string) wire.CrackResponse {
	return wire.CrackResponse{
		Status:             wire.StatusError,
		FoundPassword:      nil,
		LastIndexProcessed: lastIndex,
		ErrorMessage:       &msg,
	}
}
