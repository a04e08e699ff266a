// Package scheduler drives one Job to completion: dispatching its chunks
// across the worker fleet, applying results via the chunk manager, and
// deciding the job's terminal status (spec section 4.8).
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/NoaAzoulay/passwords-cracker/internal/chunk"
	"github.com/NoaAzoulay/passwords-cracker/internal/job"
	"github.com/NoaAzoulay/passwords-cracker/internal/model"
	"github.com/NoaAzoulay/passwords-cracker/internal/registry"
	"github.com/NoaAzoulay/passwords-cracker/internal/workerclient"
)

// Config controls retry and backoff behavior shared across every job this
// scheduler drives.
type Config struct {
	MaxAttempts  int
	NoMinionWait time.Duration
}

// DefaultConfig returns the default scheduling parameters.
func DefaultConfig() Config {
	return Config{MaxAttempts: 3, NoMinionWait: 500 * time.Millisecond}
}

// Scheduler drives a single Job. It is not reused across jobs; the driver
// constructs one per Run call (spec section 4.8 — "one Scheduler instance
// owns exactly one Job for its lifetime").
type Scheduler struct {
	jm     *job.Manager
	reg    *registry.Registry
	client *workerclient.Client
	cfg    Config
	log    zerolog.Logger
}

// New constructs a Scheduler.
func New(jm *job.Manager, reg *registry.Registry, client *workerclient.Client, cfg Config, log zerolog.Logger) *Scheduler {
	return &Scheduler{jm: jm, reg: reg, client: client, cfg: cfg, log: log}
}

type dispatchResult struct {
	c    *model.Chunk
	resp dispatchResponse
}

// dispatchResponse carries whatever Client.Crack returned, indexed by the
// fields this package consumes, so the goroutine boundary only ever writes
// to a channel, never to Job or Chunk fields directly.
type dispatchResponse struct {
	status             string
	foundPassword      string
	lastIndexProcessed int64
	errorMessage       string
}

// Run dispatches job's chunks until every chunk reaches a terminal state (or
// ctx is cancelled), then marks job DONE or FAILED and returns it.
//
// Job and its Chunks are mutated only on this goroutine — worker dispatches
// run on their own goroutines and report back over resultsCh, so there is
// exactly one writer of job state at any time (see internal/model's doc
// comment on Job).
func (s *Scheduler) Run(ctx context.Context, j *model.Job) *model.Job {
	if j.Status.Terminal() {
		return j
	}

	resultsCh := make(chan dispatchResult)
	inFlight := 0

	for {
		if chunk.AllTerminal(j) {
			s.finalize(j)
			return j
		}

		dispatched := s.dispatchAvailable(ctx, j, resultsCh, &inFlight)
		if !dispatched && inFlight == 0 {
			// No pending chunk could be dispatched (every worker's breaker is
			// open) and nothing is in flight to wait on. Back off and retry.
			select {
			case <-ctx.Done():
				s.cancelJob(j)
				return j
			case <-time.After(s.cfg.NoMinionWait):
				continue
			}
		}

		select {
		case <-ctx.Done():
			s.cancelJob(j)
			s.drain(resultsCh, inFlight)
			return j
		case res := <-resultsCh:
			inFlight--
			s.apply(j, res)
			if j.Status.Terminal() {
				// FOUND or INVALID_INPUT decided the job outright; don't wait
				// for the remaining chunks to finish their own dispatches.
				s.drain(resultsCh, inFlight)
				return j
			}
		}
	}
}

// dispatchAvailable fills the in-flight pool up to len(available()) PENDING
// chunks, launching one goroutine per assignment. It returns whether at
// least one chunk was dispatched this call.
//
// The pool is capped at the available worker count, not just filtered by
// it: PickNext only rules out workers whose breaker is open, it has no
// notion of "busy" (spec section 4.8 step 5). Without this cap a job with
// many chunks and a healthy fleet would fire every pending chunk as a
// concurrent request in one call instead of one per available worker.
func (s *Scheduler) dispatchAvailable(ctx context.Context, j *model.Job, resultsCh chan<- dispatchResult, inFlight *int) bool {
	dispatchedAny := false
	for *inFlight < len(s.reg.Available()) {
		c := chunk.NextPending(j)
		if c == nil {
			return dispatchedAny
		}
		workerURL, ok := s.reg.PickNext()
		if !ok {
			return dispatchedAny
		}
		chunk.MarkInProgress(c, workerURL)
		*inFlight++
		dispatchedAny = true

		go func(c *model.Chunk, workerURL string) {
			resp := s.client.Crack(ctx, workerURL, c, j.Hash, j.HashType, j.Scheme, j.ID)
			out := dispatchResponse{
				status:             string(resp.Status),
				lastIndexProcessed: resp.LastIndexProcessed,
			}
			if resp.FoundPassword != nil {
				out.foundPassword = *resp.FoundPassword
			}
			if resp.ErrorMessage != nil {
				out.errorMessage = *resp.ErrorMessage
			}
			resultsCh <- dispatchResult{c: c, resp: out}
		}(c, workerURL)
	}
	return dispatchedAny
}

// apply routes one worker result through the chunk manager and updates job
// state. Like dispatchAvailable, finalize and cancelJob, which also write
// Job/Chunk fields, it runs only on the Run goroutine.
func (s *Scheduler) apply(j *model.Job, res dispatchResult) {
	c, resp := res.c, res.resp

	switch resp.status {
	case "FOUND":
		if chunk.OnFound(j, c) {
			s.log.Info().Str("job_id", j.ID).Str("chunk_id", c.ID).Msg("password found")
			s.broadcastCancel(j.ID)
			s.jm.MarkDone(j, resp.foundPassword)
		}
	case "NOT_FOUND":
		chunk.OnNotFound(j, c)
	case "CANCELLED":
		chunk.OnCancelled(j, c)
	case "INVALID_INPUT":
		// A malformed request is not transient: every chunk shares the same
		// hash/scheme, so retrying would fail identically. Terminate the job
		// immediately rather than waiting for every other chunk to dispatch.
		j.InvalidInput = true
		c.Status = model.ChunkFailed
		s.jm.MarkDone(j, "")
		s.log.Warn().Str("job_id", j.ID).Str("error", resp.errorMessage).Msg("invalid input reported by worker")
	default: // "ERROR" and any unrecognized status are treated as a retryable failure
		retry := chunk.OnError(j, c, resp.lastIndexProcessed, s.cfg.MaxAttempts)
		if !retry {
			s.log.Warn().Str("job_id", j.ID).Str("chunk_id", c.ID).Str("error", resp.errorMessage).Msg("chunk exhausted retries")
		}
	}
}

// finalize sets job's terminal status once every chunk has reached a
// terminal state. A job already DONE (FOUND short-circuit) or CANCELLED is
// left untouched.
func (s *Scheduler) finalize(j *model.Job) {
	if j.Status.Terminal() {
		return
	}
	if j.InvalidInput || chunk.AnyFailed(j) {
		s.jm.MarkFailed(j)
		return
	}
	s.jm.MarkDone(j, "")
}

// cancelJob marks job CANCELLED (idempotent against an already-terminal
// job) and broadcasts the cancellation to every worker.
func (s *Scheduler) cancelJob(j *model.Job) {
	if j.Status.Terminal() {
		return
	}
	j.Status = model.JobCancelled
	s.broadcastCancel(j.ID)
}

// broadcastCancel fires a best-effort POST /cancel-job at every worker in
// the fleet, not only the ones currently assigned to jobID — the registry
// does not track which worker holds which chunk, and a retried chunk may
// have run on a different worker than its latest assignee.
func (s *Scheduler) broadcastCancel(jobID string) {
	for _, url := range s.reg.All() {
		go s.client.Cancel(context.Background(), url, jobID)
	}
}

// drain absorbs any in-flight goroutines' results after the job has already
// been decided, so none of them leak by blocking forever on resultsCh.
func (s *Scheduler) drain(resultsCh <-chan dispatchResult, inFlight int) {
	for i := 0; i < inFlight; i++ {
		<-resultsCh
	}
}
