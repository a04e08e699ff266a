// Package chunk implements the stateless ChunkManager: pure functions over
// (Job, Chunk, ...) state transitions (spec section 4.6).
//
// Every mutator is a no-op when Job.Status is already terminal — the
// idempotency guard against late-arriving results after a job reaches a
// terminal state (first-found or otherwise).
package chunk

import "github.com/NoaAzoulay/passwords-cracker/internal/model"

// DefaultMaxAttempts is the default attempt limit. Callers pass the limit
// per call through OnError's maxAttempts parameter; there is no
// package-level mutable default.
const DefaultMaxAttempts = 3

// NextPending returns the first PENDING chunk, or nil if none.
func NextPending(job *model.Job) *model.Chunk {
	for _, c := range job.Chunks {
		if c.Status == model.ChunkPending {
			return c
		}
	}
	return nil
}

// MarkInProgress transitions chunk to IN_PROGRESS and records the assignee.
func MarkInProgress(c *model.Chunk, workerURL string) {
	c.Status = model.ChunkInProgress
	c.AssignedWorker = workerURL
}

// OnFound marks chunk DONE. It returns firstFound = true iff job.Status was
// not already terminal at the time of the call — the caller uses this to
// decide whether this is the winning FOUND among concurrently in-flight
// chunks.
func OnFound(job *model.Job, c *model.Chunk) (firstFound bool) {
	if job.Status.Terminal() {
		return false
	}
	c.Status = model.ChunkDone
	c.LastIndexProcessed = c.Hi
	return true
}

// OnNotFound marks chunk DONE with progress advanced to its end. No-op if
// the job is already terminal.
func OnNotFound(job *model.Job, c *model.Chunk) {
	if job.Status.Terminal() {
		return
	}
	c.Status = model.ChunkDone
	c.LastIndexProcessed = c.Hi
}

// OnCancelled marks chunk CANCELLED. Attempts is NOT incremented; a
// cancelled chunk counts as "completed" for job termination purposes. No-op
// if the job is already terminal.
func OnCancelled(job *model.Job, c *model.Chunk) {
	if job.Status.Terminal() {
		return
	}
	c.Status = model.ChunkCancelled
}

// OnError increments the attempt counter and records progress. If attempts
// reaches maxAttempts the chunk is marked FAILED and retry is false;
// otherwise the chunk is reset to PENDING (assignee cleared) and retry is
// true.
//
// The reference behavior (original_source/master/services/chunk_manager.py)
// resubmits the chunk's original [Lo, Hi] unchanged on retry — it does not
// resume from LastIndexProcessed+1. This implementation pins that exact
// behavior: LastIndexProcessed is informational only (spec section 9, open
// question 1).
func OnError(job *model.Job, c *model.Chunk, lastIndexProcessed int64, maxAttempts int) (retry bool) {
	if job.Status.Terminal() {
		return false
	}
	c.Attempts++
	c.LastIndexProcessed = lastIndexProcessed

	if c.Attempts >= maxAttempts {
		c.Status = model.ChunkFailed
		return false
	}
	c.Status = model.ChunkPending
	c.AssignedWorker = ""
	return true
}

// AllTerminal reports whether every chunk in job is in a terminal state.
func AllTerminal(job *model.Job) bool {
	for _, c := range job.Chunks {
		if !c.Status.Terminal() {
			return false
		}
	}
	return true
}

// AnyFailed reports whether any chunk in job has status FAILED.
func AnyFailed(job *model.Job) bool {
	for _, c := range job.Chunks {
		if c.Status == model.ChunkFailed {
			return true
		}
	}
	return false
}
