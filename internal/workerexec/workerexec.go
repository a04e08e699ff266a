// Package workerexec is the worker-side per-request sub-range search: the
// single entry point a worker's HTTP handler calls for one /crack-range
// request (spec section 4.9).
package workerexec

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/NoaAzoulay/passwords-cracker/internal/cancelset"
	"github.com/NoaAzoulay/passwords-cracker/internal/scheme"
	"github.com/NoaAzoulay/passwords-cracker/internal/wire"
)

// Config controls mode selection and cancellation polling cadence.
type Config struct {
	WorkerThreads          int
	ParallelThreshold      int64
	CancellationCheckEvery int64
	SubrangeMinSize        int64
}

// DefaultConfig returns the default executor parameters.
func DefaultConfig() Config {
	return Config{
		WorkerThreads:          2,
		ParallelThreshold:      10_000,
		CancellationCheckEvery: 5_000,
		SubrangeMinSize:        1_000,
	}
}

// Executor runs one /crack-range sub-range search.
type Executor struct {
	cfg      Config
	cancels  *cancelset.Registry
}

// New constructs an Executor.
func New(cfg Config, cancels *cancelset.Registry) *Executor {
	return &Executor{cfg: cfg, cancels: cancels}
}

// Crack searches [lo, hi] for a plaintext hashing to targetHash under
// scheme s, polling the cancellation registry for jobID as it goes.
//
// Invariants (caller validates; this re-validates defensively): targetHash
// is 32 lowercase hex, lo <= hi, both within scheme bounds.
func (e *Executor) Crack(targetHash string, s scheme.Scheme, lo, hi int64, jobID string) wire.CrackResponse {
	targetHash = strings.ToLower(targetHash)
	if _, err := hex.DecodeString(targetHash); len(targetHash) != 32 || err != nil {
		msg := "invalid hash: must be 32 hex characters"
		return wire.CrackResponse{Status: wire.StatusInvalidInput, ErrorMessage: &msg}
	}
	if lo > hi {
		msg := fmt.Sprintf("invalid range: lo %d > hi %d", lo, hi)
		return wire.CrackResponse{Status: wire.StatusInvalidInput, ErrorMessage: &msg}
	}
	schemeLo, schemeHi := s.Bounds()
	if lo < schemeLo || hi > schemeHi {
		msg := fmt.Sprintf("range [%d, %d] outside scheme bounds [%d, %d]", lo, hi, schemeLo, schemeHi)
		return wire.CrackResponse{Status: wire.StatusInvalidInput, ErrorMessage: &msg}
	}

	rangeSize := hi - lo + 1
	if e.cfg.WorkerThreads > 1 && rangeSize >= e.cfg.ParallelThreshold {
		return e.crackParallel(targetHash, s, lo, hi, jobID)
	}
	return e.crackSequential(targetHash, s, lo, hi, jobID)
}

func (e *Executor) crackSequential(targetHash string, s scheme.Scheme, lo, hi int64, jobID string) wire.CrackResponse {
	checkEvery := e.cfg.CancellationCheckEvery
	if checkEvery <= 0 {
		checkEvery = 1
	}
	for i := lo; i <= hi; i++ {
		if i%checkEvery == 0 && e.cancels.IsCancelled(jobID) {
			return wire.CrackResponse{Status: wire.StatusCancelled, LastIndexProcessed: i}
		}
		password, err := s.IndexToPassword(i)
		if err != nil {
			msg := err.Error()
			return wire.CrackResponse{Status: wire.StatusError, LastIndexProcessed: lo, ErrorMessage: &msg}
		}
		if md5Hex(password) == targetHash {
			p := password
			return wire.CrackResponse{Status: wire.StatusFound, FoundPassword: &p, LastIndexProcessed: i}
		}
	}
	return wire.CrackResponse{Status: wire.StatusNotFound, LastIndexProcessed: hi}
}

type subrangeOutcome struct {
	status wire.Status
	index  int64
	password string
	errMsg string
}

// crackParallel partitions [lo, hi] into sub-ranges of size
// max(SubrangeMinSize, range/num_threads) and runs them on goroutines, at
// most WorkerThreads of them searching at once. The first sub-range to
// complete (found, error, or cancelled) wins; remaining goroutines are
// abandoned in place (their results are discarded) once the winning outcome
// is observed, since Go has no cooperative goroutine-cancel primitive
// cheaper than context. Every sub-range polls the same cancellation
// registry, so an abandoned goroutine stops at its next cancellation check
// once jobID has been cancelled on this worker; until then it keeps
// scanning its sub-range.
func (e *Executor) crackParallel(targetHash string, s scheme.Scheme, lo, hi int64, jobID string) wire.CrackResponse {
	numThreads := e.cfg.WorkerThreads
	if numThreads < 1 {
		numThreads = 1
	}
	rangeSize := hi - lo + 1
	subrangeSize := rangeSize / int64(numThreads)
	if subrangeSize < e.cfg.SubrangeMinSize {
		subrangeSize = e.cfg.SubrangeMinSize
	}

	type bound struct{ lo, hi int64 }
	var bounds []bound
	for start := lo; start <= hi; {
		end := start + subrangeSize - 1
		if end > hi {
			end = hi
		}
		bounds = append(bounds, bound{start, end})
		start = end + 1
	}

	results := make(chan subrangeOutcome, len(bounds))
	slots := make(chan struct{}, numThreads)
	var wg sync.WaitGroup
	for _, b := range bounds {
		wg.Add(1)
		go func(lo, hi int64) {
			defer wg.Done()
			slots <- struct{}{}
			defer func() { <-slots }()
			results <- e.crackSubrange(targetHash, s, lo, hi, jobID)
		}(b.lo, b.hi)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for outcome := range results {
		completed++
		if e.cancels.IsCancelled(jobID) {
			return wire.CrackResponse{Status: wire.StatusCancelled, LastIndexProcessed: lo}
		}
		switch outcome.status {
		case wire.StatusFound:
			p := outcome.password
			return wire.CrackResponse{Status: wire.StatusFound, FoundPassword: &p, LastIndexProcessed: outcome.index}
		case wire.StatusError:
			msg := outcome.errMsg
			return wire.CrackResponse{Status: wire.StatusError, LastIndexProcessed: lo, ErrorMessage: &msg}
		case wire.StatusCancelled:
			return wire.CrackResponse{Status: wire.StatusCancelled, LastIndexProcessed: lo}
		}
		if completed == len(bounds) {
			return wire.CrackResponse{Status: wire.StatusNotFound, LastIndexProcessed: hi}
		}
	}
	return wire.CrackResponse{Status: wire.StatusNotFound, LastIndexProcessed: hi}
}

func (e *Executor) crackSubrange(targetHash string, s scheme.Scheme, lo, hi int64, jobID string) subrangeOutcome {
	checkEvery := e.cfg.CancellationCheckEvery
	if checkEvery <= 0 {
		checkEvery = 1
	}
	for i := lo; i <= hi; i++ {
		if i%checkEvery == 0 && e.cancels.IsCancelled(jobID) {
			return subrangeOutcome{status: wire.StatusCancelled, index: i}
		}
		password, err := s.IndexToPassword(i)
		if err != nil {
			return subrangeOutcome{status: wire.StatusError, errMsg: err.Error()}
		}
		if md5Hex(password) == targetHash {
			return subrangeOutcome{status: wire.StatusFound, index: i, password: password}
		}
	}
	return subrangeOutcome{status: wire.StatusNotFound, index: hi}
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
