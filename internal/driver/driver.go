// Package driver is the top-level orchestration for the master process:
// read input, fan out one Job per valid hash bounded by a concurrency cap,
// and emit output rows for lines that never reach a job (spec section 6.1,
// 6.3).
package driver

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/NoaAzoulay/passwords-cracker/internal/breaker"
	"github.com/NoaAzoulay/passwords-cracker/internal/cache"
	"github.com/NoaAzoulay/passwords-cracker/internal/config"
	"github.com/NoaAzoulay/passwords-cracker/internal/input"
	"github.com/NoaAzoulay/passwords-cracker/internal/job"
	"github.com/NoaAzoulay/passwords-cracker/internal/model"
	"github.com/NoaAzoulay/passwords-cracker/internal/output"
	"github.com/NoaAzoulay/passwords-cracker/internal/registry"
	"github.com/NoaAzoulay/passwords-cracker/internal/scheduler"
	"github.com/NoaAzoulay/passwords-cracker/internal/scheme"
	"github.com/NoaAzoulay/passwords-cracker/internal/workerclient"
)

// DefaultSchemeName is the password scheme used for every hash in this
// driver, matching the single-scheme scope of spec section 4.1.
const DefaultSchemeName = scheme.NameILPhone05xDash

// Driver owns the shared state every per-job Scheduler contends for:
// the worker registry, the HTTP client, the cracked-hash cache, and the
// output writer.
type Driver struct {
	cfg    *config.DriverConfig
	log    zerolog.Logger
	reg    *registry.Registry
	client *workerclient.Client
	cache  *cache.Cache
	jm     *job.Manager
	out    *output.Writer
}

// New constructs a Driver from cfg. out is the writer for cfg.OutputFile;
// it creates the file's directory itself on its first flush.
func New(cfg *config.DriverConfig, log zerolog.Logger, out *output.Writer) *Driver {
	c := cache.New()
	schemes := scheme.NewRegistry()
	reg := registry.New(cfg.MinionURLs, breaker.Config{
		FailureThreshold: cfg.MinionFailureThreshold,
		OpenDuration:     cfg.BreakerOpenDuration(),
	})
	client := workerclient.New(reg, workerclient.Config{
		CrackTimeout:  cfg.RequestTimeout(),
		CancelTimeout: workerclient.DefaultConfig().CancelTimeout,
		MaxConns:      20,
	}, log)

	return &Driver{
		cfg:    cfg,
		log:    log,
		reg:    reg,
		client: client,
		cache:  c,
		jm:     job.New(c, schemes, cfg.ChunkSize),
		out:    out,
	}
}

// Close releases the driver's pooled worker connections.
func (d *Driver) Close() {
	d.client.Close()
}

// Run reads inputPath, truncates the output file, then drives one Job per
// valid hash concurrently bounded by cfg.MaxConcurrentJobs. Invalid lines
// are emitted as INVALID_INPUT immediately, before the fan-out starts
// (spec section 6.1: "invalid lines recorded and emitted immediately").
func (d *Driver) Run(ctx context.Context, inputPath string) error {
	lines, err := input.ReadFile(inputPath)
	if err != nil {
		return err
	}

	if err := d.out.Reset(); err != nil {
		d.log.Error().Err(err).Msg("failed to reset output file")
	}

	var validHashes []string
	for _, l := range lines {
		if !l.Valid {
			if err := d.out.WriteVerdict(l.Raw, output.TokenInvalidInput, ""); err != nil {
				d.log.Error().Err(err).Str("line", l.Raw).Msg("failed to write invalid-input verdict")
			}
			continue
		}
		validHashes = append(validHashes, l.Hash)
	}

	d.cache.Clear()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.MaxConcurrentJobs)
	for _, hash := range validHashes {
		hash := hash
		g.Go(func() error {
			d.runOne(gctx, hash)
			return nil
		})
	}
	return g.Wait()
}

// runOne creates and drives a single Job to completion, then emits its
// output row. Job-level failures never propagate as an error from Run —
// per spec section 7, failures surface only via the per-hash output token.
func (d *Driver) runOne(ctx context.Context, hash string) {
	j, err := d.jm.Create(hash, DefaultSchemeName)
	if err != nil {
		d.log.Error().Err(err).Str("hash", hash).Msg("failed to create job")
		if werr := d.out.WriteVerdict(hash, output.TokenFailed, ""); werr != nil {
			d.log.Error().Err(werr).Msg("failed to write output")
		}
		return
	}

	sched := scheduler.New(d.jm, d.reg, d.client, scheduler.Config{
		MaxAttempts:  d.cfg.MaxAttempts,
		NoMinionWait: d.cfg.NoMinionWait(),
	}, d.log)
	j = sched.Run(ctx, j)

	d.emit(j)
}

// emit writes j's final verdict to stdout and the output file. Cache
// short-circuit Jobs (already DONE with HasResult when created) take the
// same path as a FOUND reached via the scheduler.
func (d *Driver) emit(j *model.Job) {
	var err error
	switch {
	case j.Status == model.JobDone && j.HasResult:
		err = d.out.WriteFound(j.Hash, j.Plaintext, j.ID)
	case j.InvalidInput:
		err = d.out.WriteVerdict(j.Hash, output.TokenInvalidInput, j.ID)
	case j.Status == model.JobFailed:
		err = d.out.WriteVerdict(j.Hash, output.TokenFailed, j.ID)
	case j.Status == model.JobCancelled:
		err = d.out.WriteVerdict(j.Hash, output.TokenFailed, j.ID)
	default: // JobDone with no result: keyspace exhausted
		err = d.out.WriteVerdict(j.Hash, output.TokenNotFound, j.ID)
	}
	if err != nil {
		d.log.Error().Err(err).Str("job_id", j.ID).Msg("failed to write output")
	}
}
