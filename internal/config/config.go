// Package config loads process configuration from environment variables,
// following mycelian-ai-mycelian-memory/server/internal/config's
// envconfig + ResolveDefaults pattern.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DriverConfig holds every environment variable the master/driver CLI
// recognizes (spec section 6.1).
type DriverConfig struct {
	ChunkSize              int64         `envconfig:"CHUNK_SIZE" default:"100000"`
	CancellationCheckEvery int64         `envconfig:"CANCELLATION_CHECK_EVERY" default:"5000"`
	WorkerThreads          int           `envconfig:"WORKER_THREADS" default:"2"`
	MinionSubrangeMinSize  int64         `envconfig:"MINION_SUBRANGE_MIN_SIZE" default:"1000"`
	MaxAttempts            int           `envconfig:"MAX_ATTEMPTS" default:"3"`
	MinionRequestTimeout   float64       `envconfig:"MINION_REQUEST_TIMEOUT" default:"5.0"`
	NoMinionWaitTime       float64       `envconfig:"NO_MINION_WAIT_TIME" default:"0.5"`
	OutputFile             string        `envconfig:"OUTPUT_FILE" default:"data/output.txt"`
	MinionURLsRaw          string        `envconfig:"MINION_URLS" default:""`
	MinionFailureThreshold int           `envconfig:"MINION_FAILURE_THRESHOLD" default:"3"`
	MinionBreakerOpenSecs  float64       `envconfig:"MINION_BREAKER_OPEN_SECONDS" default:"10.0"`
	MaxConcurrentJobs      int           `envconfig:"MAX_CONCURRENT_JOBS" default:"0"`

	MinionURLs []string `ignored:"true"`
}

// NewDriverConfig parses environment variables (unprefixed, matching
// spec section 6.1's bare variable names) into a DriverConfig and resolves
// defaults that depend on other fields.
func NewDriverConfig() (*DriverConfig, error) {
	var cfg DriverConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	cfg.ResolveDefaults()
	return &cfg, nil
}

// ResolveDefaults splits MINION_URLS and derives MaxConcurrentJobs =
// min(3, len(workers)) when unset (3 when no workers are configured),
// mirroring the
// auto-derivation-on-"auto"/zero pattern.
func (c *DriverConfig) ResolveDefaults() {
	c.MinionURLs = splitNonEmpty(c.MinionURLsRaw, ",")
	if c.MaxConcurrentJobs <= 0 {
		c.MaxConcurrentJobs = 3
		if n := len(c.MinionURLs); n > 0 && n < c.MaxConcurrentJobs {
			c.MaxConcurrentJobs = n
		}
	}
}

// RequestTimeout converts MinionRequestTimeout to a time.Duration.
func (c *DriverConfig) RequestTimeout() time.Duration {
	return time.Duration(c.MinionRequestTimeout * float64(time.Second))
}

// NoMinionWait converts NoMinionWaitTime to a time.Duration.
func (c *DriverConfig) NoMinionWait() time.Duration {
	return time.Duration(c.NoMinionWaitTime * float64(time.Second))
}

// BreakerOpenDuration converts MinionBreakerOpenSecs to a time.Duration.
func (c *DriverConfig) BreakerOpenDuration() time.Duration {
	return time.Duration(c.MinionBreakerOpenSecs * float64(time.Second))
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// WorkerConfig holds the environment variables recognized by the worker
// ("minion") HTTP service.
type WorkerConfig struct {
	Port                   int   `envconfig:"WORKER_PORT" default:"8000"`
	WorkerThreads          int   `envconfig:"WORKER_THREADS" default:"2"`
	MinionSubrangeMinSize  int64 `envconfig:"MINION_SUBRANGE_MIN_SIZE" default:"1000"`
	CancellationCheckEvery int64 `envconfig:"CANCELLATION_CHECK_EVERY" default:"5000"`
	ParallelThreshold      int64 `envconfig:"PARALLEL_THRESHOLD" default:"10000"`
}

// NewWorkerConfig parses environment variables into a WorkerConfig.
func NewWorkerConfig() (*WorkerConfig, error) {
	var cfg WorkerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}
