package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDefaults_DerivesMaxConcurrentJobs(t *testing.T) {
	cfg := &DriverConfig{MinionURLsRaw: "http://a,http://b"}
	cfg.ResolveDefaults()
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.MinionURLs)
	assert.Equal(t, 2, cfg.MaxConcurrentJobs, "min(3, #workers) with 2 workers")
}

func TestResolveDefaults_CapsAtThreeWorkers(t *testing.T) {
	cfg := &DriverConfig{MinionURLsRaw: "http://a,http://b,http://c,http://d"}
	cfg.ResolveDefaults()
	assert.Equal(t, 3, cfg.MaxConcurrentJobs)
}

func TestResolveDefaults_ExplicitOverrideWins(t *testing.T) {
	cfg := &DriverConfig{MinionURLsRaw: "http://a", MaxConcurrentJobs: 7}
	cfg.ResolveDefaults()
	assert.Equal(t, 7, cfg.MaxConcurrentJobs)
}

func TestResolveDefaults_EmptyURLsTrimmedAndFiltered(t *testing.T) {
	cfg := &DriverConfig{MinionURLsRaw: " http://a , , http://b "}
	cfg.ResolveDefaults()
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.MinionURLs)
}
