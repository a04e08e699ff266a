package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoaAzoulay/passwords-cracker/internal/cache"
	"github.com/NoaAzoulay/passwords-cracker/internal/model"
	"github.com/NoaAzoulay/passwords-cracker/internal/scheme"
)

func TestCreate_CacheHit(t *testing.T) {
	c := cache.New()
	c.Put("abcd1234", "050-0000001")
	m := New(c, scheme.NewRegistry(), 100_000)

	j, err := m.Create("ABCD1234", scheme.NameILPhone05xDash)
	require.NoError(t, err)
	assert.Equal(t, model.JobDone, j.Status)
	assert.Equal(t, "050-0000001", j.Plaintext)
	assert.True(t, j.HasResult)
	assert.Empty(t, j.Chunks, "cache hit must produce a job with no chunks")
}

func TestCreate_CacheMiss_PartitionsChunks(t *testing.T) {
	c := cache.New()
	m := New(c, scheme.NewRegistry(), 30)

	j, err := m.Create("deadbeefdeadbeefdeadbeefdeadbeef", scheme.NameILPhone05xDash)
	require.NoError(t, err)
	assert.Equal(t, model.JobPending, j.Status)
	require.NotEmpty(t, j.Chunks)

	assert.Equal(t, j.Lo, j.Chunks[0].Lo)
	assert.Equal(t, j.Hi, j.Chunks[len(j.Chunks)-1].Hi)
	for i := 0; i < len(j.Chunks)-1; i++ {
		assert.Equal(t, j.Chunks[i].Hi+1, j.Chunks[i+1].Lo, "chunks must be gap-free")
		assert.Equal(t, int64(30), j.Chunks[i].Hi-j.Chunks[i].Lo+1, "non-final chunks must equal chunk size")
	}
	last := j.Chunks[len(j.Chunks)-1]
	assert.LessOrEqual(t, last.Hi-last.Lo+1, int64(30))
}

func TestCreate_UnknownScheme(t *testing.T) {
	m := New(cache.New(), scheme.NewRegistry(), 100_000)
	_, err := m.Create("deadbeefdeadbeefdeadbeefdeadbeef", "nope")
	assert.Error(t, err)
}

func TestMarkDone_CachesOnlyWhenFound(t *testing.T) {
	c := cache.New()
	m := New(c, scheme.NewRegistry(), 100_000)

	foundJob := &model.Job{Hash: "hash1"}
	m.MarkDone(foundJob, "plaintext")
	assert.Equal(t, model.JobDone, foundJob.Status)
	assert.True(t, foundJob.HasResult)
	p, ok := c.Get("hash1")
	assert.True(t, ok)
	assert.Equal(t, "plaintext", p)

	notFoundJob := &model.Job{Hash: "hash2"}
	m.MarkDone(notFoundJob, "")
	assert.Equal(t, model.JobDone, notFoundJob.Status)
	assert.False(t, notFoundJob.HasResult)
	_, ok = c.Get("hash2")
	assert.False(t, ok, "NOT_FOUND must never be cached")
}

func TestMarkFailed(t *testing.T) {
	m := New(cache.New(), scheme.NewRegistry(), 100_000)
	j := &model.Job{}
	m.MarkFailed(j)
	assert.Equal(t, model.JobFailed, j.Status)
}
