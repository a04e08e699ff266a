// Package job implements JobManager: job creation, keyspace partitioning,
// and terminal-state bookkeeping (spec section 4.7).
package job

import (
	"strings"

	"github.com/google/uuid"

	"github.com/NoaAzoulay/passwords-cracker/internal/cache"
	"github.com/NoaAzoulay/passwords-cracker/internal/model"
	"github.com/NoaAzoulay/passwords-cracker/internal/scheme"
)

// Manager creates Jobs and partitions their keyspace into gap-free chunks.
type Manager struct {
	cache     *cache.Cache
	schemes   *scheme.Registry
	chunkSize int64
}

// New constructs a Manager. chunkSize is the fixed non-final chunk size
// (spec section 3's CHUNK_SIZE, default 100_000).
func New(c *cache.Cache, schemes *scheme.Registry, chunkSize int64) *Manager {
	return &Manager{cache: c, schemes: schemes, chunkSize: chunkSize}
}

// Create builds a Job for hash under schemeName.
//
// On a cache hit it returns a Job already DONE with Plaintext set and no
// chunks — no scheme lookup, no worker call. On a cache miss it looks up
// the scheme's bounds and partitions them into chunks per spec section 3's
// invariants: chunks[0].Lo == lo, chunks[-1].Hi == hi, chunks[i+1].Lo ==
// chunks[i].Hi+1, every non-final chunk has size == chunkSize.
func (m *Manager) Create(hash, schemeName string) (*model.Job, error) {
	normalized := strings.ToLower(hash)

	if plaintext, ok := m.cache.Get(normalized); ok {
		return &model.Job{
			ID:        uuid.NewString(),
			Hash:      normalized,
			HashType:  "md5",
			Scheme:    schemeName,
			Status:    model.JobDone,
			Plaintext: plaintext,
			HasResult: true,
		}, nil
	}

	s, err := m.schemes.New(schemeName)
	if err != nil {
		return nil, err
	}
	lo, hi := s.Bounds()

	job := &model.Job{
		ID:       uuid.NewString(),
		Hash:     normalized,
		HashType: "md5",
		Scheme:   schemeName,
		Lo:       lo,
		Hi:       hi,
		Status:   model.JobPending,
	}
	job.Chunks = m.splitIntoChunks(job.ID, lo, hi)
	return job, nil
}

func (m *Manager) splitIntoChunks(jobID string, lo, hi int64) []*model.Chunk {
	var chunks []*model.Chunk
	for start := lo; start <= hi; {
		end := start + m.chunkSize - 1
		if end > hi {
			end = hi
		}
		chunks = append(chunks, &model.Chunk{
			ID:     uuid.NewString(),
			JobID:  jobID,
			Lo:     start,
			Hi:     end,
			Status: model.ChunkPending,
		})
		start = end + 1
	}
	return chunks
}

// MarkDone transitions job to DONE. If plaintext is non-empty it is stored
// on the job and cached; NOT_FOUND (empty plaintext) is never cached.
func (m *Manager) MarkDone(job *model.Job, plaintext string) {
	job.Status = model.JobDone
	if plaintext != "" {
		job.Plaintext = plaintext
		job.HasResult = true
		m.cache.Put(job.Hash, plaintext)
	}
}

// MarkFailed transitions job to FAILED.
func (m *Manager) MarkFailed(job *model.Job) {
	job.Status = model.JobFailed
}
