package repo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shortforge/internal/domain"
)

// JobStoreMemory implements domain.JobStore on a mutex-guarded map. It is the
// default backend: jobs are not expected to survive a process restart. The
// lock is held only for map access, never across a blocking call.
type JobStoreMemory struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

// NewJobStoreMemory creates an empty in-memory job store.
func NewJobStoreMemory() *JobStoreMemory {
	return &JobStoreMemory{jobs: make(map[string]*domain.Job)}
}

// Create inserts a queued job under a fresh identifier.
func (s *JobStoreMemory) Create(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := NewJobID()
	now := time.Now().UTC()
	s.mu.Lock()
	s.jobs[id] = &domain.Job{
		ID:        id,
		Status:    domain.JobStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Unlock()
	return id, nil
}

// Get returns a snapshot copy of the job, or domain.ErrNotFound.
func (s *JobStoreMemory) Get(ctx context.Context, id string) (*domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	job, ok := s.jobs[id]
	if !ok {
		s.mu.RUnlock()
		return nil, domain.ErrNotFound
	}
	snapshot := *job
	s.mu.RUnlock()
	return &snapshot, nil
}

// Update applies the mutation under the write lock. Unknown identifiers
// return domain.ErrNotFound; mutations against a terminal job are dropped so
// that done and error remain final.
func (s *JobStoreMemory) Update(ctx context.Context, id string, mut domain.JobMutation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if job.Status.Terminal() {
		return nil
	}
	if mut.Status != nil {
		job.Status = *mut.Status
	}
	if mut.Message != nil {
		job.Message = *mut.Message
	}
	if mut.Script != nil {
		job.Script = *mut.Script
	}
	if mut.ArtifactID != nil {
		job.ArtifactID = *mut.ArtifactID
	}
	if mut.DownloadURL != nil {
		job.DownloadURL = *mut.DownloadURL
	}
	job.UpdatedAt = time.Now().UTC()
	return nil
}

// NewJobID allocates a 128-bit random identifier rendered as 32 hex
// characters, matching the artifact naming convention.
func NewJobID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

var _ domain.JobStore = (*JobStoreMemory)(nil)
