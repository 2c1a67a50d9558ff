package service

import (
	"context"
	"fmt"
	"strings"

	"shortforge/internal/domain"
	"shortforge/internal/infra"
	"shortforge/internal/pipeline"
	"shortforge/internal/storage"
)

// SubmitRequest carries the validated inputs for one generation job.
type SubmitRequest struct {
	Topic         string
	LengthSeconds int
	AspectRatio   string
	BaseURL       string
}

// Jobs is the façade the transport layer talks to: it creates jobs,
// dispatches pipeline execution asynchronously, answers status queries, and
// resolves artifact names to stored bytes.
type Jobs struct {
	store  domain.JobStore
	blobs  storage.BlobStore
	exec   *pipeline.Executor
	logger infra.Logger
}

// NewJobs wires the job service.
func NewJobs(store domain.JobStore, blobs storage.BlobStore, exec *pipeline.Executor, logger infra.Logger) *Jobs {
	return &Jobs{store: store, blobs: blobs, exec: exec, logger: logger}
}

// Submit validates the request, creates a queued job record, and hands the
// job to a goroutine running the pipeline. It returns the identifier without
// waiting on any pipeline work. The goroutine runs on a detached context so
// the job outlives the submitting HTTP request.
func (s *Jobs) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return "", fmt.Errorf("%w: missing topic", domain.ErrInvalidInput)
	}
	if req.LengthSeconds <= 0 {
		return "", fmt.Errorf("%w: video_length must be a positive integer", domain.ErrInvalidInput)
	}
	ratio := strings.TrimSpace(req.AspectRatio)
	if ratio == "" {
		ratio = "9:16"
	}

	id, err := s.store.Create(ctx)
	if err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}

	params := pipeline.Params{
		Topic:         topic,
		LengthSeconds: req.LengthSeconds,
		AspectRatio:   ratio,
		BaseURL:       strings.TrimRight(req.BaseURL, "/"),
	}
	go s.exec.Run(context.Background(), id, params)

	s.logger.Info().Str("job_id", id).Str("topic", topic).Msg("jobs: submitted")
	return id, nil
}

// Status is a pure read-through to the job store.
func (s *Jobs) Status(ctx context.Context, id string) (*domain.Job, error) {
	return s.store.Get(ctx, id)
}

// Artifact is a pure read-through to the blob store.
func (s *Jobs) Artifact(ctx context.Context, name string) ([]byte, error) {
	return s.blobs.Fetch(ctx, name)
}
