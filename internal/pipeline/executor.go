package pipeline

import (
	"context"
	"fmt"
	"strings"

	"shortforge/internal/domain"
	"shortforge/internal/infra"
	"shortforge/internal/providers/script"
	"shortforge/internal/providers/videogen"
	"shortforge/internal/storage"
)

// Params are the job inputs the pipeline needs beyond the record itself.
type Params struct {
	Topic         string
	LengthSeconds int
	AspectRatio   string
	BaseURL       string
}

// Executor drives one job from queued to a terminal state: script generation,
// then video generation, then artifact persistence. The first failing stage
// terminates the job as error without attempting later stages; no stage is
// retried.
type Executor struct {
	store  domain.JobStore
	script script.Generator
	video  videogen.Generator
	blobs  storage.BlobStore
	logger infra.Logger
}

// NewExecutor wires the executor's collaborators.
func NewExecutor(store domain.JobStore, scriptGen script.Generator, videoGen videogen.Generator, blobs storage.BlobStore, logger infra.Logger) *Executor {
	return &Executor{
		store:  store,
		script: scriptGen,
		video:  videoGen,
		blobs:  blobs,
		logger: logger,
	}
}

// Run executes the pipeline for the given job. It never returns an error:
// every failure, including a panic, is trapped here and recorded on the job
// record so the spawning goroutine cannot crash the process or leave the
// record stuck in processing.
func (e *Executor) Run(ctx context.Context, jobID string, p Params) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Str("job_id", jobID).Interface("panic", r).Msg("pipeline: recovered panic")
			e.fail(ctx, jobID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	e.transition(ctx, jobID, domain.JobStatusProcessing)
	e.logger.Info().Str("job_id", jobID).Str("topic", p.Topic).Msg("pipeline: started")

	prompt := script.BuildPrompt(p.Topic, p.LengthSeconds)
	scriptRes, err := e.script.Generate(ctx, script.Request{Prompt: prompt})
	if err != nil {
		e.logger.Error().Err(err).Str("job_id", jobID).Msg("pipeline: script generation failed")
		e.fail(ctx, jobID, err.Error())
		return
	}
	if err := e.store.Update(ctx, jobID, domain.JobMutation{Script: &scriptRes.Text}); err != nil {
		e.logger.Warn().Err(err).Str("job_id", jobID).Msg("pipeline: record script failed")
	}

	instruction := videogen.BuildInstruction(scriptRes.Text, p.AspectRatio, p.LengthSeconds)
	media, err := e.video.Generate(ctx, videogen.Request{Instruction: instruction})
	if err != nil {
		e.logger.Error().Err(err).Str("job_id", jobID).Msg("pipeline: video generation failed")
		e.fail(ctx, jobID, err.Error())
		return
	}

	artifactName, err := e.blobs.Store(ctx, media.Data)
	if err != nil {
		e.logger.Error().Err(err).Str("job_id", jobID).Msg("pipeline: artifact persistence failed")
		e.fail(ctx, jobID, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err).Error())
		return
	}

	done := domain.JobStatusDone
	downloadURL := DownloadURL(p.BaseURL, artifactName)
	if err := e.store.Update(ctx, jobID, domain.JobMutation{
		Status:      &done,
		ArtifactID:  &artifactName,
		DownloadURL: &downloadURL,
	}); err != nil {
		e.logger.Error().Err(err).Str("job_id", jobID).Msg("pipeline: record completion failed")
		return
	}
	e.logger.Info().Str("job_id", jobID).Str("artifact", artifactName).Msg("pipeline: done")
}

func (e *Executor) transition(ctx context.Context, jobID string, status domain.JobStatus) {
	if err := e.store.Update(ctx, jobID, domain.JobMutation{Status: &status}); err != nil {
		e.logger.Warn().Err(err).Str("job_id", jobID).Str("status", string(status)).Msg("pipeline: status update failed")
	}
}

func (e *Executor) fail(ctx context.Context, jobID, message string) {
	failed := domain.JobStatusError
	if err := e.store.Update(ctx, jobID, domain.JobMutation{Status: &failed, Message: &message}); err != nil {
		e.logger.Error().Err(err).Str("job_id", jobID).Msg("pipeline: record failure failed")
	}
}

// DownloadURL joins the base retrieval URL with the artifact name. The base
// is the scheme and host as seen by the server, trailing slash stripped.
func DownloadURL(baseURL, artifactName string) string {
	return strings.TrimRight(baseURL, "/") + "/download/" + artifactName
}
