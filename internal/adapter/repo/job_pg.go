package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shortforge/internal/domain"
)

// JobStorePG implements domain.JobStore on PostgreSQL. It is selected when
// DATABASE_URL is configured and gives jobs durability across restarts with
// the same contract as the in-memory store.
type JobStorePG struct {
	pool *pgxpool.Pool
}

// NewJobStorePG creates a job store backed by the given pool.
func NewJobStorePG(pool *pgxpool.Pool) *JobStorePG {
	return &JobStorePG{pool: pool}
}

// EnsureSchema creates the jobs table when it does not exist yet.
func (s *JobStorePG) EnsureSchema(ctx context.Context) error {
	query := `
CREATE TABLE IF NOT EXISTS jobs (
    id           TEXT PRIMARY KEY,
    status       TEXT NOT NULL,
    message      TEXT NOT NULL DEFAULT '',
    script       TEXT NOT NULL DEFAULT '',
    artifact_id  TEXT NOT NULL DEFAULT '',
    download_url TEXT NOT NULL DEFAULT '',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure jobs schema: %w", err)
	}
	return nil
}

// Create inserts a queued job and returns its identifier.
func (s *JobStorePG) Create(ctx context.Context) (string, error) {
	id := NewJobID()
	query := `
INSERT INTO jobs (id, status)
VALUES ($1, $2);
`
	if _, err := s.pool.Exec(ctx, query, id, domain.JobStatusQueued); err != nil {
		return "", fmt.Errorf("insert job: %w", err)
	}
	return id, nil
}

// Get fetches a job by its identifier.
func (s *JobStorePG) Get(ctx context.Context, id string) (*domain.Job, error) {
	query := `
SELECT id, status, message, script, artifact_id, download_url, created_at, updated_at
FROM jobs
WHERE id = $1;
`
	row := s.pool.QueryRow(ctx, query, id)
	var job domain.Job
	if err := row.Scan(
		&job.ID,
		&job.Status,
		&job.Message,
		&job.Script,
		&job.ArtifactID,
		&job.DownloadURL,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// Update applies the mutation in a single statement. The status guard keeps
// terminal rows immutable; updating an unknown identifier reports
// domain.ErrNotFound so callers can log it.
func (s *JobStorePG) Update(ctx context.Context, id string, mut domain.JobMutation) error {
	query := `
UPDATE jobs
SET status       = COALESCE($2, status),
    message      = COALESCE($3, message),
    script       = COALESCE($4, script),
    artifact_id  = COALESCE($5, artifact_id),
    download_url = COALESCE($6, download_url),
    updated_at   = NOW()
WHERE id = $1
  AND status NOT IN ('done', 'error');
`
	tag, err := s.pool.Exec(ctx, query,
		id,
		nullableStatus(mut.Status),
		mut.Message,
		mut.Script,
		mut.ArtifactID,
		mut.DownloadURL,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := s.Get(ctx, id); errors.Is(getErr, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
	}
	return nil
}

func nullableStatus(s *domain.JobStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

var _ domain.JobStore = (*JobStorePG)(nil)
