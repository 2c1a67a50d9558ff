package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shortforge/internal/domain"
)

type statusResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	DownloadURL string `json:"download_url"`
	Script      string `json:"script"`
}

// Status returns the current job record. Pipeline failures surface here as
// status "error" with a message, not as HTTP-level errors.
func (a *App) Status(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	job, err := a.Jobs.Status(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "job_id not found")
			return
		}
		a.Logger.Error().Err(err).Str("job_id", jobID).Msg("handlers: status lookup failed")
		a.error(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	a.json(w, http.StatusOK, statusResponse{
		Status:      string(job.Status),
		Message:     job.Message,
		DownloadURL: job.DownloadURL,
		Script:      job.Script,
	})
}
