package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"shortforge/internal/domain"
)

// Download streams a stored artifact as an mp4 attachment.
func (a *App) Download(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "artifact_name")
	data, err := a.Jobs.Artifact(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "file not found")
			return
		}
		a.Logger.Error().Err(err).Str("artifact", name).Msg("handlers: artifact fetch failed")
		a.error(w, http.StatusInternalServerError, "failed to load artifact")
		return
	}
	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
