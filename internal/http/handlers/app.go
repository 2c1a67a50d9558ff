package handlers

import (
	"encoding/json"
	"net/http"

	"shortforge/internal/infra"
	"shortforge/internal/service"
)

// App bundles the dependencies shared by the HTTP handlers.
type App struct {
	Jobs   *service.Jobs
	Logger infra.Logger
}

// NewApp creates the handler container.
func NewApp(jobs *service.Jobs, logger infra.Logger) *App {
	return &App{Jobs: jobs, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, map[string]any{"status": "error", "message": message})
}

// Health reports service liveness.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"status": "ok"})
}
