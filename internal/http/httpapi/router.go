package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"shortforge/internal/http/handlers"
	"shortforge/internal/infra"
	"shortforge/internal/middleware"
)

// NewRouter assembles the HTTP surface: submission, polling, and artifact
// download, behind the shared middleware chain.
func NewRouter(app *handlers.App, logger infra.Logger, lookup middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(logger, lookup),
	)

	r.Get("/v1/healthz", app.Health)

	r.Post("/generate", app.Generate)
	r.Get("/status/{job_id}", app.Status)
	r.Get("/download/{artifact_name}", app.Download)

	return r
}
