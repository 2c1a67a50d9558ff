package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"shortforge/internal/adapter/repo"
	"shortforge/internal/domain"
	"shortforge/internal/http/handlers"
	"shortforge/internal/http/httpapi"
	"shortforge/internal/infra"
	"shortforge/internal/infra/geoip"
	"shortforge/internal/middleware"
	"shortforge/internal/pipeline"
	"shortforge/internal/providers/script"
	"shortforge/internal/providers/videogen"
	"shortforge/internal/service"
	"shortforge/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := newJobStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure job store")
	}
	defer cleanup()

	fileStore, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure artifact storage")
	}

	scriptGen, err := script.NewHFGenerator(script.HFOptions{
		Token:      cfg.HFToken,
		Model:      cfg.ScriptModel,
		BaseURL:    cfg.ScriptBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.ScriptTimeout},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure script generator")
	}

	videoGen, err := videogen.NewNovitaGenerator(videogen.NovitaOptions{
		Token:      cfg.HFToken,
		Model:      cfg.VideoModel,
		BaseURL:    cfg.VideoBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.VideoTimeout},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure video generator")
	}

	executor := pipeline.NewExecutor(store, scriptGen, videoGen, fileStore, logger)
	jobs := service.NewJobs(store, fileStore, executor, logger)
	app := handlers.NewApp(jobs, logger)

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	var lookup middleware.CountryLookup
	if resolver != nil {
		defer func() {
			if closer, ok := resolver.(*geoip.Resolver); ok {
				_ = closer.Close()
			}
		}()
		lookup = resolver.CountryCode
	}

	router := httpapi.NewRouter(app, logger, lookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// newJobStore selects the durable store when DATABASE_URL is configured and
// falls back to the in-memory store otherwise.
func newJobStore(ctx context.Context, cfg *infra.Config) (domain.JobStore, func(), error) {
	if cfg.DatabaseURL == "" {
		return repo.NewJobStoreMemory(), func() {}, nil
	}
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	store := repo.NewJobStorePG(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return store, pool.Close, nil
}
