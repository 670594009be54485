// Package main is the entrypoint for the HireBoard API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hireboard/hireboard/internal/api"
	"github.com/hireboard/hireboard/internal/api/handler"
	mw "github.com/hireboard/hireboard/internal/api/middleware"
	"github.com/hireboard/hireboard/internal/api/response"
	"github.com/hireboard/hireboard/internal/cache"
	"github.com/hireboard/hireboard/internal/config"
	"github.com/hireboard/hireboard/internal/session"
	"github.com/hireboard/hireboard/internal/storage"
	"github.com/hireboard/hireboard/internal/store"
	"github.com/hireboard/hireboard/internal/telemetry"
	"github.com/hireboard/hireboard/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "backend", cfg.Server.StoreBackend, "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Create the store
	st, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// 3. Create Redis cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("create redis cache: %w", err)
	}
	defer redisCache.Close()

	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis connected")

	// 4. Resume storage
	uploader, err := storage.NewUploader(ctx, cfg.Resume)
	if err != nil {
		return fmt.Errorf("create resume uploader: %w", err)
	}

	// 5. Bootstrap the first admin account
	if err := bootstrapAdmin(ctx, st, cfg.Admin); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	// 6. Sessions
	sessions := session.NewManager(st, redisCache, cfg.Session.TTL)

	// 7. Build router with dependencies
	deps := api.Dependencies{
		Auth:      mw.NewAuth(sessions),
		RateLimit: mw.NewRateLimit(redisCache, cfg.Server.RateLimitPerMin),

		HealthHandler:  healthHandler(st, redisCache),
		MetricsHandler: telemetry.Handler(),

		LoginHandler:  handler.NewLoginHandler(sessions),
		LogoutHandler: handler.NewLogoutHandler(sessions),

		ListPublishedJobs: handler.NewListPublishedJobsHandler(st),
		GetJob:            handler.NewGetJobHandler(st),
		ApplyHandler:      handler.NewApplyHandler(st, uploader, cfg.Resume.MaxSizeMB),

		CreateJob:       handler.NewCreateJobHandler(st),
		ListCompanyJobs: handler.NewListCompanyJobsHandler(st),
		UpdateJob:       handler.NewUpdateJobHandler(st),
		DeleteJob:       handler.NewDeleteJobHandler(st),
		PublishJob:      handler.NewPublishJobHandler(st),
		CloseJob:        handler.NewCloseJobHandler(st),

		ListCandidates:       handler.NewListCandidatesHandler(st),
		ExportCandidates:     handler.NewExportCandidatesHandler(st),
		GetCandidate:         handler.NewGetCandidateHandler(st),
		UpdateCandidateStage: handler.NewUpdateCandidateStatusHandler(st),
		UpdateEvaluation:     handler.NewUpdateCandidateEvaluationHandler(st),
		Stats:                handler.NewStatsHandler(st),
	}

	router := api.NewRouter(deps)

	// 8. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// newStore builds the configured backend: postgres for real deployments,
// the seeded in-memory store for demo mode.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.Server.StoreBackend == config.BackendMemory {
		mem := store.NewMemoryStore()
		if err := mem.SeedDemo(ctx); err != nil {
			return nil, nil, fmt.Errorf("seed demo data: %w", err)
		}
		slog.Info("memory store seeded with demo data")
		return mem, func() {}, nil
	}

	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	slog.Info("database connected")

	if err := store.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsDir); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")

	return store.NewPostgresStore(pool), pool.Close, nil
}

// bootstrapAdmin creates the configured admin account if it does not exist.
func bootstrapAdmin(ctx context.Context, st store.Store, cfg config.AdminConfig) error {
	if cfg.Email == "" {
		return nil
	}

	if _, err := st.GetUserByEmail(ctx, cfg.Email); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = st.CreateUser(ctx, &models.User{
		Email:        cfg.Email,
		Name:         cfg.Name,
		Role:         "admin",
		PasswordHash: string(hash),
	})
	if err != nil && !errors.Is(err, store.ErrDuplicateKey) {
		return err
	}

	slog.Info("admin account ready", "email", cfg.Email)
	return nil
}

// healthHandler checks store and cache connectivity.
func healthHandler(s store.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"store": "ok",
			"cache": "ok",
		}

		if err := s.Ping(r.Context()); err != nil {
			checks["store"] = "degraded"
		}
		if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}

		degraded := checks["store"] != "ok" || checks["cache"] != "ok"
		if degraded {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
