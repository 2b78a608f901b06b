// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/bariskaantoprak-ui/ITSO/internal/auth"
	"github.com/bariskaantoprak-ui/ITSO/internal/commands"
	"github.com/bariskaantoprak-ui/ITSO/internal/config"
	"github.com/bariskaantoprak-ui/ITSO/internal/database"
	"github.com/bariskaantoprak-ui/ITSO/internal/genai"
	"github.com/bariskaantoprak-ui/ITSO/internal/handler"
	"github.com/bariskaantoprak-ui/ITSO/internal/logger"
	"github.com/bariskaantoprak-ui/ITSO/internal/repository"
	"github.com/bariskaantoprak-ui/ITSO/internal/seed"
	"github.com/bariskaantoprak-ui/ITSO/internal/service"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		commands.HashPassword(os.Args[2:])
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Init(logger.Option{Level: cfg.LogLevel})
	defer logger.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx := context.Background()

	data, err := seed.Load()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	// ── 1. Storage ────────────────────────────────────────────────────────
	var (
		events        service.EventStore
		registrations service.RegistrationStore
	)
	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}

		eventRepo := repository.NewEventRepository(pool)
		n, err := eventRepo.Seed(ctx, data.Events)
		if err != nil {
			return fmt.Errorf("seed events: %w", err)
		}
		log.Info("connected to PostgreSQL",
			zap.String("host", cfg.Database.Host),
			zap.Int("seeded", n),
		)
		events = eventRepo
		registrations = repository.NewRegistrationRepository(pool)
	default:
		store := repository.NewMemoryStore(data.Events)
		log.Info("using in-memory storage", zap.Int("events", len(data.Events)))
		events, registrations = store, store
	}

	// ── 2. Wire up layers ────────────────────────────────────────────────
	svc := service.NewEventService(
		events,
		registrations,
		repository.NewCompanyDirectory(data.Companies),
		cfg.DefaultCapacity,
	)
	authn, err := auth.NewAuthenticator(
		cfg.Admin.Email,
		cfg.Admin.PasswordHash,
		cfg.Admin.SessionSecret,
		cfg.Admin.SessionTTL,
	)
	if err != nil {
		return err
	}
	if cfg.Admin.PasswordHash == "" {
		log.Warn("ADMIN_PASSWORD_HASH not set; admin login disabled")
	}
	ai := genai.New(cfg.GenAI)
	if !ai.Enabled() {
		log.Warn("GENAI_API_KEY not set; content assistant returns placeholders")
	}

	router := handler.NewRouter(handler.Deps{
		Service:   svc,
		Auth:      authn,
		Assistant: ai,
		Location:  cfg.Location,
	})

	// ── 3. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // image generation is slow
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("timezone", cfg.Location.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
