package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/adapter/postgres"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/adapter/postgres/activity"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/adapter/postgres/client"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/adapter/postgres/employee"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/adapter/postgres/removal"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/auth"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/config"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/service/assignments"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/service/dashboard"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/service/directory"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/service/documents"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/service/notes"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/transport/middleware"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, applies pending migrations, wires repositories, services,
// and the HTTP transport, then serves until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := migrate(cfg.Database, logger); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	// Repositories
	clientRepo := client.New(pool)
	employeeRepo := employee.New(pool)
	removalRepo := removal.New(pool)
	activityRepo := activity.New(pool)
	txManager := postgres.NewTxManager(pool)

	// Services
	directorySvc := directory.NewService(logger, clientRepo, employeeRepo, activityRepo)
	documentsSvc := documents.NewService(logger, clientRepo, activityRepo)
	notesSvc := notes.NewService(logger, clientRepo, activityRepo, cfg.Dashboard.ClientPageSize)
	assignmentsSvc := assignments.NewService(logger, clientRepo, employeeRepo, removalRepo, activityRepo, txManager)
	dashboardSvc := dashboard.NewService(logger, clientRepo, employeeRepo, cfg.Dashboard)

	// Transport
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAccessTTL)
	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := rest.NewRouter(rest.Handlers{
		Health:      rest.NewHealthHandler(pool, BuildVersion()),
		Directory:   rest.NewDirectoryHandler(directorySvc, logger),
		Documents:   rest.NewDocumentsHandler(documentsSvc, logger),
		Notes:       rest.NewNotesHandler(notesSvc, logger),
		Assignments: rest.NewAssignmentsHandler(assignmentsSvc, logger),
		Dashboard:   rest.NewDashboardHandler(dashboardSvc, logger),
	}, jwtManager, limiter, cfg, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// migrate applies pending goose migrations from the configured directory.
// A missing directory is not an error so deployments can run migrations
// out-of-band.
func migrate(cfg config.DatabaseConfig, logger *slog.Logger) error {
	if _, err := os.Stat(cfg.MigrationsDir); err != nil {
		logger.Warn("migrations directory not found, skipping", slog.String("dir", cfg.MigrationsDir))
		return nil
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(db, cfg.MigrationsDir); err != nil {
		return err
	}

	logger.Info("migrations applied", slog.String("dir", cfg.MigrationsDir))
	return nil
}
