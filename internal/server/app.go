// Package server initializes and runs the row-store service. It opens the
// database, applies migrations, and serves the table API over HTTP with
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/carnetapp/carnet/internal/logging"
	"github.com/carnetapp/carnet/internal/server/config"
	"github.com/carnetapp/carnet/internal/server/httpapi"
	"github.com/carnetapp/carnet/internal/server/migrations"
	"github.com/carnetapp/carnet/internal/server/store"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *http.Server
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	handler := httpapi.NewHandler(store.New(db), logger, []byte(c.SecretKey))

	srv := &http.Server{
		Addr:    c.Addr,
		Handler: handler.Router(),
	}

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Run starts the service and blocks until the context is cancelled, a
// termination signal arrives, or the server fails.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "starting row store", "addr", app.config.Addr)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info(ctx, "shutdown signal received", "signal", sig.String())
		return app.Shutdown()
	case <-ctx.Done():
		return app.Shutdown()
	}

	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (app *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error(ctx, "graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error(ctx, "error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
		return err
	}

	app.logger.Info(ctx, "row store stopped")
	return nil
}
