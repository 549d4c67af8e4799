// Package app assembles the service: database, repositories, use cases, HTTP
// router and the background reconciler.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prasetyadi/volley-club/internal/config"
	"github.com/prasetyadi/volley-club/internal/infrastructure/repository/postgres"
	"github.com/prasetyadi/volley-club/internal/interfaces/httpapi"
	"github.com/prasetyadi/volley-club/internal/platform/logging"
	"github.com/prasetyadi/volley-club/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// App holds the wired components and owns their shutdown order.
type App struct {
	Server     *http.Server
	Reconciler *usecase.ReconcileService

	db     *sqlx.DB
	logger *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	// Schema creation failing is not fatal: a deployment that manages the
	// schema through the migration CLI may not grant DDL to the service
	// user. Requests fail individually if the tables truly are missing.
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		logger.Error("ensure schema failed, continuing startup", "error", err)
	}

	playerRepo := postgres.NewPlayerRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	playerSvc := usecase.NewPlayerService(playerRepo)
	sessionSvc := usecase.NewSessionService(playerRepo, sessionRepo)
	dashboardSvc := usecase.NewDashboardService(playerRepo, sessionRepo)
	reconciler := usecase.NewReconcileService(playerRepo, sessionRepo, cfg.RecountConcurrency, logger)

	handler := httpapi.NewHandler(playerSvc, sessionSvc, dashboardSvc, cfg.AppEnv, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.StaticDir)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:     server,
		Reconciler: reconciler,
		db:         db,
		logger:     logger,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("postgres", cfg.DBURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	return db, nil
}
