// Package server wires configuration, storage, services and the HTTP API
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/notebook/internal/dbx"
	"github.com/dmitrijs2005/notebook/internal/logging"
	"github.com/dmitrijs2005/notebook/internal/server/auth"
	"github.com/dmitrijs2005/notebook/internal/server/config"
	"github.com/dmitrijs2005/notebook/internal/server/httpapi"
	"github.com/dmitrijs2005/notebook/internal/server/objectstore"
	"github.com/dmitrijs2005/notebook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notebook/internal/server/services"
	"github.com/gin-gonic/gin"
)

// logOutput is where the application logger writes.
var logOutput io.Writer = os.Stdout

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(logOutput, c.LogLevel)

	db, rm, tx, err := openStore(ctx, c)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokenService(c.SecretKey, c.TokenValidityDuration)
	us := services.NewUserService(tx, rm, auth.NewBcryptHasher(c.BcryptCost), tokens)
	ns := services.NewNoteService(tx, rm)

	svc := httpapi.Services{Users: us, Notes: ns}

	if c.ExportsEnabled() {
		store, err := objectstore.New(ctx, objectstore.Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			closeDB(db)
			return nil, fmt.Errorf("object store init error: %w", err)
		}
		svc.Archive = services.NewArchiveService(ns, store)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := httpapi.NewServer(c.HTTPAddr, c.ShutdownTimeout, logger, tokens, svc)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

// openStore picks the in-memory store for config.MemoryDSN and PostgreSQL
// otherwise. For PostgreSQL the schema is migrated before returning.
func openStore(ctx context.Context, c *config.Config) (*sql.DB, repomanager.RepositoryManager, dbx.Transactor, error) {
	if c.DatabaseDSN == config.MemoryDSN {
		return nil, repomanager.NewMemoryRepositoryManager(), dbx.NopTransactor{}, nil
	}

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("db init error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		closeDB(db)
		return nil, nil, nil, fmt.Errorf("db connect error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		closeDB(db)
		return nil, nil, nil, fmt.Errorf("db migration error: %w", err)
	}

	return db, rm, dbx.NewSQLTransactor(db), nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.HTTPAddr, "memory_store", app.db == nil)

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "server error", "error", err.Error())
	}

	closeDB(app.db)
	app.logger.Info(context.Background(), "App stopped")

	return err
}
