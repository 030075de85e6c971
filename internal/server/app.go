// Package server initializes and runs the authentication backend. It wires
// the database, repositories, OTAC verifier, delivery channel and login
// service together, then serves the HTTP API until shut down.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/banksim/internal/delivery"
	"github.com/dmitrijs2005/banksim/internal/httpapi"
	"github.com/dmitrijs2005/banksim/internal/logging"
	"github.com/dmitrijs2005/banksim/internal/otac"
	"github.com/dmitrijs2005/banksim/internal/server/config"
	"github.com/dmitrijs2005/banksim/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/banksim/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	repos      repomanager.RepositoryManager
	httpServer *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	gen, err := otac.NewGenerator(cfg.OtacLength, cfg.OtacStep.Milliseconds())
	if err != nil {
		return nil, fmt.Errorf("otac init error: %w", err)
	}
	verifier := otac.NewVerifier(gen, cfg.OtacStepWindow)

	sender := delivery.NewLogSender(logger)
	loginService := services.NewLoginService(db, rm, verifier, sender, logger, cfg)
	httpServer := httpapi.NewServer(loginService, logger, cfg)

	return &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		repos:      rm,
		httpServer: httpServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.httpServer.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "http shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "listening", "addr", app.config.EndpointAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migration error", "error", err)
		return
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
