// Package server initializes and runs the application server. It probes the
// primary store once at startup, degrades to the fallback repository manager
// when the probe fails, wires the backup mirror and the services, and serves
// the HTTP API with graceful shutdown.
package server

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

	"github.com/msavelyev/notedesk/internal/server/backup"
	"github.com/msavelyev/notedesk/internal/server/config"
	"github.com/msavelyev/notedesk/internal/server/httpapi"
	"github.com/msavelyev/notedesk/internal/server/services"
	"github.com/msavelyev/notedesk/internal/server/sessions"
	"github.com/msavelyev/notedesk/internal/server/shared/db"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      *slog.Logger
	router      *httpapi.Router
	userService *services.UserService
	noteService *services.NoteService
	calcService *services.CalcService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Single reachability probe. On failure the process keeps running in
	// fallback mode: reads empty, writes dropped, no later recovery.
	manager, err := db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Warn("primary store unreachable, entering fallback mode", "error", err)
		manager = db.NewFallbackRepositoryManager()
	}

	mirror, err := backup.NewS3Mirror(ctx, backup.Options{
		Region:       cfg.S3Region,
		Bucket:       cfg.S3Bucket,
		BaseEndpoint: cfg.S3BaseEndpoint,
		RootUser:     cfg.S3RootUser,
		RootPassword: cfg.S3RootPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("mirror init error: %w", err)
	}

	us := services.NewUserService(manager.Users())
	ns := services.NewNoteService(manager.Notes(), mirror)
	cs := services.NewCalcService(manager.CalcHistory(), mirror)

	sm := sessions.NewManager(cfg.SecretKey, cfg.SessionValidityDuration)
	router := httpapi.NewRouter(logger, sm, ns, cs, us)

	return &App{
		config:      cfg,
		logger:      logger,
		router:      router,
		userService: us,
		noteService: ns,
		calcService: cs,
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

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info("starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	server := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("server error", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("shutdown error", "error", err)
	}
}
