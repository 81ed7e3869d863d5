// Package server wires configuration, storage, services and the gRPC
// endpoint together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/todolist/internal/logging"
	"github.com/dmitrijs2005/todolist/internal/server/config"
	"github.com/dmitrijs2005/todolist/internal/server/ratelimit"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todolist/internal/server/services"

	gs "github.com/dmitrijs2005/todolist/internal/server/grpc"
)

// openRepositories is a seam for tests.
var openRepositories = repomanager.Open

type App struct {
	config        *config.Config
	logger        logging.Logger
	repomanager   repomanager.RepositoryManager
	todoService   *services.TodoService
	backupService *services.BackupService
	limiter       *ratelimit.Limiter
}

// NewApp opens storage, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	rm, err := openRepositories(ctx, c.StoreType, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var limiter *ratelimit.Limiter
	if c.RateLimit > 0 {
		limiter = ratelimit.NewLimiter(c.RateLimit, c.RateBurst)
	}

	return &App{
		config:        c,
		logger:        logger,
		repomanager:   rm,
		todoService:   services.NewTodoService(rm),
		backupService: services.NewBackupService(rm, c),
		limiter:       limiter,
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.todoService, app.backupService, app.limiter)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

type uploader interface {
	Upload(ctx context.Context) (string, error)
}

// runBackups uploads a snapshot every interval until ctx is done. Failures
// are logged and retried on the next tick.
func (app *App) runBackups(ctx context.Context, u uploader, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			key, err := u.Upload(ctx)
			if err != nil {
				app.logger.Error(ctx, "backup failed", "error", err)
				continue
			}
			app.logger.Info(ctx, "backup stored", "key", key)
		}
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases storage.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.StoreType)

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.BackupInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.runBackups(ctx, app.backupService, app.config.BackupInterval)
		}()
	}

	wg.Wait()

	if app.limiter != nil {
		app.limiter.Close()
	}
	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(context.Background(), "storage close failed", "error", err)
	}
	app.logger.Info(context.Background(), "Stopped")
}
