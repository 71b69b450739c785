// Package app wires the verification flows to their dependencies and drives
// the interactive console front end.
package app

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/scanme/authflow/internal/pkg/clock"
	"github.com/scanme/authflow/internal/pkg/config"
	"github.com/scanme/authflow/internal/pkg/goroutine"
	"github.com/scanme/authflow/internal/pkg/instrument"
	"github.com/scanme/authflow/internal/pkg/uid"
	"github.com/scanme/authflow/internal/pkg/validator"
	"github.com/scanme/authflow/internal/verification/outbound/api"
	"github.com/scanme/authflow/internal/verification/outbound/state"
	"github.com/scanme/authflow/internal/verification/usecase"
)

// App wires dependencies and manages the process lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uid       uid.NumberID
	uuid      uid.StringID

	// resources
	cacheConn *redis.Client
	store     state.Store
	api       *api.Client

	// core
	usecase *usecase.Usecase
	console *Console

	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initStateStore()
	app.initOutbound()
	app.initUsecase()
	app.initConsole()
	app.initClosers()

	return app
}

// Run drives the console until the user quits or the context is canceled.
func (a *App) Run() error {
	return a.console.Run(a.ctx)
}

// Stop shuts everything down in reverse dependency order.
func (a *App) Stop(ctx context.Context) {
	a.cancel()

	if err := a.goroutine.Wait(); err != nil {
		slog.Error("background tasks finished with errors", "error", err)
	}

	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.Error("failed to close resource", "name", closer.name, "error", err)
		}
	}
}
