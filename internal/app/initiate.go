package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

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

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "/config/config.yaml"
		if os.Getenv("LOCAL") == "true" {
			path = "./config/config.yaml"
		}
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.max_goroutine"))

	v10, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = v10

	snow, err := uid.NewSnowflake()
	if err != nil {
		slog.Error("failed to init uid number snowflake", "error", err)
		os.Exit(1)
	}
	a.uid = snow
}

func (a *App) initStateStore() {
	switch a.config.GetString("state.driver") {
	case "redis":
		opt, err := redis.ParseURL(a.config.GetString("state.redis.url"))
		if err != nil {
			slog.Error("failed to parse redis url", "error", err)
			os.Exit(1)
		}

		a.cacheConn = redis.NewClient(opt)

		store, err := state.NewRedis(a.ctx, a.cacheConn, a.config.GetHour("state.redis.ttl_hours"))
		if err != nil {
			slog.Error("failed to init redis state store", "error", err)
			os.Exit(1)
		}
		a.store = store

	case "file":
		path := a.config.GetString("state.file.path")
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				slog.Error("failed to resolve home directory", "error", err)
				os.Exit(1)
			}
			path = filepath.Join(home, ".authflow", "state.json")
		}

		store, err := state.NewFile(path)
		if err != nil {
			slog.Error("failed to init file state store", "error", err, "path", path)
			os.Exit(1)
		}
		a.store = store

	default:
		a.store = state.NewMemory()
	}
}

func (a *App) initOutbound() {
	a.api = api.NewClient(
		a.config.GetString("service.base_url"),
		a.config.GetSecond("service.timeout_seconds"),
		a.uuid,
	)
}

func (a *App) initUsecase() {
	a.usecase = usecase.New(usecase.Dependency{
		API:        a.api,
		Store:      a.store,
		Validator:  a.validator,
		Config:     a.config,
		Clock:      a.clock,
		UID:        a.uid,
		Instrument: a.ins,
		Goroutine:  a.goroutine,
	})
}

func (a *App) initConsole() {
	a.console = NewConsole(a.usecase, os.Stdin, os.Stdout)
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Redis",
			fn: func(context.Context) error {
				if a.cacheConn != nil {
					return a.cacheConn.Close()
				}

				return nil
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
