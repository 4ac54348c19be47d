// Package web parses web command flags and starts the web service.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/navecho/internal/platform/cmd"
	"github.com/louisbranch/navecho/internal/platform/logging"
	"github.com/louisbranch/navecho/internal/platform/otel"
	"github.com/louisbranch/navecho/internal/services/web"
	"go.uber.org/zap"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr      string        `env:"NAVECHO_WEB_HTTP_ADDR"     envDefault:"localhost:8080"`
	HTMXScriptURL string        `env:"NAVECHO_WEB_HTMX_URL"      envDefault:"https://unpkg.com/htmx.org@2.0.4"`
	ViewIdleTTL   time.Duration `env:"NAVECHO_WEB_VIEW_IDLE_TTL" envDefault:"30m"`
	MaxViews      int           `env:"NAVECHO_WEB_MAX_VIEWS"     envDefault:"10000"`
	Log           logging.Options
	Telemetry     otel.Options
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.HTMXScriptURL, "htmx-url", cfg.HTMXScriptURL, "HTMX script URL; empty disables live echo")
	fs.DurationVar(&cfg.ViewIdleTTL, "view-idle-ttl", cfg.ViewIdleTTL, "discard home page views idle for this long")
	fs.IntVar(&cfg.MaxViews, "max-views", cfg.MaxViews, "maximum number of mounted home page views")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "log format (json, console)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.ViewIdleTTL <= 0 {
		return errors.New("view idle ttl must be positive")
	}
	if c.MaxViews <= 0 {
		return errors.New("max views must be positive")
	}
	return nil
}

// NewLogger builds the process logger for cfg.
func NewLogger(cfg Config) (*zap.Logger, error) {
	opts := cfg.Log
	opts.Service = entrypoint.ServiceWeb
	return logging.New(opts)
}

// Run starts the web server and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) error {
	logger = logging.OrNop(logger)
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, entrypoint.RunOptions{
		Telemetry: cfg.Telemetry,
		Logger:    logger,
	}, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:      cfg.HTTPAddr,
			HTMXScriptURL: cfg.HTMXScriptURL,
			ViewIdleTTL:   cfg.ViewIdleTTL,
			MaxViews:      cfg.MaxViews,
			Logger:        logger,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
