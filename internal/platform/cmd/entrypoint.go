// Package cmd holds startup helpers shared by service commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/louisbranch/navecho/internal/platform/config"
	"github.com/louisbranch/navecho/internal/platform/logging"
	"github.com/louisbranch/navecho/internal/platform/otel"
	"github.com/louisbranch/navecho/internal/platform/timeouts"
	"go.uber.org/zap"
)

// EnvFileVariable names the environment variable that points at an optional
// dotenv file loaded before configuration is parsed.
const EnvFileVariable = "NAVECHO_ENV_FILE"

const defaultEnvFile = ".env"

// Service identifiers for command startup telemetry and CLI naming consistency.
const (
	ServiceWeb = "web"
)

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// Telemetry selects the trace exporter.
	Telemetry otel.Options
	// Logger receives telemetry shutdown failures.
	Logger *zap.Logger
	// ShutdownTimeout sets the timeout used when stopping telemetry.
	ShutdownTimeout time.Duration
}

// ParseConfig loads the optional dotenv file and then environment defaults
// into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	envFile, ok := os.LookupEnv(EnvFileVariable)
	if !ok {
		envFile = defaultEnvFile
	}
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry configures tracing and executes a service run loop.
func RunWithTelemetry(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.OrNop(options.Logger)
	shutdown, err := otel.Setup(ctx, service, options.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownTimeout := options.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = timeouts.TelemetryShutdown
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("otel shutdown", zap.String("service", service), zap.Error(err))
		}
	}()
	return run(ctx)
}
