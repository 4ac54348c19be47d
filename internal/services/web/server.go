// Package web hosts the browser-facing service.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/navecho/internal/platform/logging"
	"github.com/louisbranch/navecho/internal/platform/timeouts"
	"github.com/louisbranch/navecho/internal/services/web/app"
	module "github.com/louisbranch/navecho/internal/services/web/module"
	"github.com/louisbranch/navecho/internal/services/web/modules"
	"github.com/louisbranch/navecho/internal/services/web/platform/httpx"
	"github.com/louisbranch/navecho/internal/services/web/platform/metrics"
	"github.com/louisbranch/navecho/internal/services/web/platform/observability"
	"github.com/louisbranch/navecho/internal/services/web/platform/pagerender"
	"github.com/louisbranch/navecho/internal/services/web/platform/routeinfo"
	"github.com/louisbranch/navecho/internal/services/web/routepath"
	webstatic "github.com/louisbranch/navecho/internal/services/web/static"
	"github.com/louisbranch/navecho/internal/services/web/viewstate"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr      string
	HTMXScriptURL string
	ViewIdleTTL   time.Duration
	MaxViews      int
	Logger        *zap.Logger
	// Tracer overrides the global tracer, mainly for tests.
	Tracer trace.Tracer
}

// Server hosts the web HTTP surface and view sweeper.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	views      *viewstate.Store
	logger     *zap.Logger
}

type wiring struct {
	handler http.Handler
	views   *viewstate.Store
}

// NewHandler builds the root handler with a private view store.
func NewHandler(cfg Config) (http.Handler, error) {
	rt, err := newWiring(cfg)
	if err != nil {
		return nil, err
	}
	return rt.handler, nil
}

func newWiring(cfg Config) (wiring, error) {
	logger := logging.OrNop(cfg.Logger)
	recorder := metrics.New()
	observer := observability.Fanout(
		observability.NewLogObserver(logger),
		observability.NewTraceObserver(),
		recorder,
	)
	views := viewstate.NewStore(viewstate.Options{
		IdleTTL:       cfg.ViewIdleTTL,
		MaxViews:      cfg.MaxViews,
		SweepInterval: timeouts.ViewSweep,
		OnDiscard: func(view viewstate.View, reason viewstate.Reason) {
			observer.ViewUnmounted(context.Background(), observability.ViewEvent{
				ViewID: view.ID,
				Reason: string(reason),
			})
		},
	})
	deps := module.Dependencies{
		Views: views,
		Renderer: pagerender.Renderer{
			HTMXScriptURL: strings.TrimSpace(cfg.HTMXScriptURL),
			Observer:      observer,
		},
		Observer: observer,
		Metrics:  recorder,
		Logger:   logger,
	}
	h, err := app.Composer{}.Compose(app.ComposeInput{
		Dependencies: deps,
		Modules:      modules.Default(),
	})
	if err != nil {
		return wiring{}, err
	}

	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.Handle(http.MethodGet+" "+routepath.Metrics, recorder.Handler())
	rootMux.Handle(routepath.Root, h)
	handler := httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.Tracing(cfg.Tracer),
		routeinfo.Middleware(),
		recorder.Middleware(),
		observability.RequestLogger(logger),
	)
	return wiring{handler: handler, views: views}, nil
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	rt, err := newWiring(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           rt.handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		views:  rt.views,
		logger: logging.OrNop(cfg.Logger),
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves HTTP traffic on listener and sweeps idle views until ctx is
// cancelled or the server stops.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	if listener == nil {
		return errors.New("listener is required")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.views.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		serveErr := make(chan error, 1)
		go func() {
			serveErr <- s.httpServer.Serve(listener)
		}()
		s.logger.Info("web server listening", zap.String("addr", listener.Addr().String()))

		select {
		case <-gctx.Done():
			shutdownCtx, stop := context.WithTimeout(context.Background(), timeouts.Shutdown)
			err := s.httpServer.Shutdown(shutdownCtx)
			stop()
			<-serveErr
			if err != nil {
				return fmt.Errorf("shutdown web http server: %w", err)
			}
			return nil
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("serve web http: %w", err)
		}
	})
	return g.Wait()
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
