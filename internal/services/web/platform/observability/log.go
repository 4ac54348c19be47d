package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/louisbranch/navecho/internal/platform/logging"
	"github.com/louisbranch/navecho/internal/services/web/platform/httpx"
	"github.com/louisbranch/navecho/internal/services/web/platform/routeinfo"
	"go.uber.org/zap"
)

// RequestLogger logs one structured record per request.
func RequestLogger(logger *zap.Logger) httpx.Middleware {
	logger = logging.OrNop(logger)
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := httpx.NewStatusRecorder(w)
			next.ServeHTTP(rec, r)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.Status),
				zap.Int("bytes", rec.Bytes),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", httpx.RequestIDFrom(r)),
			)
		})
	}
}

type logObserver struct {
	logger *zap.Logger
}

// NewLogObserver writes lifecycle records as structured log entries.
func NewLogObserver(logger *zap.Logger) Observer {
	return logObserver{logger: logging.OrNop(logger)}
}

func (o logObserver) RouteChanged(_ context.Context, nav routeinfo.Navigation) {
	fields := append(routeFields(nav.To), zap.Bool("has_referrer", nav.From != nil))
	if nav.From != nil {
		fields = append(fields, zap.String("from", nav.From.AsPath))
	}
	o.logger.Info("route changed", fields...)
}

func (o logObserver) ViewMounted(_ context.Context, view ViewEvent) {
	o.logger.Info("view mounted", append(routeFields(view.Route), zap.String("view_id", view.ViewID))...)
}

func (o logObserver) ViewUnmounted(_ context.Context, view ViewEvent) {
	o.logger.Info("view unmounted",
		zap.String("view_id", view.ViewID),
		zap.String("reason", view.Reason),
	)
}

func routeFields(info routeinfo.RouteInfo) []zap.Field {
	return []zap.Field{
		zap.String("pathname", info.Pathname),
		zap.String("as_path", info.AsPath),
		zap.Any("query", map[string][]string(info.Query)),
	}
}
