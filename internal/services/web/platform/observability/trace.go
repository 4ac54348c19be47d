package observability

import (
	"context"
	"net/http"

	"github.com/louisbranch/navecho/internal/services/web/platform/httpx"
	"github.com/louisbranch/navecho/internal/services/web/platform/routeinfo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies spans produced by the web service.
const TracerName = "github.com/louisbranch/navecho/internal/services/web"

// Tracing starts a server span per request. A nil tracer uses the global
// provider, which is a no-op until platform/otel.Setup installs one.
func Tracing(tracer trace.Tracer) httpx.Middleware {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, "HTTP "+r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()

			rec := httpx.NewStatusRecorder(w)
			next.ServeHTTP(rec, r.WithContext(ctx))
			span.SetAttributes(attribute.Int("http.response.status_code", rec.Status))
			if rec.Status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(rec.Status))
			}
		})
	}
}

type traceObserver struct{}

// NewTraceObserver records lifecycle transitions as events on the request span.
func NewTraceObserver() Observer {
	return traceObserver{}
}

func (traceObserver) RouteChanged(ctx context.Context, nav routeinfo.Navigation) {
	attrs := []attribute.KeyValue{
		attribute.String("route.pathname", nav.To.Pathname),
		attribute.String("route.as_path", nav.To.AsPath),
	}
	if nav.From != nil {
		attrs = append(attrs, attribute.String("route.from", nav.From.AsPath))
	}
	trace.SpanFromContext(ctx).AddEvent("route.changed", trace.WithAttributes(attrs...))
}

func (traceObserver) ViewMounted(ctx context.Context, view ViewEvent) {
	trace.SpanFromContext(ctx).AddEvent("view.mounted", trace.WithAttributes(
		attribute.String("view.id", view.ViewID),
		attribute.String("route.pathname", view.Route.Pathname),
	))
}

func (traceObserver) ViewUnmounted(ctx context.Context, view ViewEvent) {
	trace.SpanFromContext(ctx).AddEvent("view.unmounted", trace.WithAttributes(
		attribute.String("view.id", view.ViewID),
		attribute.String("view.reason", view.Reason),
	))
}
