// Package metrics exposes Prometheus collectors for the web service.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/navecho/internal/services/web/nav"
	"github.com/louisbranch/navecho/internal/services/web/platform/httpx"
	"github.com/louisbranch/navecho/internal/services/web/platform/observability"
	"github.com/louisbranch/navecho/internal/services/web/platform/routeinfo"
	"github.com/louisbranch/navecho/internal/services/web/routepath"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "navecho"

// Recorder owns a private registry and the service collectors.
// It is also an observability.Observer for view lifecycle counters.
type Recorder struct {
	registry       *prometheus.Registry
	requestsTotal  *prometheus.CounterVec
	routeChanges   *prometheus.CounterVec
	viewsMounted   prometheus.Counter
	viewsUnmounted *prometheus.CounterVec
	viewsActive    prometheus.Gauge
	textChanges    prometheus.Counter
}

var _ observability.Observer = (*Recorder)(nil)

// New returns a Recorder with Go runtime and process collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		routeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "nav",
			Name:      "route_changes_total",
			Help:      "Full-page navigations by container style token",
		}, []string{"token"}),
		viewsMounted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "views",
			Name:      "mounted_total",
			Help:      "Home page views mounted",
		}),
		viewsUnmounted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "views",
			Name:      "unmounted_total",
			Help:      "Home page views discarded, by reason",
		}, []string{"reason"}),
		viewsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "views",
			Name:      "active",
			Help:      "Home page views currently mounted",
		}),
		textChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "views",
			Name:      "text_changes_total",
			Help:      "Text change events applied to mounted views",
		}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requestsTotal,
		r.routeChanges,
		r.viewsMounted,
		r.viewsUnmounted,
		r.viewsActive,
		r.textChanges,
	)
	return r
}

// Handler serves the exposition format for the private registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Middleware counts requests by method, route template and status.
func (r *Recorder) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			rec := httpx.NewStatusRecorder(w)
			next.ServeHTTP(rec, req)
			r.requestsTotal.WithLabelValues(req.Method, RouteLabel(req.URL.Path), strconv.Itoa(rec.Status)).Inc()
		})
	}
}

// TextChanged counts one applied change event.
func (r *Recorder) TextChanged() {
	r.textChanges.Inc()
}

// RouteChanged implements observability.Observer.
func (r *Recorder) RouteChanged(_ context.Context, navigation routeinfo.Navigation) {
	r.routeChanges.WithLabelValues(nav.Classify(navigation.To.Pathname).ClassName()).Inc()
}

// ViewMounted implements observability.Observer.
func (r *Recorder) ViewMounted(context.Context, observability.ViewEvent) {
	r.viewsMounted.Inc()
	r.viewsActive.Inc()
}

// ViewUnmounted implements observability.Observer.
func (r *Recorder) ViewUnmounted(_ context.Context, view observability.ViewEvent) {
	reason := strings.TrimSpace(view.Reason)
	if reason == "" {
		reason = "unmount"
	}
	r.viewsUnmounted.WithLabelValues(reason).Inc()
	r.viewsActive.Dec()
}

// RouteLabel collapses request paths into a bounded set of route labels.
func RouteLabel(path string) string {
	switch {
	case path == routepath.Root, path == routepath.About, path == routepath.Health, path == routepath.Metrics:
		return path
	case strings.HasPrefix(path, routepath.StaticPrefix):
		return routepath.StaticPrefix
	case strings.HasPrefix(path, routepath.ViewsPrefix) && strings.HasSuffix(path, "/text"):
		return routepath.ViewTextPattern
	case strings.HasPrefix(path, routepath.ViewsPrefix) && strings.HasSuffix(path, "/unmount"):
		return routepath.ViewUnmountPattern
	default:
		return "other"
	}
}
