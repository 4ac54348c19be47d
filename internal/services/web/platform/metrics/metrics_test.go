package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/navecho/internal/services/web/platform/observability"
	"github.com/louisbranch/navecho/internal/services/web/platform/routeinfo"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestViewLifecycleCounters(t *testing.T) {
	t.Parallel()

	r := New()
	ctx := context.Background()
	r.ViewMounted(ctx, observability.ViewEvent{ViewID: "a"})
	r.ViewMounted(ctx, observability.ViewEvent{ViewID: "b"})
	r.ViewUnmounted(ctx, observability.ViewEvent{ViewID: "a", Reason: "expired"})
	r.TextChanged()
	r.TextChanged()

	if got := testutil.ToFloat64(r.viewsMounted); got != 2 {
		t.Fatalf("mounted = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.viewsActive); got != 1 {
		t.Fatalf("active = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.viewsUnmounted.WithLabelValues("expired")); got != 1 {
		t.Fatalf("unmounted{expired} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.textChanges); got != 2 {
		t.Fatalf("text changes = %v, want 2", got)
	}
}

func TestRouteChangesLabelledByStyleToken(t *testing.T) {
	t.Parallel()

	r := New()
	ctx := context.Background()
	r.RouteChanged(ctx, routeinfo.Navigation{To: routeinfo.RouteInfo{Pathname: "/"}})
	r.RouteChanged(ctx, routeinfo.Navigation{To: routeinfo.RouteInfo{Pathname: "/about"}})
	r.RouteChanged(ctx, routeinfo.Navigation{To: routeinfo.RouteInfo{Pathname: "/about"}})

	if got := testutil.ToFloat64(r.routeChanges.WithLabelValues("nav")); got != 1 {
		t.Fatalf("route changes{nav} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.routeChanges.WithLabelValues("active")); got != 2 {
		t.Fatalf("route changes{active} = %v, want 2", got)
	}
}

func TestMiddlewareCountsRequestsByRouteTemplate(t *testing.T) {
	t.Parallel()

	r := New()
	h := r.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/views/abc/text", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/views/def/text", nil))

	got := testutil.ToFloat64(r.requestsTotal.WithLabelValues(http.MethodPost, "/views/{viewID}/text", "404"))
	if got != 2 {
		t.Fatalf("requests_total = %v, want 2", got)
	}
}

func TestHandlerExposesServiceMetrics(t *testing.T) {
	t.Parallel()

	r := New()
	r.TextChanged()
	rr := httptest.NewRecorder()
	r.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "navecho_views_text_changes_total 1") {
		t.Fatalf("exposition missing text change counter: %q", rr.Body.String())
	}
}

func TestRouteLabel(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"/":                 "/",
		"/about":            "/about",
		"/up":               "/up",
		"/metrics":          "/metrics",
		"/static/nav.css":   "/static/",
		"/views/x/text":     "/views/{viewID}/text",
		"/views/x/unmount":  "/views/{viewID}/unmount",
		"/wp-admin/install": "other",
	}
	for path, want := range cases {
		if got := RouteLabel(path); got != want {
			t.Fatalf("RouteLabel(%q) = %q, want %q", path, got, want)
		}
	}
}
