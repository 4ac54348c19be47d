package pagerender

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/louisbranch/navecho/internal/services/web/platform/observability"
	"github.com/louisbranch/navecho/internal/services/web/platform/routeinfo"
)

type textComponent string

func (c textComponent) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(c))
	return err
}

type recordingObserver struct {
	observability.Nop
	navigations []routeinfo.Navigation
}

func (o *recordingObserver) RouteChanged(_ context.Context, nav routeinfo.Navigation) {
	o.navigations = append(o.navigations, nav)
}

func withRoute(req *http.Request) *http.Request {
	return req.WithContext(routeinfo.WithRoute(req.Context(), routeinfo.FromRequest(req)))
}

func TestWritePageRendersHTMXFragmentWithStatus(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	req := withRoute(httptest.NewRequest(http.MethodGet, "/about", nil))
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()

	err := Renderer{Observer: obs}.WritePage(rr, req, Page{
		Title:      "About",
		StatusCode: http.StatusCreated,
		Body:       textComponent(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="fragment-root"`) {
		t.Fatalf("body missing fragment marker: %q", body)
	}
	if strings.Contains(strings.ToLower(body), "<html") {
		t.Fatalf("expected htmx fragment without full document wrapper")
	}
	if len(obs.navigations) != 0 {
		t.Fatalf("navigations = %d, want 0 for htmx requests", len(obs.navigations))
	}
}

func TestWritePageRendersFullPageAndReportsNavigation(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	req := withRoute(httptest.NewRequest(http.MethodGet, "http://example.com/about?x=1", nil))
	req.Header.Set("Referer", "http://example.com/")
	rr := httptest.NewRecorder()

	err := Renderer{HTMXScriptURL: "/htmx.js", Observer: obs}.WritePage(rr, req, Page{
		Title: "About",
		Lang:  "pt-BR",
		Body:  textComponent(`<p>ok</p>`),
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q, want %q", got, "text/html; charset=utf-8")
	}
	body := rr.Body.String()
	for _, marker := range []string{`<html lang="pt-BR">`, `<title>About</title>`, `<main id="main"><p>ok</p></main>`, `src="/htmx.js"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
	if len(obs.navigations) != 1 {
		t.Fatalf("navigations = %d, want 1", len(obs.navigations))
	}
	nav := obs.navigations[0]
	if nav.To.AsPath != "/about?x=1" {
		t.Fatalf("to = %q, want %q", nav.To.AsPath, "/about?x=1")
	}
	if nav.From == nil || nav.From.Pathname != "/" {
		t.Fatalf("from = %+v, want /", nav.From)
	}
}

func TestWritePageDoesNotReportPosts(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	req := withRoute(httptest.NewRequest(http.MethodPost, "/views/v/text", nil))
	rr := httptest.NewRecorder()
	if err := (Renderer{Observer: obs}).WritePage(rr, req, Page{Title: "Home"}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if len(obs.navigations) != 0 {
		t.Fatalf("navigations = %d, want 0", len(obs.navigations))
	}
}

func TestWritePageRenderFailureWrites500(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	obs := &recordingObserver{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	err := Renderer{Observer: obs}.WritePage(rr, req, Page{
		Title: "Home",
		Body: templ.ComponentFunc(func(context.Context, io.Writer) error {
			return boom
		}),
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WritePage() error = %v, want %v", err, boom)
	}
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rr.Body.String(), "boom") {
		t.Fatalf("internal error leaked: %q", rr.Body.String())
	}
	if len(obs.navigations) != 0 {
		t.Fatalf("navigations = %d, want 0", len(obs.navigations))
	}
}
