package about

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/louisbranch/navecho/internal/services/web/module"
	"github.com/louisbranch/navecho/internal/services/web/platform/routeinfo"
)

func serve(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	mount, err := New().Mount(module.Dependencies{})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/about" {
		t.Fatalf("prefix = %q, want %q", mount.Prefix, "/about")
	}
	rr := httptest.NewRecorder()
	routeinfo.Middleware()(mount.Handler).ServeHTTP(rr, req)
	return rr
}

func TestAboutRendersActiveNav(t *testing.T) {
	t.Parallel()

	rr := serve(t, httptest.NewRequest(http.MethodGet, "/about", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, marker := range []string{
		`<nav class="active">`,
		`<a href="/" role="button" class="nav active">Home</a>`,
		`<a href="/about" role="button" class="nav active">About</a>`,
		`<title>About</title>`,
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
}

func TestAboutLocalizesBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("Accept-Language", "pt-BR")
	rr := serve(t, req)
	body := rr.Body.String()
	if !strings.Contains(body, `<html lang="pt-BR">`) || !strings.Contains(body, "<title>Sobre</title>") {
		t.Fatalf("body not localized: %q", body)
	}
}

func TestAboutRejectsPost(t *testing.T) {
	t.Parallel()

	rr := serve(t, httptest.NewRequest(http.MethodPost, "/about", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}
