// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/navecho/internal/services/web/platform/httpx"
	"github.com/louisbranch/navecho/internal/services/web/platform/observability"
	"github.com/louisbranch/navecho/internal/services/web/platform/routeinfo"
	"github.com/louisbranch/navecho/internal/services/web/templates"
)

// Page describes a page response for both full-page and HTMX flows.
type Page struct {
	Title      string
	Lang       string
	StatusCode int
	Body       templ.Component
}

// Renderer writes pages inside the shared layout.
type Renderer struct {
	HTMXScriptURL string
	// Observer is told about full-page navigations. HTMX requests and
	// non-GET requests are not navigations and are never reported.
	Observer observability.Observer
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage renders page into a buffer and writes it with its status.
// A render failure writes a 500 and is returned to the caller.
func (r Renderer) WritePage(w http.ResponseWriter, req *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}
	ctx := httpx.RequestContext(req)
	htmx := httpx.IsHTMXRequest(req)

	var buf bytes.Buffer
	var err error
	if htmx {
		err = body.Render(ctx, &buf)
	} else {
		layout := templates.Layout(templates.LayoutOptions{
			Title:         page.Title,
			Lang:          page.Lang,
			HTMXScriptURL: r.HTMXScriptURL,
		})
		err = layout.Render(templ.WithChildren(ctx, body), &buf)
	}
	if err != nil {
		httpx.WriteError(w, err)
		return fmt.Errorf("render page %q: %w", page.Title, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())

	if !htmx && req != nil && req.Method == http.MethodGet && r.Observer != nil {
		r.Observer.RouteChanged(ctx, routeinfo.NavigationFor(req))
	}
	return nil
}
