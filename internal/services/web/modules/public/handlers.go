package public

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/louisbranch/navecho/internal/platform/logging"
	"github.com/louisbranch/navecho/internal/services/web/echo"
	"github.com/louisbranch/navecho/internal/services/web/i18n"
	module "github.com/louisbranch/navecho/internal/services/web/module"
	apperrors "github.com/louisbranch/navecho/internal/services/web/platform/errors"
	"github.com/louisbranch/navecho/internal/services/web/platform/httpx"
	"github.com/louisbranch/navecho/internal/services/web/platform/observability"
	"github.com/louisbranch/navecho/internal/services/web/platform/pagerender"
	"github.com/louisbranch/navecho/internal/services/web/platform/routeinfo"
	"github.com/louisbranch/navecho/internal/services/web/routepath"
	"github.com/louisbranch/navecho/internal/services/web/templates"
	"github.com/louisbranch/navecho/internal/services/web/viewstate"
	"go.uber.org/zap"
)

type handlers struct {
	views    module.ViewStore
	renderer pagerender.Renderer
	observer observability.Observer
	metrics  module.TextCounter
	logger   *zap.Logger
}

type nopCounter struct{}

func (nopCounter) TextChanged() {}

func newHandlers(deps module.Dependencies) handlers {
	h := handlers{
		views:    deps.Views,
		renderer: deps.Renderer,
		observer: deps.Observer,
		metrics:  deps.Metrics,
		logger:   logging.OrNop(deps.Logger),
	}
	if h.observer == nil {
		h.observer = observability.Nop{}
	}
	if h.metrics == nil {
		h.metrics = nopCounter{}
	}
	return h
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	info, err := routeinfo.Require(r.Context())
	if err != nil {
		h.logger.Error("mount home view", zap.String("path", r.URL.Path), zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	// HEAD gets the GET headers but never holds a view.
	if r.Method != http.MethodGet {
		if err := h.writeHome(w, r, viewstate.View{}); err != nil {
			h.logger.Error("render home page", zap.String("method", r.Method), zap.Error(err))
		}
		return
	}

	view := h.views.Mount()
	if err := h.writeHome(w, r, view); err != nil {
		_, _ = h.views.Unmount(view.ID)
		h.logger.Error("render home page", zap.String("view_id", view.ID), zap.Error(err))
		return
	}
	h.observer.ViewMounted(r.Context(), observability.ViewEvent{ViewID: view.ID, Route: info})
}

func (h handlers) writeHome(w http.ResponseWriter, r *http.Request, view viewstate.View) error {
	tag, printer := i18n.Resolve(w, r)
	return h.renderer.WritePage(w, r, pagerender.Page{
		Title: printer.Sprintf("title.home"),
		Lang:  tag.String(),
		Body: templates.HomePage(templates.EchoView{
			ViewID: view.ID,
			Text:   view.State.Text,
			Label:  printer.Sprintf("echo.label"),
		}),
	})
}

func (h handlers) handleTextChange(w http.ResponseWriter, r *http.Request) {
	viewID := r.PathValue("viewID")
	value, err := readTextField(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	view, err := h.views.Apply(viewID, echo.TextChanged{Value: value})
	if err != nil {
		h.writeViewError(w, r, err)
		return
	}
	h.metrics.TextChanged()

	if httpx.IsHTMXRequest(r) {
		var buf bytes.Buffer
		if err := templates.EchoReadout(view.State.Text).Render(r.Context(), &buf); err != nil {
			httpx.WriteError(w, err)
			return
		}
		_ = httpx.WriteHTML(w, http.StatusOK, buf.String())
		return
	}

	// The no-JS fallback posts to the view endpoint but shows the home page.
	home := routeinfo.FromURL(&url.URL{Path: routepath.Root})
	r = r.WithContext(routeinfo.WithRoute(r.Context(), home))
	if err := h.writeHome(w, r, view); err != nil {
		h.logger.Error("render home page", zap.String("view_id", view.ID), zap.Error(err))
	}
}

// readTextField reads the echo field from a form-encoded body.
// Request.ParseForm caps such bodies at 10 MiB; the echoed text has no
// length limit, so the body is read whole.
func readTextField(r *http.Request) (string, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/x-www-form-urlencoded" {
		return "", apperrors.E(apperrors.KindUnsupportedMedia, "text change must be form encoded")
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindInvalidInput, "read text change body", err)
	}
	form, err := url.ParseQuery(string(body))
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindInvalidInput, "parse text change form", err)
	}
	values, ok := form[templates.EchoFieldName]
	if !ok {
		return "", apperrors.E(apperrors.KindInvalidInput, "text field is required")
	}
	if len(values) == 0 {
		return "", nil
	}
	return values[0], nil
}

func (h handlers) handleUnmount(w http.ResponseWriter, r *http.Request) {
	view, err := h.views.Unmount(r.PathValue("viewID"))
	if err != nil {
		if errors.Is(err, viewstate.ErrNotFound) {
			httpx.WriteError(w, apperrors.Wrap(apperrors.KindNotFound, "unmount view", err))
			return
		}
		httpx.WriteError(w, err)
		return
	}
	h.observer.ViewUnmounted(r.Context(), observability.ViewEvent{
		ViewID: view.ID,
		Reason: string(viewstate.ReasonUnmount),
	})
	w.WriteHeader(http.StatusNoContent)
}

// writeViewError answers a change for a view the store no longer holds.
// HTMX clients reload the page; plain form posts are sent back to a fresh mount.
func (h handlers) writeViewError(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is(err, viewstate.ErrNotFound) {
		httpx.WriteError(w, fmt.Errorf("apply text change: %w", err))
		return
	}
	if httpx.IsHTMXRequest(r) {
		httpx.SetHXRefresh(w)
		httpx.WriteError(w, apperrors.Wrap(apperrors.KindNotFound, "view expired", err))
		return
	}
	http.Redirect(w, r, routepath.Root, http.StatusSeeOther)
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	tag, printer := i18n.Resolve(w, r)
	err := h.renderer.WritePage(w, r, pagerender.Page{
		Title:      printer.Sprintf("title.not_found"),
		Lang:       tag.String(),
		StatusCode: http.StatusNotFound,
		Body:       templates.ErrorPage(printer.Sprintf("title.not_found"), printer.Sprintf("error.not_found")),
	})
	if err != nil {
		h.logger.Error("render not found page", zap.String("path", r.URL.Path), zap.Error(err))
	}
}
