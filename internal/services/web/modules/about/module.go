// Package about serves the About page.
package about

import (
	"net/http"

	"github.com/louisbranch/navecho/internal/platform/logging"
	"github.com/louisbranch/navecho/internal/services/web/i18n"
	module "github.com/louisbranch/navecho/internal/services/web/module"
	"github.com/louisbranch/navecho/internal/services/web/platform/pagerender"
	"github.com/louisbranch/navecho/internal/services/web/routepath"
	"github.com/louisbranch/navecho/internal/services/web/templates"
	"go.uber.org/zap"
)

// Module provides the About route.
type Module struct{}

// New returns the about module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "about" }

// Mount wires the About handler.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	renderer := deps.Renderer
	logger := logging.OrNop(deps.Logger)
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.About, func(w http.ResponseWriter, r *http.Request) {
		tag, printer := i18n.Resolve(w, r)
		err := renderer.WritePage(w, r, pagerender.Page{
			Title: printer.Sprintf("title.about"),
			Lang:  tag.String(),
			Body:  templates.AboutPage(printer.Sprintf("about.body")),
		})
		if err != nil {
			logger.Error("render about page", zap.Error(err))
		}
	})
	return module.Mount{Prefix: routepath.About, Handler: mux}, nil
}
