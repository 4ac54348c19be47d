// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/louisbranch/navecho/internal/services/web/echo"
	"github.com/louisbranch/navecho/internal/services/web/platform/observability"
	"github.com/louisbranch/navecho/internal/services/web/platform/pagerender"
	"github.com/louisbranch/navecho/internal/services/web/viewstate"
	"go.uber.org/zap"
)

// ViewStore holds per-mount home page state.
type ViewStore interface {
	Mount() viewstate.View
	Apply(id string, event echo.TextChanged) (viewstate.View, error)
	Unmount(id string) (viewstate.View, error)
}

// TextCounter counts applied text change events.
type TextCounter interface {
	TextChanged()
}

// Dependencies carries shared collaborators into modules.
type Dependencies struct {
	Views    ViewStore
	Renderer pagerender.Renderer
	Observer observability.Observer
	Metrics  TextCounter
	Logger   *zap.Logger
}

// Mount describes a module route mount. A prefix ending in "/" owns the
// subtree below it; any other prefix matches only that exact path.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
