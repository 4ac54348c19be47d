// Package public serves the home page, its view endpoints, health, and the
// not-found fallback.
package public

import (
	"fmt"
	"net/http"

	module "github.com/louisbranch/navecho/internal/services/web/module"
	"github.com/louisbranch/navecho/internal/services/web/routepath"
)

// Module provides the root public routes.
type Module struct{}

// New returns the public module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "public" }

// Mount wires the root route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Views == nil {
		return module.Mount{}, fmt.Errorf("view store is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
