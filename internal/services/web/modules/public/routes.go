package public

import (
	"net/http"

	"github.com/louisbranch/navecho/internal/services/web/platform/httpx"
	"github.com/louisbranch/navecho/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleHome)
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)

	mux.HandleFunc(http.MethodPost+" "+routepath.ViewTextPattern, h.handleTextChange)
	mux.HandleFunc(http.MethodGet+" "+routepath.ViewTextPattern, httpx.MethodNotAllowed(http.MethodPost))

	mux.HandleFunc(http.MethodPost+" "+routepath.ViewUnmountPattern, h.handleUnmount)
	mux.HandleFunc(http.MethodGet+" "+routepath.ViewUnmountPattern, httpx.MethodNotAllowed(http.MethodPost))

	mux.HandleFunc(http.MethodGet+" /{rest...}", h.handleNotFound)
}
