// Package observability reports request and view lifecycle diagnostics.
//
// Observers are called at lifecycle transitions only: a full-page navigation,
// a view mount and a view unmount. HTMX re-renders triggered by typing never
// reach an Observer.
package observability

import (
	"context"

	"github.com/louisbranch/navecho/internal/services/web/platform/routeinfo"
)

// ViewEvent identifies one page mount.
type ViewEvent struct {
	ViewID string
	Route  routeinfo.RouteInfo
	// Reason explains an unmount: "unmount", "expired" or "evicted".
	Reason string
}

// Observer receives lifecycle diagnostics.
type Observer interface {
	RouteChanged(ctx context.Context, nav routeinfo.Navigation)
	ViewMounted(ctx context.Context, view ViewEvent)
	ViewUnmounted(ctx context.Context, view ViewEvent)
}

// Nop is an Observer that discards everything.
type Nop struct{}

func (Nop) RouteChanged(context.Context, routeinfo.Navigation) {}
func (Nop) ViewMounted(context.Context, ViewEvent)             {}
func (Nop) ViewUnmounted(context.Context, ViewEvent)           {}

type fanout []Observer

// Fanout returns an Observer that forwards to every non-nil observer in order.
func Fanout(observers ...Observer) Observer {
	out := make(fanout, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (f fanout) RouteChanged(ctx context.Context, nav routeinfo.Navigation) {
	for _, o := range f {
		o.RouteChanged(ctx, nav)
	}
}

func (f fanout) ViewMounted(ctx context.Context, view ViewEvent) {
	for _, o := range f {
		o.ViewMounted(ctx, view)
	}
}

func (f fanout) ViewUnmounted(ctx context.Context, view ViewEvent) {
	for _, o := range f {
		o.ViewUnmounted(ctx, view)
	}
}
