package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/navecho/internal/services/web/nav"
	"github.com/louisbranch/navecho/internal/services/web/platform/routeinfo"
)

// NavBar renders the route-aware navigation bar.
// It fails with routeinfo.ErrMissing when ctx carries no route.
func NavBar() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		info, err := routeinfo.Require(ctx)
		if err != nil {
			return fmt.Errorf("render nav bar: %w", err)
		}
		return navBar(nav.Classify(info.Pathname).ClassName(), nav.ButtonClass(), nav.Entries()).Render(ctx, w)
	})
}
