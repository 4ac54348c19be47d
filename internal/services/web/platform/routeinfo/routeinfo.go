// Package routeinfo exposes the current route to rendering code.
//
// Middleware derives a RouteInfo from each request and stores it on the
// request context; components read it back with FromContext or Require.
// RouteInfo is fixed for the lifetime of a request.
package routeinfo

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// ErrMissing reports a render that ran without route information.
var ErrMissing = errors.New("route info missing from context")

// RouteInfo describes the route a request is rendering.
type RouteInfo struct {
	// Pathname is the request path without query.
	Pathname string
	// AsPath is the path and raw query as requested.
	AsPath string
	// Query holds parsed query parameters.
	Query url.Values
}

// Navigation is a move from one route to another.
type Navigation struct {
	// From is the same-origin referring route, when known.
	From *RouteInfo
	To   RouteInfo
}

type contextKey struct{}

// FromURL builds route info from a request URL.
func FromURL(u *url.URL) RouteInfo {
	if u == nil {
		return RouteInfo{Pathname: "/", AsPath: "/", Query: url.Values{}}
	}
	pathname := u.Path
	if pathname == "" {
		pathname = "/"
	}
	asPath := pathname
	if u.RawQuery != "" {
		asPath += "?" + u.RawQuery
	}
	return RouteInfo{
		Pathname: pathname,
		AsPath:   asPath,
		Query:    u.Query(),
	}
}

// FromRequest builds route info for r.
func FromRequest(r *http.Request) RouteInfo {
	if r == nil {
		return FromURL(nil)
	}
	return FromURL(r.URL)
}

// WithRoute stores info on ctx.
func WithRoute(ctx context.Context, info RouteInfo) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, info)
}

// FromContext returns route info stored on ctx.
func FromContext(ctx context.Context) (RouteInfo, bool) {
	if ctx == nil {
		return RouteInfo{}, false
	}
	info, ok := ctx.Value(contextKey{}).(RouteInfo)
	return info, ok
}

// Require returns route info stored on ctx or ErrMissing.
func Require(ctx context.Context) (RouteInfo, error) {
	info, ok := FromContext(ctx)
	if !ok {
		return RouteInfo{}, ErrMissing
	}
	return info, nil
}

// Middleware attaches route info for every request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithRoute(r.Context(), FromRequest(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NavigationFor returns the navigation that led to r. From is set only when
// the Referer header names a route on the same host.
func NavigationFor(r *http.Request) Navigation {
	nav := Navigation{To: FromRequest(r)}
	if info, ok := FromContext(requestContext(r)); ok {
		nav.To = info
	}
	if from, ok := referrerRoute(r); ok {
		nav.From = &from
	}
	return nav
}

func referrerRoute(r *http.Request) (RouteInfo, bool) {
	if r == nil {
		return RouteInfo{}, false
	}
	referer := strings.TrimSpace(r.Header.Get("Referer"))
	if referer == "" {
		return RouteInfo{}, false
	}
	parsed, err := url.Parse(referer)
	if err != nil || parsed.Host == "" {
		return RouteInfo{}, false
	}
	if !strings.EqualFold(parsed.Host, r.Host) {
		return RouteInfo{}, false
	}
	return FromURL(parsed), true
}

func requestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}
