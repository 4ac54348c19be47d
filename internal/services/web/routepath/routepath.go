// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root               = "/"
	About              = "/about"
	Health             = "/up"
	Metrics            = "/metrics"
	StaticPrefix       = "/static/"
	ViewsPrefix        = "/views/"
	ViewTextPattern    = ViewsPrefix + "{viewID}/text"
	ViewUnmountPattern = ViewsPrefix + "{viewID}/unmount"
)

// ViewText returns the text-change endpoint for one mounted view.
func ViewText(viewID string) string {
	return ViewsPrefix + escapeSegment(viewID) + "/text"
}

// ViewUnmount returns the unmount endpoint for one mounted view.
func ViewUnmount(viewID string) string {
	return ViewsPrefix + escapeSegment(viewID) + "/unmount"
}

// Static returns the served path for an embedded static asset.
func Static(name string) string {
	return StaticPrefix + strings.TrimLeft(strings.TrimSpace(name), "/")
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
