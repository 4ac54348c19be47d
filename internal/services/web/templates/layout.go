// Package templates holds the templ components rendered by web modules.
//
// Markup lives in the .templ sources; run `templ generate` after editing
// them to refresh the *_templ.go files.
package templates

import "strings"

// MainID is the element id HTMX page fragments are rendered into.
const MainID = "main"

// LayoutOptions configures the full-page document shell.
type LayoutOptions struct {
	Title         string
	Lang          string
	HTMXScriptURL string
}

func (o LayoutOptions) lang() string {
	if lang := strings.TrimSpace(o.Lang); lang != "" {
		return lang
	}
	return "en-US"
}

func (o LayoutOptions) scriptURL() string {
	return strings.TrimSpace(o.HTMXScriptURL)
}
