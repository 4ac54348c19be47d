// Package nav derives navigation bar styling from the current route.
//
// The container alternates between two style tokens depending on whether the
// viewer is on the root route, while every navigation button always carries
// both tokens. The button decoration does not depend on the route.
package nav

import (
	"strings"

	"github.com/louisbranch/navecho/internal/services/web/routepath"
)

// StyleToken is one of the two presentation classes the nav bar knows about.
type StyleToken int

const (
	// TokenNav classifies the container on the root route.
	TokenNav StyleToken = iota
	// TokenActive classifies the container on every other route.
	TokenActive
)

// ClassName returns the CSS class rendered for the token.
func (t StyleToken) ClassName() string {
	switch t {
	case TokenNav:
		return "nav"
	case TokenActive:
		return "active"
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (t StyleToken) String() string {
	return t.ClassName()
}

// Classify maps a route path to the container style token.
// Only the exact root path yields TokenNav.
func Classify(path string) StyleToken {
	if path == routepath.Root {
		return TokenNav
	}
	return TokenActive
}

// ButtonTokens returns the fixed tokens applied to every navigation button.
func ButtonTokens() []StyleToken {
	return []StyleToken{TokenNav, TokenActive}
}

// ButtonClass joins ButtonTokens into a class attribute value.
func ButtonClass() string {
	tokens := ButtonTokens()
	names := make([]string, 0, len(tokens))
	for _, token := range tokens {
		names = append(names, token.ClassName())
	}
	return strings.Join(names, " ")
}

// Entry is one navigation action.
type Entry struct {
	Label string
	Path  string
}

// Entries returns the navigation actions in render order.
func Entries() []Entry {
	return []Entry{
		{Label: "Home", Path: routepath.Root},
		{Label: "About", Path: routepath.About},
	}
}
