package templates

import "strings"

const (
	// ReadoutID is the element swapped by HTMX text-change responses.
	ReadoutID = "echo-readout"
	// EchoFieldName is the form field carrying the input text.
	EchoFieldName = "text"
	// StaticReadout is the literal rendered after the echo readout.
	StaticReadout = "Hello"
)

// EchoView is the render input for the home page body.
type EchoView struct {
	ViewID string
	Text   string
	Label  string
}

func (v EchoView) label() string {
	if label := strings.TrimSpace(v.Label); label != "" {
		return label
	}
	return "Text"
}
