// Package echo models the controlled text input of the home page.
//
// The input never keeps its own buffer: the rendered value always comes from
// State, and every change event replaces State wholesale.
package echo

// Phase is the derived lifecycle phase of a State.
type Phase int

const (
	// PhaseEmpty means no text is held.
	PhaseEmpty Phase = iota
	// PhaseFilled means the last change event carried non-empty text.
	PhaseFilled
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseFilled:
		return "filled"
	default:
		return "unknown"
	}
}

// State is the text owned by one page mount.
type State struct {
	Text string
}

// Initial returns the state of a freshly mounted page.
func Initial() State {
	return State{}
}

// Phase reports whether the state holds any text.
func (s State) Phase() Phase {
	if s.Text == "" {
		return PhaseEmpty
	}
	return PhaseFilled
}

// TextChanged is the event emitted by the input field on every edit.
type TextChanged struct {
	Value string
}

// Reduce applies a change event. The new text is taken verbatim.
func Reduce(_ State, event TextChanged) State {
	return State{Text: event.Value}
}

// ReduceAll folds events over state in order.
func ReduceAll(state State, events ...TextChanged) State {
	for _, event := range events {
		state = Reduce(state, event)
	}
	return state
}
