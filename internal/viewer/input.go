package viewer

import (
	"fmt"

	"github.com/tinyrange/pixelview/internal/frame"
)

// EventKind classifies a semantic input event. The display backend
// translates platform events into these; everything it does not recognize
// arrives as EventNone so the loop still consumes one platform event per
// iteration.
type EventKind int

const (
	EventNone EventKind = iota
	EventQuit
	EventKey
)

// Event is one semantic input event. Key is only meaningful for EventKey
// and carries the pressed character; repeats are suppressed at the source.
type Event struct {
	Kind EventKind
	Key  rune
}

// ActionKind selects what a key binding does.
type ActionKind int

const (
	ActionFill ActionKind = iota
	ActionBands
	ActionScreenshot
	ActionQuit
)

// Action is the resolved effect of a key press. Color is only meaningful
// for ActionFill.
type Action struct {
	Kind  ActionKind
	Color frame.Pixel
}

// Bindings maps a pressed key to its action.
type Bindings map[rune]Action

// DefaultBindings mirrors the original hotkeys: a/b/c fill red/green/blue,
// d paints the band pattern. s is the screenshot key.
func DefaultBindings() Bindings {
	return Bindings{
		'a': {Kind: ActionFill, Color: frame.Red},
		'b': {Kind: ActionFill, Color: frame.Green},
		'c': {Kind: ActionFill, Color: frame.Blue},
		'd': {Kind: ActionBands},
		's': {Kind: ActionScreenshot},
	}
}

// ParseAction resolves a config-file action name.
func ParseAction(name string) (Action, error) {
	switch name {
	case "fill-red":
		return Action{Kind: ActionFill, Color: frame.Red}, nil
	case "fill-green":
		return Action{Kind: ActionFill, Color: frame.Green}, nil
	case "fill-blue":
		return Action{Kind: ActionFill, Color: frame.Blue}, nil
	case "bands":
		return Action{Kind: ActionBands}, nil
	case "screenshot":
		return Action{Kind: ActionScreenshot}, nil
	case "quit":
		return Action{Kind: ActionQuit}, nil
	default:
		return Action{}, fmt.Errorf("unknown action %q", name)
	}
}
