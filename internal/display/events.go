package display

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/tinyrange/pixelview/internal/viewer"
)

// Poll dequeues at most one SDL event and translates it. The second return
// is false when the queue was empty; events the viewer has no use for are
// delivered as EventNone so the loop still consumes exactly one platform
// event per iteration.
func (w *Window) Poll() (viewer.Event, bool) {
	ev := sdl.PollEvent()
	if ev == nil {
		return viewer.Event{}, false
	}

	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return viewer.Event{Kind: viewer.EventQuit}, true

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.State != sdl.PRESSED {
			break
		}
		// Alt+F4 and Escape quit regardless of repeat state.
		if e.Keysym.Sym == sdl.K_F4 && e.Keysym.Mod&sdl.KMOD_ALT != 0 {
			return viewer.Event{Kind: viewer.EventQuit}, true
		}
		if e.Keysym.Sym == sdl.K_ESCAPE {
			return viewer.Event{Kind: viewer.EventQuit}, true
		}
		if e.Repeat != 0 {
			break
		}
		if r := keyRune(e.Keysym.Sym); r != 0 {
			return viewer.Event{Kind: viewer.EventKey, Key: r}, true
		}
	}

	return viewer.Event{Kind: viewer.EventNone}, true
}

// keyRune maps printable-ASCII keycodes to their character; SDL keycodes
// in that range are the ASCII values. Everything else is not bindable.
func keyRune(sym sdl.Keycode) rune {
	if sym >= sdl.K_SPACE && sym <= sdl.K_z {
		return rune(sym)
	}
	return 0
}
