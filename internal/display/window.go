// Package display binds the viewer to SDL: window and renderer lifecycle,
// streaming-texture uploads, and translation of the SDL event queue into
// the viewer's semantic events.
package display

import (
	"fmt"
	"log/slog"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/tinyrange/pixelview/internal/frame"
)

// Config describes the window to open. The window accepts the resizable
// hint, but the texture keeps its creation size; the renderer scales it to
// the current window surface.
type Config struct {
	Title  string
	Width  int
	Height int
}

// Window pairs an SDL window with a renderer and a streaming texture sized
// to the pixel buffer it presents. It implements viewer.Sink and
// viewer.EventSource. All methods must be called from the thread that
// opened it.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	width  int
	height int
	closed bool
}

// Open initializes SDL video and acquires the window, renderer and texture
// in order, releasing whatever was already acquired on failure.
func Open(cfg Config) (*Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid window dimensions %dx%d", cfg.Width, cfg.Height)
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("init video: %w", err)
	}

	win, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width), int32(cfg.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	// ABGR8888 reads R,G,B,A from memory on little-endian hosts, matching
	// the buffer's byte order.
	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING, int32(cfg.Width), int32(cfg.Height))
	if err != nil {
		_ = renderer.Destroy()
		_ = win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("create texture: %w", err)
	}

	slog.Info("pixelview: window created",
		"title", cfg.Title, "width", cfg.Width, "height", cfg.Height)

	return &Window{
		window:   win,
		renderer: renderer,
		texture:  texture,
		width:    cfg.Width,
		height:   cfg.Height,
	}, nil
}

// Present uploads the buffer into the streaming texture and presents it.
// The buffer must match the texture's creation size; both are fixed for
// the window's lifetime.
func (w *Window) Present(buf *frame.Buffer) error {
	if w.closed {
		return fmt.Errorf("window is closed")
	}
	if buf.Width() != w.width || buf.Height() != w.height {
		return fmt.Errorf("buffer %dx%d does not match texture %dx%d",
			buf.Width(), buf.Height(), w.width, w.height)
	}

	if err := w.texture.Update(nil, buf.Bytes(), buf.Pitch()); err != nil {
		return fmt.Errorf("update texture: %w", err)
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return fmt.Errorf("copy texture: %w", err)
	}
	w.renderer.Present()
	return nil
}

// Close releases the texture, renderer and window in reverse acquisition
// order and shuts down SDL video. Safe to call more than once.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true

	if w.texture != nil {
		_ = w.texture.Destroy()
		w.texture = nil
	}
	if w.renderer != nil {
		_ = w.renderer.Destroy()
		w.renderer = nil
	}
	if w.window != nil {
		_ = w.window.Destroy()
		w.window = nil
	}
	sdl.Quit()
}
