package viewer

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tinyrange/pixelview/internal/frame"
)

// Sink accepts a pixel buffer and presents it to the screen. A failed
// present is recoverable: the loop logs it and tries again next frame.
type Sink interface {
	Present(buf *frame.Buffer) error
}

// EventSource yields at most one semantic event per call without blocking.
// The second return is false when the platform queue was empty.
type EventSource interface {
	Poll() (Event, bool)
}

// App owns the viewer's state for the lifetime of the loop: the pixel
// buffer, the display sink, the key bindings and the frame limiter. It is
// single-threaded; Run must be called from the thread that owns the
// display backend.
type App struct {
	opts     Options
	buf      *frame.Buffer
	sink     Sink
	events   EventSource
	limiter  *frame.Limiter
	bindings Bindings

	running     bool
	frames      uint64
	presentErrs uint64
}

// New builds an App from validated options. The buffer starts out black
// rather than uninitialized so the first presented frame is deterministic.
func New(opts Options, sink Sink, events EventSource) (*App, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	bindings, err := opts.CompileBindings()
	if err != nil {
		return nil, err
	}

	buf, err := frame.NewBuffer(opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("create pixel buffer: %w", err)
	}
	buf.FillSolid(frame.Black)

	target := time.Duration(float64(time.Second) / opts.TargetFPS)

	return &App{
		opts:     opts,
		buf:      buf,
		sink:     sink,
		events:   events,
		limiter:  frame.NewLimiter(target),
		bindings: bindings,
	}, nil
}

// Buffer exposes the drawable surface, mainly for tests.
func (a *App) Buffer() *frame.Buffer { return a.buf }

// Close releases the pixel buffer. Safe to call more than once.
func (a *App) Close() {
	a.buf.Release()
}

// Run drives the loop: consume one event, dispatch it, present the buffer,
// then wait out the remainder of the frame budget. It returns nil when a
// quit event clears the running flag, or the context error on cancellation.
func (a *App) Run(ctx context.Context) error {
	a.running = true
	start := time.Now()

	for a.running {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if ev, ok := a.events.Poll(); ok {
			a.dispatch(ev)
		}

		if err := a.sink.Present(a.buf); err != nil {
			a.presentErrs++
			slog.Error("pixelview: present failed", "error", err)
		}
		a.frames++

		a.limiter.Wait()
	}

	slog.Info("pixelview: loop exited",
		"frames", a.frames,
		"missed_deadlines", a.limiter.Missed(),
		"present_errors", a.presentErrs,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func (a *App) dispatch(ev Event) {
	switch ev.Kind {
	case EventQuit:
		slog.Info("pixelview: quit requested")
		a.running = false
	case EventKey:
		act, ok := a.bindings[ev.Key]
		if !ok {
			return
		}
		a.apply(act)
	}
}

func (a *App) apply(act Action) {
	switch act.Kind {
	case ActionFill:
		a.buf.FillSolid(act.Color)
	case ActionBands:
		a.buf.FillBands()
	case ActionScreenshot:
		if err := a.screenshot(); err != nil {
			slog.Error("pixelview: screenshot failed", "error", err)
		}
	case ActionQuit:
		slog.Info("pixelview: quit requested")
		a.running = false
	}
}

// screenshot encodes the current buffer to a timestamped PNG in the
// configured directory.
func (a *App) screenshot() error {
	name := fmt.Sprintf("pixelview-%s.png", time.Now().Format("20060102-150405.000"))
	path := filepath.Join(a.opts.ScreenshotDir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, a.buf.RGBA()); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	slog.Info("pixelview: screenshot saved", "path", path)
	return nil
}
