package viewer

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/tinyrange/pixelview/internal/frame"
)

// recordSink snapshots every presented frame.
type recordSink struct {
	frames [][]byte
}

func (s *recordSink) Present(buf *frame.Buffer) error {
	snap := make([]byte, len(buf.Bytes()))
	copy(snap, buf.Bytes())
	s.frames = append(s.frames, snap)
	return nil
}

// scriptSource replays a fixed event sequence, then reports an empty queue
// forever. The last scripted event is expected to stop the loop.
type scriptSource struct {
	events []Event
	next   int
}

func (s *scriptSource) Poll() (Event, bool) {
	if s.next >= len(s.events) {
		return Event{}, false
	}
	ev := s.events[s.next]
	s.next++
	return ev, true
}

func testOptions(w, h int) Options {
	opts := DefaultOptions()
	opts.Width = w
	opts.Height = h
	opts.TargetFPS = 2000 // keep the loop fast under test
	return opts
}

func uniform(t *testing.T, pix []byte, c frame.Pixel) bool {
	t.Helper()
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != c.R || pix[i+1] != c.G || pix[i+2] != c.B || pix[i+3] != c.A {
			return false
		}
	}
	return true
}

func TestRunFillAndQuit(t *testing.T) {
	sink := &recordSink{}
	events := &scriptSource{events: []Event{
		{Kind: EventKey, Key: 'a'},
		{Kind: EventQuit},
	}}

	app, err := New(testOptions(8, 6), sink, events)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close()

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// One frame per scripted event; the iteration that consumes the quit
	// event still presents before the loop condition is rechecked.
	if len(sink.frames) != 2 {
		t.Fatalf("presented %d frames, want 2", len(sink.frames))
	}
	for i, pix := range sink.frames {
		if !uniform(t, pix, frame.Red) {
			t.Fatalf("frame %d after fill-red key is not uniformly red", i)
		}
	}
}

func TestRunBands(t *testing.T) {
	sink := &recordSink{}
	events := &scriptSource{events: []Event{
		{Kind: EventKey, Key: 'd'},
		{Kind: EventQuit},
	}}

	app, err := New(testOptions(600, 1), sink, events)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close()

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sink.frames) != 2 {
		t.Fatalf("presented %d frames, want 2", len(sink.frames))
	}

	pix := sink.frames[0]
	at := func(x int) frame.Pixel {
		i := x * 4
		return frame.Pixel{R: pix[i], G: pix[i+1], B: pix[i+2], A: pix[i+3]}
	}
	for x := 0; x < 600; x++ {
		want := frame.Red
		if x < 200 {
			want = frame.Blue
		} else if x < 400 {
			want = frame.Green
		}
		if got := at(x); got != want {
			t.Fatalf("column %d = %v, want %v", x, got, want)
		}
	}
}

func TestRunUnknownKeyIgnored(t *testing.T) {
	sink := &recordSink{}
	events := &scriptSource{events: []Event{
		{Kind: EventKey, Key: 'z'},
		{Kind: EventNone},
		{Kind: EventQuit},
	}}

	app, err := New(testOptions(4, 4), sink, events)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close()

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The buffer starts black and nothing repaints it.
	for i, pix := range sink.frames {
		if !uniform(t, pix, frame.Black) {
			t.Fatalf("frame %d changed without a bound key", i)
		}
	}
}

func TestRunLastCommandSticks(t *testing.T) {
	sink := &recordSink{}
	events := &scriptSource{events: []Event{
		{Kind: EventKey, Key: 'b'},
		{Kind: EventNone}, // empty-ish iteration: buffer keeps last command
		{Kind: EventKey, Key: 'c'},
		{Kind: EventQuit},
	}}

	app, err := New(testOptions(4, 4), sink, events)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close()

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sink.frames) != 4 {
		t.Fatalf("presented %d frames, want 4", len(sink.frames))
	}
	if !uniform(t, sink.frames[0], frame.Green) || !uniform(t, sink.frames[1], frame.Green) {
		t.Fatalf("buffer did not keep the last fill between events")
	}
	if !uniform(t, sink.frames[2], frame.Blue) || !uniform(t, sink.frames[3], frame.Blue) {
		t.Fatalf("buffer did not pick up the newer fill")
	}
}

func TestRunContextCancelled(t *testing.T) {
	sink := &recordSink{}
	events := &scriptSource{} // never quits on its own

	app, err := New(testOptions(2, 2), sink, events)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err == nil {
		t.Fatalf("Run: expected error on cancelled context")
	}
}

func TestScreenshot(t *testing.T) {
	dir := t.TempDir()

	opts := testOptions(5, 4)
	opts.ScreenshotDir = dir

	sink := &recordSink{}
	events := &scriptSource{events: []Event{
		{Kind: EventKey, Key: 'c'},
		{Kind: EventKey, Key: 's'},
		{Kind: EventQuit},
	}}

	app, err := New(opts, sink, events)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close()

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("found %d screenshots, want 1", len(entries))
	}

	f, err := os.Open(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 4 {
		t.Fatalf("screenshot is %dx%d, want 5x4", img.Bounds().Dx(), img.Bounds().Dy())
	}
	r, g, b, _ := img.At(2, 2).RGBA()
	if r != 0 || g != 0 || b != 0xffff {
		t.Fatalf("screenshot pixel = %v %v %v, want blue", r, g, b)
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	for _, opts := range []Options{
		{Width: 0, Height: 10, Title: "x", TargetFPS: 60},
		{Width: 10, Height: 10, Title: "x", TargetFPS: 0},
		{Width: 10, Height: 10, Title: "x", TargetFPS: 60,
			Bindings: map[string]string{"a": "explode"}},
	} {
		if _, err := New(opts, &recordSink{}, &scriptSource{}); err == nil {
			t.Fatalf("New(%+v): expected error", opts)
		}
	}
}
