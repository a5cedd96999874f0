// Command pixelview opens a window over an in-memory pixel buffer and
// repaints it from keyboard commands at a fixed frame rate.
//
// Usage:
//
//	pixelview
//	pixelview -w 800 -h 480 -fps 30
//	pixelview -config viewer.yaml
//
// Keys (defaults): a/b/c fill red/green/blue, d paints the three-band test
// pattern, s saves a screenshot, Escape quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/tinyrange/pixelview/internal/display"
	"github.com/tinyrange/pixelview/internal/viewer"
)

func main() {
	// SDL's event queue belongs to the thread that initialized video, and
	// on darwin UI objects must live on the process main thread. The Go
	// scheduler can migrate the main goroutine across OS threads, so pin
	// it before any window work.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	configPath := flag.String("config", "", "YAML config file")
	width := flag.Int("w", 0, "window width")
	height := flag.Int("h", 0, "window height")
	title := flag.String("title", "", "window title")
	fps := flag.Float64("fps", 0, "target frame rate")
	screenshotDir := flag.String("screenshot-dir", "", "directory for screenshots")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	opts := viewer.DefaultOptions()
	if *configPath != "" {
		var err error
		opts, err = viewer.LoadOptions(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pixelview: %v\n", err)
			os.Exit(1)
		}
	}

	// Explicit flags win over config-file values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w":
			opts.Width = *width
		case "h":
			opts.Height = *height
		case "title":
			opts.Title = *title
		case "fps":
			opts.TargetFPS = *fps
		case "screenshot-dir":
			opts.ScreenshotDir = *screenshotDir
		}
	})

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "pixelview: %v\n", err)
		os.Exit(1)
	}
}

func run(opts viewer.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	win, err := display.Open(display.Config{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
	})
	if err != nil {
		return fmt.Errorf("open display: %w", err)
	}
	defer win.Close()

	app, err := viewer.New(opts, win, win)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(context.Background())
}
