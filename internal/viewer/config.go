package viewer

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Options configures the viewer. Bindings maps a single-character key to an
// action name understood by ParseAction; nil keeps the defaults.
type Options struct {
	Width         int               `yaml:"width"`
	Height        int               `yaml:"height"`
	Title         string            `yaml:"title"`
	TargetFPS     float64           `yaml:"fps"`
	ScreenshotDir string            `yaml:"screenshot_dir"`
	Bindings      map[string]string `yaml:"bindings"`
}

// DefaultOptions matches the original viewer: a 600×600 window at 60 FPS.
func DefaultOptions() Options {
	return Options{
		Width:         600,
		Height:        600,
		Title:         "Image Window",
		TargetFPS:     60,
		ScreenshotDir: ".",
	}
}

// Validate checks the options and returns the first problem found.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid window dimensions %dx%d", o.Width, o.Height)
	}
	if o.TargetFPS <= 0 {
		return fmt.Errorf("invalid target fps %v", o.TargetFPS)
	}
	for key, name := range o.Bindings {
		if utf8.RuneCountInString(key) != 1 {
			return fmt.Errorf("binding key %q must be a single character", key)
		}
		if _, err := ParseAction(name); err != nil {
			return fmt.Errorf("binding %q: %w", key, err)
		}
	}
	return nil
}

// CompileBindings resolves the configured bindings, or the defaults when
// none are configured.
func (o Options) CompileBindings() (Bindings, error) {
	if len(o.Bindings) == 0 {
		return DefaultBindings(), nil
	}
	out := make(Bindings, len(o.Bindings))
	for key, name := range o.Bindings {
		r, size := utf8.DecodeRuneInString(key)
		if size != len(key) || r == utf8.RuneError {
			return nil, fmt.Errorf("binding key %q must be a single character", key)
		}
		act, err := ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", key, err)
		}
		out[r] = act
	}
	return out, nil
}

// LoadOptions reads a YAML config file over the defaults. Unknown fields
// are rejected so a typo does not silently fall back to a default value.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	f, err := os.Open(path)
	if err != nil {
		return opts, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		return opts, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("config %s: %w", path, err)
	}
	return opts, nil
}
