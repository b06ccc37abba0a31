package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/postcardscan/internal/theme"
)

// Display holds canvas and navigation settings.
type Display struct {
	Width     int
	Height    int
	Margin    int
	ZoomSize  int
	ZoomLevel float64
	Nudge     float64
	FitScreen bool
}

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme         string
	Suffix        string
	SaveDir       string
	Interpolation string
	Display       Display
	Notify        Notify
	Themes        map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Suffix:        "_postcard",
		Interpolation: "approx-bilinear",
		Display: Display{
			Width:     800,
			Height:    600,
			Margin:    10,
			ZoomSize:  200,
			ZoomLevel: 50,
			Nudge:     0.5,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	fmt.Fprintf(&sb, "suffix = %q\n", c.Suffix)
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "interpolation = %s\n", c.Interpolation)
	sb.WriteString("\n")

	d := c.Display
	sb.WriteString("[display]\n")
	fmt.Fprintf(&sb, "width = %d\n", d.Width)
	fmt.Fprintf(&sb, "height = %d\n", d.Height)
	fmt.Fprintf(&sb, "margin = %d\n", d.Margin)
	fmt.Fprintf(&sb, "zoom_size = %d\n", d.ZoomSize)
	fmt.Fprintf(&sb, "zoom_level = %g\n", d.ZoomLevel)
	fmt.Fprintf(&sb, "nudge = %g\n", d.Nudge)
	fmt.Fprintf(&sb, "fit_screen = %v\n", d.FitScreen)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = theme.Format(&sb, c.Themes[name])
		sb.WriteString("\n")
	}

	return sb.String()
}

// ResolveTheme returns the theme called name, preferring themes defined in
// the configuration over those found by l.
func (c *Config) ResolveTheme(name string, l *theme.Loader) (*theme.Theme, error) {
	if name == "" {
		name = c.Theme
	}
	if name == "" {
		return theme.Default(), nil
	}
	if t, ok := c.Themes[name]; ok {
		return t, nil
	}
	return l.Load(name)
}
