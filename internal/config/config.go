package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/drawdle/internal/geom"
	"github.com/example/drawdle/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Copy   bool
	Export bool
}

// Paper is the logical drawing size in canvas units.
type Paper struct {
	Width  float64
	Height float64
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	Store   string // file path, sqlite:path or http(s) URL
	Drawing string // name of the drawing inside the store
	MinZoom float64
	MaxZoom float64
	Paper   Paper
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Drawing: "default",
		MinZoom: geom.DefaultMinZoom,
		MaxZoom: geom.DefaultMaxZoom,
		Paper:   Paper{Width: geom.DefaultPaperWidth, Height: geom.DefaultPaperHeight},
		Themes:  make(map[string]*theme.Theme),
	}
}

// View returns the initial view described by the configuration.
func (c *Config) View() geom.View {
	v := geom.NewView(c.Paper.Width, c.Paper.Height)
	v.SetBounds(c.MinZoom, c.MaxZoom)
	return v
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.Store != "" {
		fmt.Fprintf(&sb, "store = %s\n", c.Store)
	}
	if c.Drawing != "" {
		fmt.Fprintf(&sb, "drawing = %s\n", c.Drawing)
	}
	fmt.Fprintf(&sb, "min_zoom = %s\n", formatFloat(c.MinZoom))
	fmt.Fprintf(&sb, "max_zoom = %s\n", formatFloat(c.MaxZoom))
	sb.WriteString("\n")

	sb.WriteString("[paper]\n")
	fmt.Fprintf(&sb, "width = %s\n", formatFloat(c.Paper.Width))
	fmt.Fprintf(&sb, "height = %s\n", formatFloat(c.Paper.Height))
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
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

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
