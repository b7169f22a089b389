package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style selects the table border glyphs. Presentation only, never data.
type Style string

// Supported table styles.
const (
	StyleASCII   Style = "ascii"
	StyleMinimal Style = "minimal"
	StyleRounded Style = "rounded"
	StyleSimple  Style = "simple"
	StyleSquare  Style = "square"
)

var styleNames = []Style{StyleASCII, StyleMinimal, StyleRounded, StyleSimple, StyleSquare}

// ParseStyle validates a style name, case-insensitively.
func ParseStyle(s string) (Style, error) {
	name := Style(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range styleNames {
		if name == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown table style %q (valid styles: %s)", s, styleNamesList())
}

func styleNamesList() string {
	names := make([]string, len(styleNames))
	for i, s := range styleNames {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// asciiBorder draws the table with plain +, - and | glyphs for terminals
// without box-drawing support.
var asciiBorder = lipgloss.Border{
	Top:          "-",
	Bottom:       "-",
	Left:         "|",
	Right:        "|",
	TopLeft:      "+",
	TopRight:     "+",
	BottomLeft:   "+",
	BottomRight:  "+",
	MiddleLeft:   "+",
	MiddleRight:  "+",
	Middle:       "+",
	MiddleTop:    "+",
	MiddleBottom: "+",
}

// borderConfig pairs a border glyph set with which table edges to draw.
type borderConfig struct {
	border                                   lipgloss.Border
	top, bottom, left, right, column, header bool
}

func borderFor(s Style) borderConfig {
	switch s {
	case StyleASCII:
		return borderConfig{border: asciiBorder, top: true, bottom: true, left: true, right: true, column: true, header: true}
	case StyleMinimal:
		// Column separators and a header rule, no outer frame.
		return borderConfig{border: lipgloss.NormalBorder(), column: true, header: true}
	case StyleSimple:
		// Header rule only.
		return borderConfig{border: lipgloss.NormalBorder(), header: true}
	case StyleSquare:
		return borderConfig{border: lipgloss.NormalBorder(), top: true, bottom: true, left: true, right: true, column: true, header: true}
	default:
		return borderConfig{border: lipgloss.RoundedBorder(), top: true, bottom: true, left: true, right: true, column: true, header: true}
	}
}

// ANSI palette for cell styling.
var (
	colorRed     = lipgloss.Color("1")
	colorGreen   = lipgloss.Color("2")
	colorYellow  = lipgloss.Color("3")
	colorBlue    = lipgloss.Color("4")
	colorMagenta = lipgloss.Color("5")
	colorCyan    = lipgloss.Color("6")
	colorOrange  = lipgloss.Color("208")
)

func statusColor(base lipgloss.Style, value string) lipgloss.Style {
	text := strings.ToLower(value)
	switch {
	case strings.Contains(text, "up") || strings.Contains(text, "running"):
		return base.Foreground(colorGreen).Bold(true)
	case strings.Contains(text, "exited") || strings.Contains(text, "dead"):
		return base.Foreground(colorRed).Bold(true)
	case strings.Contains(text, "created"):
		return base.Foreground(colorYellow).Bold(true)
	case strings.Contains(text, "paused"):
		return base.Foreground(colorBlue).Bold(true)
	case strings.Contains(text, "restarting"):
		return base.Foreground(colorOrange).Bold(true)
	case strings.Contains(text, "removing"):
		return base.Foreground(colorRed).Faint(true)
	}
	return base.Faint(true)
}

func healthColor(base lipgloss.Style, value string) lipgloss.Style {
	text := strings.ToLower(value)
	switch {
	case strings.Contains(text, "unhealthy"):
		return base.Foreground(colorRed).Bold(true)
	case strings.Contains(text, "healthy"):
		return base.Foreground(colorGreen).Bold(true)
	case strings.Contains(text, "starting"):
		return base.Foreground(colorYellow).Bold(true)
	}
	return base.Faint(true)
}
