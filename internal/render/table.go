// Package render projects filtered records onto the resolved columns and
// writes either a styled table or a bare ID list.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/dps-tool/dps/internal/fields"
	"github.com/dps-tool/dps/internal/records"
)

// Render-time truncation widths. Filters never see truncated values; the
// cut happens here, just before display.
const idDisplayLen = 12

var truncWidths = map[fields.Name]int{
	fields.Command: 30,
	fields.Image:   40,
	fields.Labels:  60,
}

// Options controls presentation. None of it affects the underlying data.
type Options struct {
	Columns   []fields.Name
	Style     Style
	NoTrunc   bool
	ShowLines bool
	Quiet     bool

	// ForceColor enables styling even when the writer is not a terminal.
	ForceColor bool
}

// Renderer writes records to a single output writer. Styling is enabled
// when writing to a TTY, or when ForceColor is set.
type Renderer struct {
	w      io.Writer
	opts   Options
	styled bool
	tty    bool
	width  int

	header lipgloss.Style
	border lipgloss.Style
}

// New creates a renderer for the given writer.
func New(w io.Writer, opts Options) *Renderer {
	width, isTTY := terminalInfo(w)
	styled := isTTY || opts.ForceColor

	if styled {
		lipgloss.SetColorProfile(termenv.TrueColor)
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	r := &Renderer{
		w:      w,
		opts:   opts,
		styled: styled,
		tty:    isTTY,
		width:  width,
		header: lipgloss.NewStyle().Padding(0, 1),
		border: lipgloss.NewStyle(),
	}
	if styled {
		r.header = r.header.Bold(true).Foreground(colorBlue)
		r.border = r.border.Faint(true)
	}
	return r
}

// terminalInfo returns the terminal width and whether the writer is a TTY.
func terminalInfo(w io.Writer) (width int, isTTY bool) {
	width = 80

	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(f.Fd()); err == nil && cols >= 40 {
			width = cols
		}
		fi, err := f.Stat()
		if err == nil && (fi.Mode()&os.ModeCharDevice) != 0 {
			isTTY = true
		}
	}

	return width, isTTY
}

// Render writes the records. Quiet mode prints one ID per line in input
// order and ignores every presentation option. Table mode renders a header
// row plus one row per record; an empty record set still yields the header.
func (r *Renderer) Render(recs []records.Normalized) error {
	if r.opts.Quiet {
		for _, rec := range recs {
			if _, err := fmt.Fprintln(r.w, rec[fields.ID]); err != nil {
				return err
			}
		}
		return nil
	}

	cols := r.opts.Columns

	headers := make([]string, len(cols))
	for i, n := range cols {
		headers[i] = fields.Header(n)
	}

	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		row := make([]string, len(cols))
		for i, n := range cols {
			row[i] = r.cell(n, rec[n])
		}
		rows = append(rows, row)
	}

	cfg := borderFor(r.opts.Style)
	t := table.New().
		Border(cfg.border).
		BorderStyle(r.border).
		BorderTop(cfg.top).
		BorderBottom(cfg.bottom).
		BorderLeft(cfg.left).
		BorderRight(cfg.right).
		BorderColumn(cfg.column).
		BorderHeader(cfg.header).
		BorderRow(r.opts.ShowLines).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			value := ""
			if row >= 0 && row < len(rows) && col < len(rows[row]) {
				value = rows[row][col]
			}
			return r.cellStyle(cols[col], value)
		}).
		Headers(headers...).
		Rows(rows...)

	// Fill the terminal when attached to one, matching docker's own tables.
	if r.tty {
		t = t.Width(r.width)
	}

	if _, err := fmt.Fprintln(r.w, t.String()); err != nil {
		return err
	}
	return nil
}

// cell applies the render-time truncation policy to one value.
func (r *Renderer) cell(n fields.Name, value string) string {
	if r.opts.NoTrunc {
		return value
	}
	if n == fields.ID {
		if len(value) > idDisplayLen {
			return value[:idDisplayLen]
		}
		return value
	}
	if w, ok := truncWidths[n]; ok {
		return runewidth.Truncate(value, w, "…")
	}
	return value
}

func (r *Renderer) cellStyle(n fields.Name, value string) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)
	switch n {
	case fields.ID, fields.Size, fields.CreatedAt:
		base = base.Align(lipgloss.Right)
	}
	if !r.styled {
		return base
	}

	switch n {
	case fields.ID:
		return base.Foreground(colorCyan)
	case fields.Image:
		return base.Foreground(colorBlue)
	case fields.Command:
		return base.Faint(true)
	case fields.CreatedAt:
		return base.Faint(true)
	case fields.Status:
		return statusColor(base, value)
	case fields.Ports:
		return base.Foreground(colorMagenta)
	case fields.Names:
		return base.Bold(true)
	case fields.Size:
		return base.Foreground(colorGreen)
	case fields.Health:
		return healthColor(base, value)
	case fields.Labels:
		return base.Faint(true).Italic(true)
	}
	return base
}
