package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiCyan, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

const Mark = "\u25C6" // ◆

// Banner prints the polymesh banner.
func Banner(w io.Writer, subtitle string) {
	fmt.Fprintf(w, "%s %s - %s\n\n", Brand.Sprint(Mark), Brand.Sprint("polymesh"), subtitle)
}

// Painter colors an already padded table cell.
type Painter func(row, col int, cell string) string

// Table prints a simple aligned table. Widths are measured before paint is
// applied, so escape codes never skew the columns. paint may be nil.
func Table(w io.Writer, headers []string, rows [][]string, paint Painter) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += fmt.Sprintf("%-*s  ", widths[i], h)
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Fprintln(w, strings.TrimRight(headerLine, " "))
	Subtle.Fprintln(w, strings.TrimRight(sepLine, " "))

	for r, row := range rows {
		var b strings.Builder
		b.WriteString("  ")
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			padded := fmt.Sprintf("%-*s", widths[i], cell)
			if paint != nil {
				padded = paint(r, i, padded)
			}
			b.WriteString(padded)
			b.WriteString("  ")
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

// KeyValue prints an indented "key: value" line with the key subdued.
func KeyValue(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "  %s %v\n", Subtle.Sprintf("%-10s", key+":"), value)
}

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}

// WarnIcon returns a warning icon.
func WarnIcon() string {
	return Warn.Sprint("⚠")
}
