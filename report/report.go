// Package report renders analysis results: console tables for the
// terminal and timestamped CSV, Excel and plain-text exports for
// sharing. Console report bodies are the product of this tool, so they
// go to stdout as returned strings rather than through the logger.
package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Title renders a section heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Table renders headers and rows as a bordered console table.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	return t.Render()
}

// KeyValues renders label/value pairs as aligned lines, for summary
// blocks where a bordered table is overkill.
func KeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, p[0], p[1])
	}
	return b.String()
}

// nowFunc is swapped in tests.
var nowFunc = time.Now

// Timestamped builds an export path dir/stem_YYYYMMDD_HHMM.ext so
// repeated runs never overwrite each other.
func Timestamped(dir, stem, ext string) string {
	name := fmt.Sprintf("%s_%s.%s", stem, nowFunc().Format("20060102_1504"), ext)
	return filepath.Join(dir, name)
}
