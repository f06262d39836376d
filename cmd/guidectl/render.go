package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	dto "github.com/prometheus/client_model/go"
)

var styles = struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Widget lipgloss.Style
	Guide  lipgloss.Style
	Muted  lipgloss.Style
}{
	Title:  lipgloss.NewStyle().Bold(true),
	Header: lipgloss.NewStyle().Bold(true).Underline(true),
	Widget: lipgloss.NewStyle(),
	Guide:  lipgloss.NewStyle().Italic(true),
	Muted:  lipgloss.NewStyle().Faint(true),
}

var columns = []struct {
	title string
	width int
	value func(item) string
}{
	{"NAME", 16, func(i item) string { return i.Name }},
	{"KIND", 8, func(i item) string { return i.Kind }},
	{"X", 6, func(i item) string { return strconv.Itoa(i.X) }},
	{"Y", 6, func(i item) string { return strconv.Itoa(i.Y) }},
	{"WIDTH", 8, func(i item) string { return strconv.Itoa(i.Width) }},
	{"HEIGHT", 8, func(i item) string { return strconv.Itoa(i.Height) }},
}

func renderTable(sol solution) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("%s (%dx%d)", sol.File, sol.Width, sol.Height)))
	b.WriteByte('\n')

	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = styles.Header.Width(col.width).Render(col.title)
	}
	b.WriteString(strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))

	if len(sol.Items) == 0 {
		b.WriteByte('\n')
		b.WriteString(styles.Muted.Render("(empty layout)"))
	}
	for _, it := range sol.Items {
		style := styles.Widget
		if it.Kind == "guide" {
			style = styles.Guide
		}
		for i, col := range columns {
			cells[i] = style.Width(col.width).Render(col.value(it))
		}
		b.WriteByte('\n')
		b.WriteString(strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
	}
	return b.String()
}

func writeJSON(w io.Writer, sol solution) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sol)
}

// maxDrawCells bounds the text drawing of very large layouts.
const maxDrawCells = 200 * 100

// draw paints each widget with the first letter of its name and each guide
// with dots. Later items paint over earlier ones.
func draw(sol solution) string {
	if sol.Width <= 0 || sol.Height <= 0 || sol.Width*sol.Height > maxDrawCells {
		return styles.Muted.Render(fmt.Sprintf("(cannot draw %dx%d)", sol.Width, sol.Height))
	}
	grid := make([][]rune, sol.Height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", sol.Width))
	}
	for _, it := range sol.Items {
		mark := '.'
		if it.Kind == "widget" && it.Name != "" {
			mark = []rune(it.Name)[0]
		}
		r := it.rect()
		for y := max(0, r.Y); y < min(sol.Height, r.Bottom()); y++ {
			for x := max(0, r.X); x < min(sol.Width, r.Right()); x++ {
				grid[y][x] = mark
			}
		}
	}

	lines := make([]string, len(grid))
	for y, row := range grid {
		lines[y] = "|" + string(row) + "|"
	}
	border := "+" + strings.Repeat("-", sol.Width) + "+"
	return border + "\n" + strings.Join(lines, "\n") + "\n" + border
}

func writeMetrics(w io.Writer, families []*dto.MetricFamily) {
	fmt.Fprintln(w, styles.Title.Render("metrics"))
	for _, f := range families {
		for _, m := range f.GetMetric() {
			var value string
			switch f.GetType() {
			case dto.MetricType_COUNTER:
				value = strconv.FormatFloat(m.GetCounter().GetValue(), 'g', -1, 64)
			case dto.MetricType_GAUGE:
				value = strconv.FormatFloat(m.GetGauge().GetValue(), 'g', -1, 64)
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				value = fmt.Sprintf("count=%d sum=%gs", h.GetSampleCount(), h.GetSampleSum())
			default:
				continue
			}
			fmt.Fprintf(w, "  %s %s\n", styles.Widget.Width(44).Render(f.GetName()), value)
		}
	}
}
