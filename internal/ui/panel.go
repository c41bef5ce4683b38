package ui

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Makepad-fr/stock/internal/model"
	"github.com/mattn/go-runewidth"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

// width is the number of terminal cells s occupies once colours are removed.
func width(s string) int { return runewidth.StringWidth(stripANSI(s)) }

func padRight(s string, w int) string {
	if vis := width(s); vis < w {
		return s + strings.Repeat(" ", w-vis)
	}
	return s
}

// ProgressBar renders a bar with percentage.
func ProgressBar(part, total, barWidth int) string {
	if total <= 0 {
		total = 1
	}
	if barWidth < 5 {
		barWidth = 5
	}
	filled := int(float64(part) / float64(total) * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	t := Current()
	bar := strings.Repeat(t.BarFull, filled) + strings.Repeat(t.BarEmpty, barWidth-filled)
	pct := int(float64(part) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if vis := width(ln); vis > maxw {
			maxw = vis
		}
	}
	fmt.Fprintln(w, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(w, t.V+" "+padRight(ln, maxw)+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}

// Header is the title line with the item and distinct-name counts.
func Header(items, distinct int) string {
	t := Current()
	return fmt.Sprintf("%s  %s %d  %s %d",
		C(t.Title, "Inventory"),
		C(t.Accent, "items"), items,
		C(t.Accent, "distinct"), distinct,
	)
}

// ItemLines numbers items from 1 for display.
func ItemLines(items []string) []string {
	if len(items) == 0 {
		return []string{C(Current().Muted, "inventory is empty")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		out = append(out, fmt.Sprintf("%s %s", Dim(fmt.Sprintf("%2d.", i+1)), truncate(it, 60)))
	}
	return out
}

// SummaryLines renders one aligned row per entry: name, count and its share
// of total.
func SummaryLines(entries []model.Entry, total int) []string {
	if len(entries) == 0 {
		return []string{C(Current().Muted, "no items to summarize")}
	}
	t := Current()
	nameW := width("name")
	for _, e := range entries {
		if w := width(truncate(e.Name, 40)); w > nameW {
			nameW = w
		}
	}
	out := []string{C(t.Muted, padRight("name", nameW)+"  count  share")}
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s  %s  %s",
			padRight(truncate(e.Name, 40), nameW),
			C(t.Count, fmt.Sprintf("%5d", e.Count)),
			C(t.Muted, ProgressBar(e.Count, total, 12)),
		))
	}
	return out
}

// Render is the full view shown after every change: header, items and summary.
func Render(w io.Writer, items []string, entries []model.Entry) {
	lines := []string{Header(len(items), len(entries)), ""}
	lines = append(lines, ItemLines(items)...)
	lines = append(lines, "")
	lines = append(lines, SummaryLines(entries, len(items))...)
	Panel(w, lines)
}

func truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}
