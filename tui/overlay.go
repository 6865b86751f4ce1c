package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/vetrek/pilot"
)

// composite draws overlay on top of base at character position (x, y).
// Both strings are treated as line-based grids; base content outside the
// overlay rectangle is preserved, including ANSI styling.
func composite(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	overlayLines := splitLines(overlay)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		leftWidth := ansi.StringWidth(left)
		if leftWidth < x {
			left += strings.Repeat(" ", x-leftWidth)
		}

		overlayLine := padRight(line, overlayWidth)
		pos := x + ansi.StringWidth(overlayLine)
		right := ""
		if width > 0 {
			right = ansi.TruncateLeft(target, pos, "")
			rightWidth := ansi.StringWidth(right)
			gap := width - pos - rightWidth
			if gap > 0 {
				right = strings.Repeat(" ", gap) + right
			}
		}

		baseLines[row] = left + overlayLine + right
	}
	return strings.Join(baseLines, "\n")
}

// sheetHeight resolves a sheet's height from its detents, using
// fallback when the presentation carries none. The result always leaves
// the top base row visible and never collapses below a usable minimum.
func sheetHeight(p pilot.Presentation, total int, fallback pilot.Detent) int {
	f := float64(fallback)
	for _, d := range p.Detents {
		if float64(d) > f {
			f = float64(d)
		}
	}
	h := int(float64(total) * f)
	if h < 3 {
		h = 3
	}
	if h > total-1 {
		h = total - 1
	}
	return h
}

// padHeight extends s with blank lines until it spans height rows.
func padHeight(s string, height int) string {
	lines := splitLines(s)
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// splitLines splits on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// maxLineWidth returns the visual width of the widest line.
func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
