package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// renderMarkdown renders markdown with glamour, rebuilding the renderer when
// the wrap width changes.
func (m *Model) renderMarkdown(text string, width int) string {
	if width > 0 && width != m.renderers.glamourWidth {
		r, err := NewMarkdownRenderer(m.theme, width)
		if err != nil {
			m.logf("glamour renderer width=%d err=%v", width, err)
		} else {
			m.renderers.glamourRenderer = r
			m.renderers.glamourWidth = width
		}
	}
	if m.renderers.glamourRenderer == nil {
		// Fallback to wrapped raw text if no renderer
		return wrapText(text, width)
	}

	rendered, err := m.renderers.glamourRenderer.Render(text)
	if err != nil {
		return wrapText(text, width)
	}

	return strings.TrimSpace(rendered)
}

func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// padCell fits text into exactly width cells.
func padCell(text string, width int, alignRight bool) string {
	if width <= 0 {
		return ""
	}
	text = truncateToWidth(text, width)
	gap := width - runewidth.StringWidth(text)
	if gap <= 0 {
		return text
	}
	if alignRight {
		return strings.Repeat(" ", gap) + text
	}
	return text + strings.Repeat(" ", gap)
}

func padToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	return text + strings.Repeat(" ", width-textWidth)
}

func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

func renderFixedLayout(height int, body, footer string) string {
	footerHeight := lipgloss.Height(footer)
	bodyHeight := max(0, height-footerHeight)
	bodyStyle := lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight)
	body = bodyStyle.Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}
