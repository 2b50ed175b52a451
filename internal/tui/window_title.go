package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	windowTitleMaxRunes = 80
	windowTitleSuffix   = " - stockroom"
)

func (m *Model) setWindowTitleCmd() tea.Cmd {
	return tea.SetWindowTitle(m.windowTitle())
}

func (m *Model) windowTitle() string {
	switch {
	case m.insights.show:
		return formatWindowTitle("Insights")
	case m.drawer.show:
		return formatWindowTitle(m.drawerTitle())
	case m.filterActive():
		return formatWindowTitle("Products: " + m.filterSummary())
	default:
		return formatWindowTitle("")
	}
}

func (m *Model) drawerTitle() string {
	p, ok := m.drawerProduct()
	if !ok {
		return "Product"
	}
	if name := strings.TrimSpace(p.Name); name != "" {
		return p.ID + " " + name
	}
	return p.ID
}

func formatWindowTitle(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return "stockroom"
	}
	maxBody := windowTitleMaxRunes - len([]rune(windowTitleSuffix))
	if maxBody <= 0 {
		return "stockroom"
	}
	body = truncateTitle(body, maxBody)
	return body + windowTitleSuffix
}

func truncateTitle(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	if maxRunes <= 3 {
		return strings.Repeat(".", maxRunes)
	}
	return string(runes[:maxRunes-3]) + "..."
}
