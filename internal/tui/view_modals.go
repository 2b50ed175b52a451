package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

const errorModalWidth = 60

// overlayModal centers a bordered modal on top of the base view.
func (m *Model) overlayModal(baseView string, modal string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Drawer.BorderFg)).
		Padding(1, 2).
		Render(modal)
	return overlay.Composite(box, baseView, overlay.Center, overlay.Center, 0, 0)
}

// renderModal stacks a centered title, the body and a dim centered footer.
func (m *Model) renderModal(width int, title string, bold bool, body string, footer string) string {
	var b strings.Builder
	titleStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Bold(bold)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	footerStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(m.theme.Modal.FooterFg))
	b.WriteString(footerStyle.Render(footer))
	return b.String()
}

func (m *Model) renderHelpModal() string {
	width := max(40, min(80, m.ui.width-10))
	helpModel := m.ui.help
	helpModel.ShowAll = true
	helpModel.Width = max(10, width-4)
	return m.renderModal(width, "Keyboard Shortcuts", true, helpModel.View(m.keyMap()), "Press any key to close")
}

func (m *Model) renderErrorModal() string {
	width := min(errorModalWidth, max(20, m.ui.width-10))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Drawer.ErrorFg))
	body := errStyle.Render(wrapText(m.ui.err.Error(), width))
	return m.renderModal(width, "Error", false, body, "Press any key to dismiss")
}

func (m *Model) renderInsightsModal() string {
	vp := m.insights.viewport
	footer := fmt.Sprintf("j/k scroll • esc close • %d%%", int(vp.ScrollPercent()*100))
	return m.renderModal(vp.Width, "Inventory Insights", true, vp.View(), footer)
}
