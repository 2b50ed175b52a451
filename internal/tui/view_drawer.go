package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/insights"
)

func (m *Model) drawerWidth() int {
	return max(30, min(64, m.ui.width-8))
}

func (m *Model) warehouseLabel(code string) string {
	for _, wh := range m.header.warehouses {
		if strings.EqualFold(wh.Code, code) {
			return fmt.Sprintf("%s (%s, %s)", wh.Code, wh.Name, wh.City)
		}
	}
	return code
}

// renderDrawer draws the product drawer. It is overlaid on the list by View.
func (m *Model) renderDrawer() string {
	p := m.drawer.product
	width := m.drawerWidth()

	titleStyle := lipgloss.NewStyle().Bold(true)
	var b strings.Builder
	b.WriteString(titleStyle.Render(truncateToWidth(p.Name, width)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Status.Dim)).
		Render(p.ID + " · " + p.SKU))
	b.WriteString("\n\n")
	b.WriteString(m.renderDrawerTabs())
	b.WriteString("\n\n")

	switch m.drawer.tab {
	case drawerTabDemand:
		b.WriteString(m.renderDemandTab(p))
	case drawerTabTransfer:
		b.WriteString(m.renderTransferTab(p))
	default:
		b.WriteString(m.renderDetailsTab(p, width))
	}

	if m.drawer.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Drawer.ErrorFg))
		b.WriteString("\n\n")
		b.WriteString(errStyle.Render(wrapText(m.drawer.err.Error(), width)))
	}

	b.WriteString("\n\n")
	footerStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(m.theme.Modal.FooterFg))
	footer := "tab switch • esc close"
	switch {
	case m.drawer.submitting:
		footer = m.ui.spinner.View() + " Saving..."
	case m.drawer.tab == drawerTabTransfer:
		footer = "tab switch • ↑/↓ field • enter transfer • esc close"
	case m.drawer.tab == drawerTabDemand:
		footer = "tab switch • enter update • esc close"
	}
	b.WriteString(footerStyle.Render(footer))

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (m *Model) renderDrawerTabs() string {
	active := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Drawer.TabActiveBg)).
		Foreground(lipgloss.Color(m.theme.Drawer.TabActiveFg)).
		Bold(true).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Drawer.TabFg)).
		Padding(0, 1)
	tabs := make([]string, 0, len(drawerTabs))
	for _, tab := range drawerTabs {
		if tab == m.drawer.tab {
			tabs = append(tabs, active.Render(tab.String()))
			continue
		}
		tabs = append(tabs, inactive.Render(tab.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) drawerLabel(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Drawer.LabelFg)).
		Bold(true).
		Render(padCell(text, 12, false))
}

func (m *Model) renderDetailsTab(p catalog.Product, width int) string {
	status := p.Status()
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.statusColor(status)))
	rows := [][2]string{
		{"Warehouse", m.warehouseLabel(p.Warehouse)},
		{"Stock", formatCount(p.Stock)},
		{"Demand", formatCount(p.Demand)},
		{"Status", statusStyle.Render(status.Label())},
		{"Fill rate", fmt.Sprintf("%.1f%%", insights.FillRate(p))},
	}
	if short := insights.Shortfall(p); short > 0 {
		rows = append(rows, [2]string{"Shortfall", formatCount(short)})
	}
	if surplus := insights.Surplus(p); surplus > 0 {
		rows = append(rows, [2]string{"Surplus", formatCount(surplus)})
	}

	valueWidth := max(8, width-12)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		value := row[1]
		if lipgloss.Width(value) > valueWidth {
			value = wrapText(value, valueWidth)
			value = strings.ReplaceAll(value, "\n", "\n"+strings.Repeat(" ", 12))
		}
		lines = append(lines, m.drawerLabel(row[0])+value)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderDemandTab(p catalog.Product) string {
	lines := []string{
		m.drawerLabel("Current") + formatCount(p.Demand),
		m.drawerLabel("New demand") + m.drawer.demand.View(),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTransferTab(p catalog.Product) string {
	codes := make([]string, 0, len(m.header.warehouses))
	for _, wh := range m.header.warehouses {
		if !strings.EqualFold(wh.Code, p.Warehouse) {
			codes = append(codes, wh.Code)
		}
	}
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Status.Dim))
	lines := []string{
		m.drawerLabel("From") + m.warehouseLabel(p.Warehouse),
		m.drawerLabel("To") + m.drawer.warehouse.View(),
		m.drawerLabel("Quantity") + m.drawer.quantity.View(),
		m.drawerLabel("Available") + formatCount(p.Stock),
	}
	if len(codes) > 0 {
		lines = append(lines, "", dim.Render(wrapText("Warehouses: "+strings.Join(codes, ", "), m.drawerWidth())))
	}
	return strings.Join(lines, "\n")
}
