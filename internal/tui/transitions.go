package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/insights"
)

func (m *Model) openDrawer(p catalog.Product) tea.Cmd {
	m.drawer.show = true
	m.drawer.product = p
	m.drawer.err = nil
	m.drawer.submitting = false
	m.drawer.demand.SetValue(strconv.Itoa(p.Demand))
	m.drawer.warehouse.SetValue("")
	m.drawer.quantity.SetValue(strconv.Itoa(p.Stock))
	m.setDrawerTab(drawerTabDetails)
	m.logf("Drawer open product=%s", p.ID)
	return m.setWindowTitleCmd()
}

func (m *Model) closeDrawer() tea.Cmd {
	m.drawer.show = false
	m.drawer.err = nil
	m.drawer.demand.Blur()
	m.drawer.warehouse.Blur()
	m.drawer.quantity.Blur()
	return m.setWindowTitleCmd()
}

func (m *Model) drawerProduct() (catalog.Product, bool) {
	return m.drawer.product, m.drawer.show
}

func (m *Model) setDrawerTab(tab drawerTab) {
	m.drawer.tab = tab
	m.drawer.focus = 0
	m.drawer.err = nil
	m.focusDrawerInput()
}

func (m *Model) cycleDrawerTab(delta int) {
	n := len(drawerTabs)
	m.setDrawerTab(drawerTabs[((int(m.drawer.tab)+delta)%n+n)%n])
}

// focusDrawerInput focuses the input for the current tab and field.
func (m *Model) focusDrawerInput() {
	m.drawer.demand.Blur()
	m.drawer.warehouse.Blur()
	m.drawer.quantity.Blur()
	if input := m.activeDrawerInput(); input != nil {
		input.Focus()
		input.CursorEnd()
	}
}

func (m *Model) activeDrawerInput() *textinput.Model {
	switch m.drawer.tab {
	case drawerTabDemand:
		return &m.drawer.demand
	case drawerTabTransfer:
		if m.drawer.focus == 0 {
			return &m.drawer.warehouse
		}
		return &m.drawer.quantity
	default:
		return nil
	}
}

func (m *Model) openSearch() tea.Cmd {
	m.search.previousQuery = m.filter.search
	m.search.active = true
	m.search.input.SetValue(m.filter.search)
	m.search.input.CursorEnd()
	m.search.input.Focus()
	m.search.input.Width = max(10, m.ui.width-4)
	m.logf("Search open query=%q", m.filter.search)
	return textinput.Blink
}

func (m *Model) openGoto() tea.Cmd {
	m.gotoPrompt.active = true
	m.gotoPrompt.input.SetValue("")
	m.gotoPrompt.input.Focus()
	m.gotoPrompt.input.Width = max(10, m.ui.width-4)
	return textinput.Blink
}

func (m *Model) closeGoto() {
	m.gotoPrompt.active = false
	m.gotoPrompt.input.Blur()
}

// openInsights renders the insights report for the listed products.
func (m *Model) openInsights() tea.Cmd {
	m.insights.markdown = insights.Report(insights.ReportInput{
		Products:   m.list.products,
		Warehouses: m.header.warehouses,
		KPIs:       m.header.kpis,
		Range:      m.header.kpiRange,
		Now:        m.now(),
	})
	m.insights.show = true
	m.layoutInsights()
	return m.setWindowTitleCmd()
}

func (m *Model) closeInsights() tea.Cmd {
	m.insights.show = false
	return m.setWindowTitleCmd()
}

// layoutInsights sizes the insights viewport and re-renders for the width.
func (m *Model) layoutInsights() {
	width, height := m.insightsSize()
	m.insights.viewport.Width = width
	m.insights.viewport.Height = height
	if !m.insights.show {
		return
	}
	rendered := m.renderMarkdown(m.insights.markdown, width)
	m.insights.viewport.SetContent(rendered)
	m.insights.viewport.GotoTop()
}

func (m *Model) insightsSize() (int, int) {
	width := max(20, min(100, m.ui.width-8))
	height := max(3, m.ui.height-8)
	return width, height
}

func parseQuantity(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return n, true
}
