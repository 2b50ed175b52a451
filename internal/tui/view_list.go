package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/insights"
)

type listColumn struct {
	title      string
	width      int
	alignRight bool
}

// Fixed columns after the product name. The name column takes the rest.
var listColumns = []listColumn{
	{title: "SKU", width: 12},
	{title: "Warehouse", width: 10},
	{title: "Stock", width: 9, alignRight: true},
	{title: "Demand", width: 9, alignRight: true},
	{title: "", width: 2},
	{title: "Status", width: 9},
}

const (
	minNameWidth = 8
	// Cursor bar on the left and the bulk selection bar on the right.
	rowGutter = 2
)

func (m *Model) nameColumnWidth() int {
	fixed := 0
	for _, col := range listColumns {
		fixed += col.width + 1
	}
	return max(minNameWidth, m.ui.width-rowGutter-fixed)
}

func (m *Model) renderListView() string {
	header := m.renderHeader()
	if m.list.loading && len(m.list.products) == 0 {
		body := m.ui.spinner.View() + " Loading inventory..."
		return m.renderListLayout(header, body)
	}
	if len(m.list.products) == 0 {
		body := "No products"
		if m.filterActive() {
			body = "No products match " + m.filterSummary()
		}
		if m.filter.querying {
			body = m.ui.spinner.View() + " Searching..."
		}
		return m.renderListLayout(header, body)
	}
	return m.renderListLayout(header, m.renderListBody())
}

// renderListBody draws the rows of the current window. Each row lands on the
// body line its offset maps to; overscan rows outside the body are clipped.
func (m *Model) renderListBody() string {
	rows := m.bodyRows()
	if rows <= 0 {
		return ""
	}
	lines := make([]string, rows)
	result := m.list.scroll.CurrentWindow()
	for _, item := range result.Items {
		if item.Index < 0 || item.Index >= len(m.list.products) {
			continue
		}
		top := m.rowLine(item.OffsetTop)
		if top >= rows || top+m.list.rowLines <= 0 {
			continue
		}
		for i, line := range m.renderProductRow(item.Index) {
			if l := top + i; l >= 0 && l < rows {
				lines[l] = line
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) statusColor(status catalog.Status) string {
	switch status {
	case catalog.StatusHealthy:
		return m.theme.List.HealthyFg
	case catalog.StatusLow:
		return m.theme.List.LowFg
	default:
		return m.theme.List.CriticalFg
	}
}

// renderProductRow returns the rowLines terminal lines for one product.
func (m *Model) renderProductRow(index int) []string {
	p := m.list.products[index]
	isCursor := index == m.list.cursor
	isBulkSelected := m.isProductSelected(p)
	selectedBg := strings.TrimSpace(m.theme.List.SelectedBg)
	useBulkBg := isBulkSelected && selectedBg != ""

	baseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.List.Fg))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Status.Dim))
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.statusColor(p.Status()))).
		Bold(p.Status() == catalog.StatusCritical)
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.List.SelectedFg))
	spaceStyle := lipgloss.NewStyle()
	if isCursor {
		baseStyle = baseStyle.Bold(true)
	}
	if useBulkBg {
		bg := lipgloss.Color(selectedBg)
		baseStyle = baseStyle.Background(bg)
		dimStyle = dimStyle.Background(bg)
		statusStyle = statusStyle.Background(bg)
		barStyle = barStyle.Background(bg)
		spaceStyle = spaceStyle.Background(bg)
	}

	prefix := " "
	switch {
	case isCursor:
		prefix = barStyle.Render("┃")
	case isBulkSelected:
		prefix = barStyle.Render("▌")
	}
	suffix := " "
	if isBulkSelected {
		suffix = barStyle.Render("▐")
	}
	space := spaceStyle.Render(" ")

	nameWidth := m.nameColumnWidth()
	cells := []string{
		baseStyle.Render(padCell(p.Name, nameWidth, false)),
		dimStyle.Render(padCell(p.SKU, listColumns[0].width, false)),
		baseStyle.Render(padCell(p.Warehouse, listColumns[1].width, false)),
		baseStyle.Render(padCell(formatCount(p.Stock), listColumns[2].width, true)),
		baseStyle.Render(padCell(formatCount(p.Demand), listColumns[3].width, true)),
		statusStyle.Render(padCell("●", listColumns[4].width, true)),
		statusStyle.Render(padCell(p.Status().Label(), listColumns[5].width, false)),
	}
	clip := lipgloss.NewStyle().MaxWidth(max(0, m.ui.width))
	lines := make([]string, 0, m.list.rowLines)
	lines = append(lines, clip.Render(prefix+strings.Join(cells, space)+suffix))

	contentWidth := max(0, m.ui.width-rowGutter)
	if m.list.rowLines > 1 {
		detail := fmt.Sprintf("%s  fill %.1f%%", p.ID, insights.FillRate(p))
		if short := insights.Shortfall(p); short > 0 {
			detail += fmt.Sprintf("  short %s", formatCount(short))
		}
		line := dimStyle.Render(padCell(detail, contentWidth, false))
		lines = append(lines, clip.Render(prefix+line+suffix))
	}
	for len(lines) < m.list.rowLines {
		blank := spaceStyle.Render(strings.Repeat(" ", contentWidth))
		lines = append(lines, clip.Render(prefix+blank+suffix))
	}
	return lines
}

func (m *Model) renderColumnHeader() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.List.ColumnFg)).
		Bold(true)
	cells := []string{padCell("Product", m.nameColumnWidth(), false)}
	for _, col := range listColumns {
		cells = append(cells, padCell(col.title, col.width, col.alignRight))
	}
	line := " " + strings.Join(cells, " ") + " "
	return style.Render(truncateToWidth(line, max(0, m.ui.width)))
}

func (m *Model) renderListLayout(header string, body string) string {
	footerLine := m.renderListStatusline()
	footerHeight := lipgloss.Height(footerLine)
	headerHeight := 0
	if header != "" {
		headerHeight = lipgloss.Height(header)
	}
	bodyHeight := max(0, m.ui.height-headerHeight-footerHeight)
	bodyStyle := lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight)
	body = bodyStyle.Render(body)

	if header == "" {
		return lipgloss.JoinVertical(lipgloss.Left, body, footerLine)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footerLine)
}

func (m *Model) renderListStatusline() string {
	count := len(m.list.products)
	pos := 0
	if count > 0 {
		pos = min(m.list.cursor+1, count)
	}

	left := []statusSegment{}
	switch {
	case m.search.active:
		left = append(left,
			statusModeSegment(m.theme, "SEARCH"),
			statusPaddedRaw(m.theme, m.search.input.View()),
		)
	case m.gotoPrompt.active:
		left = append(left,
			statusModeSegment(m.theme, "GOTO"),
			statusPaddedRaw(m.theme, m.gotoPrompt.input.View()),
		)
	default:
		left = append(left,
			statusModeSegment(m.theme, "STOCK"),
			statusPowerlineSeparator(m.theme.Status.ModeBg, m.theme.Status.TabBg),
			statusTabSegment(m.theme, strings.ToUpper(string(m.header.kpiRange))),
			statusPowerlineSeparator(m.theme.Status.TabBg, m.theme.Status.Bg),
		)
		if summary := m.filterSummary(); summary != "" {
			left = append(left, statusDimSegment(m.theme, "filter: "+summary))
		}
	}

	left = append(left, statusTextSegment(m.theme, "products "+formatCount(count)))
	if selectedCount := m.selectedCount(); selectedCount > 0 {
		left = append(left, statusTextSegment(m.theme, "selected "+formatCount(selectedCount)))
	}

	right := []statusSegment{}
	switch {
	case m.list.loading:
		right = append(right, statusDimSegment(m.theme, m.ui.spinner.View()+" loading"))
	case m.drawer.submitting:
		right = append(right, statusDimSegment(m.theme, m.ui.spinner.View()+" saving"))
	case m.undo.inProgress:
		right = append(right, statusDimSegment(m.theme, "undoing"))
	case m.filter.querying:
		right = append(right, statusDimSegment(m.theme, "searching"))
	case m.list.refreshing:
		right = append(right, statusDimSegment(m.theme, "refreshing"))
	case m.list.stale:
		right = append(right, statusDimSegment(m.theme, "cached"))
	}

	right = append(right, statusTextSegment(m.theme, fmt.Sprintf("%s/%s", formatCount(pos), formatCount(count))))

	switch {
	case m.search.active:
		right = append(
			right,
			statusDimSegment(m.theme, "enter apply"),
			statusDimSegment(m.theme, "esc cancel"),
		)
	case m.gotoPrompt.active:
		right = append(
			right,
			statusDimSegment(m.theme, "enter go"),
			statusDimSegment(m.theme, "esc cancel"),
		)
	default:
		right = append(
			right,
			statusDimSegment(m.theme, "? help"),
			statusDimSegment(m.theme, "q quit"),
		)
	}

	return renderStatusline(m.theme, m.ui.width, left, right)
}
