package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/insights"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

type kpiCard struct {
	label string
	value string
	color string
}

// renderHeader draws the KPI cards, the trend sparkline and the column
// header. Short terminals only get the column header.
func (m *Model) renderHeader() string {
	if m.compactHeader() {
		return m.renderColumnHeader()
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderKPICards(),
		m.renderSparkline(),
		m.renderColumnHeader(),
	)
}

func (m *Model) kpiCards() []kpiCard {
	summary := insights.Summarize(m.list.products)
	critical := kpiCard{
		label: "Critical",
		value: formatCount(summary.Critical),
		color: m.theme.Header.ValueFg,
	}
	if summary.Critical > 0 {
		critical.color = m.theme.List.CriticalFg
	}
	return []kpiCard{
		{label: "Total Stock", value: formatCount(summary.TotalStock), color: m.theme.Header.ValueFg},
		{label: "Total Demand", value: formatCount(summary.TotalDemand), color: m.theme.Header.ValueFg},
		{label: "Fill Rate", value: fmt.Sprintf("%.1f%%", summary.FillRate), color: m.theme.Header.ValueFg},
		critical,
	}
}

func (m *Model) renderKPICards() string {
	cards := m.kpiCards()
	width := max(0, m.ui.width)
	cardWidth := max(4, width/len(cards))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Header.LabelFg))

	rendered := make([]string, 0, len(cards))
	for i, card := range cards {
		w := cardWidth
		if i == len(cards)-1 {
			w = max(4, width-cardWidth*(len(cards)-1))
		}
		inner := w - 2
		valueStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(card.color)).
			Bold(true)
		content := valueStyle.Render(padCell(card.value, inner-2, false)) + "\n" +
			labelStyle.Render(padCell(card.label, inner-2, false))
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(m.theme.Header.BorderFg)).
			Padding(0, 1).
			Width(inner).
			MaxHeight(kpiCardsHeight).
			Render(content)
		rendered = append(rendered, box)
	}
	return lipgloss.NewStyle().
		MaxWidth(width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}

func (m *Model) renderSparkline() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Header.LabelFg))
	sparkStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Header.SparkFg))
	label := fmt.Sprintf(" Stock trend %s ", m.header.kpiRange)
	if m.header.loadingKPI && len(m.header.kpis) == 0 {
		return labelStyle.Render(label) + m.ui.spinner.View()
	}
	if len(m.header.kpis) == 0 {
		return labelStyle.Render(label + "no data")
	}
	values := make([]int, len(m.header.kpis))
	for i, kpi := range m.header.kpis {
		values[i] = kpi.Stock
	}
	last := m.header.kpis[len(m.header.kpis)-1]
	tail := fmt.Sprintf(" %s  %s", formatCount(last.Stock), kpiDelta(m.header.kpis))
	room := max(0, m.ui.width-lipgloss.Width(label)-lipgloss.Width(tail))
	line := labelStyle.Render(label) + sparkStyle.Render(sparkline(values, room)) + labelStyle.Render(tail)
	return lipgloss.NewStyle().MaxWidth(max(0, m.ui.width)).Render(line)
}

// kpiDelta is the stock change from the first to the last day of the range.
func kpiDelta(kpis []catalog.KPI) string {
	if len(kpis) < 2 {
		return ""
	}
	delta := kpis[len(kpis)-1].Stock - kpis[0].Stock
	if delta >= 0 {
		return "+" + formatCount(delta)
	}
	return formatCount(delta)
}

// sparkline scales values between their min and max onto block glyphs,
// keeping the most recent values when they do not fit in width.
func sparkline(values []int, width int) string {
	if width <= 0 || len(values) == 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	var b strings.Builder
	top := len(sparkBlocks) - 1
	for _, v := range values {
		level := top / 2
		if hi > lo {
			level = (v - lo) * top / (hi - lo)
		}
		b.WriteRune(sparkBlocks[level])
	}
	return b.String()
}
