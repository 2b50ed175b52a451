package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/stockroom-dev/stockroom/internal/config"
)

// newHelpModel styles key hints with the inventory palette: the header
// accent in the status bar, the healthy stock colour in the full sheet.
func newHelpModel(theme config.Theme) help.Model {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	m := help.New()
	m.Styles = help.Styles{
		ShortKey:       fg(theme.Header.SparkFg).Bold(true),
		ShortDesc:      fg(theme.Status.Dim),
		ShortSeparator: fg(theme.List.ColumnFg),
		FullKey:        fg(theme.List.HealthyFg).Bold(true),
		FullDesc:       fg(theme.List.Fg),
		FullSeparator:  fg(theme.List.ColumnFg),
		Ellipsis:       fg(theme.List.LowFg),
	}
	m.ShortSeparator = " · "
	m.FullSeparator = "   │   "
	m.Ellipsis = " …"
	return m
}
