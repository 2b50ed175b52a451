package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles events and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		return m.updateSpinner(msg)
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.FocusMsg:
		m.ui.focused = true
		return m, nil
	case tea.BlurMsg:
		m.ui.focused = false
		return m, nil
	case dashboardLoadedMsg:
		return m.handleDashboardLoaded(msg)
	case productsLoadedMsg:
		return m.handleProductsLoaded(msg)
	case kpisLoadedMsg:
		return m.handleKPIsLoaded(msg)
	case mutationDoneMsg:
		return m.handleMutationDone(msg)
	case exportDoneMsg:
		return m.handleExportDone(msg)
	case searchDebounceMsg:
		return m.handleSearchDebounce(msg)
	case autoRefreshMsg:
		return m.handleAutoRefresh(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	default:
		return m.updateAlerts(msg)
	}
}
