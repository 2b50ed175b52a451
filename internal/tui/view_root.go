package tui

// View renders the UI.
func (m Model) View() string {
	output := m.renderListView()

	// Overlay modals on top of base view
	switch {
	case m.ui.showHelp:
		output = m.overlayModal(output, m.renderHelpModal())
	case m.ui.showError && m.ui.err != nil:
		output = m.overlayModal(output, m.renderErrorModal())
	case m.insights.show:
		output = m.overlayModal(output, m.renderInsightsModal())
	case m.drawer.show:
		output = m.overlayModal(output, m.renderDrawer())
	}

	return m.ui.alert.Render(output)
}
