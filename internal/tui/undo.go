package tui

import tea "github.com/charmbracelet/bubbletea"

func (m *Model) undoAvailable() bool {
	return m.undo.inverse != nil && !m.undo.inProgress
}

// undoCmd reverts the last mutation. The inverse is consumed so a second
// undo does nothing until another mutation lands.
func (m *Model) undoCmd() tea.Cmd {
	if !m.undoAvailable() {
		return nil
	}
	inverse := *m.undo.inverse
	m.undo.inverse = nil
	m.undo.inProgress = true
	m.logf("Undo %s", inverse.describe())
	return m.mutateCmd(inverse, true)
}

// rememberUndo stores the inverse of a mutation that just succeeded.
func (m *Model) rememberUndo(msg mutationDoneMsg) {
	if msg.undo {
		m.undo.inverse = nil
		return
	}
	inverse := msg.mutation.inverse(msg.previous)
	m.undo.inverse = &inverse
}
