package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"go.dalton.dog/bubbleup"

	"github.com/stockroom-dev/stockroom/internal/config"
	"github.com/stockroom-dev/stockroom/internal/export"
)

const toastDurationSeconds = 6

func newAlertModel(theme config.Theme, width int) bubbleup.AlertModel {
	model := *bubbleup.NewAlertModel(width, true, toastDurationSeconds)

	color := strings.TrimSpace(theme.Drawer.BorderFg)
	if color == "" {
		color = strings.TrimSpace(theme.Status.ModeBg)
	}
	if color == "" {
		color = theme.Status.Fg
	}

	model.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       bubbleup.InfoKey,
		ForeColor: color,
		Prefix:    bubbleup.InfoNerdSymbol,
	})

	return model
}

func (m Model) updateAlerts(msg tea.Msg) (Model, tea.Cmd) {
	outAlert, alertCmd := m.ui.alert.Update(msg)
	m.ui.alert = outAlert.(bubbleup.AlertModel)
	return m, alertCmd
}

func (m *Model) toastCmd(message string) tea.Cmd {
	if strings.TrimSpace(message) == "" {
		return nil
	}
	return m.ui.alert.NewAlertCmd(bubbleup.InfoKey, message)
}

func (m *Model) mutationToastCmd(mu mutation, undo bool) tea.Cmd {
	message := mu.describe()
	switch {
	case undo:
		message = "Undone: " + message
	case m.undo.inverse != nil:
		message += " - u undo"
	}
	return m.toastCmd(message)
}

func (m *Model) exportToastCmd(format export.Format, count int, path string) tea.Cmd {
	noun := "product"
	if count != 1 {
		noun = "products"
	}
	return m.toastCmd(fmt.Sprintf(
		"Exported %s %s as %s to %s",
		humanize.Comma(int64(count)),
		noun,
		strings.ToUpper(string(format)),
		path,
	))
}

func (m Model) clearAlerts() Model {
	m.ui.alert = newAlertModel(m.theme, m.ui.width)
	return m
}
