package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/export"
	"github.com/stockroom-dev/stockroom/internal/insights"
	"github.com/stockroom-dev/stockroom/internal/journal"
	"github.com/stockroom-dev/stockroom/internal/log"
)

var (
	errDemandInput   = errors.New("demand must be a whole number of 0 or more")
	errQuantityInput = errors.New("quantity must be a whole number above 0")
	errDestination   = errors.New("destination warehouse is required")
	errSameWarehouse = errors.New("destination is the current warehouse")
)

func (m Model) updateSpinner(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.ui.spinner, cmd = m.ui.spinner.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m = m.clearAlerts()
	// Close modals on any keypress
	if m.ui.showHelp {
		m.ui.showHelp = false
		return m, nil
	}
	if m.ui.showError {
		m.ui.showError = false
		m.ui.err = nil
		return m, nil
	}
	switch {
	case m.insights.show:
		return m.handleInsightsKey(msg)
	case m.drawer.show:
		return m.handleDrawerKey(msg)
	case m.search.active:
		return m.handleSearchKey(msg)
	case m.gotoPrompt.active:
		return m.handleGotoKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ui.focused {
		return m, nil
	}
	if m.insights.show {
		var cmd tea.Cmd
		m.insights.viewport, cmd = m.insights.viewport.Update(msg)
		return m, cmd
	}
	if m.drawer.show || m.ui.showHelp || m.ui.showError {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollLines(-wheelLines)
	case tea.MouseButtonWheelDown:
		m.scrollLines(wheelLines)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		idx, ok := m.productIndexAtLine(msg.Y - m.headerHeight())
		if !ok {
			return m, nil
		}
		if idx == m.list.cursor {
			cmd := m.openDrawer(m.list.products[idx])
			return m, cmd
		}
		m.list.cursor = idx
		m.ensureCursorVisible()
	case tea.MouseButtonNone,
		tea.MouseButtonMiddle,
		tea.MouseButtonRight,
		tea.MouseButtonWheelLeft,
		tea.MouseButtonWheelRight,
		tea.MouseButtonBackward,
		tea.MouseButtonForward,
		tea.MouseButton10,
		tea.MouseButton11:
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap()
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, km.list.Quit):
		return m, tea.Quit
	case key.Matches(msg, km.list.Help):
		m.ui.showHelp = true
	case key.Matches(msg, km.list.Refresh):
		m.list.refreshing = true
		m.logf("Refresh manual products=%d", len(m.list.products))
		cmd = tea.Batch(m.loadDashboardCmd(loadManual), m.ui.spinner.Tick)
	case key.Matches(msg, km.list.Up):
		m.moveCursor(-1)
	case key.Matches(msg, km.list.Down):
		m.moveCursor(1)
	case key.Matches(msg, km.list.PageUp):
		m.moveCursor(-m.pageRows())
	case key.Matches(msg, km.list.PageDown):
		m.moveCursor(m.pageRows())
	case key.Matches(msg, km.list.ScrollUp):
		m.scrollLines(-max(1, m.bodyRows()/2))
	case key.Matches(msg, km.list.ScrollDown):
		m.scrollLines(max(1, m.bodyRows()/2))
	case key.Matches(msg, km.list.Top):
		if len(m.list.products) > 0 {
			cmd = m.jumpCmd(0)
		}
	case key.Matches(msg, km.list.Bottom):
		if n := len(m.list.products); n > 0 {
			cmd = m.jumpCmd(n - 1)
		}
	case key.Matches(msg, km.list.Open):
		if p, ok := m.selectedProduct(); ok {
			cmd = tea.Batch(m.openDrawer(p), textinput.Blink)
		}
	case key.Matches(msg, km.list.ToggleSelect):
		m.toggleProductSelection(m.list.cursor)
	case key.Matches(msg, km.list.ClearSelection):
		m.clearSelection()
	case key.Matches(msg, km.list.Undo):
		cmd = m.undoCmd()
	case key.Matches(msg, km.list.Goto):
		cmd = m.openGoto()
	case key.Matches(msg, km.list.Search):
		cmd = m.openSearch()
	case key.Matches(msg, km.list.StatusFilter):
		cmd = m.cycleStatus()
		cmd = tea.Batch(cmd, m.setWindowTitleCmd())
	case key.Matches(msg, km.list.WarehouseFilter):
		cmd = m.cycleWarehouse()
		cmd = tea.Batch(cmd, m.setWindowTitleCmd())
	case key.Matches(msg, km.list.ClearFilters):
		cmd = m.clearFilters()
		cmd = tea.Batch(cmd, m.setWindowTitleCmd())
	case key.Matches(msg, km.list.Range):
		m.header.kpiRange = m.header.kpiRange.Next()
		m.header.loadingKPI = true
		cmd = m.loadKPIsCmd(m.header.kpiRange)
	case key.Matches(msg, km.list.Insights):
		cmd = m.openInsights()
	case key.Matches(msg, km.list.ExportCSV):
		cmd = m.startExport(export.FormatCSV)
	case key.Matches(msg, km.list.ExportJSON):
		cmd = m.startExport(export.FormatJSON)
	case msg.String() == "D" && log.DebugEnabled():
		m.debugDumpWindow()
	}
	return m, cmd
}

func (m *Model) startExport(format export.Format) tea.Cmd {
	if len(m.list.products) == 0 {
		return m.toastCmd("Nothing to export")
	}
	return m.exportCmd(format)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap()
	switch {
	case key.Matches(msg, km.search.Quit):
		return m, tea.Quit
	case key.Matches(msg, km.search.Cancel):
		m.search.active = false
		m.search.input.Blur()
		m.search.input.SetValue(m.search.previousQuery)
		m.logf("Search cancel restore=%q", m.search.previousQuery)
		if m.filter.search == m.search.previousQuery {
			m.search.generation++
			return m, nil
		}
		m.filter.search = m.search.previousQuery
		m.search.generation++
		cmd := m.applyFilter()
		return m, tea.Batch(cmd, m.setWindowTitleCmd())
	case key.Matches(msg, km.search.Submit):
		query := strings.TrimSpace(m.search.input.Value())
		m.search.active = false
		m.search.input.Blur()
		m.filter.search = query
		// Drop any pending debounce; the query runs now.
		m.search.generation++
		m.logf("Search submit query=%q", query)
		cmd := m.applyFilter()
		return m, tea.Batch(cmd, m.setWindowTitleCmd())
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	debounce := m.setSearch(m.search.input.Value())
	return m, tea.Batch(cmd, debounce)
}

func (m Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap()
	switch {
	case key.Matches(msg, km.gotoKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, km.gotoKeys.Cancel):
		m.closeGoto()
		return m, nil
	case key.Matches(msg, km.gotoKeys.Submit):
		id := strings.TrimSpace(m.gotoPrompt.input.Value())
		m.closeGoto()
		if id == "" {
			return m, nil
		}
		idx := catalog.IndexOf(m.list.products, id)
		if idx < 0 {
			m.logf("Goto miss id=%q", id)
			return m, m.toastCmd(fmt.Sprintf("%s is not in the current list", id))
		}
		if err := m.jumpTo(idx); err != nil {
			m.ui.err = err
			m.ui.showError = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.gotoPrompt.input, cmd = m.gotoPrompt.input.Update(msg)
	return m, cmd
}

func (m Model) handleInsightsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap()
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, km.insights.Close):
		cmd := m.closeInsights()
		return m, cmd
	}

	m.insights.viewport.KeyMap.Up = km.insights.Up
	m.insights.viewport.KeyMap.Down = km.insights.Down
	var cmd tea.Cmd
	m.insights.viewport, cmd = m.insights.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleDrawerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap()
	switch {
	case key.Matches(msg, km.drawer.Quit):
		return m, tea.Quit
	case key.Matches(msg, km.drawer.Close):
		cmd := m.closeDrawer()
		return m, cmd
	case key.Matches(msg, km.drawer.NextTab):
		m.cycleDrawerTab(1)
		return m, textinput.Blink
	case key.Matches(msg, km.drawer.PrevTab):
		m.cycleDrawerTab(-1)
		return m, textinput.Blink
	case key.Matches(msg, km.drawer.NextField):
		if m.drawer.tab == drawerTabTransfer {
			m.drawer.focus = 1 - m.drawer.focus
			m.focusDrawerInput()
		}
		return m, nil
	case key.Matches(msg, km.drawer.Submit):
		return m.submitDrawer()
	}

	input := m.activeDrawerInput()
	if input == nil {
		return m, nil
	}
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	m.drawer.err = nil
	return m, cmd
}

// submitDrawer validates the active tab and starts the mutation.
func (m Model) submitDrawer() (tea.Model, tea.Cmd) {
	if m.drawer.submitting {
		return m, nil
	}
	p := m.drawer.product
	var mu mutation
	switch m.drawer.tab {
	case drawerTabDemand:
		demand, ok := parseQuantity(m.drawer.demand.Value())
		if !ok || demand < 0 {
			m.drawer.err = errDemandInput
			return m, nil
		}
		mu = mutation{kind: journal.KindUpdateDemand, productID: p.ID, demand: demand}
	case drawerTabTransfer:
		to := strings.ToUpper(strings.TrimSpace(m.drawer.warehouse.Value()))
		switch {
		case to == "":
			m.drawer.err = errDestination
			return m, nil
		case strings.EqualFold(to, p.Warehouse):
			m.drawer.err = errSameWarehouse
			return m, nil
		}
		qty, ok := parseQuantity(m.drawer.quantity.Value())
		if !ok || qty <= 0 {
			m.drawer.err = errQuantityInput
			return m, nil
		}
		mu = mutation{
			kind:      journal.KindTransferStock,
			productID: p.ID,
			from:      p.Warehouse,
			to:        to,
			qty:       qty,
		}
	default:
		return m, nil
	}
	m.drawer.submitting = true
	m.drawer.err = nil
	return m, tea.Batch(m.mutateCmd(mu, false), m.ui.spinner.Tick)
}

func (m Model) handleDashboardLoaded(msg dashboardLoadedMsg) (tea.Model, tea.Cmd) {
	m.list.loading = false
	m.list.refreshing = false
	if msg.err != nil {
		m.logf("LoadDashboard failed source=%d err=%v", msg.source, msg.err)
		m.ui.err = msg.err
		m.ui.showError = true
		return m, nil
	}

	criticalBefore := insights.Summarize(m.list.products).Critical
	m.header.warehouses = msg.warehouses
	if msg.kpiRange == m.header.kpiRange {
		m.header.kpis = msg.kpis
		m.header.loadingKPI = false
	}
	if msg.generation != m.filter.generation {
		// The filter changed while loading; its own query will deliver.
		m.logf("LoadDashboard products stale gen=%d current=%d", msg.generation, m.filter.generation)
		return m, nil
	}
	m.list.stale = false
	m.setProducts(msg.products)
	if m.insights.show {
		m.openInsights()
	}

	critical := insights.Summarize(m.list.products).Critical
	if msg.source == loadAuto && critical > criticalBefore {
		m.logf("Refresh auto critical %d -> %d", criticalBefore, critical)
		return m, bellCmd()
	}
	return m, nil
}

func (m Model) handleProductsLoaded(msg productsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.generation != m.filter.generation {
		m.logf("Products drop stale gen=%d current=%d", msg.generation, m.filter.generation)
		return m, nil
	}
	m.filter.querying = false
	if msg.err != nil {
		m.ui.err = msg.err
		m.ui.showError = true
		return m, nil
	}
	m.list.stale = false
	m.setProducts(msg.products)
	m.logf("Products loaded gen=%d count=%d", msg.generation, len(msg.products))
	return m, nil
}

func (m Model) handleKPIsLoaded(msg kpisLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.kpiRange != m.header.kpiRange {
		return m, nil
	}
	m.header.loadingKPI = false
	if msg.err != nil {
		m.ui.err = msg.err
		m.ui.showError = true
		return m, nil
	}
	m.header.kpis = msg.kpis
	return m, nil
}

func (m Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	m.drawer.submitting = false
	if msg.undo {
		m.undo.inProgress = false
	}
	if msg.err != nil {
		m.logf("Mutation failed %s err=%v", msg.mutation.describe(), msg.err)
		if m.drawer.show && !msg.undo {
			m.drawer.err = msg.err
		}
		m.ui.err = msg.err
		m.ui.showError = true
		return m, nil
	}

	m.replaceProduct(msg.product)
	if m.drawer.show && strings.EqualFold(m.drawer.product.ID, msg.product.ID) {
		m.drawer.product = msg.product
		m.drawer.demand.SetValue(strconv.Itoa(msg.product.Demand))
		m.drawer.warehouse.SetValue("")
		m.drawer.quantity.SetValue(strconv.Itoa(msg.product.Stock))
	}
	m.rememberUndo(msg)
	if msg.journalErr != nil {
		m.ui.err = fmt.Errorf("change applied but not journaled: %w", msg.journalErr)
		m.ui.showError = true
	}

	m.list.refreshing = true
	cmd := tea.Batch(
		m.mutationToastCmd(msg.mutation, msg.undo),
		m.loadDashboardCmd(loadMutation),
		m.setWindowTitleCmd(),
	)
	return m, cmd
}

func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.ui.err = fmt.Errorf("export failed: %w", msg.err)
		m.ui.showError = true
		return m, nil
	}
	m.logf("Export wrote format=%s count=%d path=%q", msg.format, msg.count, msg.path)
	return m, m.exportToastCmd(msg.format, msg.count, msg.path)
}

func (m Model) handleSearchDebounce(msg searchDebounceMsg) (tea.Model, tea.Cmd) {
	if msg.generation != m.search.generation {
		m.logf(
			"Search debounce skipped stale gen=%d current=%d",
			msg.generation,
			m.search.generation,
		)
		return m, nil
	}
	if msg.query != m.filter.search {
		m.logf("Search debounce skipped query=%q current=%q", msg.query, m.filter.search)
		return m, nil
	}
	m.logf("Search debounce fire query=%q gen=%d", msg.query, msg.generation)
	cmd := m.applyFilter()
	return m, cmd
}

func (m Model) handleAutoRefresh(msg autoRefreshMsg) (tea.Model, tea.Cmd) {
	if m.uiConfig.RefreshIntervalSeconds <= 0 {
		return m, nil
	}
	if m.list.loading || m.list.refreshing || m.drawer.submitting {
		return m, m.autoRefreshCmd()
	}
	m.list.refreshing = true
	return m, tea.Batch(m.loadDashboardCmd(loadAuto), m.autoRefreshCmd())
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	oldWidth := m.ui.width
	m.ui.width = msg.Width
	m.ui.height = msg.Height
	m.search.input.Width = max(10, msg.Width-4)
	m.gotoPrompt.input.Width = max(10, msg.Width-4)
	if msg.Width != oldWidth && msg.Width > 0 {
		m.ui.alert = newAlertModel(m.theme, msg.Width)
	}
	m.syncListGeometry()
	m.layoutInsights()
	return m, nil
}
