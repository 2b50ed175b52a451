package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/config"
	"github.com/stockroom-dev/stockroom/internal/journal"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testTheme(t *testing.T) config.Theme {
	t.Helper()
	theme, err := config.ResolveTheme(config.Theme{})
	require.NoError(t, err)
	return theme
}

func intPtr(v int) *int { return &v }

// newTestModel builds a loaded 100x30 dashboard over a synthetic catalog with
// one-line rows of 20px.
func newTestModel(t *testing.T, synthetic int, rowLines int) (Model, *catalog.Catalog) {
	t.Helper()
	c := catalog.New(
		catalog.WithSynthetic(synthetic),
		catalog.WithClock(func() time.Time { return testNow }),
	)
	m := New(context.Background(), Options{
		Catalog:      c,
		Theme:        testTheme(t),
		UI:           config.UIConfig{RowLines: rowLines, Overscan: intPtr(0)},
		PixelsPerRow: 20,
		ExportDir:    t.TempDir(),
		Now:          func() time.Time { return testNow },
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, m.loadDashboardCmd(loadInit)())
	return m, c
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	out, _ := m.Update(msg)
	model, ok := out.(Model)
	require.True(t, ok)
	return model
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestInitialLoad(t *testing.T) {
	m, c := newTestModel(t, 500, 1)

	assert.False(t, m.list.loading)
	assert.Len(t, m.list.products, c.Len())
	assert.NotEmpty(t, m.header.warehouses)
	assert.Len(t, m.header.kpis, 7)
	assert.False(t, m.header.loadingKPI)

	g := m.list.scroll.Geometry()
	assert.Equal(t, c.Len(), g.ItemCount)
	assert.Equal(t, 20.0, g.ItemHeight)
	// 30 lines minus 6 header lines and the status line.
	assert.Equal(t, 23, m.bodyRows())
	assert.Equal(t, 460.0, g.ContainerHeight)
}

func TestCompactHeader(t *testing.T) {
	m, _ := newTestModel(t, 100, 1)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})

	assert.Equal(t, 1, m.headerHeight())
	assert.Equal(t, 8, m.bodyRows())
	assert.Equal(t, 160.0, m.list.scroll.Geometry().ContainerHeight)
}

func TestCursorScrollsIntoView(t *testing.T) {
	m, _ := newTestModel(t, 500, 1)

	for range 30 {
		m = press(t, m, "j")
	}
	assert.Equal(t, 30, m.list.cursor)
	// Least scroll that shows row 30 at the bottom of a 23 row body.
	assert.Equal(t, float64(31*20-460), m.list.scroll.Offset())

	first, last := m.visibleRows()
	assert.LessOrEqual(t, first, 30)
	assert.GreaterOrEqual(t, last, 30)

	for range 30 {
		m = press(t, m, "k")
	}
	assert.Equal(t, 0, m.list.cursor)
	assert.Equal(t, 0.0, m.list.scroll.Offset())
}

func TestTopAndBottom(t *testing.T) {
	m, c := newTestModel(t, 500, 2)

	m = press(t, m, "G")
	assert.Equal(t, c.Len()-1, m.list.cursor)
	assert.Equal(t, m.list.scroll.MaxOffset(), m.list.scroll.Offset())
	assert.True(t, m.list.scroll.CurrentWindow().Contains(c.Len()-1))

	m = press(t, m, "g")
	assert.Equal(t, 0, m.list.cursor)
	assert.Equal(t, 0.0, m.list.scroll.Offset())
}

func TestBottomOutOfSyncShowsToast(t *testing.T) {
	m, _ := newTestModel(t, 500, 1)
	_, err := m.list.scroll.SetItemCount(10)
	require.NoError(t, err)

	out, cmd := m.Update(keyMsg("G"))
	m = out.(Model)
	assert.Equal(t, 0, m.list.cursor)
	assert.False(t, m.ui.showError)
	assert.NotNil(t, cmd)
}

func TestHelpUsesInventoryPalette(t *testing.T) {
	theme := testTheme(t)
	h := newHelpModel(theme)

	assert.Equal(t, lipgloss.Color(theme.Header.SparkFg), h.Styles.ShortKey.GetForeground())
	assert.Equal(t, lipgloss.Color(theme.List.HealthyFg), h.Styles.FullKey.GetForeground())
	assert.Equal(t, lipgloss.Color(theme.List.ColumnFg), h.Styles.FullSeparator.GetForeground())
	assert.Equal(t, lipgloss.Color(theme.List.LowFg), h.Styles.Ellipsis.GetForeground())
	assert.True(t, h.Styles.FullKey.GetBold())
}

func TestPageDown(t *testing.T) {
	m, _ := newTestModel(t, 500, 1)

	m = press(t, m, "pgdown")
	assert.Equal(t, 23, m.list.cursor)
	first, last := m.visibleRows()
	assert.LessOrEqual(t, first, 23)
	assert.GreaterOrEqual(t, last, 23)
}

func TestWheelScrollCarriesCursor(t *testing.T) {
	m, _ := newTestModel(t, 500, 1)

	for range 10 {
		m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	}
	assert.Equal(t, float64(10*wheelLines*20), m.list.scroll.Offset())
	assert.Equal(t, 30, m.list.cursor)

	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, float64(9*wheelLines*20), m.list.scroll.Offset())
}

func TestWheelIgnoredWhenBlurred(t *testing.T) {
	m, _ := newTestModel(t, 500, 1)
	m = update(t, m, tea.BlurMsg{})

	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, 0.0, m.list.scroll.Offset())

	m = update(t, m, tea.FocusMsg{})
	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, float64(wheelLines*20), m.list.scroll.Offset())
}

func TestHalfPageScroll(t *testing.T) {
	m, _ := newTestModel(t, 500, 1)

	m = press(t, m, "ctrl+d")
	assert.Equal(t, float64(11*20), m.list.scroll.Offset())
	m = press(t, m, "ctrl+u")
	assert.Equal(t, 0.0, m.list.scroll.Offset())
}

func TestClickSelectsRow(t *testing.T) {
	m, _ := newTestModel(t, 500, 2)
	m = press(t, m, "ctrl+d")
	offset := m.list.scroll.Offset()

	line := 5
	m = update(t, m, tea.MouseMsg{
		X:      10,
		Y:      m.headerHeight() + line,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
	want := int((offset + float64(line*20)) / 40)
	assert.Equal(t, want, m.list.cursor)
	assert.False(t, m.drawer.show)

	// A second click on the cursor row opens the drawer.
	m = update(t, m, tea.MouseMsg{
		X:      10,
		Y:      m.headerHeight() + line,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
	assert.True(t, m.drawer.show)
	assert.Equal(t, m.list.products[want].ID, m.drawer.product.ID)
}

func TestClickOutsideBodyIgnored(t *testing.T) {
	m, _ := newTestModel(t, 500, 1)
	m = update(t, m, tea.MouseMsg{Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 0, m.list.cursor)
}

func TestGotoJumpsToProduct(t *testing.T) {
	m, _ := newTestModel(t, 500, 1)
	target := m.list.products[300]

	m = press(t, m, ":")
	require.True(t, m.gotoPrompt.active)
	m = typeText(t, m, strings.ToLower(target.ID))
	m = press(t, m, "enter")

	assert.False(t, m.gotoPrompt.active)
	assert.Equal(t, 300, m.list.cursor)
	assert.Equal(t, 300.0*20, m.list.scroll.Offset())
}

func TestGotoUnknownProductKeepsPosition(t *testing.T) {
	m, _ := newTestModel(t, 500, 1)
	m = press(t, m, "j", "j")

	m = press(t, m, ":")
	m = typeText(t, m, "NOPE")
	m = press(t, m, "enter")

	assert.Equal(t, 2, m.list.cursor)
	assert.False(t, m.ui.showError)
}

func TestSearchDebounce(t *testing.T) {
	m, _ := newTestModel(t, 500, 1)
	query := strings.ToLower(m.list.products[0].ID)

	m = press(t, m, "/")
	require.True(t, m.search.active)
	m = typeText(t, m, query)
	assert.Equal(t, query, m.filter.search)
	gen := m.search.generation

	// A tick from an earlier keystroke is ignored.
	out, cmd := m.Update(searchDebounceMsg{query: query[:1], generation: gen - 1})
	m = out.(Model)
	assert.Nil(t, cmd)

	out, cmd = m.Update(searchDebounceMsg{query: query, generation: gen})
	m = out.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.filter.querying)

	m = update(t, m, cmd())
	assert.False(t, m.filter.querying)
	require.NotEmpty(t, m.list.products)
	for _, p := range m.list.products {
		assert.True(t, m.currentFilter().Matches(p))
	}
	assert.Equal(t, len(m.list.products), m.list.scroll.Geometry().ItemCount)
}

func TestSearchCancelRestoresQuery(t *testing.T) {
	m, _ := newTestModel(t, 100, 1)

	m = press(t, m, "/")
	m = typeText(t, m, "bolt")
	m = press(t, m, "esc")

	assert.False(t, m.search.active)
	assert.Equal(t, "", m.filter.search)
	assert.Equal(t, "", m.search.input.Value())
}

func TestStaleProductsDropped(t *testing.T) {
	m, _ := newTestModel(t, 100, 1)
	count := len(m.list.products)

	m = press(t, m, "s")
	current := m.filter.generation

	m = update(t, m, productsLoadedMsg{generation: current - 1, products: nil})
	assert.Len(t, m.list.products, count)
	assert.True(t, m.filter.querying)
}

func TestStatusFilterCycle(t *testing.T) {
	m, _ := newTestModel(t, 500, 1)
	m = press(t, m, "j", "j", "j")

	m = press(t, m, "s")
	assert.Equal(t, catalog.StatusHealthy, m.filter.status)

	m = update(t, m, m.queryProductsCmd(m.currentFilter(), m.filter.generation)())
	require.NotEmpty(t, m.list.products)
	for _, p := range m.list.products {
		assert.Equal(t, catalog.StatusHealthy, p.Status())
	}
	assert.Less(t, m.list.cursor, len(m.list.products))

	m = press(t, m, "s", "s", "s")
	assert.Equal(t, catalog.StatusAll, m.filter.status)
}

func TestWarehouseFilterCycle(t *testing.T) {
	m, _ := newTestModel(t, 100, 1)
	require.NotEmpty(t, m.header.warehouses)

	m = press(t, m, "w")
	assert.Equal(t, m.header.warehouses[0].Code, m.filter.warehouse)

	for range m.header.warehouses {
		m = press(t, m, "w")
	}
	assert.Equal(t, "", m.filter.warehouse)
}

func TestShrinkingResultClampsScroll(t *testing.T) {
	m, _ := newTestModel(t, 500, 1)
	m = press(t, m, "G")

	m = update(t, m, productsLoadedMsg{
		generation: m.filter.generation,
		products:   m.list.products[:10],
	})
	assert.Equal(t, 0.0, m.list.scroll.Offset())
	assert.Equal(t, 9, m.list.cursor)
}

func TestResizeKeepsOffsetValid(t *testing.T) {
	m, _ := newTestModel(t, 500, 1)
	m = press(t, m, "G")

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 60})
	assert.Equal(t, m.list.scroll.MaxOffset(), m.list.scroll.Offset())
	first, last := m.visibleRows()
	assert.LessOrEqual(t, first, m.list.cursor)
	assert.GreaterOrEqual(t, last, m.list.cursor)
}

func TestRangeCycleReloadsKPIs(t *testing.T) {
	m, _ := newTestModel(t, 100, 1)

	out, cmd := m.Update(keyMsg("t"))
	m = out.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, catalog.Range14d, m.header.kpiRange)
	assert.True(t, m.header.loadingKPI)

	// A result for the previous range is ignored.
	m = update(t, m, kpisLoadedMsg{kpiRange: catalog.Range7d})
	assert.True(t, m.header.loadingKPI)

	m = update(t, m, cmd())
	assert.False(t, m.header.loadingKPI)
	assert.Len(t, m.header.kpis, 14)
}

func TestDrawerValidation(t *testing.T) {
	m, _ := newTestModel(t, 100, 1)

	m = press(t, m, "enter")
	require.True(t, m.drawer.show)
	assert.Equal(t, drawerTabDetails, m.drawer.tab)

	m = press(t, m, "tab")
	require.Equal(t, drawerTabDemand, m.drawer.tab)
	m.drawer.demand.SetValue("-4")
	m = press(t, m, "enter")
	assert.ErrorIs(t, m.drawer.err, errDemandInput)
	assert.False(t, m.drawer.submitting)

	m = press(t, m, "tab")
	require.Equal(t, drawerTabTransfer, m.drawer.tab)
	m = press(t, m, "enter")
	assert.ErrorIs(t, m.drawer.err, errDestination)

	m.drawer.warehouse.SetValue(m.drawer.product.Warehouse)
	m = press(t, m, "enter")
	assert.ErrorIs(t, m.drawer.err, errSameWarehouse)

	m = press(t, m, "esc")
	assert.False(t, m.drawer.show)
}

func TestDrawerTransferFieldFocus(t *testing.T) {
	m, _ := newTestModel(t, 100, 1)
	m = press(t, m, "enter", "tab", "tab")
	require.Equal(t, drawerTabTransfer, m.drawer.tab)
	assert.True(t, m.drawer.warehouse.Focused())

	m = press(t, m, "down")
	assert.True(t, m.drawer.quantity.Focused())
	assert.False(t, m.drawer.warehouse.Focused())
}

func TestMutationAndUndo(t *testing.T) {
	dir := t.TempDir()
	j, err := journal.Open(context.Background(), dir+"/journal.sqlite")
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	m, c := newTestModel(t, 100, 1)
	m.journal = j
	p := m.list.products[0]

	mu := mutation{kind: journal.KindUpdateDemand, productID: p.ID, demand: p.Demand + 50}
	m = update(t, m, m.mutateCmd(mu, false)())

	assert.Equal(t, p.Demand+50, m.list.products[0].Demand)
	require.NotNil(t, m.undo.inverse)
	assert.Equal(t, p.Demand, m.undo.inverse.demand)

	out, cmd := m.Update(keyMsg("u"))
	m = out.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.undo.inProgress)
	assert.Nil(t, m.undo.inverse)

	m = update(t, m, cmd())
	assert.False(t, m.undo.inProgress)
	assert.Nil(t, m.undo.inverse)
	assert.Equal(t, p.Demand, m.list.products[0].Demand)

	stored, err := c.Product(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Demand, stored.Demand)

	entries, err := j.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMutationFailureShowsError(t *testing.T) {
	m, _ := newTestModel(t, 100, 1)
	p := m.list.products[0]

	mu := mutation{
		kind:      journal.KindTransferStock,
		productID: p.ID,
		from:      p.Warehouse,
		to:        "NOWHERE",
		qty:       1,
	}
	m = update(t, m, m.mutateCmd(mu, false)())
	assert.True(t, m.ui.showError)
	assert.ErrorIs(t, m.ui.err, catalog.ErrUnknownWarehouse)
	assert.Nil(t, m.undo.inverse)

	// Any key dismisses the error.
	m = press(t, m, "j")
	assert.False(t, m.ui.showError)
	assert.Equal(t, 0, m.list.cursor)
}

func TestSelectionAndExport(t *testing.T) {
	m, _ := newTestModel(t, 100, 1)

	m = press(t, m, "x", "j", "x")
	assert.Equal(t, 2, m.selectedCount())
	assert.Len(t, m.exportProducts(), 2)

	msg := m.exportCmd("csv")()
	done, ok := msg.(exportDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Equal(t, 2, done.count)
	assert.FileExists(t, done.path)

	m = press(t, m, "X")
	assert.Equal(t, 0, m.selectedCount())
	assert.Len(t, m.exportProducts(), len(m.list.products))
}

func TestInsightsModal(t *testing.T) {
	m, _ := newTestModel(t, 100, 1)

	m = press(t, m, "i")
	require.True(t, m.insights.show)
	assert.Contains(t, m.insights.markdown, "Inventory insights")
	assert.Positive(t, m.insights.viewport.Height)

	m = press(t, m, "esc")
	assert.False(t, m.insights.show)
}

func TestSnapshotRestore(t *testing.T) {
	m, c := newTestModel(t, 500, 1)
	m = press(t, m, "j", "j", "j", "ctrl+d")
	snap := m.snapshot()

	restored := New(context.Background(), Options{
		Catalog:      c,
		Theme:        testTheme(t),
		UI:           config.UIConfig{RowLines: 1, Overscan: intPtr(0)},
		PixelsPerRow: 20,
		Snapshot:     &snap,
		Now:          func() time.Time { return testNow },
	})
	restored = update(t, restored, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.True(t, restored.list.stale)
	assert.Len(t, restored.list.products, len(m.list.products))
	assert.Equal(t, m.list.cursor, restored.list.cursor)
	assert.Equal(t, m.list.scroll.Offset(), restored.list.scroll.Offset())
}

func TestViewRendersWindowRows(t *testing.T) {
	m, _ := newTestModel(t, 500, 2)
	m = press(t, m, "ctrl+d")

	view := m.View()
	result := m.list.scroll.CurrentWindow()
	require.False(t, result.Empty())

	first, _ := m.visibleRows()
	assert.Contains(t, view, m.list.products[first].ID)
	assert.NotContains(t, view, m.list.products[len(m.list.products)-1].ID+" ")
	assert.Contains(t, view, "Total Stock")
	assert.Contains(t, view, "Fill Rate")
}

func TestWindowTitle(t *testing.T) {
	m, _ := newTestModel(t, 100, 1)
	assert.Equal(t, "stockroom", m.windowTitle())

	m = press(t, m, "s")
	assert.Equal(t, "Products: healthy - stockroom", m.windowTitle())

	m = press(t, m, "enter")
	p, ok := m.drawerProduct()
	require.True(t, ok)
	assert.Equal(t, p.ID+" "+p.Name+" - stockroom", m.windowTitle())
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁█", sparkline([]int{1, 9}, 10))
	assert.Equal(t, "▄▄▄", sparkline([]int{5, 5, 5}, 10))
	assert.Equal(t, "▁█", sparkline([]int{100, 1, 9}, 2))
	assert.Equal(t, "", sparkline([]int{1, 2}, 0))
}
