package tui

import (
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stockroom-dev/stockroom/internal/window"
)

const (
	listFooterHeight   = 1
	kpiCardsHeight     = 4
	sparklineHeight    = 1
	columnHeaderHeight = 1

	// Below this terminal height the KPI cards are hidden.
	compactHeight = 14

	wheelLines = 3
)

func (m *Model) compactHeader() bool {
	return m.ui.height < compactHeight
}

func (m *Model) headerHeight() int {
	if m.compactHeader() {
		return columnHeaderHeight
	}
	return kpiCardsHeight + sparklineHeight + columnHeaderHeight
}

// bodyRows is the number of terminal lines available to product rows.
func (m *Model) bodyRows() int {
	return max(0, m.ui.height-m.headerHeight()-listFooterHeight)
}

func (m *Model) itemHeight() float64 {
	return float64(m.list.rowLines) * m.list.pixelsPerRow
}

func (m *Model) listGeometry() window.Geometry {
	return window.Geometry{
		ItemCount:       len(m.list.products),
		ItemHeight:      m.itemHeight(),
		ContainerHeight: float64(m.bodyRows()) * m.list.pixelsPerRow,
		Overscan:        m.uiConfig.OverscanRows(),
	}
}

// syncListGeometry pushes the current size and product count into the
// controller. On rejection the previous window is kept.
func (m *Model) syncListGeometry() {
	if _, err := m.list.scroll.SetGeometry(m.listGeometry()); err != nil {
		m.logf("list geometry rejected err=%v", err)
		return
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	count := len(m.list.products)
	if count == 0 {
		m.list.cursor = 0
		return
	}
	m.list.cursor = min(max(m.list.cursor, 0), count-1)
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls the least distance that shows the whole cursor
// row.
func (m *Model) ensureCursorVisible() {
	if m.list.scroll == nil || len(m.list.products) == 0 {
		return
	}
	h := m.itemHeight()
	container := m.list.scroll.Geometry().ContainerHeight
	if container <= 0 {
		return
	}
	top := float64(m.list.cursor) * h
	offset := m.list.scroll.Offset()
	switch {
	case top < offset || h > container:
		m.list.scroll.OnUserScroll(top)
	case top+h > offset+container:
		m.list.scroll.OnUserScroll(top + h - container)
	}
}

// visibleRows returns the first and last fully visible rows. When no row
// fits completely, both are the row at the top of the viewport. last < 0
// means the list is empty.
func (m *Model) visibleRows() (first int, last int) {
	count := len(m.list.products)
	h := m.itemHeight()
	if count == 0 || h <= 0 {
		return 0, -1
	}
	offset := m.list.scroll.Offset()
	container := m.list.scroll.Geometry().ContainerHeight
	first = int(math.Ceil(offset / h))
	last = min(int(math.Floor((offset+container)/h))-1, count-1)
	if last < first {
		top := min(int(offset/h), count-1)
		return top, top
	}
	return first, last
}

// followViewport pulls the cursor back on screen after a viewport scroll.
func (m *Model) followViewport() {
	first, last := m.visibleRows()
	if last < 0 {
		return
	}
	m.list.cursor = min(max(m.list.cursor, first), last)
}

func (m *Model) moveCursor(delta int) bool {
	count := len(m.list.products)
	if count == 0 {
		return false
	}
	next := min(max(m.list.cursor+delta, 0), count-1)
	if next == m.list.cursor {
		return false
	}
	m.list.cursor = next
	m.ensureCursorVisible()
	return true
}

// pageRows is how many product rows fit in the body.
func (m *Model) pageRows() int {
	return max(1, m.bodyRows()/max(1, m.list.rowLines))
}

// scrollLines moves the viewport by whole terminal lines.
func (m *Model) scrollLines(lines int) {
	m.list.scroll.ScrollBy(float64(lines) * m.list.pixelsPerRow)
	m.followViewport()
}

// jumpTo scrolls index to the top of the viewport and moves the cursor to it.
func (m *Model) jumpTo(index int) error {
	if _, err := m.list.scroll.ScrollToIndex(index); err != nil {
		return err
	}
	m.list.cursor = index
	return nil
}

// jumpCmd jumps to index and reports a failed jump as a toast.
func (m *Model) jumpCmd(index int) tea.Cmd {
	if err := m.jumpTo(index); err != nil {
		m.logf("Jump failed index=%d err=%v", index, err)
		return m.toastCmd(fmt.Sprintf("Cannot jump to row %d: %v", index+1, err))
	}
	return nil
}

// productIndexAtLine maps a body line to the product rendered there.
func (m *Model) productIndexAtLine(line int) (int, bool) {
	if line < 0 || line >= m.bodyRows() {
		return 0, false
	}
	return m.list.scroll.IndexAt(float64(line) * m.list.pixelsPerRow)
}

// rowLine is the body line a row starting at offsetTop renders on.
func (m *Model) rowLine(offsetTop float64) int {
	return int(math.Floor((offsetTop - m.list.scroll.Offset()) / m.list.pixelsPerRow))
}
