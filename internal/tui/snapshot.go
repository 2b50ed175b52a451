package tui

import (
	"github.com/stockroom-dev/stockroom/internal/cache"
	"github.com/stockroom-dev/stockroom/internal/catalog"
)

// restoreSnapshot seeds the list from the last session so something renders
// before the first query returns.
func (m *Model) restoreSnapshot(snap cache.Snapshot) {
	m.filter.search = snap.Search
	m.filter.status = snap.Status
	if m.filter.status == "" {
		m.filter.status = catalog.StatusAll
	}
	m.filter.warehouse = snap.Warehouse
	if r, err := catalog.ParseRange(string(snap.Range)); err == nil {
		m.header.kpiRange = r
	}
	m.search.input.SetValue(snap.Search)
	if len(snap.Products) > 0 {
		m.list.products = snap.Products
		m.list.stale = true
	}
	m.list.cursor = snap.Cursor
	m.logf(
		"snapshot restore products=%d offset=%.0f cursor=%d",
		len(snap.Products),
		snap.Offset,
		snap.Cursor,
	)
}

func (m Model) snapshot() cache.Snapshot {
	snap := cache.Snapshot{
		Products:  m.list.products,
		Search:    m.filter.search,
		Status:    m.filter.status,
		Warehouse: m.filter.warehouse,
		Range:     m.header.kpiRange,
		Cursor:    m.list.cursor,
		Timestamp: m.now(),
	}
	if m.list.scroll != nil {
		snap.Offset = m.list.scroll.Offset()
	}
	return snap
}
