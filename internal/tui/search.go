package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stockroom-dev/stockroom/internal/catalog"
)

func (m *Model) currentFilter() catalog.Filter {
	return catalog.Filter{
		Search:    m.filter.search,
		Status:    m.filter.status,
		Warehouse: m.filter.warehouse,
	}
}

func (m *Model) filterActive() bool {
	return !m.currentFilter().Empty()
}

// applyFilter starts a product query for the current filter. Results from
// earlier generations are discarded when they arrive.
func (m *Model) applyFilter() tea.Cmd {
	m.filter.generation++
	m.filter.querying = true
	m.logf(
		"Filter apply search=%q status=%s warehouse=%q gen=%d",
		m.filter.search,
		m.filter.status,
		m.filter.warehouse,
		m.filter.generation,
	)
	return m.queryProductsCmd(m.currentFilter(), m.filter.generation)
}

// setSearch updates the search text and schedules a debounced query.
func (m *Model) setSearch(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == m.filter.search {
		return nil
	}
	m.filter.search = query
	m.search.generation++
	m.logf("Search typing query=%q gen=%d", query, m.search.generation)
	return m.searchDebounceCmd(query, m.search.generation)
}

func (m *Model) cycleStatus() tea.Cmd {
	m.filter.status = m.filter.status.Next()
	return m.applyFilter()
}

// cycleWarehouse steps through all -> each warehouse -> all.
func (m *Model) cycleWarehouse() tea.Cmd {
	codes := make([]string, 0, len(m.header.warehouses)+1)
	codes = append(codes, "")
	for _, wh := range m.header.warehouses {
		codes = append(codes, wh.Code)
	}
	next := 0
	for i, code := range codes {
		if strings.EqualFold(code, m.filter.warehouse) {
			next = (i + 1) % len(codes)
			break
		}
	}
	m.filter.warehouse = codes[next]
	return m.applyFilter()
}

func (m *Model) clearFilters() tea.Cmd {
	if !m.filterActive() {
		return nil
	}
	m.filter.search = ""
	m.filter.status = catalog.StatusAll
	m.filter.warehouse = ""
	m.search.generation++
	m.search.input.SetValue("")
	return m.applyFilter()
}

// setProducts installs a query result. The cursor stays on the same product
// when it is still listed.
func (m *Model) setProducts(products []catalog.Product) {
	selectedID := ""
	if p, ok := m.selectedProduct(); ok {
		selectedID = p.ID
	}
	m.list.products = products
	if selectedID != "" {
		if idx := catalog.IndexOf(products, selectedID); idx >= 0 {
			m.list.cursor = idx
		}
	}
	m.pruneSelection()
	if _, err := m.list.scroll.SetItemCount(len(products)); err != nil {
		m.logf("list item count rejected err=%v", err)
	}
	m.clampCursor()
}

func (m *Model) selectedProduct() (catalog.Product, bool) {
	if m.list.cursor < 0 || m.list.cursor >= len(m.list.products) {
		return catalog.Product{}, false
	}
	return m.list.products[m.list.cursor], true
}

// replaceProduct swaps in an updated product, dropping it when it no longer
// matches the filter.
func (m *Model) replaceProduct(p catalog.Product) {
	idx := catalog.IndexOf(m.list.products, p.ID)
	if idx < 0 {
		return
	}
	products := make([]catalog.Product, 0, len(m.list.products))
	products = append(products, m.list.products[:idx]...)
	if m.currentFilter().Matches(p) {
		products = append(products, p)
	}
	products = append(products, m.list.products[idx+1:]...)
	m.setProducts(products)
}

func (m *Model) filterSummary() string {
	var parts []string
	if m.filter.search != "" {
		parts = append(parts, fmt.Sprintf("%q", m.filter.search))
	}
	if !m.filter.status.Any() {
		parts = append(parts, strings.ToLower(m.filter.status.Label()))
	}
	if m.filter.warehouse != "" {
		parts = append(parts, m.filter.warehouse)
	}
	return strings.Join(parts, " ")
}
