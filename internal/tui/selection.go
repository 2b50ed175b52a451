package tui

import (
	"strings"

	"github.com/stockroom-dev/stockroom/internal/catalog"
)

func selectionKey(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func (m *Model) isProductSelected(p catalog.Product) bool {
	if len(m.list.selected) == 0 {
		return false
	}
	_, ok := m.list.selected[selectionKey(p.ID)]
	return ok
}

func (m *Model) selectedCount() int {
	return len(m.list.selected)
}

func (m *Model) toggleProductSelection(idx int) {
	if idx < 0 || idx >= len(m.list.products) {
		return
	}
	key := selectionKey(m.list.products[idx].ID)
	if _, ok := m.list.selected[key]; ok {
		delete(m.list.selected, key)
		return
	}
	if m.list.selected == nil {
		m.list.selected = make(map[string]struct{})
	}
	m.list.selected[key] = struct{}{}
}

func (m *Model) clearSelection() {
	if len(m.list.selected) == 0 {
		return
	}
	m.list.selected = make(map[string]struct{})
}

// pruneSelection drops selected products that are no longer listed.
func (m *Model) pruneSelection() {
	if len(m.list.selected) == 0 {
		return
	}
	keep := make(map[string]struct{}, len(m.list.selected))
	for _, p := range m.list.products {
		key := selectionKey(p.ID)
		if _, ok := m.list.selected[key]; ok {
			keep[key] = struct{}{}
		}
	}
	m.list.selected = keep
}

// exportProducts is the selection when there is one, otherwise the filtered
// list.
func (m *Model) exportProducts() []catalog.Product {
	if len(m.list.selected) == 0 {
		return append([]catalog.Product(nil), m.list.products...)
	}
	out := make([]catalog.Product, 0, len(m.list.selected))
	for _, p := range m.list.products {
		if m.isProductSelected(p) {
			out = append(out, p)
		}
	}
	return out
}
