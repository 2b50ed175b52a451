package tui

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/xdg"

	"github.com/stockroom-dev/stockroom/internal/log"
)

func (m *Model) debugDumpRender(name string, content string) {
	m.debugDumpFile(name+".bin", []byte(content))
}

func (m *Model) debugDumpText(name string, content string) {
	m.debugDumpFile(name+".txt", []byte(content))
}

func (m *Model) debugDumpFile(name string, content []byte) {
	if !log.DebugEnabled() {
		return
	}
	if m.ui.debugDumpHashes == nil {
		m.ui.debugDumpHashes = make(map[string][32]byte)
	}

	hash := sha256.Sum256(content)
	if prev, ok := m.ui.debugDumpHashes[name]; ok && prev == hash {
		return
	}
	m.ui.debugDumpHashes[name] = hash

	path, err := xdg.StateFile("stockroom/" + name)
	if err != nil {
		m.logf("debug dump path error name=%s err=%v", name, err)
		return
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		m.logf("debug dump write error name=%s err=%v", name, err)
		return
	}
	m.logf("debug dump wrote name=%s bytes=%d path=%q", name, len(content), path)
}

// debugDumpWindow writes the list geometry, the computed window and the
// rendered list body.
func (m *Model) debugDumpWindow() {
	if !log.DebugEnabled() || m.list.scroll == nil {
		return
	}
	state := m.list.scroll.State()
	result := m.list.scroll.CurrentWindow()
	first, last := m.visibleRows()

	var b strings.Builder
	fmt.Fprintf(&b, "terminal=%dx%d ppr=%.0f row_lines=%d body_rows=%d header=%d\n",
		m.ui.width, m.ui.height, m.list.pixelsPerRow, m.list.rowLines, m.bodyRows(), m.headerHeight())
	fmt.Fprintf(&b, "items=%d item_height=%.0f container=%.0f overscan=%d\n",
		state.ItemCount, state.ItemHeight, state.ContainerHeight, state.Overscan)
	fmt.Fprintf(&b, "offset=%.0f max_offset=%.0f total=%.0f\n",
		state.ScrollOffset, state.MaxOffset(), result.TotalHeight)
	fmt.Fprintf(&b, "window=[%d,%d] len=%d visible=[%d,%d] cursor=%d\n",
		result.StartIndex, result.EndIndex, result.Len(), first, last, m.list.cursor)
	for _, item := range result.Items {
		fmt.Fprintf(&b, "  index=%d top=%.0f line=%d\n", item.Index, item.OffsetTop, m.rowLine(item.OffsetTop))
	}

	m.debugDumpText("list-window", b.String())
	m.debugDumpRender("list-rendered", m.renderListView())
}
