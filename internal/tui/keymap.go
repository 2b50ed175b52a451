package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/stockroom-dev/stockroom/internal/config"
)

type listKeyMap struct {
	Up              key.Binding
	Down            key.Binding
	PageUp          key.Binding
	PageDown        key.Binding
	ScrollUp        key.Binding
	ScrollDown      key.Binding
	Top             key.Binding
	Bottom          key.Binding
	Open            key.Binding
	ToggleSelect    key.Binding
	ClearSelection  key.Binding
	Undo            key.Binding
	Goto            key.Binding
	Search          key.Binding
	StatusFilter    key.Binding
	WarehouseFilter key.Binding
	ClearFilters    key.Binding
	Range           key.Binding
	Insights        key.Binding
	ExportCSV       key.Binding
	ExportJSON      key.Binding
	Refresh         key.Binding
	Help            key.Binding
	Quit            key.Binding
}

type drawerKeyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	NextField key.Binding
	Submit    key.Binding
	Close     key.Binding
	Quit      key.Binding
}

type promptKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

type insightsKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Close key.Binding
}

type keyMap struct {
	searchActive   bool
	gotoActive     bool
	drawerActive   bool
	insightsActive bool

	list     listKeyMap
	drawer   drawerKeyMap
	search   promptKeyMap
	gotoKeys promptKeyMap
	insights insightsKeyMap
}

func keyMapFromConfig(cfg config.KeyMap) keyMap {
	return keyMap{
		list: listKeyMap{
			Up: makeBinding(bindingDef{keys: []string{"k", "up"}, desc: "up"}, cfg.List.Up),
			Down: makeBinding(
				bindingDef{keys: []string{"j", "down"}, desc: "down"},
				cfg.List.Down,
			),
			PageUp: makeBinding(
				bindingDef{keys: []string{"pgup"}, desc: "page up"},
				cfg.List.PageUp,
			),
			PageDown: makeBinding(
				bindingDef{keys: []string{"pgdown"}, desc: "page down"},
				cfg.List.PageDown,
			),
			ScrollUp: makeBinding(
				bindingDef{keys: []string{"ctrl+u"}, desc: "scroll up"},
				cfg.List.ScrollUp,
			),
			ScrollDown: makeBinding(
				bindingDef{keys: []string{"ctrl+d"}, desc: "scroll down"},
				cfg.List.ScrollDown,
			),
			Top: makeBinding(
				bindingDef{keys: []string{"g", "home"}, desc: "top"},
				cfg.List.Top,
			),
			Bottom: makeBinding(
				bindingDef{keys: []string{"G", "end"}, desc: "bottom"},
				cfg.List.Bottom,
			),
			Open: makeBinding(
				bindingDef{keys: []string{"enter"}, desc: "open"},
				cfg.List.Open,
			),
			ToggleSelect: makeBinding(
				bindingDef{keys: []string{"x"}, desc: "select"},
				cfg.List.ToggleSelect,
			),
			ClearSelection: makeBinding(
				bindingDef{keys: []string{"X"}, desc: "clear selection"},
				cfg.List.ClearSelection,
			),
			Undo: makeBinding(
				bindingDef{keys: []string{"u"}, desc: "undo"},
				cfg.List.Undo,
			),
			Goto: makeBinding(
				bindingDef{keys: []string{":"}, desc: "go to id"},
				cfg.List.Goto,
			),
			Search: makeBinding(
				bindingDef{keys: []string{"/"}, desc: "search"},
				cfg.List.Search,
			),
			StatusFilter: makeBinding(
				bindingDef{keys: []string{"s"}, desc: "status"},
				cfg.List.StatusFilter,
			),
			WarehouseFilter: makeBinding(
				bindingDef{keys: []string{"w"}, desc: "warehouse"},
				cfg.List.WarehouseFilter,
			),
			ClearFilters: makeBinding(
				bindingDef{keys: []string{"c"}, desc: "clear filters"},
				cfg.List.ClearFilters,
			),
			Range: makeBinding(
				bindingDef{keys: []string{"t"}, desc: "kpi range"},
				cfg.List.Range,
			),
			Insights: makeBinding(
				bindingDef{keys: []string{"i"}, desc: "insights"},
				cfg.List.Insights,
			),
			ExportCSV: makeBinding(
				bindingDef{keys: []string{"e"}, desc: "export csv"},
				cfg.List.ExportCSV,
			),
			ExportJSON: makeBinding(
				bindingDef{keys: []string{"E"}, desc: "export json"},
				cfg.List.ExportJSON,
			),
			Refresh: makeBinding(
				bindingDef{keys: []string{"r"}, desc: "refresh"},
				cfg.List.Refresh,
			),
			Help: makeBinding(bindingDef{keys: []string{"?"}, desc: "help"}, cfg.List.Help),
			Quit: makeBinding(
				bindingDef{keys: []string{"q", "ctrl+c"}, desc: "quit"},
				cfg.List.Quit,
			),
		},
		drawer: drawerKeyMap{
			NextTab: makeBinding(
				bindingDef{keys: []string{"tab"}, desc: "next tab"},
				cfg.Drawer.NextTab,
			),
			PrevTab: makeBinding(
				bindingDef{keys: []string{"shift+tab"}, desc: "prev tab"},
				cfg.Drawer.PrevTab,
			),
			NextField: makeBinding(
				bindingDef{keys: []string{"down", "up"}, desc: "field"},
				cfg.Drawer.NextField,
			),
			Submit: makeBinding(
				bindingDef{keys: []string{"enter"}, desc: "apply"},
				cfg.Drawer.Submit,
			),
			Close: makeBinding(
				bindingDef{keys: []string{"esc"}, desc: "close"},
				cfg.Drawer.Close,
			),
			Quit: makeBinding(
				bindingDef{keys: []string{"ctrl+c"}, desc: "quit"},
				cfg.Drawer.Quit,
			),
		},
		search: promptKeyMapFromConfig(cfg.Search, "apply"),
		gotoKeys: promptKeyMapFromConfig(cfg.Goto, "go"),
		insights: insightsKeyMap{
			Up: makeBinding(
				bindingDef{keys: []string{"k", "up"}, desc: "up"},
				cfg.Insights.Up,
			),
			Down: makeBinding(
				bindingDef{keys: []string{"j", "down"}, desc: "down"},
				cfg.Insights.Down,
			),
			Close: makeBinding(
				bindingDef{keys: []string{"esc", "q", "i"}, desc: "close"},
				cfg.Insights.Close,
			),
		},
	}
}

func promptKeyMapFromConfig(cfg config.PromptKeyMap, submitDesc string) promptKeyMap {
	return promptKeyMap{
		Submit: makeBinding(
			bindingDef{keys: []string{"enter"}, desc: submitDesc},
			cfg.Submit,
		),
		Cancel: makeBinding(
			bindingDef{keys: []string{"esc"}, desc: "cancel"},
			cfg.Cancel,
		),
		Quit: makeBinding(
			bindingDef{keys: []string{"ctrl+c"}, desc: "quit"},
			cfg.Quit,
		),
	}
}

func (m Model) keyMap() keyMap {
	km := keyMapFromConfig(m.keyMapCfg)
	km.searchActive = m.search.active
	km.gotoActive = m.gotoPrompt.active
	km.drawerActive = m.drawer.show
	km.insightsActive = m.insights.show
	return km
}

type bindingDef struct {
	keys []string
	desc string
}

func makeBinding(def bindingDef, override []string) key.Binding {
	keys := def.keys
	if len(override) > 0 {
		keys = override
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(formatHelpKeys(keys), def.desc),
	)
}

func formatHelpKeys(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		label := formatKeyLabel(key)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return strings.Join(out, "/")
}

func formatKeyLabel(key string) string {
	switch key {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	case "pgdown":
		return "pgdn"
	case "pgup":
		return "pgup"
	case " ":
		return "space"
	default:
		return key
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	switch {
	case k.insightsActive:
		return []key.Binding{k.insights.Up, k.insights.Down, k.insights.Close}
	case k.drawerActive:
		return []key.Binding{
			k.drawer.NextTab,
			k.drawer.NextField,
			k.drawer.Submit,
			k.drawer.Close,
		}
	case k.searchActive:
		return []key.Binding{k.search.Submit, k.search.Cancel, k.search.Quit}
	case k.gotoActive:
		return []key.Binding{k.gotoKeys.Submit, k.gotoKeys.Cancel, k.gotoKeys.Quit}
	default:
		return []key.Binding{
			k.list.Up,
			k.list.Down,
			k.list.Open,
			k.list.Search,
			k.list.StatusFilter,
			k.list.WarehouseFilter,
			k.list.Insights,
			k.list.Help,
			k.list.Quit,
		}
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	switch {
	case k.insightsActive:
		return [][]key.Binding{
			{k.insights.Up, k.insights.Down},
			{k.insights.Close},
		}
	case k.drawerActive:
		return [][]key.Binding{
			{k.drawer.NextTab, k.drawer.PrevTab, k.drawer.NextField},
			{k.drawer.Submit, k.drawer.Close, k.drawer.Quit},
		}
	case k.searchActive:
		return [][]key.Binding{
			{k.search.Submit, k.search.Cancel},
			{k.search.Quit},
		}
	case k.gotoActive:
		return [][]key.Binding{
			{k.gotoKeys.Submit, k.gotoKeys.Cancel},
			{k.gotoKeys.Quit},
		}
	default:
		return [][]key.Binding{
			{k.list.Up, k.list.Down, k.list.PageUp, k.list.PageDown},
			{k.list.ScrollUp, k.list.ScrollDown, k.list.Top, k.list.Bottom, k.list.Goto},
			{k.list.Open, k.list.ToggleSelect, k.list.ClearSelection, k.list.Undo},
			{k.list.Search, k.list.StatusFilter, k.list.WarehouseFilter, k.list.ClearFilters},
			{k.list.Range, k.list.Insights, k.list.ExportCSV, k.list.ExportJSON},
			{k.list.Refresh, k.list.Help, k.list.Quit},
		}
	}
}
