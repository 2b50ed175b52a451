package config

type KeyMap struct {
	List     ListKeyMap     `toml:"list"`
	Drawer   DrawerKeyMap   `toml:"drawer"`
	Search   PromptKeyMap   `toml:"search"`
	Goto     PromptKeyMap   `toml:"goto"`
	Insights InsightsKeyMap `toml:"insights"`
}

type ListKeyMap struct {
	Up              []string `toml:"up"`
	Down            []string `toml:"down"`
	PageUp          []string `toml:"page_up"`
	PageDown        []string `toml:"page_down"`
	ScrollUp        []string `toml:"scroll_up"`
	ScrollDown      []string `toml:"scroll_down"`
	Top             []string `toml:"top"`
	Bottom          []string `toml:"bottom"`
	Open            []string `toml:"open"`
	ToggleSelect    []string `toml:"toggle_select"`
	ClearSelection  []string `toml:"clear_selection"`
	Undo            []string `toml:"undo"`
	Goto            []string `toml:"goto"`
	Search          []string `toml:"search"`
	StatusFilter    []string `toml:"status_filter"`
	WarehouseFilter []string `toml:"warehouse_filter"`
	ClearFilters    []string `toml:"clear_filters"`
	Range           []string `toml:"range"`
	Insights        []string `toml:"insights"`
	ExportCSV       []string `toml:"export_csv"`
	ExportJSON      []string `toml:"export_json"`
	Refresh         []string `toml:"refresh"`
	Help            []string `toml:"help"`
	Quit            []string `toml:"quit"`
}

type DrawerKeyMap struct {
	NextTab   []string `toml:"next_tab"`
	PrevTab   []string `toml:"prev_tab"`
	NextField []string `toml:"next_field"`
	Submit    []string `toml:"submit"`
	Close     []string `toml:"close"`
	Quit      []string `toml:"quit"`
}

type PromptKeyMap struct {
	Submit []string `toml:"submit"`
	Cancel []string `toml:"cancel"`
	Quit   []string `toml:"quit"`
}

type InsightsKeyMap struct {
	Up    []string `toml:"up"`
	Down  []string `toml:"down"`
	Close []string `toml:"close"`
}
