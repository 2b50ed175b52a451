package config

import "github.com/stockroom-dev/stockroom/internal/catalog"

type UIConfig struct {
	RowLines               int    `toml:"row_lines"`
	Overscan               *int   `toml:"overscan"`
	RefreshIntervalSeconds int    `toml:"refresh_interval_seconds"`
	KPIRange               string `toml:"kpi_range"`
	SearchDebounceMS       int    `toml:"search_debounce_ms"`
}

func (u UIConfig) WithDefaults() UIConfig {
	if u.RowLines <= 0 {
		u.RowLines = 2
	}
	if u.Overscan == nil || *u.Overscan < 0 {
		overscan := 3
		u.Overscan = &overscan
	}
	if u.RefreshIntervalSeconds == 0 {
		u.RefreshIntervalSeconds = 300
	}
	if _, err := catalog.ParseRange(u.KPIRange); err != nil {
		u.KPIRange = string(catalog.Range7d)
	}
	if u.SearchDebounceMS <= 0 {
		u.SearchDebounceMS = 300
	}
	return u
}

// OverscanRows is the configured overscan, 0 when unset.
func (u UIConfig) OverscanRows() int {
	if u.Overscan == nil {
		return 0
	}
	return max(0, *u.Overscan)
}

// Range is the configured KPI range, 7d when invalid.
func (u UIConfig) Range() catalog.Range {
	r, err := catalog.ParseRange(u.KPIRange)
	if err != nil {
		return catalog.Range7d
	}
	return r
}

type CatalogConfig struct {
	SyntheticProducts int    `toml:"synthetic_products"`
	Seed              uint64 `toml:"seed"`
	Journal           *bool  `toml:"journal"`
}

func (c CatalogConfig) WithDefaults() CatalogConfig {
	if c.SyntheticProducts < 0 {
		c.SyntheticProducts = 0
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	if c.Journal == nil {
		enabled := true
		c.Journal = &enabled
	}
	return c
}

// JournalEnabled reports whether mutations are journaled and replayed.
func (c CatalogConfig) JournalEnabled() bool {
	return c.Journal == nil || *c.Journal
}
