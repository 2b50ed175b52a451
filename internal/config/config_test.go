package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.withmatt.com/themes"

	"github.com/stockroom-dev/stockroom/internal/catalog"
)

const sampleConfig = `
[catalog]
synthetic_products = 100000
seed = 42
journal = false

[ui]
row_lines = 3
overscan = 0
kpi_range = "30d"

[theme]
name = "Nord"

[theme.list]
critical_fg = "bright_red"
healthy_fg = "#00ff00"

[keys.list]
goto = ["ctrl+g"]
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	catalogCfg := cfg.Catalog.WithDefaults()
	assert.Equal(t, 100000, catalogCfg.SyntheticProducts)
	assert.Equal(t, uint64(42), catalogCfg.Seed)
	assert.False(t, catalogCfg.JournalEnabled())

	ui := cfg.UI.WithDefaults()
	assert.Equal(t, 3, ui.RowLines)
	assert.Equal(t, 0, ui.OverscanRows())
	assert.Equal(t, catalog.Range30d, ui.Range())
	assert.Equal(t, 300, ui.RefreshIntervalSeconds)
	assert.Equal(t, 300, ui.SearchDebounceMS)

	assert.Equal(t, []string{"ctrl+g"}, cfg.Keys.List.Goto)
	assert.Empty(t, cfg.Keys.List.Up)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui\nrow_lines = "), 0o600))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := &Config{
		Catalog: CatalogConfig{SyntheticProducts: 10}.WithDefaults(),
		UI:      UIConfig{}.WithDefaults(),
	}
	require.NoError(t, SaveFile(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.Catalog.SyntheticProducts)
	assert.True(t, loaded.Catalog.JournalEnabled())
	assert.Equal(t, 3, loaded.UI.OverscanRows())
}

func TestUIDefaults(t *testing.T) {
	ui := UIConfig{KPIRange: "90d", RefreshIntervalSeconds: -1}.WithDefaults()
	assert.Equal(t, 2, ui.RowLines)
	assert.Equal(t, 3, ui.OverscanRows())
	assert.Equal(t, "7d", ui.KPIRange)
	assert.Equal(t, -1, ui.RefreshIntervalSeconds)
}

func TestCatalogDefaults(t *testing.T) {
	c := CatalogConfig{SyntheticProducts: -5}.WithDefaults()
	assert.Equal(t, 0, c.SyntheticProducts)
	assert.Equal(t, uint64(1), c.Seed)
	assert.True(t, c.JournalEnabled())
}

func TestResolveTheme(t *testing.T) {
	palette, err := themes.GetTheme("Nord")
	require.NoError(t, err)

	resolved, err := ResolveTheme(Theme{
		List: ThemeList{CriticalFg: "bright_red", HealthyFg: "#00ff00"},
	})
	require.NoError(t, err)

	assert.Equal(t, palette.BrightRed, resolved.List.CriticalFg)
	assert.Equal(t, "#00ff00", resolved.List.HealthyFg)
	assert.Equal(t, palette.Background, resolved.Status.Bg)
	assert.Equal(t, palette.Foreground, resolved.Status.Fg)
	for _, slot := range themeSlots(&resolved) {
		assert.NotEmpty(t, *slot)
	}
}

func TestResolveTheme_UnknownPalette(t *testing.T) {
	_, err := ResolveTheme(Theme{Name: "definitely-not-a-theme"})
	assert.Error(t, err)
}

func TestNormalizeColorName(t *testing.T) {
	assert.Equal(t, "brightred", normalizeColorName(" Bright_Red "))
	assert.Equal(t, "brightred", normalizeColorName("bright-red"))
	assert.Equal(t, "", normalizeColorName("  "))
}
