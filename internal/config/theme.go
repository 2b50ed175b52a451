package config

import (
	"fmt"
	"strings"

	"go.withmatt.com/themes"
)

type Theme struct {
	Name   string      `toml:"name"`
	Status ThemeStatus `toml:"status"`
	List   ThemeList   `toml:"list"`
	Header ThemeHeader `toml:"header"`
	Drawer ThemeDrawer `toml:"drawer"`
	Modal  ThemeModal  `toml:"modal"`
}

type ThemeStatus struct {
	Bg     string `toml:"bg"`
	Fg     string `toml:"fg"`
	Dim    string `toml:"dim"`
	ModeBg string `toml:"mode_bg"`
	ModeFg string `toml:"mode_fg"`
	TabBg  string `toml:"tab_bg"`
	TabFg  string `toml:"tab_fg"`
}

type ThemeList struct {
	Fg         string `toml:"fg"`
	SelectedFg string `toml:"selected_fg"`
	SelectedBg string `toml:"selected_bg"`
	HealthyFg  string `toml:"healthy_fg"`
	LowFg      string `toml:"low_fg"`
	CriticalFg string `toml:"critical_fg"`
	ColumnFg   string `toml:"column_fg"`
}

type ThemeHeader struct {
	BorderFg string `toml:"border_fg"`
	LabelFg  string `toml:"label_fg"`
	ValueFg  string `toml:"value_fg"`
	SparkFg  string `toml:"spark_fg"`
}

type ThemeDrawer struct {
	BorderFg    string `toml:"border_fg"`
	TabActiveBg string `toml:"tab_active_bg"`
	TabActiveFg string `toml:"tab_active_fg"`
	TabFg       string `toml:"tab_fg"`
	LabelFg     string `toml:"label_fg"`
	ErrorFg     string `toml:"error_fg"`
}

type ThemeModal struct {
	FooterFg string `toml:"footer_fg"`
}

func ResolveTheme(theme Theme) (Theme, error) {
	palette, err := paletteForTheme(theme.Name)
	if err != nil {
		return Theme{}, err
	}
	base := themeFromPalette(palette)
	merged := mergeTheme(base, theme)
	merged = resolveThemeColorNames(merged, palette)
	merged.Name = theme.Name
	return merged, nil
}

func themeFromPalette(palette *themes.Theme) Theme {
	dim := firstNonEmpty(
		palette.BrightBlack,
		palette.Foreground,
	)
	modeBg := firstNonEmpty(
		palette.Magenta,
		palette.Foreground,
	)
	modeFg := firstNonEmpty(
		palette.Background,
	)
	tabBg := firstNonEmpty(
		palette.Blue,
		palette.Magenta,
		palette.Foreground,
	)
	selectedFg := firstNonEmpty(
		palette.BrightWhite,
		palette.Foreground,
	)
	selectedBg := firstNonEmpty(
		palette.Black,
		palette.Background,
	)
	healthyFg := firstNonEmpty(
		palette.Green,
		palette.BrightGreen,
		palette.Foreground,
	)
	lowFg := firstNonEmpty(
		palette.Yellow,
		palette.BrightYellow,
		palette.Foreground,
	)
	criticalFg := firstNonEmpty(
		palette.Red,
		palette.BrightRed,
		palette.Foreground,
	)
	sparkFg := firstNonEmpty(
		palette.Cyan,
		palette.BrightCyan,
		palette.Blue,
		palette.Foreground,
	)
	return Theme{
		Status: ThemeStatus{
			Bg:     palette.Background,
			Fg:     palette.Foreground,
			Dim:    dim,
			ModeBg: modeBg,
			ModeFg: modeFg,
			TabBg:  tabBg,
			TabFg:  modeFg,
		},
		List: ThemeList{
			Fg:         palette.Foreground,
			SelectedFg: selectedFg,
			SelectedBg: selectedBg,
			HealthyFg:  healthyFg,
			LowFg:      lowFg,
			CriticalFg: criticalFg,
			ColumnFg:   dim,
		},
		Header: ThemeHeader{
			BorderFg: dim,
			LabelFg:  dim,
			ValueFg:  palette.Foreground,
			SparkFg:  sparkFg,
		},
		Drawer: ThemeDrawer{
			BorderFg:    modeBg,
			TabActiveBg: modeBg,
			TabActiveFg: modeFg,
			TabFg:       dim,
			LabelFg:     dim,
			ErrorFg:     criticalFg,
		},
		Modal: ThemeModal{
			FooterFg: dim,
		},
	}
}

func mergeTheme(base, override Theme) Theme {
	out := override
	fillIfEmpty(&out.Status.Bg, base.Status.Bg)
	fillIfEmpty(&out.Status.Fg, base.Status.Fg)
	fillIfEmpty(&out.Status.Dim, base.Status.Dim)
	fillIfEmpty(&out.Status.ModeBg, base.Status.ModeBg)
	fillIfEmpty(&out.Status.ModeFg, base.Status.ModeFg)
	fillIfEmpty(&out.Status.TabBg, base.Status.TabBg)
	fillIfEmpty(&out.Status.TabFg, base.Status.TabFg)

	fillIfEmpty(&out.List.Fg, base.List.Fg)
	fillIfEmpty(&out.List.SelectedFg, base.List.SelectedFg)
	fillIfEmpty(&out.List.SelectedBg, base.List.SelectedBg)
	fillIfEmpty(&out.List.HealthyFg, base.List.HealthyFg)
	fillIfEmpty(&out.List.LowFg, base.List.LowFg)
	fillIfEmpty(&out.List.CriticalFg, base.List.CriticalFg)
	fillIfEmpty(&out.List.ColumnFg, base.List.ColumnFg)

	fillIfEmpty(&out.Header.BorderFg, base.Header.BorderFg)
	fillIfEmpty(&out.Header.LabelFg, base.Header.LabelFg)
	fillIfEmpty(&out.Header.ValueFg, base.Header.ValueFg)
	fillIfEmpty(&out.Header.SparkFg, base.Header.SparkFg)

	fillIfEmpty(&out.Drawer.BorderFg, base.Drawer.BorderFg)
	fillIfEmpty(&out.Drawer.TabActiveBg, base.Drawer.TabActiveBg)
	fillIfEmpty(&out.Drawer.TabActiveFg, base.Drawer.TabActiveFg)
	fillIfEmpty(&out.Drawer.TabFg, base.Drawer.TabFg)
	fillIfEmpty(&out.Drawer.LabelFg, base.Drawer.LabelFg)
	fillIfEmpty(&out.Drawer.ErrorFg, base.Drawer.ErrorFg)

	fillIfEmpty(&out.Modal.FooterFg, base.Modal.FooterFg)

	return out
}

func fillIfEmpty(target *string, value string) {
	if *target == "" {
		*target = value
	}
}

func firstNonEmpty(candidates ...string) string {
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}

func paletteForTheme(name string) (*themes.Theme, error) {
	themeName := strings.TrimSpace(name)
	if themeName == "" {
		themeName = "Nord"
	}
	palette, err := themes.GetTheme(themeName)
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w", themeName, err)
	}
	return palette, nil
}

func resolveThemeColorNames(theme Theme, palette *themes.Theme) Theme {
	for _, slot := range themeSlots(&theme) {
		*slot = resolveColorName(*slot, palette)
	}
	return theme
}

func themeSlots(theme *Theme) []*string {
	return []*string{
		&theme.Status.Bg,
		&theme.Status.Fg,
		&theme.Status.Dim,
		&theme.Status.ModeBg,
		&theme.Status.ModeFg,
		&theme.Status.TabBg,
		&theme.Status.TabFg,
		&theme.List.Fg,
		&theme.List.SelectedFg,
		&theme.List.SelectedBg,
		&theme.List.HealthyFg,
		&theme.List.LowFg,
		&theme.List.CriticalFg,
		&theme.List.ColumnFg,
		&theme.Header.BorderFg,
		&theme.Header.LabelFg,
		&theme.Header.ValueFg,
		&theme.Header.SparkFg,
		&theme.Drawer.BorderFg,
		&theme.Drawer.TabActiveBg,
		&theme.Drawer.TabActiveFg,
		&theme.Drawer.TabFg,
		&theme.Drawer.LabelFg,
		&theme.Drawer.ErrorFg,
		&theme.Modal.FooterFg,
	}
}

func resolveColorName(value string, palette *themes.Theme) string {
	if palette == nil {
		return value
	}
	key := normalizeColorName(value)
	if key == "" {
		return value
	}
	switch key {
	case "foreground":
		return palette.Foreground
	case "background":
		return palette.Background
	case "cursor":
		return palette.Cursor
	case "black":
		return palette.Black
	case "red":
		return palette.Red
	case "green":
		return palette.Green
	case "yellow":
		return palette.Yellow
	case "blue":
		return palette.Blue
	case "magenta":
		return palette.Magenta
	case "cyan":
		return palette.Cyan
	case "white":
		return palette.White
	case "brightblack":
		return palette.BrightBlack
	case "brightred":
		return palette.BrightRed
	case "brightgreen":
		return palette.BrightGreen
	case "brightyellow":
		return palette.BrightYellow
	case "brightblue":
		return palette.BrightBlue
	case "brightmagenta":
		return palette.BrightMagenta
	case "brightcyan":
		return palette.BrightCyan
	case "brightwhite":
		return palette.BrightWhite
	default:
		return value
	}
}

func normalizeColorName(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "_", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, " ", "")
	return normalized
}
