package cmd

import (
	"cmp"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.withmatt.com/themes"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/config"
)

var previewThemeName string

var themePreviewCmd = &cobra.Command{
	Use:   "theme-preview",
	Short: "Preview resolved theme colors",
	RunE:  runThemePreview,
}

func init() {
	themePreviewCmd.Flags().StringVar(&previewThemeName, "name", "", "theme name to preview")
	rootCmd.AddCommand(themePreviewCmd)
}

func runThemePreview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}

	theme := cfg.Theme
	if previewThemeName != "" {
		theme.Name = previewThemeName
	}
	resolved, err := config.ResolveTheme(theme)
	if err != nil {
		return fmt.Errorf("unable to resolve theme: %w", err)
	}

	paletteName := cmp.Or(strings.TrimSpace(theme.Name), "Nord")
	palette, err := themes.GetTheme(paletteName)
	if err != nil {
		return fmt.Errorf("unable to load palette %q: %w", paletteName, err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Theme preview: %s\n", paletteName)
	printStatusSample(w, resolved)

	printThemeSection(w, "Palette (base)", []themeColor{
		{label: "background", value: palette.Background},
		{label: "foreground", value: palette.Foreground},
		{label: "cursor", value: palette.Cursor},
	})

	printThemeSection(w, "Palette (ansi)", []themeColor{
		{label: "black", value: palette.Black},
		{label: "red", value: palette.Red},
		{label: "green", value: palette.Green},
		{label: "yellow", value: palette.Yellow},
		{label: "blue", value: palette.Blue},
		{label: "magenta", value: palette.Magenta},
		{label: "cyan", value: palette.Cyan},
		{label: "white", value: palette.White},
	})

	printThemeSection(w, "Palette (bright)", []themeColor{
		{label: "bright_black", value: palette.BrightBlack},
		{label: "bright_red", value: palette.BrightRed},
		{label: "bright_green", value: palette.BrightGreen},
		{label: "bright_yellow", value: palette.BrightYellow},
		{label: "bright_blue", value: palette.BrightBlue},
		{label: "bright_magenta", value: palette.BrightMagenta},
		{label: "bright_cyan", value: palette.BrightCyan},
		{label: "bright_white", value: palette.BrightWhite},
	})

	printThemeSection(w, "Status", []themeColor{
		{label: "bg", value: resolved.Status.Bg},
		{label: "fg", value: resolved.Status.Fg},
		{label: "dim", value: resolved.Status.Dim},
		{label: "mode_bg", value: resolved.Status.ModeBg},
		{label: "mode_fg", value: resolved.Status.ModeFg},
		{label: "tab_bg", value: resolved.Status.TabBg},
		{label: "tab_fg", value: resolved.Status.TabFg},
	})

	printThemeSection(w, "List", []themeColor{
		{label: "fg", value: resolved.List.Fg},
		{label: "selected_fg", value: resolved.List.SelectedFg},
		{label: "selected_bg", value: resolved.List.SelectedBg},
		{label: "healthy_fg", value: resolved.List.HealthyFg},
		{label: "low_fg", value: resolved.List.LowFg},
		{label: "critical_fg", value: resolved.List.CriticalFg},
		{label: "column_fg", value: resolved.List.ColumnFg},
	})

	printThemeSection(w, "Header", []themeColor{
		{label: "border_fg", value: resolved.Header.BorderFg},
		{label: "label_fg", value: resolved.Header.LabelFg},
		{label: "value_fg", value: resolved.Header.ValueFg},
		{label: "spark_fg", value: resolved.Header.SparkFg},
	})

	printThemeSection(w, "Drawer", []themeColor{
		{label: "border_fg", value: resolved.Drawer.BorderFg},
		{label: "tab_active_bg", value: resolved.Drawer.TabActiveBg},
		{label: "tab_active_fg", value: resolved.Drawer.TabActiveFg},
		{label: "tab_fg", value: resolved.Drawer.TabFg},
		{label: "label_fg", value: resolved.Drawer.LabelFg},
		{label: "error_fg", value: resolved.Drawer.ErrorFg},
	})

	printThemeSection(w, "Modal", []themeColor{
		{label: "footer_fg", value: resolved.Modal.FooterFg},
	})

	return nil
}

type themeColor struct {
	label string
	value string
}

func printThemeSection(w io.Writer, title string, colors []themeColor) {
	fmt.Fprintf(w, "\n%s\n", title)
	for _, item := range colors {
		fmt.Fprintf(w, "  %-16s %s %s\n", item.label, renderSwatch(item.value), item.value)
	}
}

// printStatusSample renders one dot per stock status the way list rows do.
func printStatusSample(w io.Writer, theme config.Theme) {
	samples := []struct {
		status catalog.Status
		color  string
	}{
		{catalog.StatusHealthy, theme.List.HealthyFg},
		{catalog.StatusLow, theme.List.LowFg},
		{catalog.StatusCritical, theme.List.CriticalFg},
	}
	parts := make([]string, 0, len(samples))
	for _, s := range samples {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.color))
		parts = append(parts, style.Render("● "+s.status.Label()))
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(parts, "   "))
}

func renderSwatch(color string) string {
	if color == "" {
		return "  "
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Render("  ")
}
