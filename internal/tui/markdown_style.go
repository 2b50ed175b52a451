package tui

import (
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"

	"github.com/stockroom-dev/stockroom/internal/config"
)

// markdownStyle themes the insights report.
func markdownStyle(theme config.Theme) ansi.StyleConfig {
	style := styles.DarkStyleConfig

	style.Document.Color = ptr(theme.Status.Fg)
	style.Paragraph.Color = ptr(theme.Status.Fg)
	style.Text.Color = ptr(theme.Status.Fg)

	style.Heading.Color = ptr(theme.Status.ModeBg)
	style.H1.Color = ptr(theme.Status.ModeBg)
	style.H1.BackgroundColor = nil
	style.H2.Color = ptr(theme.Status.ModeBg)
	style.H3.Color = ptr(theme.Status.ModeBg)

	style.Emph.Color = ptr(theme.Status.Dim)
	style.Strong.Color = ptr(theme.List.CriticalFg)
	style.HorizontalRule.Color = ptr(theme.Status.Dim)

	style.Table.Color = ptr(theme.List.Fg)
	style.Code.Color = ptr(theme.Header.SparkFg)
	style.Code.BackgroundColor = nil

	return style
}

func ptr[T any](value T) *T {
	return &value
}
