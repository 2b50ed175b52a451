package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.dalton.dog/bubbleup"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/config"
	"github.com/stockroom-dev/stockroom/internal/window"
)

type uiState struct {
	width     int
	height    int
	focused   bool
	spinner   spinner.Model
	help      help.Model
	alert     bubbleup.AlertModel
	showHelp  bool
	showError bool
	err       error

	debugDumpHashes map[string][32]byte
}

type listState struct {
	products []catalog.Product
	cursor   int
	selected map[string]struct{}

	scroll       *window.Controller
	pixelsPerRow float64
	rowLines     int

	loading    bool
	refreshing bool
	stale      bool
}

type filterState struct {
	search    string
	status    catalog.Status
	warehouse string

	// generation tags product queries so results for an older filter are
	// dropped.
	generation int
	querying   bool
}

type searchState struct {
	active        bool
	input         textinput.Model
	previousQuery string
	generation    int
}

type gotoState struct {
	active bool
	input  textinput.Model
}

type headerState struct {
	warehouses []catalog.Warehouse
	kpis       []catalog.KPI
	kpiRange   catalog.Range
	loadingKPI bool
}

type drawerTab int

const (
	drawerTabDetails drawerTab = iota
	drawerTabDemand
	drawerTabTransfer
)

var drawerTabs = []drawerTab{drawerTabDetails, drawerTabDemand, drawerTabTransfer}

func (t drawerTab) String() string {
	switch t {
	case drawerTabDemand:
		return "Update Demand"
	case drawerTabTransfer:
		return "Transfer Stock"
	default:
		return "Details"
	}
}

type drawerState struct {
	show       bool
	product    catalog.Product
	tab        drawerTab
	demand     textinput.Model
	warehouse  textinput.Model
	quantity   textinput.Model
	focus      int
	submitting bool
	err        error
}

type insightsState struct {
	show     bool
	viewport viewport.Model
	markdown string
}

// undoState holds the inverse of the last mutation applied from the
// dashboard.
type undoState struct {
	inverse    *mutation
	inProgress bool
}

type renderersState struct {
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
}

func newUIState() uiState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = s.Style.Foreground(s.Style.GetForeground())
	return uiState{spinner: s, focused: true, debugDumpHashes: make(map[string][32]byte)}
}

func promptInput(theme config.Theme, prompt string, placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = 200
	input.Blur()
	statusStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(theme.Status.Bg)).
		Foreground(lipgloss.Color(theme.Status.Fg)).
		Bold(true)
	input.PromptStyle = statusStyle
	input.TextStyle = statusStyle
	input.PlaceholderStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(theme.Status.Bg)).
		Foreground(lipgloss.Color(theme.Status.Dim)).
		Faint(true)
	input.Cursor.Style = lipgloss.NewStyle().
		Background(lipgloss.Color(theme.Status.Fg)).
		Foreground(lipgloss.Color(theme.Status.Bg))
	return input
}

func newSearchState(theme config.Theme) searchState {
	return searchState{input: promptInput(theme, "/ ", "name, sku or id")}
}

func newGotoState(theme config.Theme) gotoState {
	input := promptInput(theme, ": ", "product id")
	input.CharLimit = 32
	return gotoState{input: input}
}

func drawerInput(theme config.Theme, placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Width = 20
	input.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Status.Dim)).
		Faint(true)
	input.Blur()
	return input
}

func newDrawerState(theme config.Theme) drawerState {
	return drawerState{
		demand:    drawerInput(theme, "new demand", 9),
		warehouse: drawerInput(theme, "destination code", 16),
		quantity:  drawerInput(theme, "quantity", 9),
	}
}

func newInsightsState() insightsState {
	return insightsState{viewport: viewport.New(0, 0)}
}
