package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/stockroom-dev/stockroom/internal/cache"
	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/config"
	"github.com/stockroom-dev/stockroom/internal/journal"
	"github.com/stockroom-dev/stockroom/internal/log"
	"github.com/stockroom-dev/stockroom/internal/window"
)

// API is the inventory backend the dashboard talks to.
type API interface {
	Products(ctx context.Context, filter catalog.Filter) ([]catalog.Product, error)
	Product(ctx context.Context, id string) (catalog.Product, error)
	Warehouses(ctx context.Context) ([]catalog.Warehouse, error)
	KPIs(ctx context.Context, r catalog.Range) ([]catalog.KPI, error)
	UpdateDemand(ctx context.Context, id string, demand int) (catalog.Product, error)
	TransferStock(ctx context.Context, id, from, to string, qty int) (catalog.Product, error)
}

// Options configures a dashboard Model.
type Options struct {
	Catalog API
	// Journal records applied mutations. It may be nil.
	Journal  *journal.Journal
	Theme    config.Theme
	UI       config.UIConfig
	Keys     config.KeyMap
	Snapshot *cache.Snapshot
	// ExportDir is where e and E write files. Empty means export.Dir.
	ExportDir string
	// PixelsPerRow overrides terminal detection.
	PixelsPerRow int
	Now          func() time.Time
}

// Model is the TUI application state
type Model struct {
	ui         uiState
	list       listState
	filter     filterState
	search     searchState
	gotoPrompt gotoState
	header     headerState
	drawer     drawerState
	insights   insightsState
	undo       undoState
	renderers  renderersState
	theme      config.Theme
	uiConfig   config.UIConfig
	keyMapCfg  config.KeyMap

	api       API
	journal   *journal.Journal
	exportDir string
	now       func() time.Time

	// Context for cancellation
	ctx context.Context
}

// New creates a new TUI model
func New(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	uiConfig := opts.UI.WithDefaults()

	ui := newUIState()
	ui.help = newHelpModel(opts.Theme)
	ui.alert = newAlertModel(opts.Theme, 0)

	// Create glamour renderer once for reuse
	r, _ := NewMarkdownRenderer(opts.Theme, 80)

	ppr := opts.PixelsPerRow
	if ppr <= 0 {
		_, ppr = terminalPixelsPerCell()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	model := Model{
		ui: ui,
		list: listState{
			loading:      true,
			selected:     make(map[string]struct{}),
			pixelsPerRow: float64(ppr),
			rowLines:     uiConfig.RowLines,
		},
		filter:     filterState{status: catalog.StatusAll},
		search:     newSearchState(opts.Theme),
		gotoPrompt: newGotoState(opts.Theme),
		header:     headerState{kpiRange: uiConfig.Range(), loadingKPI: true},
		drawer:     newDrawerState(opts.Theme),
		insights:   newInsightsState(),
		theme:      opts.Theme,
		uiConfig:   uiConfig,
		keyMapCfg:  opts.Keys,
		api:        opts.Catalog,
		journal:    opts.Journal,
		exportDir:  opts.ExportDir,
		now:        now,
		renderers: renderersState{
			glamourRenderer: r,
			glamourWidth:    80,
		},
		ctx: ctx,
	}

	offset := 0.0
	if snap := opts.Snapshot; snap != nil {
		model.restoreSnapshot(*snap)
		offset = snap.Offset
	}

	scroll, err := window.NewController(
		model.listGeometry(),
		window.WithOffset(offset),
		window.WithScrollHandler(func(offset float64) {
			log.Printf("list jump offset=%.0f", offset)
		}),
	)
	if err != nil {
		// Only reachable with a broken row height; fall back to one line.
		model.logf("list geometry rejected err=%v", err)
		model.list.rowLines = 1
		model.list.pixelsPerRow = defaultPixelsPerRow
		scroll, _ = window.NewController(model.listGeometry())
	}
	model.list.scroll = scroll
	model.clampCursor()

	model.logf("debug logging enabled ppr=%d row_lines=%d", ppr, uiConfig.RowLines)
	return model
}

// NewMarkdownRenderer returns a glamour renderer styled with theme.
func NewMarkdownRenderer(
	theme config.Theme,
	width int,
) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle(theme)),
		glamour.WithEmoji(),
		glamour.WithWordWrap(width),
	)
}

// Init initializes the TUI and kicks off the dashboard load
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadDashboardCmd(loadInit),
		m.ui.spinner.Tick,
		m.ui.alert.Init(),
		m.autoRefreshCmd(),
		m.setWindowTitleCmd(),
	)
}

// Run starts the TUI and saves a snapshot of the final state on exit.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(
		New(ctx, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if m, ok := final.(Model); ok {
		if saveErr := cache.Save(m.snapshot()); saveErr != nil {
			log.Printf("snapshot save failed err=%v", saveErr)
		}
	}
	return err
}
