package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/export"
	"github.com/stockroom-dev/stockroom/internal/journal"
)

var errNoCatalog = errors.New("no catalog configured")

type loadSource int

const (
	loadInit loadSource = iota
	loadManual
	loadAuto
	loadMutation
)

type dashboardLoadedMsg struct {
	products   []catalog.Product
	warehouses []catalog.Warehouse
	kpis       []catalog.KPI
	kpiRange   catalog.Range
	generation int
	source     loadSource
	err        error
}

type productsLoadedMsg struct {
	generation int
	products   []catalog.Product
	err        error
}

type kpisLoadedMsg struct {
	kpiRange catalog.Range
	kpis     []catalog.KPI
	err      error
}

// mutation is one catalog write issued from the dashboard.
type mutation struct {
	kind      journal.Kind
	productID string
	demand    int
	from      string
	to        string
	qty       int
}

// inverse returns the mutation that undoes m, given the product as it was
// before m was applied.
func (m mutation) inverse(before catalog.Product) mutation {
	switch m.kind {
	case journal.KindTransferStock:
		return mutation{
			kind:      journal.KindTransferStock,
			productID: m.productID,
			from:      m.to,
			to:        m.from,
			qty:       m.qty,
		}
	default:
		return mutation{
			kind:      journal.KindUpdateDemand,
			productID: m.productID,
			demand:    before.Demand,
		}
	}
}

func (m mutation) describe() string {
	switch m.kind {
	case journal.KindTransferStock:
		return fmt.Sprintf("Moved %s %s -> %s", m.productID, m.from, m.to)
	default:
		return fmt.Sprintf("Set %s demand to %d", m.productID, m.demand)
	}
}

type mutationDoneMsg struct {
	mutation   mutation
	product    catalog.Product
	previous   catalog.Product
	undo       bool
	journalErr error
	err        error
}

type exportDoneMsg struct {
	path   string
	format export.Format
	count  int
	err    error
}

type searchDebounceMsg struct {
	query      string
	generation int
}

type autoRefreshMsg struct{}

// loadDashboardCmd loads products, warehouses and KPIs in parallel.
func (m *Model) loadDashboardCmd(source loadSource) tea.Cmd {
	api := m.api
	parent := m.ctx
	filter := m.currentFilter()
	generation := m.filter.generation
	kpiRange := m.header.kpiRange
	logf := m.logf

	return func() tea.Msg {
		msg := dashboardLoadedMsg{kpiRange: kpiRange, generation: generation, source: source}
		if api == nil {
			msg.err = errNoCatalog
			return msg
		}
		logf("LoadDashboard start source=%d gen=%d", source, generation)

		g, ctx := errgroup.WithContext(parent)
		g.Go(func() error {
			products, err := api.Products(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to load products: %w", err)
			}
			msg.products = products
			return nil
		})
		g.Go(func() error {
			warehouses, err := api.Warehouses(ctx)
			if err != nil {
				return fmt.Errorf("failed to load warehouses: %w", err)
			}
			msg.warehouses = warehouses
			return nil
		})
		g.Go(func() error {
			kpis, err := api.KPIs(ctx, kpiRange)
			if err != nil {
				return fmt.Errorf("failed to load kpis: %w", err)
			}
			msg.kpis = kpis
			return nil
		})
		msg.err = g.Wait()

		logf(
			"LoadDashboard done products=%d warehouses=%d kpis=%d err=%v",
			len(msg.products),
			len(msg.warehouses),
			len(msg.kpis),
			msg.err,
		)
		return msg
	}
}

func (m *Model) queryProductsCmd(filter catalog.Filter, generation int) tea.Cmd {
	api := m.api
	ctx := m.ctx
	return func() tea.Msg {
		if api == nil {
			return productsLoadedMsg{generation: generation, err: errNoCatalog}
		}
		products, err := api.Products(ctx, filter)
		if err != nil {
			err = fmt.Errorf("failed to load products: %w", err)
		}
		return productsLoadedMsg{generation: generation, products: products, err: err}
	}
}

func (m *Model) loadKPIsCmd(r catalog.Range) tea.Cmd {
	api := m.api
	ctx := m.ctx
	return func() tea.Msg {
		if api == nil {
			return kpisLoadedMsg{kpiRange: r, err: errNoCatalog}
		}
		kpis, err := api.KPIs(ctx, r)
		if err != nil {
			err = fmt.Errorf("failed to load kpis: %w", err)
		}
		return kpisLoadedMsg{kpiRange: r, kpis: kpis, err: err}
	}
}

// mutateCmd applies mu and journals it.
func (m *Model) mutateCmd(mu mutation, undo bool) tea.Cmd {
	api := m.api
	j := m.journal
	ctx := m.ctx
	logf := m.logf

	return func() tea.Msg {
		msg := mutationDoneMsg{mutation: mu, undo: undo}
		if api == nil {
			msg.err = errNoCatalog
			return msg
		}
		before, err := api.Product(ctx, mu.productID)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.previous = before

		switch mu.kind {
		case journal.KindUpdateDemand:
			msg.product, msg.err = api.UpdateDemand(ctx, mu.productID, mu.demand)
			if msg.err == nil {
				_, msg.journalErr = j.RecordDemand(ctx, msg.product.ID, mu.demand)
			}
		case journal.KindTransferStock:
			msg.product, msg.err = api.TransferStock(ctx, mu.productID, mu.from, mu.to, mu.qty)
			if msg.err == nil {
				_, msg.journalErr = j.RecordTransfer(ctx, msg.product.ID, mu.from, mu.to, mu.qty)
			}
		default:
			msg.err = fmt.Errorf("unknown mutation %q", mu.kind)
		}
		logf("Mutation kind=%s product=%s undo=%t err=%v", mu.kind, mu.productID, undo, msg.err)
		return msg
	}
}

func (m *Model) exportCmd(format export.Format) tea.Cmd {
	products := m.exportProducts()
	warehouses := append([]catalog.Warehouse(nil), m.header.warehouses...)
	dir := m.exportDir
	now := m.now()

	return func() tea.Msg {
		if dir == "" {
			d, err := export.Dir()
			if err != nil {
				return exportDoneMsg{format: format, err: err}
			}
			dir = d
		}
		path, err := export.ToFile(dir, format, products, warehouses, now)
		return exportDoneMsg{path: path, format: format, count: len(products), err: err}
	}
}

func (m *Model) autoRefreshCmd() tea.Cmd {
	if m.uiConfig.RefreshIntervalSeconds <= 0 {
		return nil
	}
	interval := time.Duration(m.uiConfig.RefreshIntervalSeconds) * time.Second
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return autoRefreshMsg{}
	})
}

func (m *Model) searchDebounceCmd(query string, generation int) tea.Cmd {
	delay := time.Duration(m.uiConfig.SearchDebounceMS) * time.Millisecond
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return searchDebounceMsg{query: query, generation: generation}
	})
}

func bellCmd() tea.Cmd {
	return func() tea.Msg {
		fmt.Print("\a")
		return nil
	}
}
