// Package catalog is the in-process inventory API: product and warehouse
// queries, KPI trends and the demand/transfer mutations.
package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/stockroom-dev/stockroom/internal/log"
)

const (
	stockVariation  = 100
	demandVariation = 75

	// ctxCheckInterval bounds how many products a query scans between
	// cancellation checks.
	ctxCheckInterval = 4096
)

// Catalog is safe for concurrent use.
type Catalog struct {
	mu         sync.RWMutex
	products   []Product
	index      map[string]int
	warehouses []Warehouse

	rngMu sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
}

type Option func(*options)

type options struct {
	products   []Product
	warehouses []Warehouse
	synthetic  int
	seed       uint64
	now        func() time.Time
}

// WithProducts replaces the seed products.
func WithProducts(products []Product) Option {
	return func(o *options) {
		o.products = slices.Clone(products)
	}
}

// WithWarehouses replaces the seed warehouses.
func WithWarehouses(warehouses []Warehouse) Option {
	return func(o *options) {
		o.warehouses = slices.Clone(warehouses)
	}
}

// WithSynthetic appends n generated products after the seed set.
func WithSynthetic(n int) Option {
	return func(o *options) {
		o.synthetic = n
	}
}

// WithSeed fixes the seed used for synthetic products and KPI variation.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithClock overrides the clock used to date KPI points.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func New(opts ...Option) *Catalog {
	o := options{
		products:   SeedProducts(),
		warehouses: SeedWarehouses(),
		seed:       1,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	products := append(o.products, Generate(o.synthetic, o.seed, o.warehouses)...)

	c := &Catalog{
		products:   products,
		index:      make(map[string]int, len(products)),
		warehouses: o.warehouses,
		rng:        rand.New(rand.NewPCG(o.seed, o.seed+1)),
		now:        o.now,
	}
	for i, p := range products {
		c.index[strings.ToUpper(p.ID)] = i
	}
	log.Printf("catalog ready products=%d warehouses=%d", len(products), len(o.warehouses))
	return c
}

// Len is the number of products in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// Products returns the products matching filter, in catalog order.
func (c *Catalog) Products(ctx context.Context, filter Filter) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	if filter.Empty() {
		return slices.Clone(c.products), nil
	}

	match := filter.matcher()
	var out []Product
	for i, p := range c.products {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if match(p) {
			out = append(out, p)
		}
	}
	if out == nil {
		out = []Product{}
	}
	return out, nil
}

func (c *Catalog) Product(ctx context.Context, id string) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return c.products[i], nil
}

func (c *Catalog) Warehouses(ctx context.Context) ([]Warehouse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.warehouses), nil
}

// Warehouse looks up a warehouse by code.
func (c *Catalog) Warehouse(code string) (Warehouse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.warehouseLocked(code)
}

func (c *Catalog) warehouseLocked(code string) (Warehouse, bool) {
	for _, w := range c.warehouses {
		if strings.EqualFold(w.Code, strings.TrimSpace(code)) {
			return w, true
		}
	}
	return Warehouse{}, false
}

// KPIs returns one point per day of r, oldest first, ending today. Each point
// is the current catalog total with a bounded random variation, never
// negative.
func (c *Catalog) KPIs(ctx context.Context, r Range) ([]KPI, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	var baseStock, baseDemand int
	for _, p := range c.products {
		baseStock += p.Stock
		baseDemand += p.Demand
	}
	c.mu.RUnlock()

	days := r.Days()
	today := c.now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	c.rngMu.Lock()
	defer c.rngMu.Unlock()

	kpis := make([]KPI, 0, days)
	for i := days - 1; i >= 0; i-- {
		stock := baseStock + c.rng.IntN(2*stockVariation) - stockVariation
		demand := baseDemand + c.rng.IntN(2*demandVariation) - demandVariation
		kpis = append(kpis, KPI{
			Date:   today.AddDate(0, 0, -i),
			Stock:  max(0, stock),
			Demand: max(0, demand),
		})
	}
	return kpis, nil
}

// UpdateDemand sets the demand of a product and returns the updated product.
func (c *Catalog) UpdateDemand(ctx context.Context, id string, demand int) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}
	if demand < 0 {
		return Product{}, fmt.Errorf("%w: demand %d must be >= 0", ErrInvalidQuantity, demand)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.productLocked(id)
	if err != nil {
		return Product{}, err
	}
	p.Demand = demand
	log.Printf("catalog update demand id=%s demand=%d", p.ID, demand)
	return *p, nil
}

// TransferStock moves a product from one warehouse to another. The stock
// level travels with the product unchanged.
func (c *Catalog) TransferStock(
	ctx context.Context,
	id string,
	from string,
	to string,
	qty int,
) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.productLocked(id)
	if err != nil {
		return Product{}, err
	}
	if !strings.EqualFold(p.Warehouse, strings.TrimSpace(from)) {
		return Product{}, fmt.Errorf("%w %s", ErrWarehouseMismatch, from)
	}
	dest, ok := c.warehouseLocked(to)
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrUnknownWarehouse, to)
	}
	if qty <= 0 {
		return Product{}, fmt.Errorf("%w: qty %d must be > 0", ErrInvalidQuantity, qty)
	}
	if p.Stock < qty {
		return Product{}, fmt.Errorf(
			"%w: available %d, requested %d",
			ErrInsufficientStock,
			p.Stock,
			qty,
		)
	}

	p.Warehouse = dest.Code
	log.Printf("catalog transfer id=%s from=%s to=%s qty=%d", p.ID, from, dest.Code, qty)
	return *p, nil
}

func (c *Catalog) productLocked(id string) (*Product, error) {
	i, ok := c.index[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return &c.products[i], nil
}
