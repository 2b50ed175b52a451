package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Product is a single SKU held in one warehouse.
type Product struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Warehouse string `json:"warehouse"`
	Stock     int    `json:"stock"`
	Demand    int    `json:"demand"`
}

// Status classifies the product against its demand.
func (p Product) Status() Status {
	return StatusOf(p.Stock, p.Demand)
}

type Warehouse struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// KPI is one day of aggregate stock and demand.
type KPI struct {
	Date   time.Time `json:"date"`
	Stock  int       `json:"stock"`
	Demand int       `json:"demand"`
}

type Status string

const (
	StatusAll      Status = "all"
	StatusHealthy  Status = "healthy"
	StatusLow      Status = "low"
	StatusCritical Status = "critical"
)

// StatusOf is healthy when stock exceeds demand, low when they are equal and
// critical otherwise.
func StatusOf(stock, demand int) Status {
	switch {
	case stock > demand:
		return StatusHealthy
	case stock == demand:
		return StatusLow
	default:
		return StatusCritical
	}
}

// Label is the capitalized form used in exports and the UI.
func (s Status) Label() string {
	switch s {
	case StatusHealthy:
		return "Healthy"
	case StatusLow:
		return "Low"
	case StatusCritical:
		return "Critical"
	default:
		return "All"
	}
}

// Any reports whether s does not restrict results.
func (s Status) Any() bool {
	return s == "" || strings.EqualFold(string(s), string(StatusAll))
}

// Next cycles all -> healthy -> low -> critical -> all.
func (s Status) Next() Status {
	switch {
	case s.Any():
		return StatusHealthy
	case s == StatusHealthy:
		return StatusLow
	case s == StatusLow:
		return StatusCritical
	default:
		return StatusAll
	}
}

func ParseStatus(value string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return StatusAll, nil
	case "healthy":
		return StatusHealthy, nil
	case "low":
		return StatusLow, nil
	case "critical":
		return StatusCritical, nil
	default:
		return "", fmt.Errorf("unknown status %q", value)
	}
}

// Range is a KPI trend window.
type Range string

const (
	Range7d  Range = "7d"
	Range14d Range = "14d"
	Range30d Range = "30d"
)

// Days is the number of daily points in the range. Unknown ranges are
// treated as 30 days.
func (r Range) Days() int {
	switch r {
	case Range7d:
		return 7
	case Range14d:
		return 14
	default:
		return 30
	}
}

func (r Range) Next() Range {
	switch r {
	case Range7d:
		return Range14d
	case Range14d:
		return Range30d
	default:
		return Range7d
	}
}

func ParseRange(value string) (Range, error) {
	switch r := Range(strings.ToLower(strings.TrimSpace(value))); r {
	case Range7d, Range14d, Range30d:
		return r, nil
	default:
		return "", fmt.Errorf("unknown kpi range %q", value)
	}
}

// Filter narrows a product query. Zero values match everything.
type Filter struct {
	Search    string
	Status    Status
	Warehouse string
}

// Empty reports whether the filter matches every product.
func (f Filter) Empty() bool {
	return strings.TrimSpace(f.Search) == "" && f.Status.Any() && anyWarehouse(f.Warehouse)
}

// Matches applies the filter to a single product. Search is a
// case-insensitive substring match on name, SKU or ID.
func (f Filter) Matches(p Product) bool {
	return f.matcher()(p)
}

func (f Filter) matcher() func(Product) bool {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	warehouse := strings.TrimSpace(f.Warehouse)
	anyWH := anyWarehouse(warehouse)
	anyStatus := f.Status.Any()
	status := Status(strings.ToLower(string(f.Status)))

	return func(p Product) bool {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) &&
			!strings.Contains(strings.ToLower(p.ID), search) {
			return false
		}
		if !anyWH && p.Warehouse != warehouse {
			return false
		}
		if !anyStatus && p.Status() != status {
			return false
		}
		return true
	}
}

func anyWarehouse(code string) bool {
	code = strings.TrimSpace(code)
	return code == "" || strings.EqualFold(code, "all")
}

// IndexOf returns the position of the product with id in products, or -1.
func IndexOf(products []Product, id string) int {
	id = strings.TrimSpace(id)
	for i := range products {
		if strings.EqualFold(products[i].ID, id) {
			return i
		}
	}
	return -1
}
