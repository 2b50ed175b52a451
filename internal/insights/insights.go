// Package insights derives fill rates, summaries and restocking suggestions
// from a product list.
package insights

import (
	"cmp"
	"math"
	"slices"

	"github.com/stockroom-dev/stockroom/internal/catalog"
)

// FillRate is the share of demand the product can cover, in percent. A
// product with no demand is fully covered.
func FillRate(p catalog.Product) float64 {
	if p.Demand <= 0 {
		return 100
	}
	return float64(min(p.Stock, p.Demand)) / float64(p.Demand) * 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

type Summary struct {
	Products    int
	TotalStock  int
	TotalDemand int
	// FillRate is sum(min(stock, demand)) / total demand, in percent. It is 0
	// when there is no demand at all.
	FillRate float64
	Healthy  int
	Low      int
	Critical int
}

func Summarize(products []catalog.Product) Summary {
	s := Summary{Products: len(products)}
	fulfilled := 0
	for _, p := range products {
		s.TotalStock += p.Stock
		s.TotalDemand += p.Demand
		fulfilled += min(p.Stock, p.Demand)
		switch p.Status() {
		case catalog.StatusHealthy:
			s.Healthy++
		case catalog.StatusLow:
			s.Low++
		default:
			s.Critical++
		}
	}
	if s.TotalDemand > 0 {
		s.FillRate = float64(fulfilled) / float64(s.TotalDemand) * 100
	}
	return s
}

// ReorderSuggestions returns the critical products, most severe shortfall
// first.
func ReorderSuggestions(products []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, 0)
	for _, p := range products {
		if p.Stock < p.Demand {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b catalog.Product) int {
		return cmp.Compare(coverage(a), coverage(b))
	})
	return out
}

func coverage(p catalog.Product) float64 {
	if p.Demand <= 0 {
		return 1
	}
	return float64(p.Stock) / float64(p.Demand)
}

// Shortfall is demand not covered by stock.
func Shortfall(p catalog.Product) int {
	return max(0, p.Demand-p.Stock)
}

// Surplus is stock beyond demand.
func Surplus(p catalog.Product) int {
	return max(0, p.Stock-p.Demand)
}

// TransferCandidates returns products holding surplus stock, largest surplus
// first.
func TransferCandidates(products []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, 0)
	for _, p := range products {
		if p.Stock > p.Demand {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b catalog.Product) int {
		return cmp.Compare(Surplus(b), Surplus(a))
	})
	return out
}

type WarehouseHealth string

const (
	WarehouseHealthy  WarehouseHealth = "healthy"
	WarehouseWarning  WarehouseHealth = "warning"
	WarehouseCritical WarehouseHealth = "critical"
)

type WarehouseStats struct {
	catalog.Warehouse
	ProductCount  int
	TotalStock    int
	TotalDemand   int
	FillRate      float64
	CriticalCount int
	Status        WarehouseHealth
}

// WarehouseAnalysis aggregates products per warehouse, in warehouse order.
// Here the fill rate is total stock over total demand, so surplus in one
// product offsets shortfall in another.
func WarehouseAnalysis(
	products []catalog.Product,
	warehouses []catalog.Warehouse,
) []WarehouseStats {
	byCode := make(map[string]*WarehouseStats, len(warehouses))
	out := make([]WarehouseStats, len(warehouses))
	for i, w := range warehouses {
		out[i] = WarehouseStats{Warehouse: w}
		byCode[w.Code] = &out[i]
	}
	for _, p := range products {
		stats, ok := byCode[p.Warehouse]
		if !ok {
			continue
		}
		stats.ProductCount++
		stats.TotalStock += p.Stock
		stats.TotalDemand += p.Demand
		if p.Stock < p.Demand {
			stats.CriticalCount++
		}
	}
	for i := range out {
		rate := 100.0
		if out[i].TotalDemand > 0 {
			rate = float64(out[i].TotalStock) / float64(out[i].TotalDemand) * 100
		}
		out[i].FillRate = Round1(rate)
		switch {
		case rate >= 100:
			out[i].Status = WarehouseHealthy
		case rate >= 80:
			out[i].Status = WarehouseWarning
		default:
			out[i].Status = WarehouseCritical
		}
	}
	return out
}
