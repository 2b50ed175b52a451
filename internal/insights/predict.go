package insights

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/stockroom-dev/stockroom/internal/catalog"
)

const (
	// Demand is a monthly figure.
	demandPeriodDays = 30

	criticalHorizonDays = 7
	warningHorizonDays  = 14

	// PredictionLimit caps how many predictions Predict returns.
	PredictionLimit = 8

	// NoStockout marks a product whose stock is never used up.
	NoStockout = -1

	unitCapital = 10
)

type PredictionKind string

const (
	PredictionCritical    PredictionKind = "critical"
	PredictionWarning     PredictionKind = "warning"
	PredictionOpportunity PredictionKind = "opportunity"
)

// Prediction is a forward-looking recommendation for one product.
type Prediction struct {
	Product           catalog.Product
	Kind              PredictionKind
	Priority          int
	DaysUntilStockout int
	Action            string
	Impact            string
	// Confidence is in percent, rounded to two decimals.
	Confidence float64
}

// DaysUntilStockout is how many whole days the stock lasts at the current
// demand, or NoStockout when there is no demand.
func DaysUntilStockout(p catalog.Product) int {
	if p.Demand <= 0 {
		return NoStockout
	}
	return max(0, p.Stock) * demandPeriodDays / p.Demand
}

// atRisk reports whether stock covers less than a week of demand.
func atRisk(p catalog.Product) bool {
	return p.Demand > 0 && p.Stock*demandPeriodDays < p.Demand*criticalHorizonDays
}

// AtRisk counts products whose stock covers less than a week of demand.
func AtRisk(products []catalog.Product) int {
	n := 0
	for _, p := range products {
		if atRisk(p) {
			n++
		}
	}
	return n
}

// Predict classifies products by projected stockout and returns the most
// urgent, highest priority first and then by confidence:
//
//   - critical: stock runs out in 1 to 7 days
//   - warning: stock runs out in 8 to 14 days
//   - opportunity: stock is more than twice the demand
//
// Products already out of stock are left to ReorderSuggestions.
func Predict(products []catalog.Product) []Prediction {
	efficiency := warehouseEfficiency(products)

	out := make([]Prediction, 0)
	for _, p := range products {
		days := DaysUntilStockout(p)
		switch {
		case days > 0 && days <= criticalHorizonDays:
			out = append(out, Prediction{
				Product:           p,
				Kind:              PredictionCritical,
				Priority:          10 - days,
				DaysUntilStockout: days,
				Action:            fmt.Sprintf("Order %s units immediately", humanize.Comma(int64(p.Demand))),
				Impact: fmt.Sprintf(
					"Risk of %s unit sales loss",
					humanize.Comma(int64(math.Round(float64(p.Demand)*0.3))),
				),
				Confidence: min(95, float64(70+(criticalHorizonDays-days)*5)),
			})
		case days > criticalHorizonDays && days <= warningHorizonDays:
			// Closer stockouts are the more certain ones.
			confidence := 60 + float64(warningHorizonDays-days)*15/float64(warningHorizonDays-criticalHorizonDays)
			out = append(out, Prediction{
				Product:           p,
				Kind:              PredictionWarning,
				Priority:          5,
				DaysUntilStockout: days,
				Action: fmt.Sprintf(
					"Plan reorder of %s units",
					humanize.Comma(int64((p.Demand*3+1)/2)),
				),
				Impact:     fmt.Sprintf("Potential stockout risk in %d days", days),
				Confidence: round2(min(85, confidence)),
			})
		case p.Stock > p.Demand*2:
			excess := p.Stock - p.Demand
			out = append(out, Prediction{
				Product:           p,
				Kind:              PredictionOpportunity,
				Priority:          2,
				DaysUntilStockout: NoStockout,
				Action: fmt.Sprintf(
					"Redistribute %s units to high-demand locations",
					humanize.Comma(int64(excess)),
				),
				Impact:     fmt.Sprintf("Free up $%s in capital", humanize.Comma(int64(excess*unitCapital))),
				Confidence: round2(min(90, 75+efficiency[p.Warehouse]*15)),
			})
		}
	}

	slices.SortStableFunc(out, func(a, b Prediction) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	return out[:min(len(out), PredictionLimit)]
}

// warehouseEfficiency is the share of each warehouse's products that are not
// at risk, between 0 and 1.
func warehouseEfficiency(products []catalog.Product) map[string]float64 {
	total := make(map[string]int)
	risky := make(map[string]int)
	for _, p := range products {
		total[p.Warehouse]++
		if atRisk(p) {
			risky[p.Warehouse]++
		}
	}
	out := make(map[string]float64, len(total))
	for code, n := range total {
		out[code] = 1 - float64(risky[code])/float64(n)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
