package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/stockroom-dev/stockroom/internal/catalog"
)

const reportListLimit = 10

// ReportInput is everything the markdown report is built from.
type ReportInput struct {
	Products   []catalog.Product
	Warehouses []catalog.Warehouse
	KPIs       []catalog.KPI
	Range      catalog.Range
	Now        time.Time
}

// Report renders an insights report as markdown.
func Report(in ReportInput) string {
	var b strings.Builder
	summary := Summarize(in.Products)

	b.WriteString("# Inventory insights\n\n")
	if !in.Now.IsZero() {
		fmt.Fprintf(&b, "_Generated %s_\n\n", in.Now.Format("2006-01-02 15:04"))
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Products | %s |\n", humanize.Comma(int64(summary.Products)))
	fmt.Fprintf(&b, "| Total stock | %s |\n", humanize.Comma(int64(summary.TotalStock)))
	fmt.Fprintf(&b, "| Total demand | %s |\n", humanize.Comma(int64(summary.TotalDemand)))
	fmt.Fprintf(&b, "| Fill rate | %.1f%% |\n", summary.FillRate)
	fmt.Fprintf(
		&b,
		"| Healthy / Low / Critical | %d / %d / %d |\n\n",
		summary.Healthy,
		summary.Low,
		summary.Critical,
	)

	if trend := kpiTrend(in.KPIs, in.Range); trend != "" {
		b.WriteString(trend)
	}

	writePredictions(&b, in.Products)

	b.WriteString("## Reorder suggestions\n\n")
	reorder := ReorderSuggestions(in.Products)
	if len(reorder) == 0 {
		b.WriteString("Nothing is below demand.\n\n")
	} else {
		b.WriteString("| Product | Warehouse | Stock | Demand | Short | Fill |\n")
		b.WriteString("|---|---|---:|---:|---:|---:|\n")
		for _, p := range reorder[:min(len(reorder), reportListLimit)] {
			fmt.Fprintf(
				&b,
				"| %s %s | %s | %s | %s | %s | %.1f%% |\n",
				p.ID,
				escapeCell(p.Name),
				p.Warehouse,
				humanize.Comma(int64(p.Stock)),
				humanize.Comma(int64(p.Demand)),
				humanize.Comma(int64(Shortfall(p))),
				FillRate(p),
			)
		}
		writeMore(&b, len(reorder))
	}

	b.WriteString("## Transfer candidates\n\n")
	transfer := TransferCandidates(in.Products)
	if len(transfer) == 0 {
		b.WriteString("No product holds surplus stock.\n\n")
	} else {
		b.WriteString("| Product | Warehouse | Surplus |\n|---|---|---:|\n")
		for _, p := range transfer[:min(len(transfer), reportListLimit)] {
			fmt.Fprintf(
				&b,
				"| %s %s | %s | %s |\n",
				p.ID,
				escapeCell(p.Name),
				p.Warehouse,
				humanize.Comma(int64(Surplus(p))),
			)
		}
		writeMore(&b, len(transfer))
	}

	if len(in.Warehouses) > 0 {
		b.WriteString("## Warehouses\n\n")
		b.WriteString("| Warehouse | Products | Stock | Demand | Fill | Critical | Status |\n")
		b.WriteString("|---|---:|---:|---:|---:|---:|---|\n")
		for _, w := range WarehouseAnalysis(in.Products, in.Warehouses) {
			fmt.Fprintf(
				&b,
				"| %s (%s) | %d | %s | %s | %.1f%% | %d | %s |\n",
				escapeCell(w.Name),
				w.Code,
				w.ProductCount,
				humanize.Comma(int64(w.TotalStock)),
				humanize.Comma(int64(w.TotalDemand)),
				w.FillRate,
				w.CriticalCount,
				w.Status,
			)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writePredictions(b *strings.Builder, products []catalog.Product) {
	b.WriteString("## Predictions\n\n")
	predictions := Predict(products)
	if len(predictions) == 0 {
		b.WriteString("No stockouts expected in the next two weeks.\n\n")
		return
	}
	if n := AtRisk(products); n > 0 {
		fmt.Fprintf(b, "**%s** products stock out within a week.\n\n", humanize.Comma(int64(n)))
	}
	b.WriteString("| Kind | Product | Stockout | Action | Impact | Confidence |\n")
	b.WriteString("|---|---|---:|---|---|---:|\n")
	for _, pr := range predictions {
		stockout := "-"
		if pr.DaysUntilStockout != NoStockout {
			stockout = fmt.Sprintf("%dd", pr.DaysUntilStockout)
		}
		fmt.Fprintf(
			b,
			"| %s | %s %s | %s | %s | %s | %.0f%% |\n",
			pr.Kind,
			pr.Product.ID,
			escapeCell(pr.Product.Name),
			stockout,
			pr.Action,
			pr.Impact,
			pr.Confidence,
		)
	}
	b.WriteString("\n")
}

func kpiTrend(kpis []catalog.KPI, r catalog.Range) string {
	if len(kpis) < 2 {
		return ""
	}
	first, last := kpis[0], kpis[len(kpis)-1]
	var b strings.Builder
	label := string(r)
	if label == "" {
		label = fmt.Sprintf("%dd", len(kpis))
	}
	fmt.Fprintf(&b, "## Trend (%s)\n\n", label)
	fmt.Fprintf(
		&b,
		"- Stock %s → %s (%s)\n",
		humanize.Comma(int64(first.Stock)),
		humanize.Comma(int64(last.Stock)),
		signed(last.Stock-first.Stock),
	)
	fmt.Fprintf(
		&b,
		"- Demand %s → %s (%s)\n\n",
		humanize.Comma(int64(first.Demand)),
		humanize.Comma(int64(last.Demand)),
		signed(last.Demand-first.Demand),
	)
	return b.String()
}

func signed(v int) string {
	if v > 0 {
		return "+" + humanize.Comma(int64(v))
	}
	return humanize.Comma(int64(v))
}

func writeMore(b *strings.Builder, total int) {
	if total > reportListLimit {
		fmt.Fprintf(b, "\n_and %s more_\n", humanize.Comma(int64(total-reportListLimit)))
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
