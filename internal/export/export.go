// Package export writes the product list as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/insights"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or json)", value)
	}
}

var csvHeader = []string{"ID", "Name", "SKU", "Warehouse", "Stock", "Demand", "Status", "Fill Rate"}

// WriteCSV writes one row per product under a fixed header.
func WriteCSV(w io.Writer, products []catalog.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range products {
		record := []string{
			p.ID,
			p.Name,
			p.SKU,
			p.Warehouse,
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.Demand),
			p.Status().Label(),
			csvFillRate(p),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvFillRate(p catalog.Product) string {
	if p.Demand <= 0 {
		return "100%"
	}
	return fmt.Sprintf("%.1f%%", insights.FillRate(p))
}

type document struct {
	ExportDate      time.Time `json:"exportDate"`
	TotalProducts   int       `json:"totalProducts"`
	TotalWarehouses int       `json:"totalWarehouses"`
	Summary         summary   `json:"summary"`
	Products        []product `json:"products"`
}

type summary struct {
	TotalStock       int `json:"totalStock"`
	TotalDemand      int `json:"totalDemand"`
	CriticalProducts int `json:"criticalProducts"`
	HealthyProducts  int `json:"healthyProducts"`
}

type product struct {
	catalog.Product
	Status        string         `json:"status"`
	FillRate      float64        `json:"fillRate"`
	WarehouseInfo *warehouseInfo `json:"warehouseInfo"`
}

type warehouseInfo struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// WriteJSON writes an indented export document. Products whose warehouse is
// not in warehouses get a null warehouseInfo.
func WriteJSON(
	w io.Writer,
	products []catalog.Product,
	warehouses []catalog.Warehouse,
	now time.Time,
) error {
	byCode := make(map[string]catalog.Warehouse, len(warehouses))
	for _, wh := range warehouses {
		byCode[wh.Code] = wh
	}

	s := insights.Summarize(products)
	doc := document{
		ExportDate:      now.UTC(),
		TotalProducts:   len(products),
		TotalWarehouses: len(warehouses),
		Summary: summary{
			TotalStock:       s.TotalStock,
			TotalDemand:      s.TotalDemand,
			CriticalProducts: s.Critical,
			HealthyProducts:  s.Healthy,
		},
		Products: make([]product, 0, len(products)),
	}
	for _, p := range products {
		out := product{
			Product:  p,
			Status:   p.Status().Label(),
			FillRate: insights.Round1(insights.FillRate(p)),
		}
		if wh, ok := byCode[p.Warehouse]; ok {
			out.WarehouseInfo = &warehouseInfo{Name: wh.Name, City: wh.City, Country: wh.Country}
		}
		doc.Products = append(doc.Products, out)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
