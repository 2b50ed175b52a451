package catalog

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// SeedWarehouses is the default warehouse set.
func SeedWarehouses() []Warehouse {
	return []Warehouse{
		{Code: "BLR-A", Name: "Bangalore Alpha", City: "Bangalore", Country: "India"},
		{Code: "PNQ-C", Name: "Pune Central", City: "Pune", Country: "India"},
		{Code: "DEL-B", Name: "Delhi Beta", City: "New Delhi", Country: "India"},
		{Code: "MUM-D", Name: "Mumbai Delta", City: "Mumbai", Country: "India"},
	}
}

// SeedProducts is the default product set.
func SeedProducts() []Product {
	return []Product{
		{ID: "P-1001", Name: "12mm Hex Bolt", SKU: "HEX-12-100", Warehouse: "BLR-A", Stock: 180, Demand: 120},
		{ID: "P-1002", Name: "Steel Washer", SKU: "WSR-08-500", Warehouse: "BLR-A", Stock: 50, Demand: 80},
		{ID: "P-1003", Name: "M8 Nut", SKU: "NUT-08-200", Warehouse: "PNQ-C", Stock: 80, Demand: 80},
		{ID: "P-1004", Name: "Bearing 608ZZ", SKU: "BRG-608-50", Warehouse: "DEL-B", Stock: 24, Demand: 120},
		{ID: "P-1005", Name: "Stainless Steel Bolt", SKU: "SSB-10-75", Warehouse: "BLR-A", Stock: 200, Demand: 150},
		{ID: "P-1006", Name: "Rubber Gasket", SKU: "RGS-20-100", Warehouse: "MUM-D", Stock: 45, Demand: 60},
		{ID: "P-1007", Name: "Aluminum Rod", SKU: "ALR-16-200", Warehouse: "PNQ-C", Stock: 90, Demand: 90},
		{ID: "P-1008", Name: "Carbon Steel Pipe", SKU: "CSP-25-150", Warehouse: "DEL-B", Stock: 30, Demand: 100},
		{ID: "P-1009", Name: "Brass Fitting", SKU: "BFT-12-80", Warehouse: "BLR-A", Stock: 120, Demand: 80},
		{ID: "P-1010", Name: "PVC Connector", SKU: "PVC-15-120", Warehouse: "MUM-D", Stock: 75, Demand: 75},
		{ID: "P-1011", Name: "Steel Wire", SKU: "SWR-08-300", Warehouse: "PNQ-C", Stock: 40, Demand: 160},
		{ID: "P-1012", Name: "Copper Tube", SKU: "CPT-20-180", Warehouse: "DEL-B", Stock: 85, Demand: 70},
	}
}

const syntheticFirstID = 2001

var (
	syntheticMaterials = []string{
		"Steel", "Stainless", "Brass", "Copper", "Aluminum", "Nylon", "Carbon", "Zinc", "Titanium",
	}
	syntheticParts = []struct {
		name string
		code string
	}{
		{"Hex Bolt", "HEX"},
		{"Washer", "WSR"},
		{"Lock Nut", "NUT"},
		{"Bearing", "BRG"},
		{"Gasket", "GSK"},
		{"Rod", "ROD"},
		{"Pipe", "PIP"},
		{"Fitting", "FIT"},
		{"Connector", "CON"},
		{"Spring", "SPR"},
		{"Bracket", "BRK"},
		{"Rivet", "RVT"},
	}
	syntheticSizes = []int{4, 6, 8, 10, 12, 16, 20, 25}
)

// Generate returns n deterministic synthetic products spread over the given
// warehouses. IDs continue after the seed set, starting at P-2001.
func Generate(n int, seed uint64, warehouses []Warehouse) []Product {
	if n <= 0 || len(warehouses) == 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	products := make([]Product, n)
	for i := range products {
		material := syntheticMaterials[rng.IntN(len(syntheticMaterials))]
		part := syntheticParts[rng.IntN(len(syntheticParts))]
		size := syntheticSizes[rng.IntN(len(syntheticSizes))]
		demand := 10 + rng.IntN(291)
		stock := max(0, demand+rng.IntN(241)-140)

		products[i] = Product{
			ID:        fmt.Sprintf("P-%d", syntheticFirstID+i),
			Name:      fmt.Sprintf("%dmm %s %s", size, material, part.name),
			SKU:       fmt.Sprintf("%s-%02d-%s%d", part.code, size, strings.ToUpper(material[:2]), i%1000),
			Warehouse: warehouses[rng.IntN(len(warehouses))].Code,
			Stock:     stock,
			Demand:    demand,
		}
	}
	return products
}
