package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/config"
	"github.com/stockroom-dev/stockroom/internal/export"
	"github.com/stockroom-dev/stockroom/internal/insights"
)

type filterFlags struct {
	search    string
	status    string
	warehouse string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "match name, SKU or ID")
	cmd.Flags().StringVar(&f.status, "status", "", "healthy, low or critical")
	cmd.Flags().StringVar(&f.warehouse, "warehouse", "", "warehouse code")
}

func (f *filterFlags) filter() (catalog.Filter, error) {
	status, err := catalog.ParseStatus(f.status)
	if err != nil {
		return catalog.Filter{}, err
	}
	return catalog.Filter{
		Search:    f.search,
		Status:    status,
		Warehouse: f.warehouse,
	}, nil
}

var (
	productsFilter filterFlags
	productsJSON   bool
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products",
	Long:  "Query the catalog and print matching products as a table or JSON.",
	Args:  cobra.NoArgs,
	RunE:  runProducts,
}

func init() {
	productsFilter.register(productsCmd)
	productsCmd.Flags().BoolVar(&productsJSON, "json", false, "print the export JSON document")
	rootCmd.AddCommand(productsCmd)
}

func runProducts(cmd *cobra.Command, args []string) error {
	filter, err := productsFilter.filter()
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}
	c, j, err := openCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	products, err := c.Products(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("unable to query products: %w", err)
	}

	out := cmd.OutOrStdout()
	if productsJSON {
		warehouses, err := c.Warehouses(cmd.Context())
		if err != nil {
			return fmt.Errorf("unable to list warehouses: %w", err)
		}
		return export.WriteJSON(out, products, warehouses, time.Now())
	}
	if len(products) == 0 {
		fmt.Fprintln(out, "No products.")
		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "id\tname\tsku\twarehouse\tstock\tdemand\tfill\tstatus")
	for _, p := range products {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\t%.1f%%\t%s\n",
			p.ID,
			p.Name,
			p.SKU,
			p.Warehouse,
			humanize.Comma(int64(p.Stock)),
			humanize.Comma(int64(p.Demand)),
			insights.FillRate(p),
			p.Status().Label(),
		)
	}
	return writer.Flush()
}
