package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockroom-dev/stockroom/internal/config"
	"github.com/stockroom-dev/stockroom/internal/export"
)

var (
	exportFilter filterFlags
	exportFormat string
	exportOut    string
	exportOpen   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export products to CSV or JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportFilter.register(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", string(export.FormatCSV), "csv or json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default: the data export directory)")
	exportCmd.Flags().BoolVar(&exportOpen, "open", false, "open the file when done")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	filter, err := exportFilter.filter()
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
	warehouses, err := c.Warehouses(cmd.Context())
	if err != nil {
		return fmt.Errorf("unable to list warehouses: %w", err)
	}

	now := time.Now()
	path := exportOut
	if path == "" {
		dir, err := export.Dir()
		if err != nil {
			return fmt.Errorf("unable to resolve export directory: %w", err)
		}
		path, err = export.ToFile(dir, format, products, warehouses, now)
		if err != nil {
			return err
		}
	} else if err := export.WriteFile(path, format, products, warehouses, now); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d products to %s\n", len(products), path)
	if exportOpen {
		if err := export.Open(path); err != nil {
			return fmt.Errorf("unable to open export: %w", err)
		}
	}
	return nil
}
