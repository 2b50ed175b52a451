package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/config"
	"github.com/stockroom-dev/stockroom/internal/insights"
	"github.com/stockroom-dev/stockroom/internal/tui"
)

const (
	defaultReportWidth = 80
	maxReportWidth     = 120
)

var (
	reportRange string
	reportRaw   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the inventory insights report",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportRange, "range", "", "KPI range: 7d, 14d or 30d (default: ui.kpi_range)")
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "print markdown without rendering")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}
	r := cfg.UI.WithDefaults().Range()
	if reportRange != "" {
		if r, err = catalog.ParseRange(reportRange); err != nil {
			return err
		}
	}

	c, j, err := openCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	in := insights.ReportInput{Range: r, Now: time.Now()}
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		products, err := c.Products(ctx, catalog.Filter{})
		in.Products = products
		return err
	})
	g.Go(func() error {
		warehouses, err := c.Warehouses(ctx)
		in.Warehouses = warehouses
		return err
	})
	g.Go(func() error {
		kpis, err := c.KPIs(ctx, r)
		in.KPIs = kpis
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("unable to load inventory: %w", err)
	}

	markdown := insights.Report(in)
	out := cmd.OutOrStdout()
	if reportRaw || !term.IsTerminal(int(os.Stdout.Fd())) {
		_, err := fmt.Fprint(out, markdown)
		return err
	}

	theme, err := config.ResolveTheme(cfg.Theme)
	if err != nil {
		return fmt.Errorf("unable to resolve theme: %w", err)
	}
	renderer, err := tui.NewMarkdownRenderer(theme, reportWidth())
	if err != nil {
		return fmt.Errorf("unable to create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return fmt.Errorf("unable to render report: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

func reportWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultReportWidth
	}
	return min(width, maxReportWidth)
}
