package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/stockroom-dev/stockroom/internal/config"
	"github.com/stockroom-dev/stockroom/internal/journal"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled inventory changes",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of entries to show, 0 for all")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyLimit < 0 {
		return errors.New("--limit must be 0 or more")
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}
	if !cfg.Catalog.WithDefaults().JournalEnabled() {
		fmt.Fprintln(cmd.OutOrStdout(), "Journal is disabled.")
		return nil
	}

	j, err := journal.OpenDefault(cmd.Context())
	if err != nil {
		return fmt.Errorf("unable to open journal: %w", err)
	}
	defer j.Close()

	entries, err := j.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("unable to list journal: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes recorded.")
		return nil
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "when\tkind\tproduct\tchange\tat")
	fmt.Fprintln(writer, "----\t----\t-------\t------\t--")
	for _, e := range entries {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			humanize.Time(e.CreatedAt),
			e.Kind,
			e.ProductID,
			e.Summary(),
			e.CreatedAt.Local().Format(time.RFC3339),
		)
	}
	return writer.Flush()
}
