package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stockroom-dev/stockroom/internal/config"
	"github.com/stockroom-dev/stockroom/internal/tui"
)

var adjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Adjust product demand or transfer stock",
	Long:  "Launch interactive forms to update demand or move a product between warehouses.",
	Args:  cobra.NoArgs,
	RunE:  runAdjust,
}

func init() {
	rootCmd.AddCommand(adjustCmd)
}

func runAdjust(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}
	c, j, err := openCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	return tui.RunAdjust(cmd.Context(), c, j)
}
