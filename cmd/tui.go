package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stockroom-dev/stockroom/internal/cache"
	"github.com/stockroom-dev/stockroom/internal/config"
	"github.com/stockroom-dev/stockroom/internal/log"
	"github.com/stockroom-dev/stockroom/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}

	c, j, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	theme, err := config.ResolveTheme(cfg.Theme)
	if err != nil {
		return fmt.Errorf("unable to resolve theme: %w", err)
	}

	snap, err := cache.Load()
	if err != nil {
		// A broken snapshot only costs the restored position.
		log.Printf("snapshot load failed err=%v", err)
		snap = nil
	}

	if err := tui.Run(ctx, tui.Options{
		Catalog:  c,
		Journal:  j,
		Theme:    theme,
		UI:       cfg.UI.WithDefaults(),
		Keys:     cfg.Keys,
		Snapshot: snap,
	}); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
