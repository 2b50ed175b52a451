package cmd

import (
	"context"
	"fmt"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/config"
	"github.com/stockroom-dev/stockroom/internal/journal"
)

// openCatalog builds the in-memory catalog from config and, when the journal
// is enabled, replays recorded mutations into it. The returned journal is nil
// when disabled; Close on a nil journal is a no-op.
func openCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, *journal.Journal, error) {
	catalogCfg := cfg.Catalog.WithDefaults()
	c := catalog.New(
		catalog.WithSynthetic(catalogCfg.SyntheticProducts),
		catalog.WithSeed(catalogCfg.Seed),
	)
	if !catalogCfg.JournalEnabled() {
		return c, nil, nil
	}

	j, err := journal.OpenDefault(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open journal: %w", err)
	}
	if _, err := j.Replay(ctx, c); err != nil {
		_ = j.Close()
		return nil, nil, fmt.Errorf("unable to replay journal: %w", err)
	}
	return c, j, nil
}
