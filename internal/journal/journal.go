// Package journal records catalog mutations in sqlite so they survive a
// restart of the in-process API.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/log"
)

const fileName = "journal.sqlite"

type Kind string

const (
	KindUpdateDemand  Kind = "update_demand"
	KindTransferStock Kind = "transfer_stock"
)

// Entry is one applied mutation.
type Entry struct {
	ID        string
	Kind      Kind
	ProductID string
	Demand    int
	From      string
	To        string
	Qty       int
	CreatedAt time.Time
}

// Summary is a one-line description of the entry.
func (e Entry) Summary() string {
	switch e.Kind {
	case KindUpdateDemand:
		return fmt.Sprintf("demand -> %d", e.Demand)
	case KindTransferStock:
		return fmt.Sprintf("%s -> %s (%d)", e.From, e.To, e.Qty)
	default:
		return string(e.Kind)
	}
}

// Mutator is the part of the catalog a journal replays into.
type Mutator interface {
	UpdateDemand(ctx context.Context, id string, demand int) (catalog.Product, error)
	TransferStock(ctx context.Context, id, from, to string, qty int) (catalog.Product, error)
}

type Journal struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// Path returns the default journal location.
func Path() (string, error) {
	return xdg.StateFile(filepath.Join("stockroom", fileName))
}

// OpenDefault opens the journal at Path.
func OpenDefault(ctx context.Context) (*Journal, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return Open(ctx, path)
}

// Open opens or creates a journal database at path.
func Open(ctx context.Context, path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS mutations (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			product_id TEXT NOT NULL,
			demand INTEGER NOT NULL DEFAULT 0,
			from_warehouse TEXT NOT NULL DEFAULT '',
			to_warehouse TEXT NOT NULL DEFAULT '',
			qty INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create journal schema: %w", err)
	}

	return &Journal{db: db, now: time.Now}, nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// RecordDemand journals a successful UpdateDemand.
func (j *Journal) RecordDemand(ctx context.Context, productID string, demand int) (Entry, error) {
	return j.Record(ctx, Entry{Kind: KindUpdateDemand, ProductID: productID, Demand: demand})
}

// RecordTransfer journals a successful TransferStock.
func (j *Journal) RecordTransfer(
	ctx context.Context,
	productID string,
	from string,
	to string,
	qty int,
) (Entry, error) {
	return j.Record(ctx, Entry{
		Kind:      KindTransferStock,
		ProductID: productID,
		From:      from,
		To:        to,
		Qty:       qty,
	})
}

// Record appends e, assigning an ID and timestamp when missing. A nil
// journal records nothing.
func (j *Journal) Record(ctx context.Context, e Entry) (Entry, error) {
	if j == nil || j.db == nil {
		return e, nil
	}
	if e.Kind != KindUpdateDemand && e.Kind != KindTransferStock {
		return Entry{}, fmt.Errorf("unknown journal kind %q", e.Kind)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = j.now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	j.mu.Lock()
	defer j.mu.Unlock()

	if _, err := j.db.ExecContext(ctx, `
		INSERT INTO mutations (id, kind, product_id, demand, from_warehouse, to_warehouse, qty, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID,
		string(e.Kind),
		e.ProductID,
		e.Demand,
		e.From,
		e.To,
		e.Qty,
		e.CreatedAt.UnixMilli(),
	); err != nil {
		return Entry{}, fmt.Errorf("failed to record %s: %w", e.Kind, err)
	}
	log.Printf("journal record id=%s kind=%s product=%s", e.ID, e.Kind, e.ProductID)
	return e, nil
}

// List returns up to limit entries, newest first. limit <= 0 means all.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	return j.query(ctx, "DESC", limit)
}

func (j *Journal) query(ctx context.Context, order string, limit int) ([]Entry, error) {
	if j == nil || j.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, kind, product_id, demand, from_warehouse, to_warehouse, qty, created_at
		FROM mutations ORDER BY seq `+order+` LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind string
		var createdAt int64
		if err := rows.Scan(
			&e.ID,
			&kind,
			&e.ProductID,
			&e.Demand,
			&e.From,
			&e.To,
			&e.Qty,
			&createdAt,
		); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplayResult counts what Replay did.
type ReplayResult struct {
	Applied int
	Skipped int
}

// Replay applies every entry to m in recording order. Entries the catalog
// rejects are logged and skipped.
func (j *Journal) Replay(ctx context.Context, m Mutator) (ReplayResult, error) {
	var result ReplayResult
	entries, err := j.query(ctx, "ASC", 0)
	if err != nil {
		return result, fmt.Errorf("failed to read journal: %w", err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		err := apply(ctx, m, e)
		switch {
		case err == nil:
			result.Applied++
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return result, err
		default:
			result.Skipped++
			log.Printf("journal replay skip id=%s kind=%s err=%v", e.ID, e.Kind, err)
		}
	}
	log.Printf("journal replay applied=%d skipped=%d", result.Applied, result.Skipped)
	return result, nil
}

func apply(ctx context.Context, m Mutator, e Entry) error {
	switch e.Kind {
	case KindUpdateDemand:
		_, err := m.UpdateDemand(ctx, e.ProductID, e.Demand)
		return err
	case KindTransferStock:
		_, err := m.TransferStock(ctx, e.ProductID, e.From, e.To, e.Qty)
		return err
	default:
		return fmt.Errorf("unknown journal kind %q", strings.TrimSpace(string(e.Kind)))
	}
}
