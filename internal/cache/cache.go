package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/config"
)

// MaxProducts caps how many products a snapshot stores. Larger catalogs
// persist only the view state.
const MaxProducts = 20000

// Snapshot is the dashboard state restored on the next start.
type Snapshot struct {
	Products  []catalog.Product `json:"products,omitempty"`
	Search    string            `json:"search,omitempty"`
	Status    catalog.Status    `json:"status,omitempty"`
	Warehouse string            `json:"warehouse,omitempty"`
	Range     catalog.Range     `json:"range,omitempty"`
	Offset    float64           `json:"offset"`
	Cursor    int               `json:"cursor"`
	Timestamp time.Time         `json:"timestamp"`
}

// Filter rebuilds the catalog filter stored in the snapshot.
func (s Snapshot) Filter() catalog.Filter {
	return catalog.Filter{
		Search:    s.Search,
		Status:    s.Status,
		Warehouse: s.Warehouse,
	}
}

// Load loads the snapshot from the default cache location.
func Load() (*Snapshot, error) {
	path, err := config.CachePath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads a snapshot from path. A missing file yields nil.
func LoadFrom(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No cache exists yet, that's fine
			return nil, nil
		}
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if snap.Offset < 0 {
		snap.Offset = 0
	}
	if snap.Cursor < 0 {
		snap.Cursor = 0
	}
	return &snap, nil
}

// Save writes the snapshot to the default cache location.
func Save(snap Snapshot) error {
	path, err := config.CachePath()
	if err != nil {
		return err
	}
	return SaveTo(path, snap)
}

// SaveTo writes snap to path. Products are dropped when there are more
// than MaxProducts of them.
func SaveTo(path string, snap Snapshot) error {
	if len(snap.Products) > MaxProducts {
		snap.Products = nil
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Clear removes the default snapshot.
func Clear() error {
	path, err := config.CachePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
