package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/pkg/browser"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/log"
)

const baseName = "inventory-data"

// Dir returns the default export directory, creating it if needed.
func Dir() (string, error) {
	path, err := xdg.DataFile(filepath.Join("stockroom", "exports", baseName))
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// FileName is inventory-data-<timestamp>.<format>.
func FileName(format Format, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", baseName, now.Format("20060102-150405"), format)
}

// ToFile writes an export into dir and returns the file path.
func ToFile(
	dir string,
	format Format,
	products []catalog.Product,
	warehouses []catalog.Warehouse,
	now time.Time,
) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, FileName(format, now))
	if err := WriteFile(path, format, products, warehouses, now); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile writes an export to path, replacing any existing file.
func WriteFile(
	path string,
	format Format,
	products []catalog.Product,
	warehouses []catalog.Warehouse,
	now time.Time,
) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create export: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	w := bufio.NewWriter(f)
	switch format {
	case FormatCSV:
		err = WriteCSV(w, products)
	case FormatJSON:
		err = WriteJSON(w, products, warehouses, now)
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	log.Printf("export wrote path=%s format=%s products=%d", path, format, len(products))
	return nil
}

// Open hands the file to the system viewer.
func Open(path string) error {
	return browser.OpenFile(path)
}
