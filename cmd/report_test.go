package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withTempHome points the XDG directories at a fresh temp dir and writes
// config.toml there.
func withTempHome(t *testing.T, config string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	dir := filepath.Join(home, "config", "stockroom")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(config), 0o644))
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		reportRaw = false
		reportRange = ""
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReportRaw(t *testing.T) {
	withTempHome(t, "[catalog]\njournal = false\n")

	out, err := runRoot(t, "report", "--raw", "--range", "14d")
	require.NoError(t, err)

	for _, heading := range []string{
		"# Inventory insights",
		"## Summary",
		"## Predictions",
		"## Reorder suggestions",
		"## Transfer candidates",
		"## Warehouses",
		"## Trend (14d)",
	} {
		assert.Contains(t, out, heading)
	}
	assert.Contains(t, out, "P-1004")
}

func TestReportBadRange(t *testing.T) {
	withTempHome(t, "[catalog]\njournal = false\n")

	_, err := runRoot(t, "report", "--raw", "--range", "3d")
	require.Error(t, err)
}
