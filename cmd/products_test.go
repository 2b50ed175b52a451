package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom-dev/stockroom/internal/catalog"
)

func TestFilterFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   filterFlags
		want    catalog.Filter
		wantErr bool
	}{
		{
			name:  "empty",
			flags: filterFlags{},
			want:  catalog.Filter{Status: catalog.StatusAll},
		},
		{
			name:  "all fields",
			flags: filterFlags{search: "bolt", status: "Critical", warehouse: "BER"},
			want:  catalog.Filter{Search: "bolt", Status: catalog.StatusCritical, Warehouse: "BER"},
		},
		{
			name:    "bad status",
			flags:   filterFlags{status: "sold-out"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.filter()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"products", "export", "report", "adjust", "history", "theme-preview"} {
		assert.True(t, names[name], name)
	}
}
