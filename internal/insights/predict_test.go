package insights

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom-dev/stockroom/internal/catalog"
)

func TestDaysUntilStockout(t *testing.T) {
	assert.Equal(t, 7, DaysUntilStockout(product("1", "A", 7, 30)))
	assert.Equal(t, 3, DaysUntilStockout(product("2", "A", 10, 90)))
	assert.Equal(t, 0, DaysUntilStockout(product("3", "A", 0, 30)))
	assert.Equal(t, NoStockout, DaysUntilStockout(product("4", "A", 50, 0)))
}

func TestPredict_Tiers(t *testing.T) {
	// Demand of 30 a month is one unit a day, so stock equals days left.
	tests := []struct {
		name           string
		stock          int
		demand         int
		wantKind       PredictionKind
		wantDays       int
		wantPriority   int
		wantConfidence float64
		wantAction     string
	}{
		{
			name: "one day left", stock: 1, demand: 30,
			wantKind: PredictionCritical, wantDays: 1, wantPriority: 9, wantConfidence: 95,
			wantAction: "Order 30 units immediately",
		},
		{
			name: "seven days left", stock: 7, demand: 30,
			wantKind: PredictionCritical, wantDays: 7, wantPriority: 3, wantConfidence: 70,
			wantAction: "Order 30 units immediately",
		},
		{
			name: "eight days left", stock: 8, demand: 30,
			wantKind: PredictionWarning, wantDays: 8, wantPriority: 5, wantConfidence: 72.86,
			wantAction: "Plan reorder of 45 units",
		},
		{
			name: "fourteen days left", stock: 14, demand: 30,
			wantKind: PredictionWarning, wantDays: 14, wantPriority: 5, wantConfidence: 60,
			wantAction: "Plan reorder of 45 units",
		},
		{
			name: "odd demand rounds the reorder up", stock: 10, demand: 31,
			wantKind: PredictionWarning, wantDays: 9, wantPriority: 5, wantConfidence: 70.71,
			wantAction: "Plan reorder of 47 units",
		},
		{name: "fifteen days left", stock: 15, demand: 30},
		{name: "already out of stock", stock: 0, demand: 30},
		{name: "exactly twice demand", stock: 60, demand: 30},
		{
			name: "more than twice demand", stock: 61, demand: 30,
			wantKind: PredictionOpportunity, wantDays: NoStockout, wantPriority: 2, wantConfidence: 90,
			wantAction: "Redistribute 31 units to high-demand locations",
		},
		{
			name: "zero demand with stock", stock: 5, demand: 0,
			wantKind: PredictionOpportunity, wantDays: NoStockout, wantPriority: 2, wantConfidence: 90,
			wantAction: "Redistribute 5 units to high-demand locations",
		},
		{name: "zero demand and no stock", stock: 0, demand: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Predict([]catalog.Product{product("1", "A", tt.stock, tt.demand)})
			if tt.wantKind == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantKind, got[0].Kind)
			assert.Equal(t, tt.wantDays, got[0].DaysUntilStockout)
			assert.Equal(t, tt.wantPriority, got[0].Priority)
			assert.InDelta(t, tt.wantConfidence, got[0].Confidence, 1e-9)
			assert.Equal(t, tt.wantAction, got[0].Action)
		})
	}
}

func TestPredict_OpportunityConfidenceFollowsWarehouse(t *testing.T) {
	got := Predict([]catalog.Product{
		product("1", "A", 100, 10),
		product("2", "A", 0, 30),
	})
	require.Len(t, got, 1)
	assert.Equal(t, PredictionOpportunity, got[0].Kind)
	assert.Equal(t, "Free up $900 in capital", got[0].Impact)
	// Half of warehouse A is at risk.
	assert.InDelta(t, 82.5, got[0].Confidence, 1e-9)
}

func TestPredict_OrderAndLimit(t *testing.T) {
	products := []catalog.Product{
		product("opp", "A", 500, 10),
		product("warn", "A", 10, 30),
	}
	for i := 1; i <= 7; i++ {
		products = append(products, product(fmt.Sprintf("crit-%d", i), "A", i, 30))
	}

	got := Predict(products)
	require.Len(t, got, PredictionLimit)
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		assert.True(t,
			prev.Priority > cur.Priority ||
				(prev.Priority == cur.Priority && prev.Confidence >= cur.Confidence),
			"%s before %s", prev.Product.ID, cur.Product.ID,
		)
	}
	assert.Equal(t, "crit-1", got[0].Product.ID)
	// crit-5 shares priority 5 with the warning but is more confident.
	assert.Equal(t, "crit-5", got[4].Product.ID)
	assert.Equal(t, "warn", got[5].Product.ID)
	for _, p := range got {
		assert.NotEqual(t, "opp", p.Product.ID)
	}
}

func TestAtRisk(t *testing.T) {
	assert.Equal(t, 2, AtRisk([]catalog.Product{
		product("1", "A", 6, 30),
		product("2", "A", 0, 30),
		product("3", "A", 7, 30),
		product("4", "A", 10, 0),
	}))
}
