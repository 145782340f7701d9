package nbr8160

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCalculateSizing(t *testing.T) {
	table := DefaultSizing()

	tests := []struct {
		name     string
		load     float64
		dn       int
		slope    float64
		overflow bool
	}{
		{"zero load", 0, 0, 0, false},
		{"negative load", -5, 0, 0, false},
		{"smallest branch", 2, 40, 1, false},
		{"exact capacity", 3, 40, 1, false},
		{"next branch", 3.5, 50, 1, false},
		{"DN 75", 20, 75, 1, false},
		{"DN 100 at 1%", 180, 100, 1, false},
		{"DN 100 is 1% only", 181, 150, 1, false},
		{"DN 150 at 2%", 701, 150, 2, false},
		{"DN 150 at 4%", 841, 150, 4, false},
		{"DN 200 at 1%", 1001, 200, 1, false},
		{"largest at 4%", 12000, 400, 4, false},
		{"overflow", 12001, 400, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSizing(tt.load, table)
			assert.Equal(t, tt.dn, got.DN)
			assert.Equal(t, tt.overflow, got.Overflow)
			if !tt.overflow {
				assert.Equal(t, tt.slope, got.Slope)
			}
		})
	}
}

func TestCalculateSizingLabels(t *testing.T) {
	table := DefaultSizing()

	over := CalculateSizing(1e6, table)
	assert.Equal(t, ">400", over.DNLabel())
	assert.Equal(t, "-", over.SlopeLabel())

	ok := CalculateSizing(150, table)
	assert.Equal(t, "100", ok.DNLabel())
	assert.Equal(t, "1%", ok.SlopeLabel())
	assert.True(t, ok.Required())

	none := CalculateSizing(0, table)
	assert.False(t, none.Required())
}

func TestCalculateSizingEmptyTable(t *testing.T) {
	assert.Equal(t, Sizing{}, CalculateSizing(10, nil))
	assert.Equal(t, Sizing{}, CalculateSizing(0, SizingTable{}))
}

func TestCalculateSizingSkipsMissingTiers(t *testing.T) {
	table := SizingTable{
		NewSizingRow(100, map[SlopeTier]float64{Slope2: 500}),
		NewSizingRow(150, map[SlopeTier]float64{Slope4: 900}),
	}

	// DN 100 has no 1% capacity and is below the threshold
	got := CalculateSizing(50, table)
	assert.Equal(t, 150, got.DN)
	assert.Equal(t, 4.0, got.Slope)
}

func TestCalculateSizingIgnoresHalfPercent(t *testing.T) {
	table := SizingTable{
		NewSizingRow(200, map[SlopeTier]float64{Slope0_5: 5000, Slope1: 100}),
	}
	got := CalculateSizing(200, table)
	assert.True(t, got.Overflow)
}

func TestSizingProperties(t *testing.T) {
	table := DefaultSizing()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("larger load never gets a smaller diameter", prop.ForAll(
		func(a, b float64) bool {
			lo, hi := math.Min(a, b), math.Max(a, b)
			return CalculateSizing(hi, table).DN >= CalculateSizing(lo, table).DN
		},
		gen.Float64Range(-10, 15000),
		gen.Float64Range(-10, 15000),
	))

	properties.Property("recommended capacity covers the load", prop.ForAll(
		func(load float64) bool {
			s := CalculateSizing(load, table)
			if s.Overflow || !s.Required() {
				return true
			}
			for _, row := range table {
				if row.DN != s.DN {
					continue
				}
				for _, tier := range SlopeTiers {
					if tier.Percent() == s.Slope {
						c, ok := row.Capacity(tier)
						return ok && c >= load
					}
				}
			}
			return false
		},
		gen.Float64Range(0.01, 12000),
	))

	properties.Property("overflow only beyond the largest capacity", prop.ForAll(
		func(load float64) bool {
			return CalculateSizing(load, table).Overflow == (load > 12000)
		},
		gen.Float64Range(0.01, 20000),
	))

	properties.TestingRun(t)
}
