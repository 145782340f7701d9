package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawASCIINetworkTree(t *testing.T) {
	fixture := &TreeNode{Label: "Bacia"}
	roots := []*TreeNode{{
		Label: "CI",
		Children: []*TreeNode{
			{Label: "TQ 01", Children: []*TreeNode{fixture}},
			{Label: "Bacia", Repeat: true},
		},
	}}

	got := DrawASCIINetworkTree("NETWORK", roots)
	want := `
  NETWORK
  ───────
  CI
  ├── TQ 01
  │   └── Bacia
  └── Bacia ↑
`
	assert.Equal(t, want, got)
}

func TestDrawASCIILoadBars(t *testing.T) {
	got := DrawASCIILoadBars("LOADS", []BarData{
		{Label: "TQ 01", Load: 20, Capacity: 40},
		{Label: "TQ 2", Load: 40},
	})
	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "TQ 01 │"+strings.Repeat("█", 20)+strings.Repeat("░", 20)+" 20.0", strings.TrimSpace(lines[3]))
	assert.Equal(t, "TQ 2  │"+strings.Repeat("█", 40)+" 40.0", strings.TrimSpace(lines[4]))

	assert.NotContains(t, DrawASCIILoadBars("EMPTY", nil), "│")
}

func TestExportLoadChart(t *testing.T) {
	dir := t.TempDir()
	data := ChartData{
		Title:  "Loads",
		XLabel: "Pipe",
		YLabel: "UHC",
		Bars:   []BarData{{Label: "TQ 01", Load: 6, Capacity: 6}, {Label: "TQ 02", Load: 2}},
	}

	for _, name := range []string{"chart.png", "out/chart.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, ExportLoadChart(data, path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	require.NoError(t, ExportLoadChart(data, filepath.Join(dir, "chart")))
	_, err := os.Stat(filepath.Join(dir, "chart.png"))
	assert.NoError(t, err)

	assert.Error(t, ExportLoadChart(ChartData{}, filepath.Join(dir, "empty.png")))
}

func TestExportLoadChartCapacityLegend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.svg")
	data := ChartData{
		Title:         "Cargas",
		YLabel:        "UHC acumulada",
		CapacityLabel: "capacidade",
		Bars:          []BarData{{Label: "TQ 01", Load: 6, Capacity: 6}},
	}
	require.NoError(t, ExportLoadChart(data, path))

	svg, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "capacidade")
	assert.NotContains(t, string(svg), ">capacity<")
}
