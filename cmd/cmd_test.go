package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gouhc/internal/config"
	"github.com/alexiusacademia/gouhc/internal/export"
	"github.com/alexiusacademia/gouhc/internal/logging"
	"github.com/alexiusacademia/gouhc/internal/nbr8160"
	"github.com/alexiusacademia/gouhc/internal/pipes"
	"github.com/alexiusacademia/gouhc/internal/report"
)

const houseModel = "../internal/bim/testdata/house.yaml"

func useDefaults(t *testing.T) {
	t.Helper()
	cfg = config.DefaultConfig()
	logger = logging.NewDiscardLogger()
	appliancesPath, sizingPath = "", ""
	t.Cleanup(func() { appliancesPath, sizingPath = "", "" })
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "flag", firstNonEmpty("flag", "config"))
	assert.Equal(t, "config", firstNonEmpty("", "config"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}

func TestLoadTablesDefaults(t *testing.T) {
	useDefaults(t)
	tables, err := loadTables()
	require.NoError(t, err)
	assert.Equal(t, nbr8160.DefaultTables(), tables)
}

func TestLoadTablesOverrides(t *testing.T) {
	useDefaults(t)
	dir := t.TempDir()
	sizing := filepath.Join(dir, "sizing.csv")
	require.NoError(t, os.WriteFile(sizing, []byte("dn,slope_1_0\n100,50\n"), 0644))

	cfg.Tables.Sizing = sizing
	appliancesPath = filepath.Join(dir, "missing.csv")

	tables, err := loadTables()
	require.NoError(t, err)
	assert.Empty(t, tables.Appliances)
	require.Len(t, tables.Sizing, 1)
	assert.Equal(t, 100, tables.Sizing[0].DN)
}

func TestLoadTablesMissingSizingDegrades(t *testing.T) {
	useDefaults(t)
	sizingPath = filepath.Join(t.TempDir(), "missing.csv")

	tables, err := loadTables()
	require.NoError(t, err)
	assert.Empty(t, tables.Sizing)
	assert.Equal(t, nbr8160.Sizing{}, nbr8160.CalculateSizing(8, tables.Sizing))
}

func TestLoadTablesEmptySizingDegrades(t *testing.T) {
	useDefaults(t)
	sizingPath = filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(sizingPath, nil, 0644))

	tables, err := loadTables()
	require.NoError(t, err)
	assert.Empty(t, tables.Sizing)
}

func TestLoadTablesInvalidDNFails(t *testing.T) {
	useDefaults(t)
	sizingPath = filepath.Join(t.TempDir(), "sizing.csv")
	require.NoError(t, os.WriteFile(sizingPath, []byte("dn,slope_1_0\nfifty,6\n"), 0644))

	_, err := loadTables()
	var tableErr *nbr8160.TableError
	require.ErrorAs(t, err, &tableErr)
	assert.Equal(t, 2, tableErr.Line)
}

func TestWritePipesPortuguese(t *testing.T) {
	dn := 100.0
	list := []pipes.Pipe{{ID: "P", Name: "TQ 01", DN: &dn, Material: "PVC", Length: 2}}

	tests := []struct {
		lang    string
		headers []string
	}{
		{report.LangEnglish, []string{"PIPE RUNS", "Material", "Length (m)", "Design slope", "Real slope", "1 pipes"}},
		{report.LangPortuguese, []string{"TUBULAÇÕES", "Comprimento (m)", "Declividade de projeto", "Declividade real", "1 tubulações"}},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writePipes(&buf, list, "IFC4", report.NewPrinter(tt.lang)))
			for _, h := range tt.headers {
				assert.Contains(t, buf.String(), h)
			}
			assert.Contains(t, buf.String(), "TQ 01")
		})
	}
}

func TestSizeStoresRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	rootCmd.SetArgs([]string{"size", "-m", houseModel, "--format", "json", "--sqlite", db, "-q"})
	require.NoError(t, rootCmd.Execute())

	store, err := export.OpenStore(db, logging.NewDiscardLogger())
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, houseModel, runs[0].Model)
	assert.Positive(t, runs[0].Nodes)
}

func TestSizeRejectsUnknownFormat(t *testing.T) {
	rootCmd.SetArgs([]string{"size", "-m", houseModel, "--format", "xml", "--sqlite", "", "-q"})
	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "unknown report format")
}

func TestDNCommandWithMissingSizing(t *testing.T) {
	rootCmd.SetArgs([]string{"dn", "--uhc", "8", "--sizing", filepath.Join(t.TempDir(), "missing.csv"), "-q"})
	assert.NoError(t, rootCmd.Execute())
	sizingPath = ""
}

func TestDNCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"dn", "--uhc", "8", "-q"})
	assert.NoError(t, rootCmd.Execute())
}
