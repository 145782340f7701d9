package nbr8160

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	appliances := DefaultAppliances()
	assert.NotEmpty(t, appliances)

	sizing := DefaultSizing()
	require.NotEmpty(t, sizing)
	assert.Equal(t, 40, sizing[0].DN)
	assert.Equal(t, 400, sizing.Largest())

	for i := 1; i < len(sizing); i++ {
		assert.Less(t, sizing[i-1].DN, sizing[i].DN, "table must be ascending")
	}
}

func TestReadSizingSortsAndSkipsBadCells(t *testing.T) {
	csv := `dn,slope_0_5,slope_1_0,slope_2_0,slope_4_0
150,,700,n/a,1000
100,,180,,
`
	table, err := ReadSizing(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, 100, table[0].DN)

	_, ok := table[1].Capacity(Slope2)
	assert.False(t, ok, "non-numeric capacity means tier unavailable")
	c, ok := table[1].Capacity(Slope4)
	assert.True(t, ok)
	assert.Equal(t, 1000.0, c)
}

func TestReadSizingRejectsBadDN(t *testing.T) {
	_, err := ReadSizing(strings.NewReader("dn,slope_1_0\nabc,10\n"))
	var tableErr *TableError
	require.True(t, errors.As(err, &tableErr))
	assert.Equal(t, 2, tableErr.Line)
	assert.Equal(t, "dn", tableErr.Column)
}

func TestReadSizingEmpty(t *testing.T) {
	table, err := ReadSizing(strings.NewReader(""))
	require.Error(t, err, "missing dn column")
	assert.Nil(t, table)
}

func TestReadAppliances(t *testing.T) {
	csv := "appliance,detail,uhc\nBacia,,6\nChuveiro,coletivo,4\nRalo,,x\n,,3\n"
	rows, err := ReadAppliances(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ApplianceRow{Appliance: "Chuveiro", Detail: "coletivo", UHC: 4}, rows[1])
	assert.Equal(t, 0.0, rows[2].UHC)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sizing.csv")
	require.NoError(t, os.WriteFile(path, []byte("dn,slope_1_0\n100,180\n"), 0644))

	table, err := LoadSizingFile(path)
	require.NoError(t, err)
	assert.Len(t, table, 1)

	_, err = LoadAppliancesFile(filepath.Join(dir, "missing.csv"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMatchAppliance(t *testing.T) {
	table := []ApplianceRow{
		{Appliance: "chuveiro", UHC: 2},
		{Appliance: "chuveiro", Detail: "coletivo", UHC: 4},
		{Appliance: "pia", UHC: 3},
		{Appliance: "bacia sanitaria", UHC: 6},
	}

	tests := []struct {
		name        string
		elName      string
		objectType  string
		description string
		want        float64
		found       bool
	}{
		{"plain match", "Chuveiro 01", "", "", 2, true},
		{"detail wins on score", "Chuveiro", "Coletivo", "", 4, true},
		{"accents ignored", "Bacia Sanitária", "", "", 6, true},
		{"description used", "Equip-3", "", "pia inox", 3, true},
		{"no match", "Ralo", "", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok := MatchAppliance(table, tt.elName, tt.objectType, tt.description)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, row.UHC)
		})
	}
}

func TestMatchApplianceFirstWinsTies(t *testing.T) {
	table := []ApplianceRow{
		{Appliance: "tanque", UHC: 3},
		{Appliance: "tanque", UHC: 5},
	}
	row, ok := MatchAppliance(table, "Tanque", "", "")
	assert.True(t, ok)
	assert.Equal(t, 3.0, row.UHC)
}

func TestCapacityAt(t *testing.T) {
	table := DefaultSizing()

	c, ok := table.CapacityAt(150, 2)
	assert.True(t, ok)
	assert.Equal(t, 840.0, c)

	_, ok = table.CapacityAt(100, 0.5)
	assert.False(t, ok)
	_, ok = table.CapacityAt(125, 1)
	assert.False(t, ok)
}
