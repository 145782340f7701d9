package nbr8160

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cast"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//go:embed data/appliances.csv
var defaultAppliancesCSV []byte

//go:embed data/sizing.csv
var defaultSizingCSV []byte

// ApplianceRow is one line of the fixture load table (Table 2)
type ApplianceRow struct {
	Appliance string  // fixture name, matched as a substring
	Detail    string  // optional qualifier that must also match
	UHC       float64 // load in Units of Hydraulic Consumption
}

// SizingRow is the capacity (UHC) of one diameter at each slope tier
type SizingRow struct {
	DN       int // nominal diameter (mm)
	capacity map[SlopeTier]float64
}

// NewSizingRow builds a row; tiers without a capacity are simply omitted
func NewSizingRow(dn int, capacity map[SlopeTier]float64) SizingRow {
	c := make(map[SlopeTier]float64, len(capacity))
	for k, v := range capacity {
		c[k] = v
	}
	return SizingRow{DN: dn, capacity: c}
}

// Capacity returns the maximum accumulated load at a slope tier
func (r SizingRow) Capacity(t SlopeTier) (float64, bool) {
	v, ok := r.capacity[t]
	return v, ok
}

// SizingTable is a list of sizing rows sorted ascending by DN
type SizingTable []SizingRow

// Largest returns the largest tabulated diameter, or 0 for an empty table
func (t SizingTable) Largest() int {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].DN
}

// TableError reports a structurally invalid table line
type TableError struct {
	Line   int
	Column string
	Err    error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("line %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// DefaultAppliances returns the embedded NBR 8160 fixture table
func DefaultAppliances() []ApplianceRow {
	rows, err := ReadAppliances(bytes.NewReader(defaultAppliancesCSV))
	if err != nil {
		panic(fmt.Sprintf("embedded appliances table: %v", err))
	}
	return rows
}

// DefaultSizing returns the embedded NBR 8160 sizing table
func DefaultSizing() SizingTable {
	table, err := ReadSizing(bytes.NewReader(defaultSizingCSV))
	if err != nil {
		panic(fmt.Sprintf("embedded sizing table: %v", err))
	}
	return table
}

// LoadAppliancesFile reads an appliance table from a CSV file.
// A missing file yields an empty table together with the open error,
// so callers can warn and carry on with zero loads.
func LoadAppliancesFile(path string) ([]ApplianceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAppliances(f)
}

// LoadSizingFile reads a sizing table from a CSV file
func LoadSizingFile(path string) (SizingTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSizing(f)
}

// ReadAppliances parses CSV with the columns appliance, detail, uhc.
// Rows whose uhc is not numeric keep a zero load.
func ReadAppliances(r io.Reader) ([]ApplianceRow, error) {
	records, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	if _, ok := header["appliance"]; !ok {
		return nil, &TableError{Line: 1, Column: "appliance", Err: fmt.Errorf("missing column")}
	}

	rows := make([]ApplianceRow, 0, len(records))
	for _, rec := range records {
		row := ApplianceRow{
			Appliance: strings.TrimSpace(field(rec, header, "appliance")),
			Detail:    strings.TrimSpace(field(rec, header, "detail")),
		}
		if row.Appliance == "" {
			continue
		}
		row.UHC, _ = cast.ToFloat64E(strings.TrimSpace(field(rec, header, "uhc")))
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadSizing parses CSV with the columns dn, slope_0_5, slope_1_0, slope_2_0
// and slope_4_0. Blank or non-numeric capacities mark the tier unavailable;
// a non-integer dn is an error. The result is sorted by DN.
func ReadSizing(r io.Reader) (SizingTable, error) {
	records, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	if _, ok := header["dn"]; !ok {
		return nil, &TableError{Line: 1, Column: "dn", Err: fmt.Errorf("missing column")}
	}

	table := make(SizingTable, 0, len(records))
	for i, rec := range records {
		dn, err := strconv.Atoi(strings.TrimSpace(field(rec, header, "dn")))
		if err != nil {
			return nil, &TableError{Line: i + 2, Column: "dn", Err: err}
		}
		capacity := make(map[SlopeTier]float64)
		for _, tier := range SlopeTiers {
			raw := strings.TrimSpace(field(rec, header, tier.Column()))
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			capacity[tier] = v
		}
		table = append(table, SizingRow{DN: dn, capacity: capacity})
	}

	sort.SliceStable(table, func(i, j int) bool { return table[i].DN < table[j].DN })
	return table, nil
}

func readCSV(r io.Reader) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, map[string]int{}, nil
	}

	header := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		header[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	return all[1:], header, nil
}

func field(rec []string, header map[string]int, name string) string {
	i, ok := header[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// fold lowercases and strips diacritics so "Bacia Sanitária" matches "bacia sanitaria"
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// MatchAppliance finds the best table row for a fixture described by its
// name, classification and description. Rows match when their appliance
// text (and detail, if any) appear in the description; the longest combined
// match wins and the first row wins ties.
func MatchAppliance(table []ApplianceRow, name, objectType, description string) (ApplianceRow, bool) {
	search := fold(name + " " + objectType + " " + description)

	var best ApplianceRow
	bestScore := -1
	for _, row := range table {
		appliance := fold(row.Appliance)
		detail := fold(row.Detail)
		if appliance == "" || !strings.Contains(search, appliance) {
			continue
		}
		if detail != "" && !strings.Contains(search, detail) {
			continue
		}
		score := len(appliance) + len(detail)
		if score > bestScore {
			best = row
			bestScore = score
		}
	}
	return best, bestScore >= 0
}

// Tables bundles the two lookup tables an analysis needs
type Tables struct {
	Appliances []ApplianceRow
	Sizing     SizingTable
}

// DefaultTables returns the embedded NBR 8160 tables
func DefaultTables() Tables {
	return Tables{Appliances: DefaultAppliances(), Sizing: DefaultSizing()}
}

// CapacityAt returns the capacity (UHC) of a diameter at a slope (%)
func (t SizingTable) CapacityAt(dn int, slope float64) (float64, bool) {
	for _, row := range t {
		if row.DN != dn {
			continue
		}
		for _, tier := range SlopeTiers {
			if tier.Percent() == slope {
				return row.Capacity(tier)
			}
		}
	}
	return 0, false
}
