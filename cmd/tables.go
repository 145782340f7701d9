package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/alexiusacademia/gouhc/internal/nbr8160"
	"github.com/spf13/cobra"
)

var (
	// Table overrides shared by every command that sizes
	appliancesPath string
	sizingPath     string
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the active appliance and sizing tables",
	Long: `Print the fixture load table (UHC per appliance) and the pipe
capacity table (UHC per diameter and slope) used for sizing.

The embedded ABNT NBR 8160 tables are used unless replacement CSV files
are given by flag or in the config file (tables.appliances, tables.sizing).

Examples:
  gouhc tables
  gouhc tables --sizing ./my_sizing.csv`,
	RunE: runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	addTableFlags(tablesCmd)
}

// addTableFlags registers the table override flags on cmd
func addTableFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&appliancesPath, "appliances", "", "Appliance table CSV (appliance,detail,uhc)")
	cmd.Flags().StringVar(&sizingPath, "sizing", "", "Sizing table CSV (dn,slope_0_5,slope_1_0,slope_2_0,slope_4_0)")
}

// loadTables resolves the tables from flags, then config, then the embedded defaults.
// An unreadable table degrades to zero loads or no sizing with a warning; only a
// sizing table with an invalid dn column fails.
func loadTables() (nbr8160.Tables, error) {
	tables := nbr8160.DefaultTables()

	path := firstNonEmpty(appliancesPath, cfg.Tables.Appliances)
	if path != "" {
		rows, err := nbr8160.LoadAppliancesFile(path)
		if err != nil {
			logger.Warn("appliance table not loaded, fixture loads default to zero", "path", path, "error", err)
		}
		tables.Appliances = rows
	}

	path = firstNonEmpty(sizingPath, cfg.Tables.Sizing)
	if path != "" {
		rows, err := nbr8160.LoadSizingFile(path)
		var tableErr *nbr8160.TableError
		if errors.As(err, &tableErr) {
			return tables, fmt.Errorf("sizing table %s: %w", path, err)
		}
		if err != nil {
			logger.Warn("sizing table not loaded, no pipe will be sized", "path", path, "error", err)
		}
		tables.Sizing = rows
	}
	return tables, nil
}

func runTables(cmd *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     NBR 8160 TABLES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("APPLIANCES (UHC):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Appliance\tDetail\tUHC")
	for _, row := range tables.Appliances {
		fmt.Fprintf(w, "  %s\t%s\t%g\n", row.Appliance, dashIfEmpty(row.Detail), row.UHC)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("PIPE CAPACITY (UHC):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "  DN (mm)")
	for _, tier := range nbr8160.SlopeTiers {
		fmt.Fprintf(w, "\t%g%%", tier.Percent())
	}
	fmt.Fprintln(w)
	for _, row := range tables.Sizing {
		fmt.Fprintf(w, "  %d", row.DN)
		for _, tier := range nbr8160.SlopeTiers {
			c, ok := row.Capacity(tier)
			if !ok {
				fmt.Fprint(w, "\t-")
				continue
			}
			fmt.Fprintf(w, "\t%s", strconv.FormatFloat(c, 'f', -1, 64))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Println()
	fmt.Printf("  Diameters below DN %d are sized at 1%% only.\n", nbr8160.SlopeThresholdDN)
	fmt.Println()
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
