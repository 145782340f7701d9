package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gouhc/internal/nbr8160"
	"github.com/spf13/cobra"
)

var dnUHC float64

var dnCmd = &cobra.Command{
	Use:   "dn",
	Short: "Minimal diameter and slope for an accumulated load",
	Long: `Look up the smallest pipe diameter and slope whose capacity covers
an accumulated load in Units of Hydraulic Consumption (UHC).

Diameters below DN 150 are tabulated at 1% only; larger diameters try
1%, 2% and 4% in turn. Loads above the largest capacity are flagged for
engineering review.

Examples:
  gouhc dn --uhc 8
  gouhc dn --uhc 900 --sizing ./my_sizing.csv`,
	RunE: runDN,
}

func init() {
	rootCmd.AddCommand(dnCmd)

	dnCmd.Flags().Float64Var(&dnUHC, "uhc", 0, "Accumulated load (UHC) [required]")
	addTableFlags(dnCmd)

	dnCmd.MarkFlagRequired("uhc")
}

func runDN(cmd *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	s := nbr8160.CalculateSizing(dnUHC, tables.Sizing)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     PIPE SIZING - NBR 8160")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  Accumulated load:  %g UHC\n", dnUHC)
	fmt.Println()

	switch {
	case len(tables.Sizing) == 0:
		fmt.Println("  ⚠ No sizing table loaded; no diameter can be suggested.")
	case !s.Required():
		fmt.Println("  No pipe required for a zero load.")
	case s.Overflow:
		fmt.Printf("  ⚠ Load exceeds the table; larger than DN %d.\n", s.DN)
		fmt.Println("  Engineering review required.")
	default:
		capacity, _ := tables.Sizing.CapacityAt(s.DN, s.Slope)
		fmt.Printf("  ╔═════════════════════════════════════════╗\n")
		fmt.Printf("  ║  DN %-4s @ %-5s                        \n", s.DNLabel(), s.SlopeLabel())
		fmt.Printf("  ╚═════════════════════════════════════════╝\n")
		fmt.Println()
		fmt.Printf("  Capacity:          %g UHC\n", capacity)
		fmt.Printf("  Utilization:       %.1f%%\n", dnUHC/capacity*100)
	}
	fmt.Println()
	return nil
}
