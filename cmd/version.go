package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gouhc/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gouhc",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gouhc v%s\n", version.Version)
		fmt.Println("Sanitary Drainage Network Analyzer and Sizing Tool")
		fmt.Printf("Based on %s\n", version.Standard)
		fmt.Printf("Commit %s, built %s\n", version.GitCommit, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
