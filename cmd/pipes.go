package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/alexiusacademia/gouhc/internal/bim"
	"github.com/alexiusacademia/gouhc/internal/capability"
	"github.com/alexiusacademia/gouhc/internal/pipes"
	"github.com/alexiusacademia/gouhc/internal/report"
	"github.com/spf13/cobra"
	"golang.org/x/text/message"
)

var (
	pipesModel   string
	pipesSink    string
	pipesSuggest bool
	pipesJSON    bool
	pipesLang    string
)

var pipesCmd = &cobra.Command{
	Use:   "pipes",
	Short: "List the pipe runs of a model with their slopes",
	Long: `List every pipe run of a model with its diameter, material, length,
elevations, designed slope (Pset_BR_NBR8160.MinimalSlope) and geometric
slope. IFC2X3 models list flow segments; later schemas list pipe segments.

With --suggest the network is analyzed and the suggested diameter and
slope of each pipe is shown alongside.

Examples:
  gouhc pipes --model house.yaml
  gouhc pipes -m house.yaml --suggest
  gouhc pipes -m house.yaml --suggest --json
  gouhc pipes -m house.yaml --lang pt_BR`,
	RunE: runPipes,
}

func init() {
	rootCmd.AddCommand(pipesCmd)

	pipesCmd.Flags().StringVarP(&pipesModel, "model", "m", "", "Model document [required]")
	pipesCmd.Flags().StringVarP(&pipesSink, "sink", "s", "", "Sink name substring or GlobalId, used with --suggest")
	pipesCmd.Flags().BoolVar(&pipesSuggest, "suggest", false, "Merge the UHC sizing suggestions")
	pipesCmd.Flags().BoolVar(&pipesJSON, "json", false, "Write JSON instead of a table")
	pipesCmd.Flags().StringVar(&pipesLang, "lang", "", "Header language: en or pt_BR (default from config)")
	addTableFlags(pipesCmd)

	pipesCmd.MarkFlagRequired("model")
}

func runPipes(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	model, err := bim.LoadFile(pipesModel)
	if err != nil {
		return err
	}
	list := pipes.List(model)

	if pipesSuggest {
		tables, err := loadTables()
		if err != nil {
			return err
		}
		sizing := &capability.UHCSizing{Tables: tables, Keyword: cfg.Sinks.Keyword, Logger: logger}
		out, err := sizing.Execute(ctx, capability.Inputs{Model: model, SinkFilter: pipesSink})
		if err != nil {
			return err
		}
		pipes.Merge(list, out.SizedPipes)
	}

	if pipesJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	return writePipes(os.Stdout, list, model.Schema(), report.NewPrinter(firstNonEmpty(pipesLang, cfg.Report.Lang)))
}

// writePipes prints the pipe table with localized headers
func writePipes(out io.Writer, list []pipes.Pipe, schema string, p *message.Printer) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     "+p.Sprintf("PIPE RUNS"))
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s: %s (%s)\n", p.Sprintf("Model"), pipesModel, schema)
	fmt.Fprintf(out, "  %s\n", p.Sprintf("%d pipes", len(list)))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\t%s",
		p.Sprintf("Name"), p.Sprintf("DN"), p.Sprintf("Material"), p.Sprintf("Length (m)"),
		p.Sprintf("Start elevation (m)"), p.Sprintf("End elevation (m)"),
		p.Sprintf("Design slope"), p.Sprintf("Real slope"))
	if pipesSuggest {
		fmt.Fprintf(w, "\t%s\t%s\t%s", p.Sprintf("Suggested DN"), p.Sprintf("Suggested slope"), p.Sprintf("Accumulated UHC"))
	}
	fmt.Fprintln(w)
	for _, pipe := range list {
		name := pipe.Name
		if name == "" {
			name = p.Sprintf("Unnamed")
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%.2f\t%.3f\t%.3f\t%.2f%%\t%.2f%%",
			name, formatDN(pipe.DN), dashIfEmpty(pipe.Material), pipe.Length, pipe.ZStart, pipe.ZEnd, pipe.SlopeUHC, pipe.SlopeReal)
		if pipesSuggest {
			s := pipe.Suggestion
			switch {
			case s == nil:
				fmt.Fprint(w, "\t-\t-\t-")
			default:
				fmt.Fprintf(w, "\t%s\t%s\t%s", s.SuggestedDN, formatSlope(s.SuggestedSlope), formatOptional(s.AccumulatedUHC))
			}
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return nil
}

func formatDN(dn *float64) string {
	if dn == nil {
		return "-"
	}
	return strconv.FormatFloat(*dn, 'f', -1, 64)
}

func formatSlope(slope *float64) string {
	if slope == nil {
		return "-"
	}
	return strconv.FormatFloat(*slope, 'f', -1, 64) + "%"
}

func formatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
