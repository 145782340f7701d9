package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/alexiusacademia/gouhc/internal/bim"
	"github.com/alexiusacademia/gouhc/internal/capability"
	"github.com/alexiusacademia/gouhc/internal/diagram"
	"github.com/alexiusacademia/gouhc/internal/events"
	"github.com/alexiusacademia/gouhc/internal/export"
	"github.com/alexiusacademia/gouhc/internal/report"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	// Model input
	sizeModel string
	sizeSink  string

	// Output
	sizeFormat string
	sizeLang   string
	sizeTree   bool
	sizePlot   string

	// Integrations
	sizeSQLite   string
	sizeNeo4jURI string
	sizeNATSURL  string
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Analyze a drainage network and suggest pipe diameters",
	Long: `Discover the sanitary drainage network of a model, accumulate the
fixture loads (UHC) from the sinks upstream and suggest the minimal
diameter and slope of every element.

Sinks are the elements whose name contains --sink (case-insensitive), or
whose GlobalId equals it. Without --sink the configured keyword is used
(sinks.keyword, default SANEPAR, case-sensitive).

Models are YAML or JSON documents, optionally gzip (.gz) or zstd (.zst)
compressed.

Examples:
  # Text report of a house model
  gouhc size --model house.yaml

  # Pick the sink explicitly and emit JSON
  gouhc size -m house.yaml -s "caixa de inspecao" --format json

  # Network tree, load chart and Portuguese labels
  gouhc size -m house.yaml --tree --plot loads.png --lang pt_BR

  # Store the run and export the network
  gouhc size -m house.yaml --sqlite runs.db --neo4j-uri neo4j://localhost:7687`,
	RunE: runSize,
}

func init() {
	rootCmd.AddCommand(sizeCmd)

	// Model flags
	sizeCmd.Flags().StringVarP(&sizeModel, "model", "m", "", "Model document (.yaml, .json, optionally .gz/.zst) [required]")
	sizeCmd.Flags().StringVarP(&sizeSink, "sink", "s", "", "Sink name substring or GlobalId (default: configured keyword)")
	addTableFlags(sizeCmd)

	// Output flags
	sizeCmd.Flags().StringVar(&sizeFormat, "format", "", "Report format: text, json or csv (default from config)")
	sizeCmd.Flags().StringVar(&sizeLang, "lang", "", "Report language: en or pt_BR (default from config)")
	sizeCmd.Flags().BoolVar(&sizeTree, "tree", false, "Also print the network tree and pipe load bars")
	sizeCmd.Flags().StringVar(&sizePlot, "plot", "", "Write a pipe load chart (.png, .svg or .pdf)")

	// Integration flags
	sizeCmd.Flags().StringVar(&sizeSQLite, "sqlite", "", "Store the run in this SQLite database")
	sizeCmd.Flags().StringVar(&sizeNeo4jURI, "neo4j-uri", "", "Export the network to this Neo4j server")
	sizeCmd.Flags().StringVar(&sizeNATSURL, "nats-url", "", "Publish the capability event to this NATS server")

	sizeCmd.MarkFlagRequired("model")
}

func runSize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tables, err := loadTables()
	if err != nil {
		return err
	}
	model, err := bim.LoadFile(sizeModel)
	if err != nil {
		return err
	}

	sizing := &capability.UHCSizing{
		Tables:  tables,
		Keyword: cfg.Sinks.Keyword,
		Logger:  logger,
	}
	if url := firstNonEmpty(sizeNATSURL, cfg.Events.URL); url != "" {
		pub, err := events.Dial(url, cfg.Events.SubjectPrefix, logger)
		if err != nil {
			return err
		}
		defer pub.Close()
		sizing.Events = pub
	}

	res, _, err := sizing.Run(ctx, capability.Inputs{Model: model, SinkFilter: sizeSink})
	if err != nil {
		return err
	}

	rep := report.New(sizeModel, model.Schema(), res, tables.Sizing)
	p := report.NewPrinter(firstNonEmpty(sizeLang, cfg.Report.Lang))

	switch format := firstNonEmpty(sizeFormat, cfg.Report.Format); format {
	case report.FormatText:
		err = report.WriteText(os.Stdout, rep, p)
	case report.FormatJSON:
		err = report.WriteJSON(os.Stdout, rep)
	case report.FormatCSV:
		err = report.WriteCSV(os.Stdout, rep, p)
	default:
		err = fmt.Errorf("unknown report format %q", format)
	}
	if err != nil {
		return err
	}

	if sizeTree {
		fmt.Println(report.Tree(rep, p))
		fmt.Println(report.LoadBars(rep, p))
	}

	if sizePlot != "" {
		if err := diagram.ExportLoadChart(report.Chart(rep, p), sizePlot); err != nil {
			return fmt.Errorf("load chart: %w", err)
		}
		logger.Info("load chart written", "path", sizePlot)
	}

	runID := uuid.NewString()
	if path := firstNonEmpty(sizeSQLite, cfg.Export.SQLite); path != "" {
		store, err := export.OpenStore(path, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		if runID, err = store.SaveRun(ctx, rep); err != nil {
			return fmt.Errorf("store run: %w", err)
		}
	}

	if uri := firstNonEmpty(sizeNeo4jURI, cfg.Export.Neo4j.URI); uri != "" {
		n := cfg.Export.Neo4j
		graph, err := export.DialGraph(ctx, uri, n.User, n.Password, n.Database, logger)
		if err != nil {
			return err
		}
		defer graph.Close(ctx)
		if err := graph.Export(ctx, runID, rep); err != nil {
			return err
		}
	}

	return nil
}
