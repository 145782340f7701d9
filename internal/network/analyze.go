package network

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexiusacademia/gouhc/internal/bim"
	"github.com/alexiusacademia/gouhc/internal/logging"
	"github.com/alexiusacademia/gouhc/internal/nbr8160"
)

// Options configures a single analysis
type Options struct {
	Sinks  SinkFilter
	Logger *slog.Logger // nil discards
}

// Result is the outcome of an analysis
type Result struct {
	Network  *Network
	Sinks    []bim.Element
	Warnings []TraversalWarning
}

// Analyze discovers the sinks of model, builds the drainage network upstream
// of them, accumulates fixture loads and sizes every node. No matching sink
// yields an empty network, not an error.
func Analyze(ctx context.Context, model bim.Model, tables nbr8160.Tables, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	w := newWalker(model, logger)

	sinks, err := w.findSinks(opts.Sinks)
	if err != nil {
		return nil, err
	}
	logger.Debug("sinks discovered", "count", len(sinks))

	nw, err := w.build(ctx, sinks, tables.Appliances)
	if err != nil {
		return nil, fmt.Errorf("building network: %w", err)
	}
	nw.aggregate(tables.Sizing, logger)

	logger.Info("network analyzed",
		"sinks", len(sinks),
		"nodes", nw.Len(),
		"warnings", len(w.warnings))

	return &Result{Network: nw, Sinks: sinks, Warnings: w.warnings}, nil
}

// ResolveDirection resolves the flow direction of neighbor relative to node using
// port flow directions and then the naming convention. Relations that cannot
// be read are ignored.
func ResolveDirection(model bim.Model, node, neighbor bim.Element) Direction {
	return newWalker(model, logging.NewDiscardLogger()).direction(node, neighbor)
}
