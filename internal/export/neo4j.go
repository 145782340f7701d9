package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/alexiusacademia/gouhc/internal/report"
)

const (
	nodeLabel = "DrainageElement"
	edgeType  = "DRAINS_TO"
)

// Statement is a parameterized Cypher query
type Statement struct {
	Cypher string
	Params map[string]any
}

// GraphExporter writes analyses into a Neo4j database
type GraphExporter struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *slog.Logger
}

// NewGraphExporter wraps an existing driver
func NewGraphExporter(driver neo4j.DriverWithContext, database string, logger *slog.Logger) *GraphExporter {
	return &GraphExporter{driver: driver, database: database, logger: logger}
}

// DialGraph connects to uri. An empty user connects without authentication.
func DialGraph(ctx context.Context, uri, user, password, database string, logger *slog.Logger) (*GraphExporter, error) {
	auth := neo4j.NoAuth()
	if user != "" {
		auth = neo4j.BasicAuth(user, password, "")
	}
	driver, err := neo4j.NewDriverWithContext(uri, auth)
	if err != nil {
		return nil, fmt.Errorf("neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4j connectivity: %w", err)
	}
	return NewGraphExporter(driver, database, logger), nil
}

// Close releases the driver
func (g *GraphExporter) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}

// Export merges every node and upstream edge of r in one write transaction
func (g *GraphExporter) Export(ctx context.Context, runID string, r *report.Report) error {
	stmts := GraphStatements(runID, r)

	sess := g.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: g.database,
	})
	defer sess.Close(ctx)

	_, err := sess.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, st := range stmts {
			if _, err := tx.Run(ctx, st.Cypher, st.Params); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("export graph: %w", err)
	}
	g.logger.Info("graph exported", "run", runID, "statements", len(stmts))
	return nil
}

// GraphStatements builds the MERGE statements for r: nodes first, then edges
func GraphStatements(runID string, r *report.Report) []Statement {
	stmts := make([]Statement, 0, len(r.Nodes)*2)
	for _, n := range r.Nodes {
		stmts = append(stmts, Statement{
			Cypher: fmt.Sprintf("MERGE (n:%s {guid: $guid}) SET n += $props", nodeLabel),
			Params: map[string]any{
				"guid":  n.ID,
				"props": nodeProps(runID, r.Model, n),
			},
		})
	}
	edge := fmt.Sprintf(
		"MATCH (a:%[1]s {guid: $from}), (b:%[1]s {guid: $to}) MERGE (a)-[r:%[2]s]->(b) SET r.effective = $effective, r.run = $run",
		nodeLabel, edgeType)
	for _, n := range r.Nodes {
		effective := make(map[string]bool, len(n.EffectiveUpstream))
		for _, up := range n.EffectiveUpstream {
			effective[up] = true
		}
		for _, up := range n.Upstream {
			stmts = append(stmts, Statement{
				Cypher: edge,
				Params: map[string]any{
					"from":      up,
					"to":        n.ID,
					"effective": effective[up],
					"run":       runID,
				},
			})
		}
	}
	return stmts
}

// nodeProps always carries the sizing keys; a nil value removes a stale one on MERGE
func nodeProps(runID, model string, n report.NodeRow) map[string]any {
	props := map[string]any{
		"name":            n.Name,
		"kind":            n.Kind,
		"level":           int64(n.Level),
		"base_uhc":        n.BaseUHC,
		"accumulated_uhc": n.AccumulatedUHC,
		"pipe":            n.Pipe,
		"sink":            n.Sink,
		"model":           model,
		"run":             runID,
		"dn":              nil,
		"slope":           nil,
		"capacity":        nil,
	}
	if n.DN != "" {
		props["dn"] = n.DN
		props["slope"] = n.Slope
	}
	if n.Capacity > 0 {
		props["capacity"] = n.Capacity
	}
	return props
}
