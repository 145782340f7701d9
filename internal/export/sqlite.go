// Package export persists analysis reports to SQLite and Neo4j.
package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/alexiusacademia/gouhc/internal/report"
)

// Store keeps analysis runs in a SQLite database
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
	path   string
}

// Run is one stored analysis
type Run struct {
	ID        string
	Model     string
	Schema    string
	Generated time.Time
	Nodes     int
	Warnings  []string
}

// OpenStore opens or creates the database at path
func OpenStore(path string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Store{conn: conn, logger: logger, path: path}
	if err := s.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			schema_name TEXT,
			generated_at TEXT NOT NULL,
			warnings TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_runs_generated ON runs(generated_at DESC);

		CREATE TABLE IF NOT EXISTS nodes (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			guid TEXT NOT NULL,
			name TEXT,
			kind TEXT,
			level INTEGER NOT NULL,
			base_uhc REAL NOT NULL,
			accumulated_uhc REAL NOT NULL,
			dn TEXT,
			slope TEXT,
			capacity REAL,
			pipe INTEGER NOT NULL,
			sink INTEGER NOT NULL,
			PRIMARY KEY (run_id, guid)
		);

		CREATE TABLE IF NOT EXISTS edges (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			upstream TEXT NOT NULL,
			downstream TEXT NOT NULL,
			effective INTEGER NOT NULL,
			PRIMARY KEY (run_id, upstream, downstream)
		);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SaveRun stores a report and returns the new run id
func (s *Store) SaveRun(ctx context.Context, r *report.Report) (string, error) {
	id := uuid.NewString()
	warnings, err := json.Marshal(r.Warnings)
	if err != nil {
		return "", err
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, model, schema_name, generated_at, warnings) VALUES (?, ?, ?, ?, ?)`,
		id, r.Model, r.Schema, r.Generated.UTC().Format(time.RFC3339Nano), string(warnings)); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	nodeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO nodes (run_id, seq, guid, name, kind, level, base_uhc, accumulated_uhc, dn, slope, capacity, pipe, sink)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer nodeStmt.Close()

	edgeStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO edges (run_id, upstream, downstream, effective) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer edgeStmt.Close()

	for i, n := range r.Nodes {
		if _, err := nodeStmt.ExecContext(ctx, id, i, n.ID, n.Name, n.Kind, n.Level,
			n.BaseUHC, n.AccumulatedUHC, n.DN, n.Slope, n.Capacity, n.Pipe, n.Sink); err != nil {
			return "", fmt.Errorf("insert node %s: %w", n.ID, err)
		}

		effective := make(map[string]bool, len(n.EffectiveUpstream))
		for _, up := range n.EffectiveUpstream {
			effective[up] = true
		}
		for _, up := range n.Upstream {
			if _, err := edgeStmt.ExecContext(ctx, id, up, n.ID, effective[up]); err != nil {
				return "", fmt.Errorf("insert edge %s->%s: %w", up, n.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	s.logger.Info("analysis stored", "run", id, "path", s.path, "nodes", len(r.Nodes))
	return id, nil
}

// Runs lists the stored runs, newest first
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT r.id, r.model, r.schema_name, r.generated_at, r.warnings,
		       (SELECT COUNT(*) FROM nodes n WHERE n.run_id = r.id)
		FROM runs r ORDER BY r.generated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var generated, warnings string
		if err := rows.Scan(&run.ID, &run.Model, &run.Schema, &generated, &warnings, &run.Nodes); err != nil {
			return nil, err
		}
		if run.Generated, err = time.Parse(time.RFC3339Nano, generated); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(warnings), &run.Warnings); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Nodes returns the nodes of a run in discovery order, with their upstream edges
func (s *Store) Nodes(ctx context.Context, runID string) ([]report.NodeRow, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT guid, name, kind, level, base_uhc, accumulated_uhc, dn, slope, capacity, pipe, sink
		FROM nodes WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []report.NodeRow
	index := make(map[string]int)
	for rows.Next() {
		var n report.NodeRow
		if err := rows.Scan(&n.ID, &n.Name, &n.Kind, &n.Level, &n.BaseUHC, &n.AccumulatedUHC,
			&n.DN, &n.Slope, &n.Capacity, &n.Pipe, &n.Sink); err != nil {
			return nil, err
		}
		index[n.ID] = len(out)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	edges, err := s.conn.QueryContext(ctx,
		`SELECT upstream, downstream, effective FROM edges WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer edges.Close()
	for edges.Next() {
		var up, down string
		var effective bool
		if err := edges.Scan(&up, &down, &effective); err != nil {
			return nil, err
		}
		i, ok := index[down]
		if !ok {
			continue
		}
		out[i].Upstream = append(out[i].Upstream, up)
		if effective {
			out[i].EffectiveUpstream = append(out[i].EffectiveUpstream, up)
		}
	}
	return out, edges.Err()
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
