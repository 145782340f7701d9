package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gouhc/internal/report"
)

func TestGraphStatements(t *testing.T) {
	r := sampleReport()
	stmts := GraphStatements("run-1", r)

	// 5 nodes, 1 edge into S, 3 into TQ
	require.Len(t, stmts, 9)
	for _, st := range stmts[:5] {
		assert.True(t, strings.HasPrefix(st.Cypher, "MERGE (n:DrainageElement"), st.Cypher)
	}
	for _, st := range stmts[5:] {
		assert.Contains(t, st.Cypher, "[r:DRAINS_TO]")
	}

	edges := map[string]bool{}
	for _, st := range stmts[5:] {
		edges[st.Params["from"].(string)+">"+st.Params["to"].(string)] = st.Params["effective"].(bool)
		assert.Equal(t, "run-1", st.Params["run"])
	}
	assert.Equal(t, map[string]bool{
		"TQ>S": true,
		"B>TQ": true,
		"C>TQ": true,
		"X>TQ": false,
	}, edges)
}

func TestNodeProps(t *testing.T) {
	tests := []struct {
		name     string
		row      report.NodeRow
		dn       any
		capacity any
	}{
		{"sized pipe", report.NodeRow{ID: "P", DN: "75", Slope: "1%", Capacity: 20, Pipe: true}, "75", 20.0},
		{"overflow", report.NodeRow{ID: "P", DN: ">400", Slope: "-"}, ">400", nil},
		{"no load", report.NodeRow{ID: "X"}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := nodeProps("run", "m.ifc", tt.row)
			for _, key := range []string{"dn", "slope", "capacity"} {
				assert.Contains(t, props, key)
			}
			assert.Equal(t, tt.dn, props["dn"])
			assert.Equal(t, tt.capacity, props["capacity"])
			assert.Equal(t, "m.ifc", props["model"])
			assert.IsType(t, int64(0), props["level"])
		})
	}
}

func TestNodePropsClearStaleSizing(t *testing.T) {
	props := nodeProps("run-2", "m.ifc", report.NodeRow{ID: "P", Pipe: true})
	assert.Nil(t, props["dn"])
	assert.Nil(t, props["slope"])
	assert.Nil(t, props["capacity"])
}

func TestGraphStatementsEmpty(t *testing.T) {
	assert.Empty(t, GraphStatements("run", &report.Report{}))
}
