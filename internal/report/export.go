package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"golang.org/x/text/message"

	"github.com/alexiusacademia/gouhc/internal/diagram"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// WriteJSON writes the report as indented JSON
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV writes one row per node with localized headers
func WriteCSV(w io.Writer, r *Report, p *message.Printer) error {
	cw := csv.NewWriter(w)
	header := []string{
		p.Sprintf("Id"), p.Sprintf("Name"), p.Sprintf("Kind"), p.Sprintf("Level"),
		p.Sprintf("Base UHC"), p.Sprintf("Accumulated UHC"), p.Sprintf("DN"), p.Sprintf("Slope"),
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, n := range r.Nodes {
		rec := []string{
			n.ID, n.Name, n.Kind, strconv.Itoa(n.Level),
			strconv.FormatFloat(n.BaseUHC, 'f', -1, 64),
			strconv.FormatFloat(n.AccumulatedUHC, 'f', -1, 64),
			n.DN, n.Slope,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Tree renders the sinks and their effective upstream branches
func Tree(r *Report, p *message.Printer) string {
	idx := r.index()
	drawn := make(map[string]bool)

	var build func(id string) *diagram.TreeNode
	build = func(id string) *diagram.TreeNode {
		n := idx[id]
		node := &diagram.TreeNode{Label: treeLabel(n, p)}
		if drawn[id] {
			node.Repeat = true
			return node
		}
		drawn[id] = true
		for _, up := range n.EffectiveUpstream {
			node.Children = append(node.Children, build(up))
		}
		return node
	}

	var roots []*diagram.TreeNode
	for _, id := range r.Sinks {
		roots = append(roots, build(id))
	}
	return diagram.DrawASCIINetworkTree(p.Sprintf("DRAINAGE NETWORK"), roots)
}

func treeLabel(n NodeRow, p *message.Printer) string {
	label := p.Sprintf("%s [%.2f UHC]", displayName(n, p), n.AccumulatedUHC)
	if n.DN != "" {
		label += p.Sprintf(" DN %s @ %s", n.DN, n.Slope)
	}
	return label
}

// LoadBars renders the pipe loads against their capacity as text
func LoadBars(r *Report, p *message.Printer) string {
	return diagram.DrawASCIILoadBars(p.Sprintf("PIPE LOADS"), pipeBars(r, p))
}

// Chart returns the plot data of the pipe loads
func Chart(r *Report, p *message.Printer) diagram.ChartData {
	return diagram.ChartData{
		Title:         p.Sprintf("PIPE LOADS"),
		XLabel:        p.Sprintf("Pipe"),
		YLabel:        p.Sprintf("Accumulated UHC"),
		CapacityLabel: p.Sprintf("capacity"),
		Bars:          pipeBars(r, p),
	}
}

func pipeBars(r *Report, p *message.Printer) []diagram.BarData {
	var bars []diagram.BarData
	for _, n := range r.Pipes() {
		bars = append(bars, diagram.BarData{
			Label:    displayName(n, p),
			Load:     n.AccumulatedUHC,
			Capacity: n.Capacity,
		})
	}
	return bars
}
