// Package report renders drainage analyses as text, JSON, CSV, trees and charts.
package report

import (
	"time"

	"github.com/alexiusacademia/gouhc/internal/nbr8160"
	"github.com/alexiusacademia/gouhc/internal/network"
)

// Report is a flat, serializable view of an analysis
type Report struct {
	Model     string    `json:"model"`
	Schema    string    `json:"schema"`
	Generated time.Time `json:"generated"`
	Sinks     []string  `json:"sinks"`
	Nodes     []NodeRow `json:"nodes"`
	Warnings  []string  `json:"warnings,omitempty"`
}

// NodeRow is one analyzed element
type NodeRow struct {
	ID                string   `json:"guid"`
	Name              string   `json:"name"`
	Kind              string   `json:"kind"`
	Level             int      `json:"level"`
	BaseUHC           float64  `json:"base_uhc"`
	AccumulatedUHC    float64  `json:"accumulated_uhc"`
	DN                string   `json:"dn"`
	Slope             string   `json:"slope"`
	Capacity          float64  `json:"capacity,omitempty"` // capacity of the suggested pipe (UHC)
	Pipe              bool     `json:"pipe"`
	Sink              bool     `json:"sink"`
	Upstream          []string `json:"upstream,omitempty"`
	EffectiveUpstream []string `json:"effective_upstream,omitempty"`
}

// New flattens an analysis result; nodes keep discovery order
func New(model, schema string, res *network.Result, sizing nbr8160.SizingTable) *Report {
	r := &Report{
		Model:     model,
		Schema:    schema,
		Generated: time.Now().UTC(),
		Sinks:     []string{},
		Nodes:     []NodeRow{},
	}

	sinks := make(map[string]bool)
	for _, s := range res.Network.Sinks() {
		sinks[s.ID()] = true
		r.Sinks = append(r.Sinks, s.ID())
	}
	for _, n := range res.Network.Nodes() {
		row := NodeRow{
			ID:                n.ID(),
			Name:              n.Element.Name(),
			Kind:              n.Element.Kind().String(),
			Level:             n.Level,
			BaseUHC:           n.BaseUHC,
			AccumulatedUHC:    n.AccumulatedUHC,
			Pipe:              n.IsPipe(),
			Sink:              sinks[n.ID()],
			Upstream:          n.Upstream,
			EffectiveUpstream: n.EffectiveUpstream,
		}
		if n.Sizing.Required() {
			row.DN = n.Sizing.DNLabel()
			row.Slope = n.Sizing.SlopeLabel()
			if !n.Sizing.Overflow {
				row.Capacity, _ = sizing.CapacityAt(n.Sizing.DN, n.Sizing.Slope)
			}
		}
		r.Nodes = append(r.Nodes, row)
	}
	for _, w := range res.Warnings {
		r.Warnings = append(r.Warnings, w.Error())
	}
	return r
}

// Pipes returns the pipe rows in discovery order
func (r *Report) Pipes() []NodeRow {
	var out []NodeRow
	for _, n := range r.Nodes {
		if n.Pipe {
			out = append(out, n)
		}
	}
	return out
}

func (r *Report) index() map[string]NodeRow {
	idx := make(map[string]NodeRow, len(r.Nodes))
	for _, n := range r.Nodes {
		idx[n.ID] = n
	}
	return idx
}
