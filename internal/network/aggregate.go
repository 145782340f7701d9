package network

import (
	"log/slog"
	"sort"

	"github.com/alexiusacademia/gouhc/internal/bim"
	"github.com/alexiusacademia/gouhc/internal/nbr8160"
)

// aggregate accumulates loads from the farthest level down to the sinks and
// sizes every node as soon as its total is final
func (nw *Network) aggregate(sizing nbr8160.SizingTable, logger *slog.Logger) {
	order := nw.Nodes()
	sort.SliceStable(order, func(i, j int) bool { return order[i].Level > order[j].Level })

	for _, n := range order {
		var sources []Source
		index := make(map[string]int)
		for _, up := range n.Upstream {
			entry := nw.nodes[up]
			src := Source{
				SourceID: nw.trace(entry).ID(),
				EntryID:  up,
				IsPipe:   entry.Element.Kind() == bim.KindPipeSegment,
			}
			if i, ok := index[src.SourceID]; ok {
				if src.IsPipe && !sources[i].IsPipe {
					sources[i] = src
				}
				continue
			}
			index[src.SourceID] = len(sources)
			sources = append(sources, src)
		}

		total := n.BaseUHC
		n.EffectiveUpstream = n.EffectiveUpstream[:0]
		for _, src := range sources {
			total += nw.nodes[src.EntryID].AccumulatedUHC
			n.EffectiveUpstream = append(n.EffectiveUpstream, src.EntryID)
		}
		n.EffectiveSources = sources
		n.AccumulatedUHC = total
		n.State = Aggregated

		n.Sizing = nbr8160.CalculateSizing(total, sizing)
		n.State = Sized

		logger.Debug("node aggregated",
			"element", n.ID(),
			"name", n.Element.Name(),
			"level", n.Level,
			"uhc", total,
			"dn", n.Sizing.DNLabel())
	}
}

// trace follows pass-through pipe segments upstream to the element a branch
// originates from
func (nw *Network) trace(n *Node) *Node {
	cur := n
	for steps := 0; steps < len(nw.order); steps++ {
		if cur.Element.Kind() != bim.KindPipeSegment || len(cur.Upstream) == 0 {
			break
		}
		cur = nw.nodes[cur.Upstream[0]]
	}
	return cur
}
