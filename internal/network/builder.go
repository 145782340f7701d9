package network

import (
	"context"

	"github.com/alexiusacademia/gouhc/internal/bim"
	"github.com/alexiusacademia/gouhc/internal/nbr8160"
)

// build expands the network breadth-first from the sinks. Every neighbor not
// known to be downstream becomes upstream of the node being expanded; levels
// follow the longest path from a sink, so a node is re-expanded whenever its
// level is raised.
func (w *walker) build(ctx context.Context, sinks []bim.Element, appliances []nbr8160.ApplianceRow) (*Network, error) {
	nw := newNetwork()
	limit := len(w.model.Elements())

	var queue []string
	for _, s := range sinks {
		n := &Node{Element: s, BaseUHC: BaseLoad(s, appliances)}
		nw.add(n)
		nw.sinks = append(nw.sinks, n.ID())
		queue = append(queue, n.ID())
	}

	for i := 0; i < len(queue); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur := nw.nodes[queue[i]]

		for _, nb := range w.neighbors(cur.Element) {
			if w.direction(cur.Element, nb) == Downstream {
				continue
			}
			id := nb.GlobalID()
			if !cur.hasUpstream(id) {
				cur.Upstream = append(cur.Upstream, id)
			}

			level := cur.Level + 1
			if level > limit {
				return nil, &CycleError{ElementID: id, Level: level}
			}

			existing, ok := nw.nodes[id]
			if !ok {
				nw.add(&Node{Element: nb, BaseUHC: BaseLoad(nb, appliances), Level: level})
				queue = append(queue, id)
				continue
			}
			if level > existing.Level {
				existing.Level = level
				queue = append(queue, id)
			}
		}
	}
	return nw, nil
}
