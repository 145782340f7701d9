package network

import (
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"github.com/alexiusacademia/gouhc/internal/bim"
)

// Direction of a neighbor relative to the node being expanded
type Direction int

const (
	Unknown Direction = iota
	Upstream
	Downstream
)

func (d Direction) String() string {
	switch d {
	case Upstream:
		return "upstream"
	case Downstream:
		return "downstream"
	default:
		return "unknown"
	}
}

// Relation names used in traversal warnings
const (
	RelationConnections = "connections"
	RelationPorts       = "ports"
	RelationPortLink    = "port connection"
	RelationPortOwner   = "port owner"
)

// walker reads relations from the model and collects the failures as warnings
type walker struct {
	model    bim.Model
	logger   *slog.Logger
	warnings []TraversalWarning
	seen     map[[2]string]bool
}

func newWalker(model bim.Model, logger *slog.Logger) *walker {
	return &walker{model: model, logger: logger, seen: make(map[[2]string]bool)}
}

func (w *walker) warn(id, relation string, err error) {
	key := [2]string{id, relation}
	if w.seen[key] {
		return
	}
	w.seen[key] = true
	tw := TraversalWarning{ElementID: id, Relation: relation, Err: err}
	w.warnings = append(w.warnings, tw)
	w.logger.Warn("relation unresolved, treating as empty", "element", id, "relation", relation, "error", err)
}

// portPeer is a nested port of an element and the owner of the port it is connected to
type portPeer struct {
	port  bim.Port
	owner bim.Element
}

func (w *walker) portPeers(el bim.Element) []portPeer {
	ports, err := w.model.Ports(el)
	if err != nil {
		w.warn(el.GlobalID(), RelationPorts, err)
		return nil
	}

	var peers []portPeer
	for _, p := range ports {
		other, err := w.model.ConnectedPort(p)
		if err != nil {
			w.warn(p.GlobalID(), RelationPortLink, err)
			continue
		}
		if other == nil {
			continue
		}
		owner, err := w.model.PortOwner(other)
		if err != nil {
			w.warn(other.GlobalID(), RelationPortOwner, err)
			continue
		}
		if owner == nil {
			continue
		}
		peers = append(peers, portPeer{port: p, owner: owner})
	}
	return peers
}

// neighbors returns the direct neighbors of el followed by the port-mediated
// ones, without duplicates
func (w *walker) neighbors(el bim.Element) []bim.Element {
	seen := map[string]bool{el.GlobalID(): true}
	var out []bim.Element
	add := func(n bim.Element) {
		if n == nil || seen[n.GlobalID()] {
			return
		}
		seen[n.GlobalID()] = true
		out = append(out, n)
	}

	direct, err := w.model.Connected(el)
	if err != nil {
		w.warn(el.GlobalID(), RelationConnections, err)
	}
	for _, n := range direct {
		add(n)
	}
	for _, peer := range w.portPeers(el) {
		add(peer.owner)
	}
	return out
}

// direction resolves where neighbor sits relative to node. Port flow
// directions win; the "source->destination" naming convention is the fallback.
func (w *walker) direction(node, neighbor bim.Element) Direction {
	for _, peer := range w.portPeers(node) {
		if peer.owner.GlobalID() != neighbor.GlobalID() {
			continue
		}
		switch peer.port.FlowDirection() {
		case bim.Sink:
			return Upstream
		case bim.Source:
			return Downstream
		}
	}
	return directionByName(node.Name(), neighbor.Name())
}

func directionByName(nodeName, neighborName string) Direction {
	node := normalizeName(nodeName)
	neighbor := normalizeName(neighborName)

	if src, dst, ok := splitFlowName(neighbor); ok {
		if src == node {
			return Downstream
		}
		if dst == node {
			return Upstream
		}
	}
	if src, dst, ok := splitFlowName(node); ok {
		if src == neighbor {
			return Upstream
		}
		if dst == neighbor {
			return Downstream
		}
	}
	return Unknown
}

// normalizeName folds case and treats underscores as spaces
func normalizeName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
	return cases.Fold().String(name)
}

// splitFlowName splits "source->destination"; any other number of arrows is not a flow name
func splitFlowName(name string) (string, string, bool) {
	parts := strings.Split(strings.ReplaceAll(name, "→", "->"), "->")
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}
