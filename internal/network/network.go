// Package network reconstructs the directed drainage network of a building
// model, aggregates fixture loads from terminals toward the discharge points
// and sizes every reached element.
package network

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gouhc/internal/bim"
	"github.com/alexiusacademia/gouhc/internal/nbr8160"
)

// ErrNoSinkFilter is returned when neither a sink filter nor a keyword is given
var ErrNoSinkFilter = errors.New("no sink filter or keyword configured")

// State tracks how far a node has been processed
type State int

const (
	Discovered State = iota
	Aggregated
	Sized
)

func (s State) String() string {
	switch s {
	case Discovered:
		return "discovered"
	case Aggregated:
		return "aggregated"
	case Sized:
		return "sized"
	default:
		return "unknown"
	}
}

// Source is one de-duplicated upstream branch of a node
type Source struct {
	SourceID string // first non pass-through element of the branch
	EntryID  string // direct upstream neighbor the branch enters through
	IsPipe   bool   // branch enters through a pipe segment
}

// Node is an element reached from a sink together with its computed loads
type Node struct {
	Element           bim.Element
	BaseUHC           float64  // own fixture load (UHC)
	AccumulatedUHC    float64  // own load plus every effective upstream branch (UHC)
	Level             int      // longest upstream distance from a sink
	Upstream          []string // upstream neighbor ids, in discovery order
	EffectiveUpstream []string // entry ids of the retained branches
	EffectiveSources  []Source
	Sizing            nbr8160.Sizing
	State             State
}

// ID returns the GlobalId of the node's element
func (n *Node) ID() string {
	return n.Element.GlobalID()
}

// IsPipe reports whether the node is a pipe-like segment
func (n *Node) IsPipe() bool {
	return n.Element.Kind().IsPipe()
}

func (n *Node) hasUpstream(id string) bool {
	for _, u := range n.Upstream {
		if u == id {
			return true
		}
	}
	return false
}

// Network is the set of nodes reached from the sinks, keyed by element id
type Network struct {
	nodes map[string]*Node
	order []string
	sinks []string
}

func newNetwork() *Network {
	return &Network{nodes: make(map[string]*Node)}
}

func (nw *Network) add(n *Node) {
	nw.nodes[n.ID()] = n
	nw.order = append(nw.order, n.ID())
}

// Len returns the number of nodes
func (nw *Network) Len() int {
	return len(nw.order)
}

// Node looks a node up by element id
func (nw *Network) Node(id string) (*Node, bool) {
	n, ok := nw.nodes[id]
	return n, ok
}

// Nodes returns every node in discovery order
func (nw *Network) Nodes() []*Node {
	out := make([]*Node, len(nw.order))
	for i, id := range nw.order {
		out[i] = nw.nodes[id]
	}
	return out
}

// Sinks returns the sink nodes in discovery order
func (nw *Network) Sinks() []*Node {
	out := make([]*Node, len(nw.sinks))
	for i, id := range nw.sinks {
		out[i] = nw.nodes[id]
	}
	return out
}

// Pipes returns the pipe-like nodes in discovery order
func (nw *Network) Pipes() []*Node {
	var out []*Node
	for _, id := range nw.order {
		if n := nw.nodes[id]; n.IsPipe() {
			out = append(out, n)
		}
	}
	return out
}

// CycleError reports connectivity that never settles into levels
type CycleError struct {
	ElementID string
	Level     int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("connectivity cycle through element %s (level %d)", e.ElementID, e.Level)
}

// TraversalWarning records a relation of the model that could not be read.
// The relation is treated as having no members and analysis continues.
type TraversalWarning struct {
	ElementID string
	Relation  string
	Err       error
}

func (w TraversalWarning) Error() string {
	return fmt.Sprintf("%s of %s: %v", w.Relation, w.ElementID, w.Err)
}

func (w TraversalWarning) Unwrap() error {
	return w.Err
}
