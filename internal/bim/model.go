// Package bim defines the read-only view of a building information model
// that the drainage analyzer consumes, and an in-memory implementation of it.
package bim

import "errors"

// Schema identifiers
const (
	SchemaIFC2X3 = "IFC2X3"
	SchemaIFC4   = "IFC4"
	SchemaIFC4X3 = "IFC4X3"
)

// ErrUnknownElement is returned when a relation is requested for an element
// or port that does not belong to the model
var ErrUnknownElement = errors.New("element not part of model")

// PropertySets maps property-set name to property name to value
type PropertySets map[string]map[string]any

// Get returns a single property value
func (p PropertySets) Get(pset, prop string) (any, bool) {
	props, ok := p[pset]
	if !ok {
		return nil, false
	}
	v, ok := props[prop]
	return v, ok
}

// Element is an opaque handle to a model element
type Element interface {
	GlobalID() string
	Name() string
	ObjectType() string
	Description() string
	Kind() Kind
	PropertySets() PropertySets
}

// Port is a distribution port nested by an element
type Port interface {
	GlobalID() string
	FlowDirection() FlowDirection
}

// Model gives access to the elements of an opened model and to their relations.
// Relation lookups return an error when the underlying data is malformed;
// callers decide whether that is fatal.
type Model interface {
	Schema() string
	Elements() []Element

	// Connected returns the elements related to el by direct element connections
	Connected(el Element) ([]Element, error)
	// Ports returns the distribution ports nested by el
	Ports(el Element) ([]Port, error)
	// ConnectedPort returns the port on the other side of p, or nil
	ConnectedPort(p Port) (Port, error)
	// PortOwner returns the element nesting p, or nil
	PortOwner(p Port) (Element, error)
}

// PipeAttributes is implemented by elements that carry precomputed pipe data
type PipeAttributes interface {
	NominalDiameter() (float64, bool)
	Material() string
	Length() float64
	ZStart() float64
	ZEnd() float64
}

// LengthScaler is implemented by models that know their length unit
type LengthScaler interface {
	LengthScale() float64
}

// ByKind returns the elements of m that are any of the given kinds, in model order
func ByKind(m Model, kinds ...Kind) []Element {
	var out []Element
	for _, el := range m.Elements() {
		for _, k := range kinds {
			if el.Kind().IsA(k) {
				out = append(out, el)
				break
			}
		}
	}
	return out
}
