package bim

import (
	"fmt"

	"github.com/alexiusacademia/gouhc/internal/bim/ifcguid"
)

// PipeData holds pipe attributes computed by the authoring tool
type PipeData struct {
	DN       *float64
	Material string
	Length   float64
	ZStart   float64
	ZEnd     float64
}

// MemoryElement is an element of a MemoryModel
type MemoryElement struct {
	id          string
	name        string
	objectType  string
	description string
	kind        Kind
	psets       PropertySets
	ports       []*MemoryPort
	pipe        *PipeData
}

// GlobalID returns the 22-character IFC GlobalId
func (e *MemoryElement) GlobalID() string { return e.id }

// Name returns the element name, possibly empty
func (e *MemoryElement) Name() string { return e.name }

// ObjectType returns the free-text classification
func (e *MemoryElement) ObjectType() string { return e.objectType }

// Description returns the element description
func (e *MemoryElement) Description() string { return e.description }

// Kind returns the element kind
func (e *MemoryElement) Kind() Kind { return e.kind }

// PropertySets returns the property sets by name
func (e *MemoryElement) PropertySets() PropertySets { return e.psets }

// NominalDiameter returns the pipe DN when one was recorded
func (e *MemoryElement) NominalDiameter() (float64, bool) {
	if e.pipe == nil || e.pipe.DN == nil {
		return 0, false
	}
	return *e.pipe.DN, true
}

// Material returns the pipe material, empty for non-pipes
func (e *MemoryElement) Material() string {
	if e.pipe == nil {
		return ""
	}
	return e.pipe.Material
}

// Length returns the pipe length in model units
func (e *MemoryElement) Length() float64 {
	if e.pipe == nil {
		return 0
	}
	return e.pipe.Length
}

// ZStart returns the elevation of the pipe start in model units
func (e *MemoryElement) ZStart() float64 {
	if e.pipe == nil {
		return 0
	}
	return e.pipe.ZStart
}

// ZEnd returns the elevation of the pipe end in model units
func (e *MemoryElement) ZEnd() float64 {
	if e.pipe == nil {
		return 0
	}
	return e.pipe.ZEnd
}

// MemoryPort is a distribution port of a MemoryModel
type MemoryPort struct {
	id        string
	direction FlowDirection
	owner     *MemoryElement
}

// GlobalID returns the port GlobalId
func (p *MemoryPort) GlobalID() string { return p.id }

// FlowDirection returns the flow attribute of the port
func (p *MemoryPort) FlowDirection() FlowDirection { return p.direction }

// MemoryModel is a fully materialized model held in memory
type MemoryModel struct {
	schema      string
	lengthScale float64
	order       []*MemoryElement
	elements    map[string]*MemoryElement
	ports       map[string]*MemoryPort
	links       map[string][]*MemoryElement
	portLinks   map[string][]*MemoryPort
}

// Schema returns the IFC schema name, e.g. IFC4
func (m *MemoryModel) Schema() string { return m.schema }

// LengthScale converts model length units to meters
func (m *MemoryModel) LengthScale() float64 { return m.lengthScale }

// Elements returns every element in insertion order
func (m *MemoryModel) Elements() []Element {
	out := make([]Element, len(m.order))
	for i, el := range m.order {
		out[i] = el
	}
	return out
}

// Element looks an element up by id
func (m *MemoryModel) Element(id string) (Element, bool) {
	el, ok := m.elements[id]
	return el, ok
}

// Connected returns the elements directly connected to el
func (m *MemoryModel) Connected(el Element) ([]Element, error) {
	if _, ok := m.elements[el.GlobalID()]; !ok {
		return nil, fmt.Errorf("connections of %s: %w", el.GlobalID(), ErrUnknownElement)
	}
	linked := m.links[el.GlobalID()]
	out := make([]Element, len(linked))
	for i, other := range linked {
		out[i] = other
	}
	return out, nil
}

// Ports returns the ports nested in el
func (m *MemoryModel) Ports(el Element) ([]Port, error) {
	me, ok := m.elements[el.GlobalID()]
	if !ok {
		return nil, fmt.Errorf("ports of %s: %w", el.GlobalID(), ErrUnknownElement)
	}
	out := make([]Port, len(me.ports))
	for i, p := range me.ports {
		out[i] = p
	}
	return out, nil
}

// ConnectedPort returns the port linked to p, or nil when p is unconnected
func (m *MemoryModel) ConnectedPort(p Port) (Port, error) {
	if _, ok := m.ports[p.GlobalID()]; !ok {
		return nil, fmt.Errorf("port %s: %w", p.GlobalID(), ErrUnknownElement)
	}
	others := m.portLinks[p.GlobalID()]
	if len(others) == 0 {
		return nil, nil
	}
	return others[0], nil
}

// PortOwner returns the element p is nested in, or nil for an orphan port
func (m *MemoryModel) PortOwner(p Port) (Element, error) {
	mp, ok := m.ports[p.GlobalID()]
	if !ok {
		return nil, fmt.Errorf("port %s: %w", p.GlobalID(), ErrUnknownElement)
	}
	if mp.owner == nil {
		return nil, nil
	}
	return mp.owner, nil
}

// ElementOption customizes an element added through a Builder
type ElementOption func(*MemoryElement)

// WithID sets an explicit GlobalId instead of a generated one
func WithID(id string) ElementOption {
	return func(e *MemoryElement) { e.id = id }
}

// WithObjectType sets the free-text classification
func WithObjectType(s string) ElementOption {
	return func(e *MemoryElement) { e.objectType = s }
}

// WithDescription sets the element description
func WithDescription(s string) ElementOption {
	return func(e *MemoryElement) { e.description = s }
}

// WithProperty sets a single property inside a property set
func WithProperty(pset, prop string, value any) ElementOption {
	return func(e *MemoryElement) {
		if e.psets == nil {
			e.psets = make(PropertySets)
		}
		if e.psets[pset] == nil {
			e.psets[pset] = make(map[string]any)
		}
		e.psets[pset][prop] = value
	}
}

// WithPipe attaches pipe attributes
func WithPipe(data PipeData) ElementOption {
	return func(e *MemoryElement) {
		d := data
		e.pipe = &d
	}
}

// Builder assembles a MemoryModel
type Builder struct {
	model *MemoryModel
	err   error
}

// NewBuilder starts an empty model of the given schema
func NewBuilder(schema string) *Builder {
	return &Builder{
		model: &MemoryModel{
			schema:      schema,
			lengthScale: 1,
			elements:    make(map[string]*MemoryElement),
			ports:       make(map[string]*MemoryPort),
			links:       make(map[string][]*MemoryElement),
			portLinks:   make(map[string][]*MemoryPort),
		},
	}
}

// LengthScale sets the factor converting model lengths to meters
func (b *Builder) LengthScale(scale float64) *Builder {
	b.model.lengthScale = scale
	return b
}

// Element adds an element and returns it
func (b *Builder) Element(kind Kind, name string, opts ...ElementOption) *MemoryElement {
	el := &MemoryElement{kind: kind, name: name}
	for _, opt := range opts {
		opt(el)
	}
	if el.id == "" {
		el.id = ifcguid.New()
	}
	if _, dup := b.model.elements[el.id]; dup {
		b.fail(fmt.Errorf("duplicate element id %s", el.id))
		return el
	}
	b.model.elements[el.id] = el
	b.model.order = append(b.model.order, el)
	return el
}

// Port nests a new port in el. An empty id generates one.
func (b *Builder) Port(el *MemoryElement, id string, dir FlowDirection) *MemoryPort {
	if id == "" {
		id = ifcguid.New()
	}
	p := &MemoryPort{id: id, direction: dir, owner: el}
	if _, dup := b.model.ports[id]; dup {
		b.fail(fmt.Errorf("duplicate port id %s", id))
		return p
	}
	b.model.ports[id] = p
	el.ports = append(el.ports, p)
	return p
}

// Connect records a direct element connection
func (b *Builder) Connect(a, c *MemoryElement) *Builder {
	b.model.links[a.id] = append(b.model.links[a.id], c)
	b.model.links[c.id] = append(b.model.links[c.id], a)
	return b
}

// ConnectPorts records a port-to-port connection
func (b *Builder) ConnectPorts(p, q *MemoryPort) *Builder {
	b.model.portLinks[p.id] = append(b.model.portLinks[p.id], q)
	b.model.portLinks[q.id] = append(b.model.portLinks[q.id], p)
	return b
}

// Flow connects from and to through a SOURCE port on from and a SINK port on to
func (b *Builder) Flow(from, to *MemoryElement) *Builder {
	out := b.Port(from, "", Source)
	in := b.Port(to, "", Sink)
	return b.ConnectPorts(out, in)
}

// Build returns the assembled model or the first construction error
func (b *Builder) Build() (*MemoryModel, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.model, nil
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
