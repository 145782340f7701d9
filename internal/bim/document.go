package bim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gouhc/internal/bim/ifcguid"
	"github.com/go-playground/validator/v10"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Document is the serialized form of a model, as exported by the authoring pipeline
type Document struct {
	Schema          string       `yaml:"schema" json:"schema" validate:"omitempty,oneof=IFC2X3 IFC4 IFC4X3"`
	LengthScale     float64      `yaml:"length_scale" json:"length_scale" validate:"gte=0"`
	Elements        []ElementDoc `yaml:"elements" json:"elements" validate:"required,min=1,dive"`
	Connections     []Connection `yaml:"connections" json:"connections" validate:"dive"`
	PortConnections []Connection `yaml:"port_connections" json:"port_connections" validate:"dive"`
}

// ElementDoc describes one element
type ElementDoc struct {
	ID          string                    `yaml:"id" json:"id" validate:"required,globalid"`
	Kind        string                    `yaml:"kind" json:"kind" validate:"required"`
	Name        string                    `yaml:"name" json:"name"`
	ObjectType  string                    `yaml:"object_type" json:"object_type"`
	Description string                    `yaml:"description" json:"description"`
	Psets       map[string]map[string]any `yaml:"psets" json:"psets"`
	DN          any                       `yaml:"dn" json:"dn"`
	Material    string                    `yaml:"material" json:"material"`
	Length      float64                   `yaml:"length" json:"length" validate:"gte=0"`
	ZStart      float64                   `yaml:"z_start" json:"z_start"`
	ZEnd        float64                   `yaml:"z_end" json:"z_end"`
	Ports       []PortDoc                 `yaml:"ports" json:"ports" validate:"dive"`
}

// PortDoc describes a port nested by an element
type PortDoc struct {
	ID        string `yaml:"id" json:"id" validate:"required,globalid"`
	Direction string `yaml:"direction" json:"direction" validate:"omitempty,oneof=SOURCE SINK SOURCEANDSINK NOTDEFINED"`
}

// Connection relates two elements or two ports by id
type Connection struct {
	From string `yaml:"from" json:"from" validate:"required"`
	To   string `yaml:"to" json:"to" validate:"required"`
}

// DocumentError reports an invalid model document
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("model document %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("globalid", func(fl validator.FieldLevel) bool {
		return ifcguid.Valid(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("registering globalid validation: %v", err))
	}
}

// LoadFile reads a model document from disk. Files ending in .gz or .zst are
// decompressed first; the remaining extension selects JSON or YAML.
func LoadFile(path string) (*MemoryModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	name := path
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, &DocumentError{Path: path, Err: err}
		}
		defer zr.Close()
		r = zr
		name = strings.TrimSuffix(name, filepath.Ext(name))
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, &DocumentError{Path: path, Err: err}
		}
		defer zr.Close()
		r = zr
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DocumentError{Path: path, Err: err}
	}

	var doc Document
	if strings.ToLower(filepath.Ext(name)) == ".json" {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, &DocumentError{Path: path, Err: err}
	}

	m, err := doc.Build()
	if err != nil {
		return nil, &DocumentError{Path: path, Err: err}
	}
	return m, nil
}

// Validate checks field constraints and cross references
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return err
	}

	elements := make(map[string]bool, len(d.Elements))
	ports := make(map[string]bool)
	for _, el := range d.Elements {
		if elements[el.ID] {
			return fmt.Errorf("duplicate element id %s", el.ID)
		}
		elements[el.ID] = true
		for _, p := range el.Ports {
			if ports[p.ID] {
				return fmt.Errorf("duplicate port id %s", p.ID)
			}
			ports[p.ID] = true
		}
	}
	for i, c := range d.Connections {
		if !elements[c.From] || !elements[c.To] {
			return fmt.Errorf("connection %d references unknown element (%s -> %s)", i+1, c.From, c.To)
		}
	}
	for i, c := range d.PortConnections {
		if !ports[c.From] || !ports[c.To] {
			return fmt.Errorf("port connection %d references unknown port (%s -> %s)", i+1, c.From, c.To)
		}
	}
	return nil
}

// Build validates the document and materializes it
func (d *Document) Build() (*MemoryModel, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	schema := d.Schema
	if schema == "" {
		schema = SchemaIFC4
	}
	b := NewBuilder(schema)
	if d.LengthScale > 0 {
		b.LengthScale(d.LengthScale)
	}

	byID := make(map[string]*MemoryElement, len(d.Elements))
	portsByID := make(map[string]*MemoryPort)
	for _, doc := range d.Elements {
		opts := []ElementOption{
			WithID(doc.ID),
			WithObjectType(doc.ObjectType),
			WithDescription(doc.Description),
		}
		for pset, props := range doc.Psets {
			for prop, v := range props {
				opts = append(opts, WithProperty(pset, prop, v))
			}
		}
		if pipe, err := doc.pipeData(); err != nil {
			return nil, err
		} else if pipe != nil {
			opts = append(opts, WithPipe(*pipe))
		}

		el := b.Element(ParseKind(doc.Kind), doc.Name, opts...)
		byID[doc.ID] = el
		for _, p := range doc.Ports {
			portsByID[p.ID] = b.Port(el, p.ID, ParseFlowDirection(p.Direction))
		}
	}
	for _, c := range d.Connections {
		b.Connect(byID[c.From], byID[c.To])
	}
	for _, c := range d.PortConnections {
		b.ConnectPorts(portsByID[c.From], portsByID[c.To])
	}
	return b.Build()
}

func (doc ElementDoc) pipeData() (*PipeData, error) {
	if doc.DN == nil && doc.Material == "" && doc.Length == 0 && doc.ZStart == 0 && doc.ZEnd == 0 {
		return nil, nil
	}
	pipe := &PipeData{
		Material: doc.Material,
		Length:   doc.Length,
		ZStart:   doc.ZStart,
		ZEnd:     doc.ZEnd,
	}
	if doc.DN != nil {
		dn, err := cast.ToFloat64E(doc.DN)
		if err != nil {
			return nil, fmt.Errorf("element %s: dn: %w", doc.ID, err)
		}
		pipe.DN = &dn
	}
	return pipe, nil
}
