// Package pipes lists the pipe runs of a model with their real and designed slopes.
package pipes

import (
	"math"
	"sort"

	"github.com/spf13/cast"

	"github.com/alexiusacademia/gouhc/internal/bim"
	"github.com/alexiusacademia/gouhc/internal/capability"
	"github.com/alexiusacademia/gouhc/internal/nbr8160"
)

// minHorizontal is the shortest horizontal projection (m) a slope is computed for
const minHorizontal = 0.001

// Pipe is one listed pipe run. Lengths and elevations are in meters.
type Pipe struct {
	ID         string                `json:"guid"`
	Name       string                `json:"name"`
	DN         *float64              `json:"dn"`
	Material   string                `json:"material"`
	ZStart     float64               `json:"z_start"`
	ZEnd       float64               `json:"z_end"`
	Length     float64               `json:"length"`
	SlopeUHC   float64               `json:"slope_uhc"`  // designed minimal slope (%)
	SlopeReal  float64               `json:"slope_real"` // geometric slope (%)
	Suggestion *capability.SizedPipe `json:"suggestion,omitempty"`
}

// List returns the pipe segments of m sorted by DN descending, then name.
// IFC2X3 models list every flow segment; later schemas list pipe segments.
func List(m bim.Model) []Pipe {
	kind := bim.KindPipeSegment
	if m.Schema() == bim.SchemaIFC2X3 {
		kind = bim.KindFlowSegment
	}

	scale := 1.0
	if ls, ok := m.(bim.LengthScaler); ok && ls.LengthScale() > 0 {
		scale = ls.LengthScale()
	}

	var out []Pipe
	for _, el := range bim.ByKind(m, kind) {
		out = append(out, newPipe(el, scale))
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := dnOf(out[i]), dnOf(out[j])
		if di != dj {
			return di > dj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func newPipe(el bim.Element, scale float64) Pipe {
	p := Pipe{ID: el.GlobalID(), Name: el.Name()}

	if attrs, ok := el.(bim.PipeAttributes); ok {
		if dn, ok := attrs.NominalDiameter(); ok {
			p.DN = &dn
		}
		p.Material = attrs.Material()
		p.Length = attrs.Length() * scale
		p.ZStart = attrs.ZStart() * scale
		p.ZEnd = attrs.ZEnd() * scale
	}

	if v, ok := el.PropertySets().Get(nbr8160.PropertySet, nbr8160.PropMinimalSlope); ok {
		p.SlopeUHC = cast.ToFloat64(v)
	}
	p.SlopeReal = RealSlope(p.Length, p.ZStart, p.ZEnd)
	return p
}

func dnOf(p Pipe) float64 {
	if p.DN == nil {
		return 0
	}
	return *p.DN
}

// RealSlope returns the geometric slope (%) of a straight pipe of the given
// length between two elevations. Vertical or degenerate pipes have slope 0.
func RealSlope(length, zStart, zEnd float64) float64 {
	dz := math.Abs(zStart - zEnd)
	if length <= dz {
		return 0
	}
	horizontal := math.Sqrt(length*length - dz*dz)
	if horizontal <= minHorizontal {
		return 0
	}
	return dz / horizontal * 100
}

// Merge attaches sizing suggestions to the listed pipes by id
func Merge(list []Pipe, sized []capability.SizedPipe) {
	byID := make(map[string]capability.SizedPipe, len(sized))
	for _, s := range sized {
		byID[s.ID] = s
	}
	for i := range list {
		if s, ok := byID[list[i].ID]; ok {
			s := s
			list[i].Suggestion = &s
		}
	}
}
