package network

import (
	"strings"

	"github.com/alexiusacademia/gouhc/internal/bim"
	"github.com/alexiusacademia/gouhc/internal/bim/ifcguid"
)

// SinkFilter selects the discharge points an analysis starts from.
// Filter is a case-insensitive name substring or an exact GlobalId;
// Keyword is a case-sensitive name substring used when Filter is empty.
type SinkFilter struct {
	Filter  string
	Keyword string
}

func (f SinkFilter) empty() bool {
	return f.Filter == "" && f.Keyword == ""
}

func (f SinkFilter) matches(el bim.Element) bool {
	if f.Filter != "" {
		if ifcguid.LooksLikeID(f.Filter) && el.GlobalID() == f.Filter {
			return true
		}
		return el.Name() != "" && strings.Contains(strings.ToLower(el.Name()), strings.ToLower(f.Filter))
	}
	return el.Name() != "" && strings.Contains(el.Name(), f.Keyword)
}

// sinkCandidates are the element kinds that may act as a discharge point
var sinkCandidates = []bim.Kind{
	bim.KindDistributionElement,
	bim.KindBuildingElementProxy,
	bim.KindFurnishingElement,
}

// findSinks returns the matching candidates that do not drain into another match
func (w *walker) findSinks(filter SinkFilter) ([]bim.Element, error) {
	if filter.empty() {
		return nil, ErrNoSinkFilter
	}

	var matches []bim.Element
	seen := make(map[string]bool)
	for _, el := range bim.ByKind(w.model, sinkCandidates...) {
		if seen[el.GlobalID()] || !filter.matches(el) {
			continue
		}
		seen[el.GlobalID()] = true
		matches = append(matches, el)
	}

	redundant := make(map[string]bool)
	for _, b := range matches {
		for _, a := range w.neighbors(b) {
			if !seen[a.GlobalID()] {
				continue
			}
			if w.direction(b, a) == Upstream {
				redundant[a.GlobalID()] = true
			}
		}
	}

	sinks := matches[:0]
	for _, el := range matches {
		if !redundant[el.GlobalID()] {
			sinks = append(sinks, el)
		}
	}
	return sinks, nil
}
