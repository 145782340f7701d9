package network

import (
	"github.com/spf13/cast"

	"github.com/alexiusacademia/gouhc/internal/bim"
	"github.com/alexiusacademia/gouhc/internal/nbr8160"
)

// BaseLoad returns the fixture load of a single element. An explicit non-zero
// UHC property wins; fixture-like elements otherwise fall back to the
// appliance table. Everything else carries no load of its own.
func BaseLoad(el bim.Element, appliances []nbr8160.ApplianceRow) float64 {
	if v, ok := el.PropertySets().Get(nbr8160.PropertySet, nbr8160.PropUHC); ok {
		if uhc, err := cast.ToFloat64E(v); err == nil && uhc != 0 {
			return uhc
		}
	}
	if !el.Kind().IsFixture() {
		return 0
	}
	row, ok := nbr8160.MatchAppliance(appliances, el.Name(), el.ObjectType(), el.Description())
	if !ok {
		return 0
	}
	return row.UHC
}
