package nbr8160

import (
	"fmt"
	"strconv"
)

// Sizing is the minimal pipe recommended for an accumulated load
type Sizing struct {
	DN       int     // nominal diameter (mm); 0 when no pipe is required
	Slope    float64 // slope (%); meaningless when Overflow is set
	Overflow bool    // load exceeds the table; DN holds the largest tabulated diameter
}

// Required reports whether the load needs a pipe at all
func (s Sizing) Required() bool {
	return s.DN > 0
}

// DNLabel renders the diameter, using ">DN" for overflow
func (s Sizing) DNLabel() string {
	if s.Overflow {
		return fmt.Sprintf(">%d", s.DN)
	}
	return strconv.Itoa(s.DN)
}

// SlopeLabel renders the slope, or "-" when it is undefined
func (s Sizing) SlopeLabel() string {
	if s.Overflow {
		return "-"
	}
	return strconv.FormatFloat(s.Slope, 'f', -1, 64) + "%"
}

// CalculateSizing returns the smallest diameter and slope whose capacity
// covers the accumulated load. Diameters below SlopeThresholdDN are only
// considered at 1%; larger ones try 1%, 2% and 4% in turn. A load above every
// tabulated capacity yields an overflow marker for engineering review.
func CalculateSizing(load float64, table SizingTable) Sizing {
	if load <= 0 || len(table) == 0 {
		return Sizing{}
	}

	for _, row := range table {
		tiers := searchOrder
		if row.DN < SlopeThresholdDN {
			tiers = searchOrder[:1]
		}
		for _, tier := range tiers {
			if capacity, ok := row.Capacity(tier); ok && load <= capacity {
				return Sizing{DN: row.DN, Slope: tier.Percent()}
			}
		}
	}

	return Sizing{DN: table.Largest(), Overflow: true}
}
