// Package nbr8160 holds the sanitary-drainage provisions of ABNT NBR 8160:
// fixture loads in Units of Hydraulic Consumption (UHC) and the capacity of
// building drains and sewers by diameter and slope.
package nbr8160

// NBR 8160 Constants

const (
	// PropertySet is the property set carrying NBR 8160 data on model elements
	PropertySet = "Pset_BR_NBR8160"

	// PropUHC is the explicit fixture load property (UHC)
	PropUHC = "UHC"

	// PropMinimalSlope is the designed minimal slope property (%)
	PropMinimalSlope = "MinimalSlope"

	// SlopeThresholdDN is the smallest diameter (mm) allowed to use slope tiers
	// other than 1%. Branch drains below it are tabulated at 1% only (Table 3).
	SlopeThresholdDN = 150
)

// SlopeTier is a tabulated slope for building sewers (Table 5)
type SlopeTier int

const (
	Slope0_5 SlopeTier = iota // 0.5 %
	Slope1                    // 1 %
	Slope2                    // 2 %
	Slope4                    // 4 %
)

// SlopeTiers lists every tier in table column order
var SlopeTiers = []SlopeTier{Slope0_5, Slope1, Slope2, Slope4}

// Percent returns the slope of the tier in percent
func (t SlopeTier) Percent() float64 {
	switch t {
	case Slope0_5:
		return 0.5
	case Slope1:
		return 1
	case Slope2:
		return 2
	case Slope4:
		return 4
	default:
		return 0
	}
}

// Column returns the CSV column name of the tier
func (t SlopeTier) Column() string {
	switch t {
	case Slope0_5:
		return "slope_0_5"
	case Slope1:
		return "slope_1_0"
	case Slope2:
		return "slope_2_0"
	case Slope4:
		return "slope_4_0"
	default:
		return ""
	}
}

// searchOrder is the order in which tiers are tried for diameters at or
// above SlopeThresholdDN
var searchOrder = []SlopeTier{Slope1, Slope2, Slope4}
