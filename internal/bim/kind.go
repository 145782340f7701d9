package bim

import "strings"

// Kind is the closed set of element types the analyzer understands.
// Anything else parses to KindUnknown, which is never a fixture and never a pipe.
type Kind int

const (
	KindUnknown Kind = iota
	KindDistributionElement
	KindDistributionFlowElement
	KindFlowSegment
	KindPipeSegment
	KindFlowFitting
	KindPipeFitting
	KindFlowTerminal
	KindSanitaryTerminal
	KindWasteTerminal
	KindDistributionChamber
	KindBuildingElementProxy
	KindFurnishingElement
)

// kindNames maps each kind to its IFC entity name
var kindNames = map[Kind]string{
	KindUnknown:                 "IfcProduct",
	KindDistributionElement:     "IfcDistributionElement",
	KindDistributionFlowElement: "IfcDistributionFlowElement",
	KindFlowSegment:             "IfcFlowSegment",
	KindPipeSegment:             "IfcPipeSegment",
	KindFlowFitting:             "IfcFlowFitting",
	KindPipeFitting:             "IfcPipeFitting",
	KindFlowTerminal:            "IfcFlowTerminal",
	KindSanitaryTerminal:        "IfcSanitaryTerminal",
	KindWasteTerminal:           "IfcWasteTerminal",
	KindDistributionChamber:     "IfcDistributionChamberElement",
	KindBuildingElementProxy:    "IfcBuildingElementProxy",
	KindFurnishingElement:       "IfcFurnishingElement",
}

// supertypes follows the IFC inheritance tree for the kinds above
var supertypes = map[Kind]Kind{
	KindDistributionFlowElement: KindDistributionElement,
	KindFlowSegment:             KindDistributionFlowElement,
	KindPipeSegment:             KindFlowSegment,
	KindFlowFitting:             KindDistributionFlowElement,
	KindPipeFitting:             KindFlowFitting,
	KindFlowTerminal:            KindDistributionFlowElement,
	KindSanitaryTerminal:        KindFlowTerminal,
	KindWasteTerminal:           KindFlowTerminal,
	KindDistributionChamber:     KindDistributionFlowElement,
}

// String returns the IFC entity name of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// IsA reports whether k is other or one of its subtypes
func (k Kind) IsA(other Kind) bool {
	for cur, ok := k, true; ok; cur, ok = supertypes[cur] {
		if cur == other {
			return true
		}
	}
	return false
}

// IsFixture reports whether elements of this kind carry their own drainage load
func (k Kind) IsFixture() bool {
	return k.IsA(KindFlowTerminal) || k == KindBuildingElementProxy || k == KindFurnishingElement
}

// IsPipe reports whether the kind is reported as a pipe run
func (k Kind) IsPipe() bool {
	return k.IsA(KindFlowSegment)
}

// ParseKind resolves an IFC entity name (case-insensitive, "Ifc" prefix optional)
func ParseKind(s string) Kind {
	name := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(name, "ifc") {
		name = "ifc" + name
	}
	for k, n := range kindNames {
		if k != KindUnknown && strings.ToLower(n) == name {
			return k
		}
	}
	return KindUnknown
}

// FlowDirection is the flow attribute of a distribution port
type FlowDirection int

const (
	NotDefined FlowDirection = iota
	Source
	Sink
	SourceAndSink
)

func (d FlowDirection) String() string {
	switch d {
	case Source:
		return "SOURCE"
	case Sink:
		return "SINK"
	case SourceAndSink:
		return "SOURCEANDSINK"
	default:
		return "NOTDEFINED"
	}
}

// ParseFlowDirection accepts the IFC enumeration labels; anything else is NotDefined
func ParseFlowDirection(s string) FlowDirection {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SOURCE":
		return Source
	case "SINK":
		return Sink
	case "SOURCEANDSINK":
		return SourceAndSink
	default:
		return NotDefined
	}
}
