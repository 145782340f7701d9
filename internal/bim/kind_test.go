package bim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindIsA(t *testing.T) {
	tests := []struct {
		kind  Kind
		other Kind
		want  bool
	}{
		{KindPipeSegment, KindPipeSegment, true},
		{KindPipeSegment, KindFlowSegment, true},
		{KindPipeSegment, KindDistributionElement, true},
		{KindFlowSegment, KindPipeSegment, false},
		{KindSanitaryTerminal, KindFlowTerminal, true},
		{KindDistributionChamber, KindDistributionElement, true},
		{KindBuildingElementProxy, KindDistributionElement, false},
		{KindUnknown, KindDistributionElement, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.other.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.IsA(tt.other))
		})
	}
}

func TestKindIsFixture(t *testing.T) {
	assert.True(t, KindFlowTerminal.IsFixture())
	assert.True(t, KindSanitaryTerminal.IsFixture())
	assert.True(t, KindBuildingElementProxy.IsFixture())
	assert.True(t, KindFurnishingElement.IsFixture())
	assert.False(t, KindPipeSegment.IsFixture())
	assert.False(t, KindUnknown.IsFixture())
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindPipeSegment, ParseKind("IfcPipeSegment"))
	assert.Equal(t, KindPipeSegment, ParseKind("ifcpipesegment"))
	assert.Equal(t, KindFlowSegment, ParseKind("FlowSegment"))
	assert.Equal(t, KindDistributionChamber, ParseKind("IfcDistributionChamberElement"))
	assert.Equal(t, KindUnknown, ParseKind("IfcWall"))
	assert.Equal(t, KindUnknown, ParseKind(""))
}

func TestParseFlowDirection(t *testing.T) {
	assert.Equal(t, Source, ParseFlowDirection("SOURCE"))
	assert.Equal(t, Sink, ParseFlowDirection("sink"))
	assert.Equal(t, SourceAndSink, ParseFlowDirection("SOURCEANDSINK"))
	assert.Equal(t, NotDefined, ParseFlowDirection("$"))
	assert.Equal(t, "SINK", Sink.String())
}
