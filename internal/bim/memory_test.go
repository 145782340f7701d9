package bim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderRelations(t *testing.T) {
	b := NewBuilder(SchemaIFC4)
	sink := b.Element(KindDistributionChamber, "CI")
	pipe := b.Element(KindPipeSegment, "TQ", WithProperty("Pset_BR_NBR8160", "MinimalSlope", 1.0))
	wc := b.Element(KindSanitaryTerminal, "WC", WithObjectType("bacia"))
	b.Flow(pipe, sink)
	b.Connect(wc, pipe)

	m, err := b.Build()
	require.NoError(t, err)
	assert.Len(t, m.Elements(), 3)

	connected, err := m.Connected(pipe)
	require.NoError(t, err)
	require.Len(t, connected, 1)
	assert.Equal(t, wc.GlobalID(), connected[0].GlobalID())

	ports, err := m.Ports(pipe)
	require.NoError(t, err)
	require.Len(t, ports, 1)
	assert.Equal(t, Source, ports[0].FlowDirection())

	other, err := m.ConnectedPort(ports[0])
	require.NoError(t, err)
	require.NotNil(t, other)
	assert.Equal(t, Sink, other.FlowDirection())

	owner, err := m.PortOwner(other)
	require.NoError(t, err)
	assert.Equal(t, sink.GlobalID(), owner.GlobalID())

	v, ok := pipe.PropertySets().Get("Pset_BR_NBR8160", "MinimalSlope")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestBuilderRejectsDuplicateIDs(t *testing.T) {
	b := NewBuilder(SchemaIFC4)
	b.Element(KindPipeSegment, "A", WithID("2O2Fr0t4X7Zf8NOew3FLOH"))
	b.Element(KindPipeSegment, "B", WithID("2O2Fr0t4X7Zf8NOew3FLOH"))

	_, err := b.Build()
	assert.Error(t, err)
}

func TestRelationsOfForeignElement(t *testing.T) {
	m, err := NewBuilder(SchemaIFC4).Build()
	require.NoError(t, err)

	other := NewBuilder(SchemaIFC4).Element(KindPipeSegment, "stranger")
	_, err = m.Connected(other)
	assert.True(t, errors.Is(err, ErrUnknownElement))
	_, err = m.Ports(other)
	assert.True(t, errors.Is(err, ErrUnknownElement))
}

func TestByKindIncludesSubkinds(t *testing.T) {
	b := NewBuilder(SchemaIFC4)
	b.Element(KindPipeSegment, "pipe")
	b.Element(KindBuildingElementProxy, "proxy")
	b.Element(KindUnknown, "wall")
	m, err := b.Build()
	require.NoError(t, err)

	got := ByKind(m, KindDistributionElement, KindBuildingElementProxy)
	require.Len(t, got, 2)
	assert.Equal(t, "pipe", got[0].Name())
	assert.Equal(t, "proxy", got[1].Name())
}
