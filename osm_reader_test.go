package crseg

import (
	"context"
	"strings"
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOSMData = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="55.7500" lon="37.6000"/>
  <node id="2" lat="55.7510" lon="37.6000"/>
  <node id="3" lat="55.7500" lon="37.6020">
    <tag k="highway" v="traffic_signals"/>
  </node>
  <node id="4" lat="55.7490" lon="37.6000"/>
  <node id="5" lat="55.7500" lon="37.5980"/>
  <node id="6" lat="55.7505" lon="37.5995"/>
  <node id="7" lat="55.7600" lon="37.7000"/>
  <way id="100">
    <nd ref="2"/>
    <nd ref="1"/>
    <nd ref="4"/>
    <tag k="highway" v="residential"/>
    <tag k="name" v="Main"/>
  </way>
  <way id="101">
    <nd ref="3"/>
    <nd ref="1"/>
    <nd ref="5"/>
    <tag k="highway" v="primary"/>
    <tag k="name" v="Cross"/>
    <tag k="oneway" v="sometimes"/>
  </way>
  <way id="102">
    <nd ref="1"/>
    <nd ref="6"/>
    <tag k="highway" v="footway"/>
  </way>
  <way id="103">
    <nd ref="5"/>
    <nd ref="6"/>
    <tag k="highway" v="service"/>
    <tag k="service" v="parking_aisle"/>
  </way>
  <way id="104">
    <nd ref="1"/>
    <nd ref="3"/>
    <tag k="highway" v="primary"/>
    <tag k="name" v="Cross"/>
  </way>
  <way id="105">
    <nd ref="6"/>
    <nd ref="7"/>
    <tag k="building" v="yes"/>
  </way>
</osm>`

func TestReadOSM(t *testing.T) {
	reader := NewOSMReader(WithReaderLogger(testLogger()))
	g, err := reader.Read(context.Background(), strings.NewReader(testOSMData), OSM_FORMAT_XML)
	require.NoError(t, err)
	assert.Equal(t, METRIC_GEODESIC, g.Metric())
	assert.Equal(t, 5, g.NodesNum())
	assert.Equal(t, 4, g.EdgesNum())

	node, ok := g.Node(3)
	require.True(t, ok)
	assert.Equal(t, "traffic_signals", node.Highway())
	assert.Equal(t, 37.602, node.Point.Lon())
	assert.Equal(t, 55.75, node.Point.Lat())

	// way 104 duplicates the first segment of way 101
	edge, ok := g.Edge(1, 3)
	require.True(t, ok)
	assert.Equal(t, 2, edge.Multiplicity())
	assert.Equal(t, "Cross", edge.Name())

	assert.ElementsMatch(t, []osm.NodeID{2, 4, 3, 5}, g.Neighbors(1))
	_, ok = g.Node(6)
	assert.False(t, ok)
}

func TestReadOSMKeepNegligible(t *testing.T) {
	reader := NewOSMReader(WithKeepNegligibleHighways(true), WithPBFWorkers(2), WithReaderLogger(testLogger()))
	g, err := reader.Read(context.Background(), strings.NewReader(testOSMData), OSM_FORMAT_XML)
	require.NoError(t, err)
	assert.Equal(t, 6, g.NodesNum())
	assert.Equal(t, 6, g.EdgesNum())
	assert.Equal(t, 2, reader.workers)
}

func TestReadOSMAndSegment(t *testing.T) {
	g, err := NewOSMReader().Read(context.Background(), strings.NewReader(testOSMData), OSM_FORMAT_XML)
	require.NoError(t, err)
	s := process(g)
	crossroads := s.Crossroads()
	require.Len(t, crossroads, 1)
	assert.Equal(t, osm.NodeID(1), crossroads[0].Center())
	assert.Len(t, crossroads[0].Lanes(), 4)
}

func TestGuessOSMFormat(t *testing.T) {
	format, err := guessOSMFormat("moscow.osm.pbf")
	require.NoError(t, err)
	assert.Equal(t, OSM_FORMAT_PBF, format)
	format, err = guessOSMFormat("sample.osm")
	require.NoError(t, err)
	assert.Equal(t, OSM_FORMAT_XML, format)
	assert.Equal(t, "xml", format.String())
	_, err = guessOSMFormat("sample.geojson")
	assert.Error(t, err)

	_, err = ReadOSM(context.Background(), "sample.csv")
	assert.Error(t, err)
	_, err = ReadOSM(context.Background(), "missing.osm")
	assert.Error(t, err)
}
