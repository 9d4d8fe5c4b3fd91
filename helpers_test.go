package crseg

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/require"
)

type testNode struct {
	id   osm.NodeID
	x, y float64
	tags osm.Tags
}

type testEdge struct {
	u, v osm.NodeID
	tags osm.Tags
}

func newPlanarGraph(t *testing.T, nodes []testNode, edges []testEdge) *Graph {
	t.Helper()
	g := NewGraph(METRIC_PLANAR)
	for _, n := range nodes {
		require.NoError(t, g.AddNode(n.id, orb.Point{n.x, n.y}, n.tags))
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e.u, e.v, e.tags))
	}
	return g
}

func street(highway, name string, extra ...osm.Tag) osm.Tags {
	tags := osm.Tags{{Key: "highway", Value: highway}}
	if name != "" {
		tags = append(tags, osm.Tag{Key: "name", Value: name})
	}
	return append(tags, extra...)
}

func residential(name string, extra ...osm.Tag) osm.Tags {
	return street("residential", name, extra...)
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// fourWayGraph is a single 4-way junction with 200 meters long arms
func fourWayGraph(t *testing.T) *Graph {
	return newPlanarGraph(t,
		[]testNode{
			{id: 1, x: 0, y: 0},
			{id: 2, x: 0, y: 200},
			{id: 3, x: 200, y: 0},
			{id: 4, x: 0, y: -200},
			{id: 5, x: -200, y: 0},
		},
		[]testEdge{
			{1, 2, residential("Main")},
			{1, 3, residential("Cross")},
			{1, 4, residential("Main")},
			{1, 5, residential("Cross")},
		},
	)
}

// shortArmGraph is a 4-way junction which northern arm is split by a crossing 10 meters away
func shortArmGraph(t *testing.T) *Graph {
	return newPlanarGraph(t,
		[]testNode{
			{id: 1},
			{id: 2, y: 10, tags: osm.Tags{{Key: "highway", Value: "crossing"}}},
			{id: 3, y: 200},
			{id: 4, x: 200},
			{id: 5, y: -200},
			{id: 6, x: -200},
		},
		[]testEdge{
			{1, 2, residential("Main")},
			{2, 3, residential("Main")},
			{1, 4, residential("Cross")},
			{1, 5, residential("Main")},
			{1, 6, residential("Cross")},
		},
	)
}

// roundaboutGraph is a ring of radius 10 tagged as roundabout with four 200 meters long arms
func roundaboutGraph(t *testing.T) *Graph {
	ring := residential("", osm.Tag{Key: "junction", Value: "roundabout"})
	return newPlanarGraph(t,
		[]testNode{
			{id: 10, x: 10, y: 0},
			{id: 11, x: 0, y: 10},
			{id: 12, x: -10, y: 0},
			{id: 13, x: 0, y: -10},
			{id: 20, x: 210, y: 0},
			{id: 21, x: 0, y: 210},
			{id: 22, x: -210, y: 0},
			{id: 23, x: 0, y: -210},
		},
		[]testEdge{
			{10, 11, ring},
			{11, 12, ring},
			{12, 13, ring},
			{13, 10, ring},
			{10, 20, residential("East")},
			{11, 21, residential("North")},
			{12, 22, residential("West")},
			{13, 23, residential("South")},
		},
	)
}

// twinJunctionsGraph is a pair of 3-way junctions on the same 3-lane street separated by given distance
func twinJunctionsGraph(t *testing.T, distance float64) *Graph {
	return namedTwinJunctionsGraph(t, distance, "Main")
}

// namedTwinJunctionsGraph is twinJunctionsGraph which connector between junctions has given name
func namedTwinJunctionsGraph(t *testing.T, distance float64, connector string) *Graph {
	lanes := osm.Tag{Key: "lanes", Value: "3"}
	return newPlanarGraph(t,
		[]testNode{
			{id: 1, x: 0, y: 0},
			{id: 2, x: distance, y: 0},
			{id: 3, x: -200, y: 0},
			{id: 4, x: 0, y: 200},
			{id: 5, x: distance + 200, y: 0},
			{id: 6, x: distance, y: -200},
		},
		[]testEdge{
			{1, 3, residential("Main", lanes)},
			{1, 4, residential("First", lanes)},
			{1, 2, residential(connector, lanes)},
			{2, 5, residential("Main", lanes)},
			{2, 6, residential("Second", lanes)},
		},
	)
}

// dualJunctionGraph is a pair of 3-way junctions 30 meters apart joined by 5-lane "Link" street.
// Both junctions have northern arms with given names
func dualJunctionGraph(t *testing.T, northA, northB string) *Graph {
	lanes := osm.Tag{Key: "lanes", Value: "5"}
	return newPlanarGraph(t,
		[]testNode{
			{id: 1, x: 0, y: 0},
			{id: 2, x: 30, y: 0},
			{id: 3, x: 0, y: 200},
			{id: 4, x: -200, y: 0},
			{id: 5, x: 30, y: 200},
			{id: 6, x: 230, y: 0},
		},
		[]testEdge{
			{1, 3, residential(northA, lanes)},
			{1, 4, residential("West", lanes)},
			{1, 2, residential("Link", lanes)},
			{2, 5, residential(northB, lanes)},
			{2, 6, residential("East", lanes)},
		},
	)
}

// triangleGraph is three 3-way junctions connected by short unnamed polylines
func triangleGraph(t *testing.T) *Graph {
	side := residential("")
	return newPlanarGraph(t,
		[]testNode{
			{id: 1, x: 0, y: 0},
			{id: 2, x: 30, y: 0},
			{id: 3, x: 15, y: 25.98},
			{id: 4, x: 15, y: 0},
			{id: 5, x: 22.5, y: 12.99},
			{id: 6, x: 7.5, y: 12.99},
			{id: 7, x: -173, y: -100},
			{id: 8, x: 203, y: -100},
			{id: 9, x: 15, y: 226},
		},
		[]testEdge{
			{1, 4, side},
			{4, 2, side},
			{2, 5, side},
			{5, 3, side},
			{3, 6, side},
			{6, 1, side},
			{1, 7, residential("A Street")},
			{2, 8, residential("B Street")},
			{3, 9, residential("C Street")},
		},
	)
}

// parallelLinksGraph is two 3-way junctions connected by two short parallel polylines
func parallelLinksGraph(t *testing.T) *Graph {
	side := residential("")
	return newPlanarGraph(t,
		[]testNode{
			{id: 1, x: 0, y: 0},
			{id: 2, x: 30, y: 0},
			{id: 3, x: 15, y: 5},
			{id: 4, x: 15, y: -5},
			{id: 5, x: -200, y: 0},
			{id: 6, x: 230, y: 0},
		},
		[]testEdge{
			{1, 3, side},
			{3, 2, side},
			{1, 4, side},
			{4, 2, side},
			{1, 5, residential("West")},
			{2, 6, residential("East")},
		},
	)
}
