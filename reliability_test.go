package crseg

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
)

func TestNodeReliabilityRules(t *testing.T) {
	tagged := func(highway string) osm.Tags {
		return osm.Tags{{Key: "highway", Value: highway}}
	}
	// center 1 with neighbours placed 100 meters away; degree is controlled by the number of arms
	tests := []struct {
		name     string
		tags     osm.Tags
		arms     []string
		expected NodeReliability
	}{
		{
			name:     "dead end",
			arms:     []string{"A"},
			expected: NodeReliability{Boundary: STRONGLY_YES, Branch: UNCERTAIN, Crossroad: UNCERTAIN},
		},
		{
			name:     "bus stop",
			tags:     tagged("bus_stop"),
			arms:     []string{"A", "A"},
			expected: NodeReliability{Boundary: MODERATE_NO, Branch: UNCERTAIN, Crossroad: UNCERTAIN},
		},
		{
			name:     "crossing",
			tags:     tagged("crossing"),
			arms:     []string{"A", "A"},
			expected: NodeReliability{Boundary: STRONGLY_YES, Branch: UNCERTAIN, Crossroad: UNCERTAIN},
		},
		{
			name:     "crossing on 4-way junction",
			tags:     tagged("crossing"),
			arms:     []string{"A", "A", "B", "B"},
			expected: NodeReliability{Boundary: UNCERTAIN, Branch: UNCERTAIN, Crossroad: STRONGLY_YES},
		},
		{
			name:     "traffic signals",
			tags:     tagged("traffic_signals"),
			arms:     []string{"A", "A", "B"},
			expected: NodeReliability{Boundary: MODERATE_YES, Branch: UNCERTAIN, Crossroad: MODERATE_YES},
		},
		{
			name:     "unknown tag on polyline",
			tags:     tagged("street_lamp"),
			arms:     []string{"A", "A"},
			expected: NodeReliability{Boundary: UNCERTAIN, Branch: UNCERTAIN, Crossroad: UNCERTAIN},
		},
		{
			name:     "long polyline",
			arms:     []string{"A", "A"},
			expected: NodeReliability{Boundary: STRONGLY_NO, Branch: STRONGLY_YES, Crossroad: UNCERTAIN},
		},
		{
			name:     "4-way junction",
			arms:     []string{"A", "A", "A", "A"},
			expected: NodeReliability{Boundary: UNCERTAIN, Branch: UNCERTAIN, Crossroad: STRONGLY_YES},
		},
		{
			name:     "fork of single street",
			arms:     []string{"A", "A", "A"},
			expected: NodeReliability{Boundary: UNCERTAIN, Branch: UNCERTAIN, Crossroad: MODERATE_NO},
		},
		{
			name:     "T-junction",
			arms:     []string{"A", "A", "B"},
			expected: NodeReliability{Boundary: UNCERTAIN, Branch: UNCERTAIN, Crossroad: MODERATE_YES},
		},
		{
			name:     "T-junction with unnamed street",
			arms:     []string{"A", "A", ""},
			expected: NodeReliability{Boundary: UNCERTAIN, Branch: UNCERTAIN, Crossroad: MODERATE_YES},
		},
		{
			name:     "fork of unnamed streets",
			arms:     []string{"", "", ""},
			expected: NodeReliability{Boundary: UNCERTAIN, Branch: UNCERTAIN, Crossroad: UNCERTAIN},
		},
	}
	directions := [][2]float64{{0, 100}, {100, 0}, {0, -100}, {-100, 0}}
	for _, test := range tests {
		nodes := []testNode{{id: 1, tags: test.tags}}
		edges := []testEdge{}
		for i, name := range test.arms {
			id := osm.NodeID(i + 2)
			nodes = append(nodes, testNode{id: id, x: directions[i][0], y: directions[i][1]})
			edges = append(edges, testEdge{1, id, residential(name)})
		}
		g := newPlanarGraph(t, nodes, edges)
		g.ComputeReliability()
		node, _ := g.Node(1)
		if node.Reliability != test.expected {
			t.Errorf("%s: node reliability should be %+v, got %+v", test.name, test.expected, node.Reliability)
		}
	}
}

func TestShortPolylineIsUncertain(t *testing.T) {
	g := newPlanarGraph(t,
		[]testNode{{id: 1}, {id: 2, x: 10}, {id: 3, x: 200}},
		[]testEdge{{1, 2, residential("A")}, {2, 3, residential("A")}},
	)
	g.ComputeReliability()
	node, _ := g.Node(2)
	assert.Equal(t, newNodeReliability(), node.Reliability)
}

func TestEdgeReliabilityRules(t *testing.T) {
	g := newPlanarGraph(t,
		[]testNode{{id: 1}, {id: 2, x: 10}, {id: 3, x: 100}, {id: 4, x: 100, y: 100}},
		[]testEdge{
			{1, 2, residential("A")},
			{2, 3, residential("A")},
			{3, 4, residential("", osm.Tag{Key: "junction", Value: "roundabout"})},
		},
	)
	g.ComputeReliability()

	short, _ := g.Edge(1, 2)
	assert.Equal(t, EdgeReliability{Branch: UNCERTAIN, Crossroad: UNCERTAIN}, short.Reliability)

	long, _ := g.Edge(2, 3)
	assert.Equal(t, EdgeReliability{Branch: STRONGLY_YES, Crossroad: UNCERTAIN}, long.Reliability)
	assert.Equal(t, AXIS_BRANCH, long.Reliability.BestAxis())

	// junction wins over length
	junction, _ := g.Edge(3, 4)
	assert.Equal(t, EdgeReliability{Branch: UNCERTAIN, Crossroad: STRONGLY_YES}, junction.Reliability)
	assert.True(t, junction.Reliability.IsStrongCrossroad())
	assert.Equal(t, AXIS_CROSSROAD, junction.Reliability.BestAxis())
}

func TestComputeReliabilityIsRepeatable(t *testing.T) {
	g := fourWayGraph(t)
	g.ComputeReliability()
	first := make(map[osm.NodeID]NodeReliability)
	for _, node := range g.Nodes() {
		first[node.ID] = node.Reliability
	}
	g.ComputeReliability()
	for _, node := range g.Nodes() {
		if first[node.ID] != node.Reliability {
			t.Errorf("Node %d: reliability changed from %+v to %+v", node.ID, first[node.ID], node.Reliability)
		}
	}
}

func TestNodeReliabilityPredicates(t *testing.T) {
	r := NodeReliability{Boundary: WEAKLY_YES, Branch: WEAKLY_NO, Crossroad: STRONGLY_YES}
	assert.True(t, r.IsWeaklyBoundary())
	assert.False(t, r.IsStrongBoundary())
	assert.False(t, r.IsWeaklyNoBoundary())
	assert.True(t, r.IsStrongCrossroad())
	assert.False(t, r.IsWeaklyBranch())
	assert.Equal(t, AXIS_CROSSROAD, r.BestAxis())

	tie := NodeReliability{Boundary: UNCERTAIN, Branch: UNCERTAIN, Crossroad: UNCERTAIN}
	assert.Equal(t, AXIS_BOUNDARY, tie.BestAxis())

	no := NodeReliability{Boundary: STRONGLY_NO, Branch: STRONGLY_YES, Crossroad: UNCERTAIN}
	assert.True(t, no.IsStrongNoBoundary())
	assert.True(t, no.IsWeaklyNoBoundary())
	assert.Equal(t, AXIS_BRANCH, no.BestAxis())
	assert.Equal(t, "branch", no.BestAxis().String())
}
