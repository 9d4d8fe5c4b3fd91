package crseg

import (
	"fmt"

	"github.com/paulmach/osm"
)

// EdgeKey identifies undirected edge. Source is always less than Target
type EdgeKey struct {
	Source osm.NodeID
	Target osm.NodeID
}

// NewEdgeKey returns normalized key for the pair of nodes
func NewEdgeKey(u, v osm.NodeID) EdgeKey {
	if u > v {
		u, v = v, u
	}
	return EdgeKey{Source: u, Target: v}
}

func (key EdgeKey) String() string {
	return fmt.Sprintf("%d-%d", key.Source, key.Target)
}

// Segment is an oriented pair of adjacent nodes
type Segment struct {
	From osm.NodeID
	To   osm.NodeID
}

// Key returns undirected key of the segment
func (seg Segment) Key() EdgeKey {
	return NewEdgeKey(seg.From, seg.To)
}

// Reversed returns segment with swapped ends
func (seg Segment) Reversed() Segment {
	return Segment{From: seg.To, To: seg.From}
}

// Edge is an undirected street segment between two adjacent nodes.
// Parallel ways between the same pair of nodes are collapsed into single edge: first tags win
type Edge struct {
	Source      osm.NodeID
	Target      osm.NodeID
	Tags        osm.Tags
	Reliability EdgeReliability

	multiplicity int
}

// Key returns undirected key of the edge
func (edge *Edge) Key() EdgeKey {
	return NewEdgeKey(edge.Source, edge.Target)
}

// Multiplicity returns number of parallel ways collapsed into the edge
func (edge *Edge) Multiplicity() int {
	return edge.multiplicity
}

// Highway returns value of 'highway' tag (empty string if not set)
func (edge *Edge) Highway() string {
	return edge.Tags.Find("highway")
}

// Name returns street name: 'name' tag first, then 'ref' tag
func (edge *Edge) Name() string {
	if name := edge.Tags.Find("name"); name != "" {
		return name
	}
	return edge.Tags.Find("ref")
}

// IsJunction returns true if the edge is a part of junction (roundabout and etc.)
func (edge *Edge) IsJunction() bool {
	return edge.Tags.Find("junction") != ""
}

// IsOneway returns true if the edge could be driven in single direction only
func (edge *Edge) IsOneway() bool {
	onewayText := edge.Tags.Find("oneway")
	if onewayText != "" {
		_, ok := onewayValues[onewayText]
		return ok
	}
	_, ok := junctionTypes[edge.Tags.Find("junction")]
	return ok
}
