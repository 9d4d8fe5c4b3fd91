package crseg

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Node is a vertex of the street network
type Node struct {
	ID          osm.NodeID
	Point       orb.Point
	Tags        osm.Tags
	Reliability NodeReliability

	// ordered unique neighbours
	neighbors []osm.NodeID
}

// Highway returns value of 'highway' tag (empty string if not set)
func (node *Node) Highway() string {
	return node.Tags.Find("highway")
}

// Degree returns number of distinct neighbours
func (node *Node) Degree() int {
	return len(node.neighbors)
}
