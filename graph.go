package crseg

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

var (
	// ErrUnknownNode is returned when an edge references a node which has not been added to the graph
	ErrUnknownNode = errors.New("unknown node")
	// ErrDuplicateNode is returned when node with the same identifier has been added already
	ErrDuplicateNode = errors.New("duplicate node")
	// ErrSelfLoop is returned on attempt to add an edge from node to itself
	ErrSelfLoop = errors.New("self-loop edge")
)

// Graph is an undirected street network. Parallel edges between the same pair of nodes are collapsed
type Graph struct {
	metric Metric

	nodes     map[osm.NodeID]*Node
	nodeOrder []osm.NodeID
	edges     map[EdgeKey]*Edge
	edgeOrder []EdgeKey
}

// NewGraph returns empty graph which measures distances with given metric
func NewGraph(metric Metric) *Graph {
	if metric != METRIC_PLANAR {
		metric = METRIC_GEODESIC
	}
	return &Graph{
		metric: metric,
		nodes:  make(map[osm.NodeID]*Node),
		edges:  make(map[EdgeKey]*Edge),
	}
}

// Metric returns the way distances are measured
func (g *Graph) Metric() Metric {
	return g.metric
}

// AddNode adds node to the graph
func (g *Graph) AddNode(id osm.NodeID, pt orb.Point, tags osm.Tags) error {
	if _, ok := g.nodes[id]; ok {
		return errors.Wrapf(ErrDuplicateNode, "Can't add node %d", id)
	}
	nodeTags := make(osm.Tags, len(tags))
	copy(nodeTags, tags)
	g.nodes[id] = &Node{
		ID:          id,
		Point:       pt,
		Tags:        nodeTags,
		Reliability: newNodeReliability(),
	}
	g.nodeOrder = append(g.nodeOrder, id)
	return nil
}

// AddEdge adds undirected edge between two existing nodes. If the edge exists already its multiplicity is incremented
func (g *Graph) AddEdge(u, v osm.NodeID, tags osm.Tags) error {
	if u == v {
		return errors.Wrapf(ErrSelfLoop, "Can't add edge %d-%d", u, v)
	}
	source, ok := g.nodes[u]
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "Can't add edge %d-%d: source", u, v)
	}
	target, ok := g.nodes[v]
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "Can't add edge %d-%d: target", u, v)
	}
	key := NewEdgeKey(u, v)
	if edge, ok := g.edges[key]; ok {
		edge.multiplicity++
		return nil
	}
	edgeTags := make(osm.Tags, len(tags))
	copy(edgeTags, tags)
	g.edges[key] = &Edge{
		Source:       u,
		Target:       v,
		Tags:         edgeTags,
		Reliability:  newEdgeReliability(),
		multiplicity: 1,
	}
	g.edgeOrder = append(g.edgeOrder, key)
	source.neighbors = append(source.neighbors, v)
	target.neighbors = append(target.neighbors, u)
	return nil
}

// Node returns node by its identifier
func (g *Graph) Node(id osm.NodeID) (*Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// Edge returns edge between two nodes (order of nodes does not matter)
func (g *Graph) Edge(u, v osm.NodeID) (*Edge, bool) {
	edge, ok := g.edges[NewEdgeKey(u, v)]
	return edge, ok
}

// Nodes returns nodes in insertion order
func (g *Graph) Nodes() []*Node {
	ans := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		ans = append(ans, g.nodes[id])
	}
	return ans
}

// Edges returns edges in insertion order
func (g *Graph) Edges() []*Edge {
	ans := make([]*Edge, 0, len(g.edgeOrder))
	for _, key := range g.edgeOrder {
		ans = append(ans, g.edges[key])
	}
	return ans
}

// NodesNum returns number of nodes
func (g *Graph) NodesNum() int {
	return len(g.nodeOrder)
}

// EdgesNum returns number of distinct edges
func (g *Graph) EdgesNum() int {
	return len(g.edgeOrder)
}

// Neighbors returns ordered unique neighbours of the node
func (g *Graph) Neighbors(id osm.NodeID) []osm.NodeID {
	node, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return node.neighbors
}

// Degree returns number of distinct neighbours of the node
func (g *Graph) Degree(id osm.NodeID) int {
	return len(g.Neighbors(id))
}

// Point returns coordinates of the node
func (g *Graph) Point(id osm.NodeID) orb.Point {
	node, ok := g.nodes[id]
	if !ok {
		return orb.Point{}
	}
	return node.Point
}

// Distance returns distance between two nodes in meters
func (g *Graph) Distance(u, v osm.NodeID) float64 {
	return g.metric.distance(g.Point(u), g.Point(v))
}

// DistanceToPoint returns distance between node and arbitrary point in meters
func (g *Graph) DistanceToPoint(u osm.NodeID, pt orb.Point) float64 {
	return g.metric.distance(g.Point(u), pt)
}

// Bearing returns compass bearing from u to v in degrees [0; 360)
func (g *Graph) Bearing(u, v osm.NodeID) float64 {
	return g.metric.bearing(g.Point(u), g.Point(v))
}

// Centroid returns center point of given nodes
func (g *Graph) Centroid(ids []osm.NodeID) orb.Point {
	pts := make([]orb.Point, 0, len(ids))
	for _, id := range ids {
		pts = append(pts, g.Point(id))
	}
	return g.metric.centroid(pts)
}

// ComputeReliability (re)initializes reliability scores of every node and edge
func (g *Graph) ComputeReliability() {
	for _, id := range g.nodeOrder {
		g.nodes[id].Reliability = g.scoreNode(id)
	}
	for _, key := range g.edgeOrder {
		edge := g.edges[key]
		edge.Reliability = g.scoreEdge(edge)
	}
}

func (g *Graph) nodeReliability(id osm.NodeID) NodeReliability {
	node, ok := g.nodes[id]
	if !ok {
		return newNodeReliability()
	}
	return node.Reliability
}
