package crseg

import (
	"fmt"

	"github.com/paulmach/osm"
)

type RegionKind uint16

const (
	REGION_CROSSROAD = RegionKind(iota + 1)
	REGION_LINK
	REGION_INNER
)

func (iotaIdx RegionKind) String() string {
	return [...]string{"crossroad", "link", "inner"}[iotaIdx-1]
}

// Region is a connected set of graph nodes and edges claimed by single owner
type Region struct {
	ID   RegionID
	kind RegionKind

	graph *Graph
	// nil for snapshots which do not claim anything
	owners *Ownership

	nodes   []osm.NodeID
	nodeSet map[osm.NodeID]struct{}
	edges   []Segment
	edgeSet map[EdgeKey]struct{}
}

func newRegion(id RegionID, kind RegionKind, g *Graph, owners *Ownership) *Region {
	return &Region{
		ID:      id,
		kind:    kind,
		graph:   g,
		owners:  owners,
		nodes:   []osm.NodeID{},
		nodeSet: make(map[osm.NodeID]struct{}),
		edges:   []Segment{},
		edgeSet: make(map[EdgeKey]struct{}),
	}
}

func (region *Region) String() string {
	return fmt.Sprintf("%s #%d (nodes: %d, edges: %d)", region.kind, region.ID, len(region.nodes), len(region.edges))
}

// Kind returns kind of the region
func (region *Region) Kind() RegionKind {
	return region.kind
}

// Nodes returns nodes of the region in the order they have been added
func (region *Region) Nodes() []osm.NodeID {
	ans := make([]osm.NodeID, len(region.nodes))
	copy(ans, region.nodes)
	return ans
}

// Edges returns edges of the region in the order they have been added
func (region *Region) Edges() []Segment {
	ans := make([]Segment, len(region.edges))
	copy(ans, region.edges)
	return ans
}

// HasNode returns true if the node belongs to the region
func (region *Region) HasNode(id osm.NodeID) bool {
	_, ok := region.nodeSet[id]
	return ok
}

// HasEdge returns true if the edge belongs to the region (order of nodes does not matter)
func (region *Region) HasEdge(u, v osm.NodeID) bool {
	_, ok := region.edgeSet[NewEdgeKey(u, v)]
	return ok
}

func (region *Region) isUnclaimedNode(id osm.NodeID) bool {
	if region.owners == nil {
		return !region.HasNode(id)
	}
	_, ok := region.owners.NodeOwner(id)
	return !ok
}

func (region *Region) isUnclaimedEdge(u, v osm.NodeID) bool {
	if region.owners == nil {
		return !region.HasEdge(u, v)
	}
	_, ok := region.owners.EdgeOwner(u, v)
	return !ok
}

// addNode claims the node. Returns false if the node is owned by another region
func (region *Region) addNode(id osm.NodeID) bool {
	if region.HasNode(id) {
		return true
	}
	if region.owners != nil && !region.owners.claimNode(id, region.ID) {
		return false
	}
	region.nodes = append(region.nodes, id)
	region.nodeSet[id] = struct{}{}
	return true
}

// addEdge claims the edge. Returns false if the edge is owned by another region or does not exist
func (region *Region) addEdge(u, v osm.NodeID) bool {
	if region.HasEdge(u, v) {
		return true
	}
	if _, ok := region.graph.Edge(u, v); !ok {
		return false
	}
	key := NewEdgeKey(u, v)
	if region.owners != nil && !region.owners.claimEdge(key, region.ID) {
		return false
	}
	region.edges = append(region.edges, Segment{From: u, To: v})
	region.edgeSet[key] = struct{}{}
	return true
}

// addPath claims every unclaimed node and edge of the path
func (region *Region) addPath(path []osm.NodeID) {
	for _, n := range path {
		region.addNode(n)
	}
	for _, seg := range pathSegments(path) {
		region.addEdge(seg.From, seg.To)
	}
}

// release drops every claim of the region and empties it
func (region *Region) release() {
	if region.owners != nil {
		for _, n := range region.nodes {
			region.owners.releaseNode(n, region.ID)
		}
		for _, seg := range region.edges {
			region.owners.releaseEdge(seg.Key(), region.ID)
		}
	}
	region.nodes = []osm.NodeID{}
	region.nodeSet = make(map[osm.NodeID]struct{})
	region.edges = []Segment{}
	region.edgeSet = make(map[EdgeKey]struct{})
}

// absorb moves every node and edge of other region into this one
func (region *Region) absorb(other *Region) {
	for _, n := range other.nodes {
		if region.HasNode(n) {
			continue
		}
		if region.owners != nil && !region.owners.transferNode(n, other.ID, region.ID) {
			continue
		}
		region.nodes = append(region.nodes, n)
		region.nodeSet[n] = struct{}{}
	}
	for _, seg := range other.edges {
		key := seg.Key()
		if region.HasEdge(seg.From, seg.To) {
			continue
		}
		if region.owners != nil && !region.owners.transferEdge(key, other.ID, region.ID) {
			continue
		}
		region.edges = append(region.edges, seg)
		region.edgeSet[key] = struct{}{}
	}
	other.nodes = []osm.NodeID{}
	other.nodeSet = make(map[osm.NodeID]struct{})
	other.edges = []Segment{}
	other.edgeSet = make(map[EdgeKey]struct{})
}

// snapshot returns copy of the region which does not claim anything
func (region *Region) snapshot(id RegionID, kind RegionKind) *Region {
	ans := newRegion(id, kind, region.graph, nil)
	for _, n := range region.nodes {
		ans.addNode(n)
	}
	for _, seg := range region.edges {
		ans.addEdge(seg.From, seg.To)
	}
	return ans
}

// IsBoundaryNode returns true if the node belongs to the region and at least one of its edges does not
func (region *Region) IsBoundaryNode(id osm.NodeID) bool {
	if !region.HasNode(id) {
		return false
	}
	for _, nb := range region.graph.Neighbors(id) {
		if !region.HasEdge(id, nb) {
			return true
		}
	}
	return false
}

// BoundaryNodes returns boundary nodes in region order
func (region *Region) BoundaryNodes() []osm.NodeID {
	ans := []osm.NodeID{}
	for _, n := range region.nodes {
		if region.IsBoundaryNode(n) {
			ans = append(ans, n)
		}
	}
	return ans
}

// Diameter returns maximum distance between two nodes of the region
func (region *Region) Diameter() float64 {
	ans := 0.0
	for i := 0; i < len(region.nodes); i++ {
		for j := i + 1; j < len(region.nodes); j++ {
			if d := region.graph.Distance(region.nodes[i], region.nodes[j]); d > ans {
				ans = d
			}
		}
	}
	return ans
}

// Touches returns true if one region owns an edge incident to a node of the other one
func (region *Region) Touches(other *Region) bool {
	for _, seg := range region.edges {
		if other.HasNode(seg.From) || other.HasNode(seg.To) {
			return true
		}
	}
	for _, seg := range other.edges {
		if region.HasNode(seg.From) || region.HasNode(seg.To) {
			return true
		}
	}
	return false
}

// Contains returns true if every node of other region belongs to this one
func (region *Region) Contains(other *Region) bool {
	for _, n := range other.nodes {
		if !region.HasNode(n) {
			return false
		}
	}
	return true
}

// isStraightCrossing returns true if every node of the region has at most two neighbours
func (region *Region) isStraightCrossing() bool {
	for _, n := range region.nodes {
		if region.graph.Degree(n) > 2 {
			return false
		}
	}
	return true
}

// innerNodes returns nodes of the region which are not boundary ones
func (region *Region) innerNodes() []osm.NodeID {
	ans := []osm.NodeID{}
	for _, n := range region.nodes {
		if !region.IsBoundaryNode(n) {
			ans = append(ans, n)
		}
	}
	return ans
}

// unclaim drops every claim of the region but keeps its nodes and edges
func (region *Region) unclaim() {
	if region.owners == nil {
		return
	}
	for _, n := range region.nodes {
		region.owners.releaseNode(n, region.ID)
	}
	for _, seg := range region.edges {
		region.owners.releaseEdge(seg.Key(), region.ID)
	}
	region.owners = nil
}
