package crseg

import (
	"fmt"

	"github.com/paulmach/osm"
)

// Link is a polyline which connects boundary nodes of two different crossroads
type Link struct {
	*Region

	path []osm.NodeID
	// crossroads at the ends of the path
	source RegionID
	target RegionID
}

func (link *Link) String() string {
	return fmt.Sprintf("link #%d (%d -> %d, nodes: %d)", link.ID, link.source, link.target, len(link.path))
}

// Path returns polyline of the link
func (link *Link) Path() []osm.NodeID {
	ans := make([]osm.NodeID, len(link.path))
	copy(ans, link.path)
	return ans
}

// Ends returns crossroads connected by the link
func (link *Link) Ends() (RegionID, RegionID) {
	return link.source, link.target
}

// Length returns length of the link polyline in meters
func (link *Link) Length() float64 {
	return link.graph.PathLength(link.path)
}

// buildLinks creates link for every unclaimed polyline which starts at boundary node of one crossroad
// and ends at node of another crossroad. Links claim their inner nodes and edges
func buildLinks(g *Graph, owners *Ownership, alloc *regionIDAllocator, crossroads []*Crossroad) []*Link {
	byID := make(map[RegionID]*Crossroad, len(crossroads))
	for _, c := range crossroads {
		byID[c.ID] = c
	}
	links := []*Link{}
	for _, c := range crossroads {
		for _, border := range c.BoundaryNodes() {
			for _, nb := range g.Neighbors(border) {
				if c.HasEdge(border, nb) {
					continue
				}
				if _, ok := owners.EdgeOwner(border, nb); ok {
					continue
				}
				path := walkToClaimed(g, owners, border, nb)
				if isLoop(path) {
					continue
				}
				owner, ok := owners.NodeOwner(path[len(path)-1])
				if !ok || owner == c.ID {
					continue
				}
				if _, ok := byID[owner]; !ok {
					continue
				}
				link := &Link{
					Region: newRegion(alloc.allocate(), REGION_LINK, g, owners),
					path:   path,
					source: c.ID,
					target: owner,
				}
				for _, n := range path[1 : len(path)-1] {
					link.addNode(n)
				}
				for _, seg := range pathSegments(path) {
					link.addEdge(seg.From, seg.To)
				}
				links = append(links, link)
			}
		}
	}
	return links
}

// walkToClaimed walks from n1 through n2 along the polyline until bifurcation, dead end or claimed node
func walkToClaimed(g *Graph, owners *Ownership, n1, n2 osm.NodeID) []osm.NodeID {
	path := []osm.NodeID{n1, n2}
	visited := map[osm.NodeID]struct{}{n1: {}, n2: {}}
	for {
		last := path[len(path)-1]
		if _, ok := owners.NodeOwner(last); ok || !g.isMiddlePolyline(last) {
			return path
		}
		next, err := g.oppositeNode(last, path[len(path)-2])
		if err != nil {
			return path
		}
		path = append(path, next)
		if _, ok := visited[next]; ok {
			return path
		}
		visited[next] = struct{}{}
	}
}
