package crseg

import (
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

var (
	// ErrDeadEnd is returned when polyline walk can not be continued
	ErrDeadEnd = errors.New("dead end")
)

const (
	// Shortcut coefficient for ramps and junction edges
	shortcutCoefficient = 0.5
)

// isBifurcation returns true for nodes with more than two neighbours
func (g *Graph) isBifurcation(id osm.NodeID) bool {
	return g.Degree(id) > 2
}

// isMiddlePolyline returns true for nodes with exactly two neighbours
func (g *Graph) isMiddlePolyline(id osm.NodeID) bool {
	return g.Degree(id) == 2
}

// oppositeNode returns neighbour of the middle polyline node which is not 'other'
func (g *Graph) oppositeNode(id, other osm.NodeID) (osm.NodeID, error) {
	for _, nb := range g.Neighbors(id) {
		if nb != other {
			return nb, nil
		}
	}
	return 0, errors.Wrapf(ErrDeadEnd, "Can't continue walk from %d (came from %d)", id, other)
}

// PathToBifurcation walks from n1 through n2 along the polyline while the last node has exactly two neighbours.
// Walk stops on bifurcation or dead end, on node which has been visited already or when length reaches maxLength.
// Negative maxLength means no length limit
func (g *Graph) PathToBifurcation(n1, n2 osm.NodeID, maxLength float64) []osm.NodeID {
	path := []osm.NodeID{n1, n2}
	visited := map[osm.NodeID]struct{}{n1: {}, n2: {}}
	length := g.Distance(n1, n2)
	for g.isMiddlePolyline(path[len(path)-1]) && (maxLength < 0 || length < maxLength) {
		last := path[len(path)-1]
		next, err := g.oppositeNode(last, path[len(path)-2])
		if err != nil {
			break
		}
		length += g.Distance(last, next)
		path = append(path, next)
		if _, ok := visited[next]; ok {
			break
		}
		visited[next] = struct{}{}
	}
	return path
}

// PathLength returns length of the path in meters
func (g *Graph) PathLength(path []osm.NodeID) float64 {
	length := 0.0
	for i := 1; i < len(path); i++ {
		length += g.Distance(path[i-1], path[i])
	}
	return length
}

// PathLengthWithShortcut returns length of the path where ramps and junction edges count with reduced weight
func (g *Graph) PathLengthWithShortcut(path []osm.NodeID) float64 {
	length := 0.0
	for i := 1; i < len(path); i++ {
		length += g.distanceWithShortcut(path[i-1], path[i])
	}
	return length
}

func (g *Graph) distanceWithShortcut(u, v osm.NodeID) float64 {
	d := g.Distance(u, v)
	edge, ok := g.Edge(u, v)
	if !ok {
		return d
	}
	if isLinkHighway(edge.Highway()) || edge.IsJunction() {
		return d * shortcutCoefficient
	}
	return d
}

// isLoop returns true if some node is met more than once in the path
func isLoop(path []osm.NodeID) bool {
	seen := make(map[osm.NodeID]struct{}, len(path))
	for _, n := range path {
		if _, ok := seen[n]; ok {
			return true
		}
		seen[n] = struct{}{}
	}
	return false
}

// pathSegments returns oriented segments of the path
func pathSegments(path []osm.NodeID) []Segment {
	if len(path) < 2 {
		return nil
	}
	ans := make([]Segment, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		ans = append(ans, Segment{From: path[i-1], To: path[i]})
	}
	return ans
}

// firstNameAlongPath returns first non-empty street name met along the path
func (g *Graph) firstNameAlongPath(path []osm.NodeID) string {
	for i := 1; i < len(path); i++ {
		if edge, ok := g.Edge(path[i-1], path[i]); ok {
			if name := edge.Name(); name != "" {
				return name
			}
		}
	}
	return ""
}

// pathToBoundary walks from n1 through n2 along the polyline until bifurcation, dead end or node with boundary evidence
func (g *Graph) pathToBoundary(n1, n2 osm.NodeID) []osm.NodeID {
	path := []osm.NodeID{n1, n2}
	visited := map[osm.NodeID]struct{}{n1: {}, n2: {}}
	for {
		last := path[len(path)-1]
		if !g.isMiddlePolyline(last) || g.nodeReliability(last).IsWeaklyBoundary() {
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
