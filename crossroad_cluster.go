package crseg

import (
	"github.com/charmbracelet/log"
	"github.com/paulmach/osm"
)

// lengthTolerance absorbs floating point noise when path length is compared with region diameter
const lengthTolerance = 1e-9

// CrossroadsInNeighborhood returns crossroads which centers are closer than scale times max lane width of this crossroad
func (c *Crossroad) CrossroadsInNeighborhood(crossroads []*Crossroad, scale float64) []*Crossroad {
	ans := []*Crossroad{}
	radius := c.MaxLaneWidth() * scale
	for _, other := range crossroads {
		if other.ID == c.ID {
			continue
		}
		if c.graph.Distance(c.center, other.center) < radius {
			ans = append(ans, other)
		}
	}
	return ans
}

// directPathTo returns polyline which connects center of the crossroad with given node. Returns nil if there is no such polyline
func (c *Crossroad) directPathTo(target osm.NodeID) []osm.NodeID {
	for _, nb := range c.graph.Neighbors(c.center) {
		path := c.graph.PathToBifurcation(c.center, nb, -1)
		if path[len(path)-1] == target {
			return path
		}
	}
	return nil
}

func (g *Graph) hasWeaklyBoundaryInPath(path []osm.NodeID) bool {
	for _, n := range path {
		if g.nodeReliability(n).IsWeaklyBoundary() {
			return true
		}
	}
	return false
}

// InSameCluster returns true if other crossroad should be merged with this one.
// Crossroads which touch each other (one owns an edge incident to a node of the other) are always
// in the same cluster, whatever the distance between their centers and the path between them are.
// Otherwise the test is driven by this crossroad: its lane width defines the distance threshold
func (c *Crossroad) InSameCluster(other *Crossroad, scale float64) bool {
	if c.ID == other.ID {
		return false
	}
	// parts of the same junction grown from different seeds
	if c.Touches(other.Region) {
		return true
	}
	path := c.directPathTo(other.center)
	if path == nil {
		return false
	}
	d := c.graph.Distance(c.center, other.center)
	threshold := c.MaxLaneWidth() * scale
	// no boundary between crossroads
	if !c.graph.hasWeaklyBoundaryInPath(path) {
		threshold /= 2
	}
	if d >= threshold {
		return false
	}
	if d <= threshold/2 {
		return true
	}
	angle := c.graph.Bearing(c.center, other.center)
	for _, b1 := range c.branches {
		for _, b2 := range other.branches {
			if b1.IsSimilar(b2) && (b1.IsOrthogonal(angle) || b2.IsOrthogonal(angle)) {
				return true
			}
		}
	}
	return false
}

// Clusters groups crossroads which are parts of the same junction. Singleton clusters are dropped.
// Crossroads reusing identifier of a preceding one are skipped
func Clusters(crossroads []*Crossroad, scale float64, logger *log.Logger) [][]*Crossroad {
	crossroads = uniqueCrossroads(crossroads, logger)
	result := [][]*Crossroad{}
	visited := make(map[RegionID]struct{})

	clustersWith := func(c *Crossroad) []int {
		ans := []int{}
		for i, cluster := range result {
			if clusterContains(cluster, c) {
				ans = append(ans, i)
			}
		}
		return ans
	}
	removeCluster := func(idx int) {
		result = append(result[:idx], result[idx+1:]...)
	}

	for _, crossroad := range crossroads {
		var cluster []*Crossroad
		if _, ok := visited[crossroad.ID]; !ok {
			visited[crossroad.ID] = struct{}{}
			cluster = []*Crossroad{crossroad}
		} else {
			found := clustersWith(crossroad)
			if len(found) != 1 {
				cluster = []*Crossroad{crossroad}
			} else {
				cluster = result[found[0]]
				removeCluster(found[0])
			}
		}
		for _, neighbor := range crossroad.CrossroadsInNeighborhood(crossroads, scale) {
			if !crossroad.InSameCluster(neighbor, scale) {
				continue
			}
			if _, ok := visited[neighbor.ID]; !ok {
				visited[neighbor.ID] = struct{}{}
				cluster = append(cluster, neighbor)
				continue
			}
			found := clustersWith(neighbor)
			if len(found) != 1 {
				// visited neighbor outside of result is in the current cluster already
				continue
			}
			cluster = append(cluster, result[found[0]]...)
			removeCluster(found[0])
		}
		result = append(result, cluster)
	}

	ans := [][]*Crossroad{}
	for _, cluster := range result {
		if len(cluster) > 1 {
			ans = append(ans, cluster)
		}
	}
	return ans
}

func uniqueCrossroads(crossroads []*Crossroad, logger *log.Logger) []*Crossroad {
	ans := make([]*Crossroad, 0, len(crossroads))
	byID := make(map[RegionID]*Crossroad, len(crossroads))
	for _, c := range crossroads {
		if prev, ok := byID[c.ID]; ok {
			if prev != c {
				logger.Warn("Crossroad identifier is used twice", "crossroad", c.ID, "center", c.center, "kept_center", prev.center)
			}
			continue
		}
		byID[c.ID] = c
		ans = append(ans, c)
	}
	return ans
}

func clusterContains(cluster []*Crossroad, c *Crossroad) bool {
	for _, member := range cluster {
		if member.ID == c.ID {
			return true
		}
	}
	return false
}

// Merge absorbs given crossroads, connects their old centers and picks new center nearest to centroid of old ones
func (c *Crossroad) Merge(others []*Crossroad) {
	oldCenters := make([]osm.NodeID, 0, len(others)+1)
	for _, other := range others {
		if other.ID == c.ID {
			continue
		}
		oldCenters = append(oldCenters, other.center)
		c.absorb(other.Region)
	}
	oldCenters = append(oldCenters, c.center)

	c.addDirectPathsBetweenNodes(oldCenters)

	centroid := c.graph.Centroid(oldCenters)
	distance := -1.0
	for _, n := range c.nodes {
		d := c.graph.DistanceToPoint(n, centroid)
		if distance < 0 || d < distance {
			distance = d
			c.center = n
		}
	}
	c.buildLanes()
}

// addDirectPathsBetweenNodes claims polylines which connect given nodes and are not longer than the region diameter
func (c *Crossroad) addDirectPathsBetweenNodes(points []osm.NodeID) {
	pointSet := make(map[osm.NodeID]struct{}, len(points))
	for _, p := range points {
		pointSet[p] = struct{}{}
	}
	for _, p1 := range points {
		for _, nb := range c.graph.Neighbors(p1) {
			if c.HasEdge(p1, nb) {
				continue
			}
			path := c.graph.PathToBifurcation(p1, nb, -1)
			if _, ok := pointSet[path[len(path)-1]]; !ok {
				continue
			}
			if !c.isAvailablePath(path) {
				continue
			}
			if c.graph.PathLengthWithShortcut(path) <= c.Diameter()+lengthTolerance {
				c.addPath(path)
			}
		}
	}
}

// isAvailablePath returns true if every edge of the path is either unclaimed or owned by this region
func (c *Crossroad) isAvailablePath(path []osm.NodeID) bool {
	for _, seg := range pathSegments(path) {
		if !c.HasEdge(seg.From, seg.To) && !c.isUnclaimedEdge(seg.From, seg.To) {
			return false
		}
	}
	for _, n := range path[1 : len(path)-1] {
		if !c.HasNode(n) && !c.isUnclaimedNode(n) {
			return false
		}
	}
	return true
}

// AddMissingPaths claims inner polylines between crossroad nodes. When boundaries is set, it also claims
// short paths from nodes without boundary evidence up to the next boundary
func (c *Crossroad) AddMissingPaths(scale float64, boundaries bool) {
	c.addDirectPathsBetweenNodes(c.Nodes())
	if boundaries {
		maxLength := scale * c.MaxLaneWidth()
		for _, p1 := range c.Nodes() {
			if c.graph.nodeReliability(p1).Boundary > UNCERTAIN {
				continue
			}
			for _, nb := range c.graph.Neighbors(p1) {
				if c.HasEdge(p1, nb) || !c.isUnclaimedEdge(p1, nb) {
					continue
				}
				path := c.graph.pathToBoundary(p1, nb)
				for len(path) > 2 && !c.isUnclaimedEdge(path[len(path)-2], path[len(path)-1]) {
					path = path[:len(path)-1]
				}
				if c.graph.PathLength(path) < maxLength {
					c.addPath(path)
				}
			}
		}
	}
	c.buildLanes()
}
