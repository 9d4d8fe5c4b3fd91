package crseg

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/paulmach/osm"
)

// Crossroad is a region which represents street junction: its center node, inner paths and description of streets leaving it
type Crossroad struct {
	*Region

	center osm.NodeID
	// multiplicative coefficient applied to street width to obtain distance between the center and the boundary
	ratioBoundary float64

	lanes    []Lane
	branches []Branch

	logger *log.Logger
}

func newCrossroad(id RegionID, g *Graph, owners *Ownership, ratioBoundary float64, logger *log.Logger) *Crossroad {
	return &Crossroad{
		Region:        newRegion(id, REGION_CROSSROAD, g, owners),
		ratioBoundary: ratioBoundary,
		lanes:         []Lane{},
		branches:      []Branch{},
		logger:        logger,
	}
}

func (c *Crossroad) String() string {
	return fmt.Sprintf("crossroad #%d (center: %d, nodes: %d, edges: %d, lanes: %d, branches: %d)", c.ID, c.center, len(c.nodes), len(c.edges), len(c.lanes), len(c.branches))
}

// Center returns center node
func (c *Crossroad) Center() osm.NodeID {
	return c.center
}

// Lanes returns streets leaving the crossroad
func (c *Crossroad) Lanes() []Lane {
	ans := make([]Lane, len(c.lanes))
	copy(ans, c.lanes)
	return ans
}

// Branches returns groups of lanes which belong to the same street
func (c *Crossroad) Branches() []Branch {
	ans := make([]Branch, len(c.branches))
	copy(ans, c.branches)
	return ans
}

// buildCrossroads grows crossroad around every unclaimed reliable node in graph order.
// Regions which appear to be straight crossings are released
func buildCrossroads(g *Graph, owners *Ownership, alloc *regionIDAllocator, ratioBoundary float64, logger *log.Logger) []*Crossroad {
	crossroads := []*Crossroad{}
	for _, id := range g.nodeOrder {
		if _, ok := owners.NodeOwner(id); ok {
			continue
		}
		if !isReliableCrossroadNode(g, id) {
			continue
		}
		c := newCrossroad(alloc.allocate(), g, owners, ratioBoundary, logger)
		c.propagate(id)
		if c.isStraightCrossing() {
			logger.Debug("Straight crossing released", "center", id)
			c.release()
			continue
		}
		c.buildLanes()
		crossroads = append(crossroads, c)
	}
	return crossroads
}

// isReliableCrossroadNode returns true if node or some of its edges is weakly in crossroad
func isReliableCrossroadNode(g *Graph, id osm.NodeID) bool {
	if g.nodeReliability(id).IsWeaklyCrossroad() {
		return true
	}
	for _, nb := range g.Neighbors(id) {
		if edge, ok := g.Edge(id, nb); ok && edge.Reliability.IsWeaklyCrossroad() {
			return true
		}
	}
	return false
}

// propagate claims seed as center and then single inner path for every unclaimed incident edge.
// Does nothing if seed is claimed already
func (c *Crossroad) propagate(seed osm.NodeID) {
	if !c.isUnclaimedNode(seed) {
		return
	}
	c.addNode(seed)
	c.center = seed
	for _, nb := range c.graph.Neighbors(seed) {
		if !c.isUnclaimedEdge(seed, nb) {
			continue
		}
		for _, path := range c.possiblePaths(seed, nb) {
			if c.isCorrectInnerPath(path) {
				c.addPath(path)
				break
			}
		}
	}
}

// isMiddlePathNode returns true for polyline nodes without (weak or strong) evidence of boundary or crossroad
func (c *Crossroad) isMiddlePathNode(id osm.NodeID, strong bool) bool {
	if !c.graph.isMiddlePolyline(id) {
		return false
	}
	r := c.graph.nodeReliability(id)
	if strong {
		return !(r.IsStrongBoundary() || r.IsStrongCrossroad())
	}
	return !(r.IsWeaklyBoundary() || r.IsWeaklyCrossroad())
}

// extendPath walks along the polyline while the last node is a middle path node. Walk stops at claimed node
func (c *Crossroad) extendPath(path []osm.NodeID, strong bool) ([]osm.NodeID, error) {
	visited := make(map[osm.NodeID]struct{}, len(path))
	for _, n := range path {
		visited[n] = struct{}{}
	}
	for {
		last := path[len(path)-1]
		if !c.isMiddlePathNode(last, strong) || !c.isUnclaimedNode(last) {
			return path, nil
		}
		next, err := c.graph.oppositeNode(last, path[len(path)-2])
		if err != nil {
			return nil, err
		}
		path = append(path, next)
		if _, ok := visited[next]; ok {
			return path, nil
		}
		visited[next] = struct{}{}
	}
}

// possiblePaths returns candidate inner paths starting with edge (n1, n2) in order of preference.
// Path extended up to strong evidence goes first (if it differs from the one extended up to weak evidence)
func (c *Crossroad) possiblePaths(n1, n2 osm.NodeID) [][]osm.NodeID {
	weakPath, err := c.extendPath([]osm.NodeID{n1, n2}, false)
	if err != nil {
		c.logger.Warn("Can't follow a path", "from", n1, "via", n2, "err", err)
		return nil
	}
	last := weakPath[len(weakPath)-1]
	if isLoop(weakPath) || !c.isUnclaimedNode(last) || !c.isMiddlePathNode(last, true) {
		return [][]osm.NodeID{weakPath}
	}
	strongPath := make([]osm.NodeID, len(weakPath))
	copy(strongPath, weakPath)
	strongPath, err = c.extendPath(strongPath, true)
	if err != nil {
		c.logger.Warn("Can't follow a path", "from", n1, "via", n2, "err", err)
		return [][]osm.NodeID{weakPath}
	}
	return [][]osm.NodeID{strongPath, weakPath}
}

// isInnerPathByOSMData returns true if every edge of the path is tagged as junction
func (c *Crossroad) isInnerPathByOSMData(path []osm.NodeID) bool {
	for _, seg := range pathSegments(path) {
		edge, ok := c.graph.Edge(seg.From, seg.To)
		if !ok || !edge.IsJunction() {
			return false
		}
	}
	return true
}

func (c *Crossroad) isCorrectInnerPath(path []osm.NodeID) bool {
	if len(path) < 2 || isLoop(path) {
		return false
	}
	if c.isInnerPathByOSMData(path) {
		return true
	}
	first := path[0]
	last := path[len(path)-1]
	if !c.graph.nodeReliability(first).IsWeaklyCrossroad() || !c.graph.nodeReliability(last).IsWeaklyBoundary() {
		return false
	}
	threshold := c.boundaryDistance(path)
	// crossroads with many lanes are larger
	if c.graph.Degree(first) > 4 {
		threshold *= 2
	}
	return c.graph.PathLength(path) < threshold
}

// boundaryDistance returns the largest class threshold among edges incident to the path start, except the path's first edge.
// It is never below the default class threshold
func (c *Crossroad) boundaryDistance(path []osm.NodeID) float64 {
	first := path[0]
	ans := defaultBoundaryDistance
	for _, nb := range c.graph.Neighbors(first) {
		if nb == path[1] {
			continue
		}
		edge, ok := c.graph.Edge(first, nb)
		if !ok {
			continue
		}
		if d := getHighwayType(edge.Highway()).boundaryDistance(); d > ans {
			ans = d
		}
	}
	return ans
}

// maxLaneWidthAroundNode returns maximum estimated distance from the node to crossroad boundary
func (c *Crossroad) maxLaneWidthAroundNode(id osm.NodeID) float64 {
	ans := 0.0
	for _, nb := range c.graph.Neighbors(id) {
		edge, ok := c.graph.Edge(id, nb)
		if !ok {
			continue
		}
		if v := edge.EstimateWidth() * c.ratioBoundary; v > ans {
			ans = v
		}
	}
	return ans
}

// MaxLaneWidth returns maximum estimated distance from crossroad nodes to its boundary
func (c *Crossroad) MaxLaneWidth() float64 {
	ans := 0.0
	for _, n := range c.nodes {
		if v := c.maxLaneWidthAroundNode(n); v > ans {
			ans = v
		}
	}
	return ans
}

// laneFromEdge describes street leaving crossroad through edge (from, to).
// Non-negative radius bounds the walk used for bearing estimation
func (c *Crossroad) laneFromEdge(from, to osm.NodeID, radius float64) Lane {
	path := c.graph.PathToBifurcation(from, to, -1)
	angleTarget := path[len(path)-1]
	if radius >= 0 {
		bounded := c.graph.PathToBifurcation(from, to, radius)
		angleTarget = bounded[len(bounded)-1]
	}
	lane := Lane{
		Angle: c.graph.Bearing(c.center, angleTarget),
		Edge:  Segment{From: from, To: to},
	}
	if edge, ok := c.graph.Edge(from, to); ok {
		lane.Name = edge.Name()
	}
	if lane.Name == "" {
		lane.Name = c.graph.firstNameAlongPath(path)
	}
	if lane.Name == "" {
		lane.Name = c.siblingName(path)
	}
	return lane
}

// siblingName returns name of the only other path which connects far end of given path with the crossroad
func (c *Crossroad) siblingName(path []osm.NodeID) string {
	end := path[len(path)-1]
	if c.HasNode(end) {
		return ""
	}
	prev := path[len(path)-2]
	siblings := [][]osm.NodeID{}
	for _, nb := range c.graph.Neighbors(end) {
		if nb == prev {
			continue
		}
		other := c.graph.PathToBifurcation(end, nb, -1)
		if c.HasNode(other[len(other)-1]) {
			siblings = append(siblings, other)
		}
	}
	if len(siblings) != 1 {
		return ""
	}
	return c.graph.firstNameAlongPath(siblings[0])
}

// lanesFromNode describes every street leaving crossroad through the boundary node
func (c *Crossroad) lanesFromNode(border osm.NodeID, radius float64) []Lane {
	lanes := []Lane{}
	for _, nb := range c.graph.Neighbors(border) {
		if c.HasEdge(border, nb) {
			continue
		}
		lanes = append(lanes, c.laneFromEdge(border, nb, radius))
	}
	return lanes
}

// buildLanes rebuilds lanes and branches of the crossroad
func (c *Crossroad) buildLanes() {
	c.lanes = []Lane{}
	radius := c.MaxLaneWidth() * c.ratioBoundary
	for _, n := range c.nodes {
		if !c.IsBoundaryNode(n) {
			continue
		}
		if n == c.center {
			c.lanes = append(c.lanes, c.lanesFromNode(n, radius)...)
		} else {
			c.lanes = append(c.lanes, c.lanesFromNode(n, -1)...)
		}
	}
	c.computeBranches()
}

// computeBranches groups lanes into branches
func (c *Crossroad) computeBranches() {
	c.branches = buildBranches(c.lanes)
}

// BranchID returns index of the branch which contains given edge. Returns -1 if there is no such branch
func (c *Crossroad) BranchID(u, v osm.NodeID) int {
	key := NewEdgeKey(u, v)
	for i, branch := range c.branches {
		if branch.HasEdge(key) {
			return i
		}
	}
	return -1
}

// MaxBranchWidth returns maximum estimated width of the branches (sum of lane widths)
func (c *Crossroad) MaxBranchWidth() float64 {
	ans := 0.0
	for _, branch := range c.branches {
		width := 0.0
		for _, lane := range branch.Lanes {
			if edge, ok := c.graph.Edge(lane.Edge.From, lane.Edge.To); ok {
				width += edge.EstimateWidth()
			}
		}
		if width > ans {
			ans = width
		}
	}
	return ans
}

// snapshot returns inner region: a copy of the crossroad which does not claim anything
func (c *Crossroad) snapshot(id RegionID) *Crossroad {
	ans := &Crossroad{
		Region:        c.Region.snapshot(id, REGION_INNER),
		center:        c.center,
		ratioBoundary: c.ratioBoundary,
		lanes:         c.Lanes(),
		branches:      c.Branches(),
		logger:        c.logger,
	}
	return ans
}
