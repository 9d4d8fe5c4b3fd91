package crseg

import (
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Segmentation splits street network into crossroads and branches
type Segmentation struct {
	graph  *Graph
	params Parameters
	logger *log.Logger

	owners    *Ownership
	alloc     regionIDAllocator
	redirects *regionRedirects

	crossroads   map[RegionID]*Crossroad
	links        []*Link
	innerRegions []*Crossroad
	innerSeen    map[innerRegionKey]struct{}
}

type innerRegionKey struct {
	source RegionID
	nodes  int
}

// NewSegmentation returns segmentation of given graph
func NewSegmentation(g *Graph, options ...func(*Segmentation)) *Segmentation {
	s := &Segmentation{
		graph:        g,
		params:       DefaultParameters(),
		logger:       log.New(io.Discard),
		owners:       NewOwnership(),
		redirects:    newRegionRedirects(),
		crossroads:   make(map[RegionID]*Crossroad),
		links:        []*Link{},
		innerRegions: []*Crossroad{},
		innerSeen:    make(map[innerRegionKey]struct{}),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func WithParameters(params Parameters) func(*Segmentation) {
	return func(s *Segmentation) {
		s.params = params
	}
}

func WithC0(c0 float64) func(*Segmentation) {
	return func(s *Segmentation) {
		s.params.C0 = c0
	}
}

func WithC1(c1 float64) func(*Segmentation) {
	return func(s *Segmentation) {
		s.params.C1 = c1
	}
}

func WithC2(c2 float64) func(*Segmentation) {
	return func(s *Segmentation) {
		s.params.C2 = c2
	}
}

func WithMaxCycleElements(maxCycleElements int) func(*Segmentation) {
	return func(s *Segmentation) {
		s.params.MaxCycleElements = maxCycleElements
	}
}

func WithLogger(logger *log.Logger) func(*Segmentation) {
	return func(s *Segmentation) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Parameters returns segmentation parameters
func (s *Segmentation) Parameters() Parameters {
	return s.params
}

// Graph returns segmented graph
func (s *Segmentation) Graph() *Graph {
	return s.graph
}

// Ownership returns current claims of nodes and edges
func (s *Segmentation) Ownership() *Ownership {
	return s.owners
}

func (s *Segmentation) reset() {
	s.owners.Reset()
	s.alloc.reset()
	s.redirects = newRegionRedirects()
	s.crossroads = make(map[RegionID]*Crossroad)
	s.links = []*Link{}
	s.innerRegions = []*Crossroad{}
	s.innerSeen = make(map[innerRegionKey]struct{})
}

// Process runs the whole segmentation pipeline. Previous results are dropped
func (s *Segmentation) Process() {
	s.reset()
	s.logger.Debug("Computing reliability", "nodes", s.graph.NodesNum(), "edges", s.graph.EdgesNum())
	s.graph.ComputeReliability()

	crossroads := buildCrossroads(s.graph, s.owners, &s.alloc, s.params.C0, s.logger)
	for _, c := range crossroads {
		s.crossroads[c.ID] = c
	}
	s.logger.Debug("Crossroads have been grown", "crossroads", len(crossroads))

	clusters := Clusters(crossroads, s.params.C1, s.logger)
	for _, cluster := range clusters {
		head := cluster[0]
		head.Merge(cluster[1:])
		for _, other := range cluster[1:] {
			delete(s.crossroads, other.ID)
			s.redirects.redirect(other.ID, head.ID)
		}
	}
	s.logger.Debug("Clusters have been merged", "clusters", len(clusters), "crossroads", len(s.crossroads))

	s.addMissingPaths(true)

	s.links = buildLinks(s.graph, s.owners, &s.alloc, s.Crossroads())
	// only crossroads keep their claims
	for _, link := range s.links {
		link.unclaim()
	}
	s.logger.Debug("Links have been built", "links", len(s.links))

	s.mergeLinkedCrossroads()

	s.addMissingPaths(false)

	for _, c := range s.crossroads {
		c.computeBranches()
	}
	for _, inner := range s.innerRegions {
		inner.buildLanes()
	}
	s.logger.Debug("Segmentation is done", "crossroads", len(s.crossroads), "inner_regions", len(s.innerRegions))
}

func (s *Segmentation) addMissingPaths(boundaries bool) {
	for _, c := range s.Crossroads() {
		c.AddMissingPaths(s.params.C0, boundaries)
	}
}

// mergeLinkedCrossroads merges crossroads forming cycles and then crossroads joined by several links.
// Merged crossroads are kept as inner regions of the resulting one
func (s *Segmentation) mergeLinkedCrossroads() {
	cc := NewCrossroadConnections(s.Crossroads(), s.links, s.params.C2)

	for _, cycle := range cc.Cycles(s.params.MaxCycleElements) {
		ids := s.resolveUnique(cycle.Crossroads)
		if len(ids) < 2 {
			continue
		}
		paths := make([][]osm.NodeID, 0, len(cycle.Links))
		for _, lid := range cycle.Links {
			if link, ok := cc.Link(lid); ok {
				paths = append(paths, link.path)
			}
		}
		s.mergeCrossroads(ids, paths)
	}

	for _, pair := range cc.Pairs() {
		ids := s.resolveUnique([]RegionID{pair.First, pair.Second})
		if len(ids) < 2 {
			continue
		}
		paths := make([][]osm.NodeID, 0, len(pair.Links))
		for _, lid := range pair.Links {
			if link, ok := cc.Link(lid); ok {
				paths = append(paths, link.path)
			}
		}
		s.mergeCrossroads(ids, paths)
	}
}

// resolveUnique maps identifiers to surviving crossroads keeping the first occurrence order
func (s *Segmentation) resolveUnique(ids []RegionID) []RegionID {
	ans := []RegionID{}
	seen := make(map[RegionID]struct{}, len(ids))
	for _, id := range ids {
		rid := s.redirects.resolve(id)
		if _, ok := s.crossroads[rid]; !ok {
			continue
		}
		if _, ok := seen[rid]; ok {
			continue
		}
		seen[rid] = struct{}{}
		ans = append(ans, rid)
	}
	return ans
}

func (s *Segmentation) mergeCrossroads(ids []RegionID, paths [][]osm.NodeID) {
	for _, id := range ids {
		s.addInnerRegion(s.crossroads[id])
	}
	head := s.crossroads[ids[0]]
	for _, path := range paths {
		head.addPath(path)
	}
	others := make([]*Crossroad, 0, len(ids)-1)
	for _, id := range ids[1:] {
		others = append(others, s.crossroads[id])
	}
	head.Merge(others)
	for _, id := range ids[1:] {
		delete(s.crossroads, id)
		s.redirects.redirect(id, head.ID)
	}
	s.logger.Debug("Linked crossroads have been merged", "crossroad", head.ID, "merged", len(others))
}

func (s *Segmentation) addInnerRegion(c *Crossroad) {
	key := innerRegionKey{source: c.ID, nodes: len(c.nodes)}
	if _, ok := s.innerSeen[key]; ok {
		return
	}
	s.innerSeen[key] = struct{}{}
	s.innerRegions = append(s.innerRegions, c.snapshot(s.alloc.allocate()))
}

// Crossroads returns resulting crossroads ordered by identifier
func (s *Segmentation) Crossroads() []*Crossroad {
	ans := make([]*Crossroad, 0, len(s.crossroads))
	for _, c := range s.crossroads {
		ans = append(ans, c)
	}
	sort.Slice(ans, func(i, j int) bool { return ans[i].ID < ans[j].ID })
	return ans
}

// Crossroad returns crossroad by identifier. Identifiers of merged crossroads are redirected to the surviving ones
func (s *Segmentation) Crossroad(id RegionID) (*Crossroad, bool) {
	c, ok := s.crossroads[s.redirects.resolve(id)]
	return c, ok
}

// InnerRegions returns snapshots of crossroads which have been merged into bigger ones
func (s *Segmentation) InnerRegions() []*Crossroad {
	ans := make([]*Crossroad, len(s.innerRegions))
	copy(ans, s.innerRegions)
	return ans
}

// Links returns connectors between crossroads found during processing
func (s *Segmentation) Links() []*Link {
	ans := make([]*Link, len(s.links))
	copy(ans, s.links)
	return ans
}

// CrossroadAt returns crossroad which center is the nearest to given point.
// With multiscale flag inner regions contained in the crossroad are returned too
func (s *Segmentation) CrossroadAt(pt orb.Point, multiscale bool) []*Crossroad {
	var nearest *Crossroad
	distance := -1.0
	for _, c := range s.Crossroads() {
		d := s.graph.DistanceToPoint(c.center, pt)
		if distance < 0 || d < distance {
			distance = d
			nearest = c
		}
	}
	if nearest == nil {
		return nil
	}
	ans := []*Crossroad{nearest}
	if multiscale {
		for _, inner := range s.innerRegions {
			if nearest.Contains(inner.Region) {
				ans = append(ans, inner)
			}
		}
	}
	return ans
}

// BranchOf returns crossroad and index of its branch which contain given edge
func (s *Segmentation) BranchOf(u, v osm.NodeID) (RegionID, int, bool) {
	for _, c := range s.Crossroads() {
		if bid := c.BranchID(u, v); bid >= 0 {
			return c.ID, bid, true
		}
	}
	return 0, -1, false
}
