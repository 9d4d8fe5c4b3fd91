package crseg

import (
	"fmt"
	"strings"

	"github.com/paulmach/osm"
)

// BranchLabel identifies branch of a crossroad
type BranchLabel struct {
	Crossroad RegionID
	Branch    int
}

func (label BranchLabel) String() string {
	return fmt.Sprintf("%d-%d", label.Crossroad, label.Branch)
}

// Labels maps graph elements to regions which contain them
type Labels struct {
	Nodes    map[osm.NodeID][]RegionID
	Edges    map[EdgeKey][]RegionID
	Branches map[EdgeKey][]BranchLabel
}

// Labels returns crossroad identifiers for every node and edge and branch identifiers for every lane edge.
// With multiscale flag inner regions are labeled too
func (s *Segmentation) Labels(multiscale bool) Labels {
	labels := Labels{
		Nodes:    make(map[osm.NodeID][]RegionID),
		Edges:    make(map[EdgeKey][]RegionID),
		Branches: make(map[EdgeKey][]BranchLabel),
	}
	regions := s.Crossroads()
	if multiscale {
		regions = append(regions, s.innerRegions...)
	}
	for _, c := range regions {
		for _, n := range c.nodes {
			labels.Nodes[n] = append(labels.Nodes[n], c.ID)
		}
		for _, seg := range c.edges {
			labels.Edges[seg.Key()] = append(labels.Edges[seg.Key()], c.ID)
		}
		for bid, branch := range c.branches {
			for _, lane := range branch.Lanes {
				key := lane.Edge.Key()
				labels.Branches[key] = append(labels.Branches[key], BranchLabel{Crossroad: c.ID, Branch: bid})
			}
		}
	}
	return labels
}

// NodeLabel returns ';' separated identifiers of regions containing the node
func (labels Labels) NodeLabel(id osm.NodeID) string {
	return joinRegionIDs(labels.Nodes[id])
}

// EdgeLabel returns ';' separated identifiers of regions containing the edge
func (labels Labels) EdgeLabel(key EdgeKey) string {
	return joinRegionIDs(labels.Edges[key])
}

// BranchLabel returns ';' separated identifiers of branches containing the edge
func (labels Labels) BranchLabel(key EdgeKey) string {
	parts := make([]string, 0, len(labels.Branches[key]))
	for _, label := range labels.Branches[key] {
		parts = append(parts, label.String())
	}
	return strings.Join(parts, ";")
}

func joinRegionIDs(ids []RegionID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return strings.Join(parts, ";")
}
