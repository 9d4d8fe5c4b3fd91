package crseg

import (
	"github.com/paulmach/osm"
)

// Reliability is a confidence score on scale [0; 1000]
type Reliability float64

const (
	STRONGLY_NO  = Reliability(0)
	MODERATE_NO  = Reliability(125)
	WEAKLY_NO    = Reliability(250)
	UNCERTAIN    = Reliability(500)
	WEAKLY_YES   = Reliability(750)
	MODERATE_YES = Reliability(875)
	STRONGLY_YES = Reliability(1000)
)

// distanceInnerBranch is minimum length of edge (meters) to be considered as a part of branch
const distanceInnerBranch = 50.0

// ReliabilityAxis is a kind of evidence the score is given for
type ReliabilityAxis uint16

const (
	AXIS_BOUNDARY = ReliabilityAxis(iota + 1)
	AXIS_BRANCH
	AXIS_CROSSROAD
)

func (iotaIdx ReliabilityAxis) String() string {
	return [...]string{"boundary", "branch", "crossroad"}[iotaIdx-1]
}

// NodeReliability holds evidence that node is a crossroad boundary, a part of branch or a part of crossroad
type NodeReliability struct {
	Boundary  Reliability
	Branch    Reliability
	Crossroad Reliability
}

func newNodeReliability() NodeReliability {
	return NodeReliability{Boundary: UNCERTAIN, Branch: UNCERTAIN, Crossroad: UNCERTAIN}
}

func (r NodeReliability) IsWeaklyBoundary() bool { return r.Boundary >= WEAKLY_YES }
func (r NodeReliability) IsStrongBoundary() bool { return r.Boundary == STRONGLY_YES }
func (r NodeReliability) IsWeaklyNoBoundary() bool { return r.Boundary <= WEAKLY_NO }
func (r NodeReliability) IsStrongNoBoundary() bool { return r.Boundary == STRONGLY_NO }
func (r NodeReliability) IsWeaklyCrossroad() bool { return r.Crossroad >= WEAKLY_YES }
func (r NodeReliability) IsStrongCrossroad() bool { return r.Crossroad == STRONGLY_YES }
func (r NodeReliability) IsWeaklyBranch() bool { return r.Branch >= WEAKLY_YES }
func (r NodeReliability) IsStrongBranch() bool { return r.Branch == STRONGLY_YES }

// BestAxis returns the axis with the strictly highest score. Boundary wins ties
func (r NodeReliability) BestAxis() ReliabilityAxis {
	if r.Branch > r.Crossroad && r.Branch > r.Boundary {
		return AXIS_BRANCH
	}
	if r.Crossroad > r.Branch && r.Crossroad > r.Boundary {
		return AXIS_CROSSROAD
	}
	return AXIS_BOUNDARY
}

// EdgeReliability holds evidence that edge is a part of branch or a part of crossroad
type EdgeReliability struct {
	Branch    Reliability
	Crossroad Reliability
}

func newEdgeReliability() EdgeReliability {
	return EdgeReliability{Branch: UNCERTAIN, Crossroad: UNCERTAIN}
}

func (r EdgeReliability) IsWeaklyCrossroad() bool { return r.Crossroad >= WEAKLY_YES }
func (r EdgeReliability) IsStrongCrossroad() bool { return r.Crossroad == STRONGLY_YES }
func (r EdgeReliability) IsWeaklyBranch() bool { return r.Branch >= WEAKLY_YES }
func (r EdgeReliability) IsStrongBranch() bool { return r.Branch == STRONGLY_YES }

// BestAxis returns AXIS_BRANCH if branch score is strictly higher than crossroad one and AXIS_CROSSROAD otherwise
func (r EdgeReliability) BestAxis() ReliabilityAxis {
	if r.Branch > r.Crossroad {
		return AXIS_BRANCH
	}
	return AXIS_CROSSROAD
}

// scoreNode evaluates node rules. First matching rule wins
func (g *Graph) scoreNode(id osm.NodeID) NodeReliability {
	ans := newNodeReliability()
	node := g.nodes[id]
	degree := node.Degree()
	if degree == 1 {
		ans.Boundary = STRONGLY_YES
		return ans
	}
	if highway := node.Highway(); highway != "" {
		if _, ok := stronglyNoBoundaryTags[highway]; ok {
			ans.Boundary = MODERATE_NO
		} else if _, ok := possibleBoundaryTags[highway]; ok && degree <= 3 {
			ans.Boundary = STRONGLY_YES
		} else if _, ok := moderateBoundaryTags[highway]; ok && degree <= 3 {
			ans.Boundary = MODERATE_YES
			ans.Crossroad = MODERATE_YES
		} else if degree >= 3 {
			ans.Crossroad = STRONGLY_YES
		}
		return ans
	}
	switch {
	case degree == 2:
		for _, nb := range node.neighbors {
			if g.Distance(id, nb) < distanceInnerBranch {
				return ans
			}
		}
		ans.Boundary = STRONGLY_NO
		ans.Branch = STRONGLY_YES
	case degree >= 4:
		ans.Crossroad = STRONGLY_YES
	case degree == 3:
		names, hasUnnamed := g.adjacentStreetNames(id)
		distinct := len(names)
		if hasUnnamed {
			distinct++
		}
		if distinct == 1 && !hasUnnamed {
			// all branches share the same street name
			ans.Crossroad = MODERATE_NO
		} else if distinct > 1 {
			ans.Crossroad = MODERATE_YES
		}
	}
	return ans
}

func (g *Graph) scoreEdge(edge *Edge) EdgeReliability {
	ans := newEdgeReliability()
	if edge.IsJunction() {
		ans.Crossroad = STRONGLY_YES
	} else if g.Distance(edge.Source, edge.Target) > distanceInnerBranch {
		ans.Branch = STRONGLY_YES
	}
	return ans
}

// adjacentStreetNames returns distinct names of incident edges and whether some incident edge has no name
func (g *Graph) adjacentStreetNames(id osm.NodeID) ([]string, bool) {
	names := []string{}
	seen := make(map[string]struct{})
	hasUnnamed := false
	for _, nb := range g.Neighbors(id) {
		edge, ok := g.Edge(id, nb)
		if !ok {
			continue
		}
		name := edge.Name()
		if name == "" {
			hasUnnamed = true
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, hasUnnamed
}
