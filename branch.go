package crseg

import (
	"fmt"
)

// Branch is a group of lanes which belong to the same street
type Branch struct {
	ID    int
	Lanes []Lane
}

func (branch Branch) String() string {
	return fmt.Sprintf("branch #%d (lanes: %d)", branch.ID, len(branch.Lanes))
}

// Name returns first known street name of the branch lanes
func (branch Branch) Name() string {
	for _, lane := range branch.Lanes {
		if lane.HasName() {
			return lane.Name
		}
	}
	return ""
}

// IsSimilar returns true if some lane of the branch is similar to some lane of the other one
func (branch Branch) IsSimilar(other Branch) bool {
	for _, l1 := range branch.Lanes {
		for _, l2 := range other.Lanes {
			if l1.IsSimilar(l2) {
				return true
			}
		}
	}
	return false
}

// IsOrthogonal returns true if some lane of the branch is within 45 degrees of being orthogonal to given bearing
func (branch Branch) IsOrthogonal(angle float64) bool {
	for _, lane := range branch.Lanes {
		if lane.IsOrthogonal(angle) {
			return true
		}
	}
	return false
}

// HasEdge returns true if some lane of the branch goes along the edge
func (branch Branch) HasEdge(key EdgeKey) bool {
	for _, lane := range branch.Lanes {
		if lane.Matches(key) {
			return true
		}
	}
	return false
}

// buildBranches groups lanes transitively by similarity. Branches are ordered by their first lane
func buildBranches(lanes []Lane) []Branch {
	groupOf := make([]int, len(lanes))
	for i := range groupOf {
		groupOf[i] = -1
	}
	branches := []Branch{}
	for i := range lanes {
		if groupOf[i] != -1 {
			continue
		}
		id := len(branches)
		groupOf[i] = id
		members := []int{i}
		for queue := []int{i}; len(queue) > 0; {
			current := queue[0]
			queue = queue[1:]
			for j := range lanes {
				if groupOf[j] != -1 || !lanes[current].IsSimilar(lanes[j]) {
					continue
				}
				groupOf[j] = id
				members = append(members, j)
				queue = append(queue, j)
			}
		}
		branch := Branch{ID: id, Lanes: make([]Lane, 0, len(members))}
		for j := range lanes {
			if groupOf[j] == id {
				branch.Lanes = append(branch.Lanes, lanes[j])
			}
		}
		branches = append(branches, branch)
	}
	return branches
}
