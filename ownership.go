package crseg

import (
	"github.com/paulmach/osm"
)

// Ownership tracks which region owns graph nodes and edges. Missing entry means the element is not claimed
type Ownership struct {
	nodes map[osm.NodeID]RegionID
	edges map[EdgeKey]RegionID
}

// NewOwnership returns empty ownership tables
func NewOwnership() *Ownership {
	return &Ownership{
		nodes: make(map[osm.NodeID]RegionID),
		edges: make(map[EdgeKey]RegionID),
	}
}

// NodeOwner returns region owning the node
func (owners *Ownership) NodeOwner(id osm.NodeID) (RegionID, bool) {
	rid, ok := owners.nodes[id]
	return rid, ok
}

// EdgeOwner returns region owning the edge
func (owners *Ownership) EdgeOwner(u, v osm.NodeID) (RegionID, bool) {
	rid, ok := owners.edges[NewEdgeKey(u, v)]
	return rid, ok
}

func (owners *Ownership) claimNode(id osm.NodeID, rid RegionID) bool {
	if _, ok := owners.nodes[id]; ok {
		return false
	}
	owners.nodes[id] = rid
	return true
}

func (owners *Ownership) claimEdge(key EdgeKey, rid RegionID) bool {
	if _, ok := owners.edges[key]; ok {
		return false
	}
	owners.edges[key] = rid
	return true
}

// releaseNode drops the claim if it belongs to given region
func (owners *Ownership) releaseNode(id osm.NodeID, rid RegionID) {
	if current, ok := owners.nodes[id]; ok && current == rid {
		delete(owners.nodes, id)
	}
}

// releaseEdge drops the claim if it belongs to given region
func (owners *Ownership) releaseEdge(key EdgeKey, rid RegionID) {
	if current, ok := owners.edges[key]; ok && current == rid {
		delete(owners.edges, key)
	}
}

// transferNode moves the claim from one region to another
func (owners *Ownership) transferNode(id osm.NodeID, from, to RegionID) bool {
	if current, ok := owners.nodes[id]; ok && current != from {
		return false
	}
	owners.nodes[id] = to
	return true
}

func (owners *Ownership) transferEdge(key EdgeKey, from, to RegionID) bool {
	if current, ok := owners.edges[key]; ok && current != from {
		return false
	}
	owners.edges[key] = to
	return true
}

// Reset drops every claim
func (owners *Ownership) Reset() {
	owners.nodes = make(map[osm.NodeID]RegionID)
	owners.edges = make(map[EdgeKey]RegionID)
}
