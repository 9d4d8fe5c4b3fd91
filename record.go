package crseg

import (
	"fmt"
	"strings"

	"github.com/paulmach/osm"
)

const (
	RECORD_CROSSROAD = "crossroad"
	RECORD_BRANCH    = "branch"
)

// RecordNodes splits nodes of the record into inner and border ones
type RecordNodes struct {
	Inner  []osm.NodeID `json:"inner"`
	Border []osm.NodeID `json:"border"`
}

// RecordCoordinate is a position of the node
type RecordCoordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Record is an exported description of crossroad or of its branch
type Record struct {
	Type        string                          `json:"type"`
	Nodes       RecordNodes                     `json:"nodes"`
	Edges       [][2]osm.NodeID                 `json:"edges"`
	Coordinates map[osm.NodeID]RecordCoordinate `json:"coordinates"`
}

func newRecord(g *Graph, recordType string, inner, border []osm.NodeID, edges []Segment) Record {
	record := Record{
		Type: recordType,
		Nodes: RecordNodes{
			Inner:  inner,
			Border: border,
		},
		Edges:       make([][2]osm.NodeID, 0, len(edges)),
		Coordinates: make(map[osm.NodeID]RecordCoordinate, len(inner)+len(border)),
	}
	for _, seg := range edges {
		record.Edges = append(record.Edges, [2]osm.NodeID{seg.From, seg.To})
	}
	for _, ids := range [][]osm.NodeID{inner, border} {
		for _, id := range ids {
			pt := g.Point(id)
			record.Coordinates[id] = RecordCoordinate{X: pt.X(), Y: pt.Y()}
		}
	}
	return record
}

// Records returns description of the crossroad followed by descriptions of its branches
func (c *Crossroad) Records() []Record {
	inner := []osm.NodeID{}
	border := []osm.NodeID{}
	for _, n := range c.nodes {
		if c.IsBoundaryNode(n) {
			border = append(border, n)
		} else {
			inner = append(inner, n)
		}
	}
	records := []Record{newRecord(c.graph, RECORD_CROSSROAD, inner, border, c.edges)}
	for _, branch := range c.branches {
		nodes := []osm.NodeID{}
		seen := make(map[osm.NodeID]struct{})
		edges := make([]Segment, 0, len(branch.Lanes))
		for _, lane := range branch.Lanes {
			for _, n := range []osm.NodeID{lane.Edge.From, lane.Edge.To} {
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				nodes = append(nodes, n)
			}
			edges = append(edges, lane.Edge)
		}
		records = append(records, newRecord(c.graph, RECORD_BRANCH, []osm.NodeID{}, nodes, edges))
	}
	return records
}

// Text returns human readable description of the crossroad
func (c *Crossroad) Text() string {
	var sb strings.Builder
	sb.WriteString("General description:\n")
	sb.WriteString(fmt.Sprintf("* id: %d\n* kind: %s\n* center: %d\n* lanes: %d\n* branches: %d\n", c.ID, c.kind, c.center, len(c.lanes), len(c.branches)))
	sb.WriteString("Details:\n")
	for _, record := range c.Records() {
		sb.WriteString(fmt.Sprintf("* %s: inner nodes %v, border nodes %v, edges %v\n", record.Type, record.Nodes.Inner, record.Nodes.Border, record.Edges))
	}
	for _, branch := range c.branches {
		sb.WriteString(fmt.Sprintf("* %s '%s':", branch, branch.Name()))
		for _, lane := range branch.Lanes {
			sb.WriteString(" " + lane.String() + ";")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
