package crseg

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// ExportToCSV writes labeled graph into two files: '<name>_nodes.csv' and '<name>_edges.csv'
func (s *Segmentation) ExportToCSV(fname string, multiscale bool) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameNodes := fnameParts[0] + "_nodes.csv"
	fnameEdges := fnameParts[0] + "_edges.csv"

	labels := s.Labels(multiscale)

	err := writeCSVFile(fnameNodes, func(w io.Writer) error {
		return s.WriteNodesCSV(w, labels)
	})
	if err != nil {
		return errors.Wrap(err, "Can't export nodes")
	}

	err = writeCSVFile(fnameEdges, func(w io.Writer) error {
		return s.WriteEdgesCSV(w, labels)
	})
	if err != nil {
		return errors.Wrap(err, "Can't export edges")
	}
	return nil
}

func writeCSVFile(fname string, write func(w io.Writer) error) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	return write(file)
}

// WriteNodesCSV writes every graph node with its reliability scores and crossroad labels
func (s *Segmentation) WriteNodesCSV(w io.Writer, labels Labels) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	err := writer.Write([]string{"osm_node_id", "osm_highway", "degree", "boundary", "branch", "crossroad", "crossroads", "longitude", "latitude", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, node := range s.graph.Nodes() {
		err = writer.Write([]string{
			fmt.Sprintf("%d", node.ID),
			node.Highway(),
			fmt.Sprintf("%d", node.Degree()),
			fmt.Sprintf("%.0f", node.Reliability.Boundary),
			fmt.Sprintf("%.0f", node.Reliability.Branch),
			fmt.Sprintf("%.0f", node.Reliability.Crossroad),
			labels.NodeLabel(node.ID),
			fmt.Sprintf("%f", node.Point.X()),
			fmt.Sprintf("%f", node.Point.Y()),
			wkt.MarshalString(node.Point),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write node")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "Can't flush nodes")
}

// WriteEdgesCSV writes every graph edge with its reliability scores, crossroad and branch labels
func (s *Segmentation) WriteEdgesCSV(w io.Writer, labels Labels) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	err := writer.Write([]string{"source_node", "target_node", "osm_highway", "name", "width", "branch", "crossroad", "crossroads", "branches", "length_meters", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, edge := range s.graph.Edges() {
		key := edge.Key()
		geom := orb.LineString{s.graph.Point(edge.Source), s.graph.Point(edge.Target)}
		err = writer.Write([]string{
			fmt.Sprintf("%d", edge.Source),
			fmt.Sprintf("%d", edge.Target),
			edge.Highway(),
			edge.Name(),
			fmt.Sprintf("%f", edge.EstimateWidth()),
			fmt.Sprintf("%.0f", edge.Reliability.Branch),
			fmt.Sprintf("%.0f", edge.Reliability.Crossroad),
			labels.EdgeLabel(key),
			labels.BranchLabel(key),
			fmt.Sprintf("%f", s.graph.Distance(edge.Source, edge.Target)),
			wkt.MarshalString(geom),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "Can't flush edges")
}
