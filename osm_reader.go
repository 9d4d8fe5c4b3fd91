package crseg

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

type OSMFormat uint16

const (
	OSM_FORMAT_XML = OSMFormat(iota + 1)
	OSM_FORMAT_PBF
)

func (iotaIdx OSMFormat) String() string {
	return [...]string{"xml", "pbf"}[iotaIdx-1]
}

// guessOSMFormat returns format of the file by its extension
func guessOSMFormat(filename string) (OSMFormat, error) {
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return OSM_FORMAT_XML, nil
	case ".pbf":
		return OSM_FORMAT_PBF, nil
	default:
		return 0, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

// OSMReader builds street network graph from OSM data
type OSMReader struct {
	keepNegligible bool
	workers        int
	logger         *log.Logger
}

// NewOSMReader returns reader with given options
func NewOSMReader(options ...func(*OSMReader)) *OSMReader {
	reader := &OSMReader{
		workers: 4,
		logger:  log.New(io.Discard),
	}
	for _, option := range options {
		option(reader)
	}
	return reader
}

// WithKeepNegligibleHighways keeps footways, cycleways, parking aisles and etc.
func WithKeepNegligibleHighways(keep bool) func(*OSMReader) {
	return func(reader *OSMReader) {
		reader.keepNegligible = keep
	}
}

// WithPBFWorkers sets number of goroutines decoding PBF blocks
func WithPBFWorkers(workers int) func(*OSMReader) {
	return func(reader *OSMReader) {
		if workers > 0 {
			reader.workers = workers
		}
	}
}

func WithReaderLogger(logger *log.Logger) func(*OSMReader) {
	return func(reader *OSMReader) {
		if logger != nil {
			reader.logger = logger
		}
	}
}

// ReadOSM reads street network from OSM file (.osm, .xml or .pbf)
func ReadOSM(ctx context.Context, filename string, options ...func(*OSMReader)) (*Graph, error) {
	return NewOSMReader(options...).ReadFile(ctx, filename)
}

// ReadFile reads street network from OSM file (.osm, .xml or .pbf)
func (reader *OSMReader) ReadFile(ctx context.Context, filename string) (*Graph, error) {
	format, err := guessOSMFormat(filename)
	if err != nil {
		return nil, err
	}
	reader.logger.Info("Opening file", "filename", filename)
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open file '%s'", filename)
	}
	defer file.Close()
	return reader.Read(ctx, file, format)
}

func (reader *OSMReader) newScanner(ctx context.Context, r io.Reader, format OSMFormat) OSMScanner {
	if format == OSM_FORMAT_PBF {
		return osmpbf.New(ctx, r, reader.workers)
	}
	return osmxml.New(ctx, r)
}

type osmWay struct {
	id    osm.WayID
	nodes []osm.NodeID
	tags  osm.Tags
}

// Read reads street network from OSM data. Data is scanned twice: ways first and then their nodes
func (reader *OSMReader) Read(ctx context.Context, r io.ReadSeeker, format OSMFormat) (*Graph, error) {
	st := time.Now()
	ways := []osmWay{}
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays := reader.newScanner(ctx, r, format)
		for scannerWays.Scan() {
			obj := scannerWays.Object()
			if obj.ObjectID().Type() != osm.TypeWay {
				continue
			}
			way := obj.(*osm.Way)
			if !reader.isStreet(way) {
				continue
			}
			prepared := osmWay{
				id:    way.ID,
				nodes: make([]osm.NodeID, 0, len(way.Nodes)),
				tags:  make(osm.Tags, len(way.Tags)),
			}
			copy(prepared.tags, way.Tags)
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
				prepared.nodes = append(prepared.nodes, node.ID)
			}
			ways = append(ways, prepared)
		}
		err := scannerWays.Err()
		scannerWays.Close()
		if err != nil {
			return nil, errors.Wrap(err, "Can't scan ways")
		}
	}
	reader.logger.Debug("Ways have been scanned", "ways", len(ways), "elapsed", time.Since(st))

	_, err := r.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	st = time.Now()
	graph := NewGraph(METRIC_GEODESIC)
	{
		scannerNodes := reader.newScanner(ctx, r, format)
		for scannerNodes.Scan() {
			obj := scannerNodes.Object()
			if obj.ObjectID().Type() != osm.TypeNode {
				continue
			}
			node := obj.(*osm.Node)
			if _, ok := nodesSeen[node.ID]; !ok {
				continue
			}
			delete(nodesSeen, node.ID)
			if err := graph.AddNode(node.ID, node.Point(), node.Tags); err != nil {
				reader.logger.Warn("Node has been skipped", "node", node.ID, "err", err)
			}
		}
		err := scannerNodes.Err()
		scannerNodes.Close()
		if err != nil {
			return nil, errors.Wrap(err, "Can't scan nodes")
		}
	}
	if len(nodesSeen) > 0 {
		reader.logger.Warn("Some nodes referenced by ways are missing", "missing", len(nodesSeen))
	}
	reader.logger.Debug("Nodes have been scanned", "nodes", graph.NodesNum(), "elapsed", time.Since(st))

	for _, way := range ways {
		for i := 1; i < len(way.nodes); i++ {
			u, v := way.nodes[i-1], way.nodes[i]
			if u == v {
				continue
			}
			if err := graph.AddEdge(u, v, way.tags); err != nil {
				reader.logger.Debug("Edge has been skipped", "way", way.id, "err", err)
			}
		}
	}
	reader.logger.Info("Street network is ready", "nodes", graph.NodesNum(), "edges", graph.EdgesNum())
	return graph, nil
}

// isStreet returns true for ways which are parts of street network
func (reader *OSMReader) isStreet(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	if way.Tags.Find("area") == "yes" {
		return false
	}
	onewayText := way.Tags.Find("oneway")
	if onewayText != "" && onewayText != "no" && onewayText != "0" {
		_, isOneway := onewayValues[onewayText]
		_, isReversible := onewayReversible[onewayText]
		if !isOneway && !isReversible {
			reader.logger.Warn("Unhandled `oneway` tag value has been met", "value", onewayText, "way", way.ID)
		}
	}
	if reader.keepNegligible {
		return true
	}
	if _, ok := negligibleHighwayTags[highway]; ok {
		return false
	}
	if _, ok := negligibleServiceTags[strings.TrimSpace(way.Tags.Find("service"))]; ok {
		return false
	}
	return true
}
