package osmparser

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type nodeType uint8

const (
	END_NODE nodeType = iota + 1
	BETWEEN_NODE
	JUNCTION_NODE
)

var (
	// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	acceptedHighway = map[string]struct{}{
		"motorway":       {},
		"motorway_link":  {},
		"trunk":          {},
		"trunk_link":     {},
		"primary":        {},
		"primary_link":   {},
		"secondary":      {},
		"secondary_link": {},
		"tertiary":       {},
		"tertiary_link":  {},
		"residential":    {},
		"service":        {},
		"road":           {},
		"track":          {},
		"unclassified":   {},
		"living_street":  {},
		"motorroad":      {},
	}

	// https://wiki.openstreetmap.org/wiki/Key:barrier
	// a barrier with access=no splits the way into 2 disconnected edges.
	acceptedBarrierType = map[string]struct{}{
		"bollard":        {},
		"swing_gate":     {},
		"jersey_barrier": {},
		"lift_gate":      {},
		"block":          {},
		"gate":           {},
	}

	// tag keys that carry no road attributes.
	ignoredTagKeys = []string{"created_by", "source", "note", "fixme"}
)

type node struct {
	id    int64
	coord geo.Coordinate
}

// OsmParser. builds a road network from an openstreetmap extract.
// ways are split into one edge per junction-to-junction segment, the way tags are kept on every edge.
type OsmParser struct {
	logger          *zap.Logger
	wayNodeMap      map[int64]nodeType
	barrierNodes    map[int64]bool
	acceptedNodeMap map[int64]geo.Coordinate
	nodeIDMap       map[int64]datastructure.Index
	maxNodeID       int64
	builder         *datastructure.GraphBuilder
}

func NewOSMParser(logger *zap.Logger) *OsmParser {
	return &OsmParser{
		logger:          logger,
		wayNodeMap:      make(map[int64]nodeType),
		barrierNodes:    make(map[int64]bool),
		acceptedNodeMap: make(map[int64]geo.Coordinate),
		nodeIDMap:       make(map[int64]datastructure.Index),
		builder:         datastructure.NewGraphBuilder(),
	}
}

// Parse. mapFile is an .osm.pbf or an .osm (xml) file.
func (p *OsmParser) Parse(ctx context.Context, mapFile string) (*datastructure.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, errors.Wrap(err, "open osm file")
	}
	defer f.Close()

	pbf := strings.HasSuffix(strings.ToLower(filepath.Base(mapFile)), ".pbf")
	return p.ParseReader(ctx, f, pbf)
}

// ParseReader. scans r twice, the first pass finds junctions & barriers, the second builds the edges.
func (p *OsmParser) ParseReader(ctx context.Context, r io.ReadSeeker, pbf bool) (*datastructure.Graph, error) {
	newScanner := func() (osm.Scanner, error) {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, errors.Wrap(err, "rewind osm file")
		}
		if pbf {
			return osmpbf.New(ctx, r, runtime.GOMAXPROCS(-1)), nil
		}
		return osmxml.New(ctx, r), nil
	}

	scanner, err := newScanner()
	if err != nil {
		return nil, err
	}
	countWays := 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			barrierType := o.Tags.Find("barrier")
			if _, ok := acceptedBarrierType[barrierType]; ok && o.Tags.Find("access") == "no" {
				p.barrierNodes[int64(o.ID)] = true
			}
			p.maxNodeID = max(p.maxNodeID, int64(o.ID))
		case *osm.Way:
			if len(o.Nodes) < 2 || !acceptOsmWay(o) {
				continue
			}
			if (countWays+1)%50000 == 0 {
				p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
			}
			countWays++
			p.markWayNodes(o)
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, errors.Wrap(err, "scan osm ways")
	}
	scanner.Close()

	scanner, err = newScanner()
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			if _, ok := p.wayNodeMap[int64(o.ID)]; ok {
				p.acceptedNodeMap[int64(o.ID)] = geo.NewCoordinate(o.Lat, o.Lon)
			}
		case *osm.Way:
			if len(o.Nodes) < 2 || !acceptOsmWay(o) {
				continue
			}
			p.processWay(o)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan osm nodes")
	}

	graph := p.builder.Build()
	p.logger.Info("road network built from openstreetmap",
		zap.Int("ways", countWays),
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()))
	return graph, nil
}

func (p *OsmParser) markWayNodes(way *osm.Way) {
	for i, n := range way.Nodes {
		id := int64(n.ID)
		if _, ok := p.wayNodeMap[id]; !ok {
			if i == 0 || i == len(way.Nodes)-1 {
				p.wayNodeMap[id] = END_NODE
			} else {
				p.wayNodeMap[id] = BETWEEN_NODE
			}
		} else {
			p.wayNodeMap[id] = JUNCTION_NODE
		}
	}
}

func (p *OsmParser) processWay(way *osm.Way) {
	tags := wayTags(way.Tags)

	segment := []node{}
	for i, wayNode := range way.Nodes {
		coord, ok := p.acceptedNodeMap[int64(wayNode.ID)]
		if !ok {
			// node outside of the extract.
			segment = []node{}
			continue
		}
		n := node{id: int64(wayNode.ID), coord: coord}
		segment = append(segment, n)
		if i > 0 && p.isSegmentEnd(n.id) && len(segment) > 1 {
			p.processSegment(segment, tags)
			segment = []node{n}
		}
	}
	if len(segment) > 1 {
		p.processSegment(segment, tags)
	}
}

// processSegment. split segment at barrier nodes, every part becomes one edge.
func (p *OsmParser) processSegment(segment []node, tags osm.Tags) {
	part := []node{}
	for i, n := range segment {
		if p.barrierNodes[n.id] && i > 0 && i < len(segment)-1 {
			part = append(part, n)
			p.addEdge(part, tags)
			// the barrier continues as a different vertex so both edges stay disconnected.
			part = []node{p.copyNode(n)}
			continue
		}
		part = append(part, n)
	}
	if len(part) > 1 {
		p.addEdge(part, tags)
	}
}

func (p *OsmParser) copyNode(n node) node {
	p.maxNodeID++
	p.acceptedNodeMap[p.maxNodeID] = n.coord
	return node{id: p.maxNodeID, coord: n.coord}
}

func (p *OsmParser) addEdge(segment []node, tags osm.Tags) {
	from, to := segment[0], segment[len(segment)-1]
	if from.id == to.id {
		if len(segment) > 2 {
			// loop, split into 2 edges.
			p.addEdge(segment[:len(segment)-1], tags)
			p.addEdge(segment[len(segment)-2:], tags)
		}
		return
	}

	geometry := make([]geo.Coordinate, 0, len(segment))
	for _, n := range segment {
		geometry = append(geometry, n.coord)
	}
	p.builder.AddWay(p.vertexOf(from), p.vertexOf(to), tags, geometry, true)
}

func (p *OsmParser) vertexOf(n node) datastructure.Index {
	if id, ok := p.nodeIDMap[n.id]; ok {
		return id
	}
	id := p.builder.AddVertex(n.coord.Lat, n.coord.Lon)
	p.nodeIDMap[n.id] = id
	return id
}

func (p *OsmParser) isSegmentEnd(nodeID int64) bool {
	t := p.wayNodeMap[nodeID]
	return t == JUNCTION_NODE || t == END_NODE
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway != "" {
		_, ok := acceptedHighway[highway]
		return ok
	}
	return way.Tags.Find("junction") != ""
}

func wayTags(tags osm.Tags) osm.Tags {
	kept := make(osm.Tags, 0, len(tags))
	for _, tag := range tags {
		ignored := false
		for _, key := range ignoredTagKeys {
			if strings.Contains(tag.Key, key) {
				ignored = true
				break
			}
		}
		if !ignored {
			kept = append(kept, tag)
		}
	}
	return kept
}
