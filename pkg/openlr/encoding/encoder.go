// Package encoding samples road network paths back into OpenLR location references.
package encoding

import (
	"errors"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"go.uber.org/zap"
)

var ErrNoRawEncoder = errors.New("no raw encoder configured")

// Encoder. stateless referenced encoder, safe for concurrent use when graph & router are.
type Encoder struct {
	graph   openlr.Graph
	router  openlr.Router
	matcher openlr.TagMatcher
	raw     openlr.RawEncoder
	config  openlr.Config
	logger  *zap.Logger
}

// NewEncoder. raw may be nil when only Encode is used.
func NewEncoder(graph openlr.Graph, router openlr.Router, matcher openlr.TagMatcher,
	raw openlr.RawEncoder, config openlr.Config, logger *zap.Logger) *Encoder {
	return &Encoder{
		graph:   graph,
		router:  router,
		matcher: matcher,
		raw:     raw,
		config:  config,
		logger:  logger,
	}
}

// EncodeRaw. encode location and serialize it with the raw encoder.
func (e *Encoder) EncodeRaw(location model.ReferencedLocation) ([]byte, error) {
	if e.raw == nil {
		return nil, ErrNoRawEncoder
	}
	encoded, err := e.Encode(location)
	if err != nil {
		return nil, err
	}
	return e.raw.Encode(encoded)
}

// Encode. map-independent location reference of location.
func (e *Encoder) Encode(location model.ReferencedLocation) (model.Location, error) {
	var (
		encoded model.Location
		err     error
	)
	switch loc := location.(type) {
	case *model.ReferencedLine:
		encoded, err = e.encodeLine(loc)
	case *model.ReferencedPointAlongLine:
		encoded, err = e.encodePointAlongLine(loc)
	case *model.ReferencedClosedLine:
		encoded, err = e.encodeClosedLine(loc)
	case *model.ReferencedRectangle:
		encoded, err = e.encodeRectangle(loc)
	case nil:
		return nil, openlr.InvalidInput("nil location")
	default:
		return nil, openlr.InvalidInput("unsupported location type %T", location)
	}
	if err != nil {
		return nil, err
	}
	return encoded, nil
}

// validatePath. edges must be contiguous, vertices (if given) must be the vertices along edges.
func (e *Encoder) validatePath(edges []model.EdgeID, vertices []model.VertexID) ([]model.VertexID, error) {
	if len(edges) == 0 {
		return nil, openlr.InvalidInput("empty path")
	}

	numEdges := e.graph.NumberOfEdges()
	for i, edge := range edges {
		if int(edge) >= numEdges {
			return nil, openlr.InvalidInput("edge %d at position %d does not exist", edge, i)
		}
	}

	path := make([]model.VertexID, 0, len(edges)+1)
	tail, _ := e.graph.Endpoints(edges[0])
	path = append(path, tail)
	for i, edge := range edges {
		t, h := e.graph.Endpoints(edge)
		if t != path[len(path)-1] {
			return nil, openlr.InvalidInput("edge %d at position %d does not continue the path", edge, i)
		}
		path = append(path, h)
	}

	if len(vertices) > 0 {
		if len(vertices) != len(path) {
			return nil, openlr.InvalidInput("expected %d vertices, got %d", len(path), len(vertices))
		}
		for i := range path {
			if vertices[i] != path[i] {
				return nil, openlr.InvalidInput("vertex %d at position %d is not on the path", vertices[i], i)
			}
		}
	}
	return path, nil
}
