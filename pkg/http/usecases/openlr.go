package usecases

import (
	"context"
	"errors"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/util"
	geojson "github.com/paulmach/go.geojson"
	"go.uber.org/zap"
)

type OpenLRService struct {
	log     *zap.Logger
	decoder LocationDecoder
	encoder LocationEncoder
	network RoadNetwork
}

func NewOpenLRService(log *zap.Logger, decoder LocationDecoder, encoder LocationEncoder,
	network RoadNetwork) *OpenLRService {
	return &OpenLRService{
		log:     log,
		decoder: decoder,
		encoder: encoder,
		network: network,
	}
}

// DecodedLocation. referenced location plus the geometry of its edges.
type DecodedLocation struct {
	Location model.ReferencedLocation
	Edges    []model.EdgeID
	// google encoded polyline of the edges, untrimmed.
	Path string
	// meter, offsets already cut away.
	Length float64
}

func (s *OpenLRService) Decode(ctx context.Context, location model.Location) (*DecodedLocation, error) {
	referenced, err := s.decoder.Decode(ctx, location)
	if err != nil {
		s.log.Info("decode failed", zap.String("type", typeName(location)), zap.Error(err))
		return nil, wrapLocationError(err, "decode %s location", typeName(location))
	}

	var (
		edges                  []model.EdgeID
		startOffset, endOffset float64
	)
	switch loc := referenced.(type) {
	case *model.ReferencedLine:
		edges, startOffset, endOffset = loc.Edges, loc.StartOffset, loc.EndOffset
	case *model.ReferencedPointAlongLine:
		edges = loc.Route.Edges
	case *model.ReferencedClosedLine:
		edges = loc.Edges
	case *model.ReferencedRectangle:
		edges = loc.Edges
	}

	decoded := &DecodedLocation{
		Location: referenced,
		Edges:    edges,
	}
	if referenced.Type() != model.RECTANGLE_LOCATION {
		decoded.Path = geo.PolylineFromCoords(s.pathCoordinates(edges))
		decoded.Length = s.pathLength(edges, startOffset, endOffset)
	}
	return decoded, nil
}

func (s *OpenLRService) Encode(location model.ReferencedLocation) (model.Location, error) {
	encoded, err := s.encoder.Encode(location)
	if err != nil {
		s.log.Info("encode failed", zap.String("type", typeName(location)), zap.Error(err))
		return nil, wrapLocationError(err, "encode %s location", typeName(location))
	}
	return encoded, nil
}

// typeName. "nil" for a nil location.
func typeName(location interface{ Type() model.LocationType }) string {
	if location == nil {
		return "nil"
	}
	return location.Type().String()
}

// Features. edges as a geojson FeatureCollection.
func (s *OpenLRService) Features(edges []model.EdgeID) *geojson.FeatureCollection {
	return s.network.GetGraph().EdgesToFeatureCollection(edges)
}

// NumberOfEdges. edge ids accepted by Encode are in [0, NumberOfEdges).
func (s *OpenLRService) NumberOfEdges() int {
	return s.network.GetGraph().NumberOfEdges()
}

func (s *OpenLRService) pathCoordinates(edges []model.EdgeID) []model.Coordinate {
	coords := make([]model.Coordinate, 0, 2*len(edges))
	for _, e := range edges {
		geometry := s.network.Geometry(e)
		if len(coords) > 0 && len(geometry) > 0 && coords[len(coords)-1] == geometry[0] {
			geometry = geometry[1:]
		}
		coords = append(coords, geometry...)
	}
	return coords
}

func (s *OpenLRService) pathLength(edges []model.EdgeID, startOffset, endOffset float64) float64 {
	if len(edges) == 0 {
		return 0
	}
	length := 0.0
	for _, e := range edges {
		length += s.network.LengthOf(e)
	}
	length -= startOffset * s.network.LengthOf(edges[0])
	length -= endOffset * s.network.LengthOf(edges[len(edges)-1])
	return util.MaxG(length, 0)
}

func wrapLocationError(err error, format string, a ...interface{}) error {
	switch {
	case errors.Is(err, openlr.ErrInvalidInput):
		return util.WrapErrorf(err, util.ErrBadParamInput, format, a...)
	case errors.Is(err, openlr.ErrNoCandidatesFound), errors.Is(err, openlr.ErrNoRouteFound):
		return util.WrapErrorf(err, util.ErrNotFound, format, a...)
	case errors.Is(err, openlr.ErrDiscontinuousMatch), errors.Is(err, openlr.ErrTagClassificationFailed):
		return util.WrapErrorf(err, util.ErrUnprocessable, format, a...)
	default:
		return util.WrapErrorf(err, util.ErrInternalServerError, format, a...)
	}
}
