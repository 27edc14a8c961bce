// Package decoding resolves OpenLR location references onto a road network.
package decoding

import (
	"context"
	"errors"
	"math"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoRawDecoder = errors.New("no raw decoder configured")
	errNotFinite    = errors.New("bearing and coordinate must be finite")
)

// Decoder. stateless referenced decoder, safe for concurrent use when graph & router are.
type Decoder struct {
	graph   openlr.Graph
	router  openlr.Router
	matcher openlr.TagMatcher
	raw     openlr.RawDecoder
	config  openlr.Config
	logger  *zap.Logger
}

// NewDecoder. raw may be nil when only Decode is used.
func NewDecoder(graph openlr.Graph, router openlr.Router, matcher openlr.TagMatcher,
	raw openlr.RawDecoder, config openlr.Config, logger *zap.Logger) *Decoder {
	return &Decoder{
		graph:   graph,
		router:  router,
		matcher: matcher,
		raw:     raw,
		config:  config,
		logger:  logger,
	}
}

// DecodeRaw. decode data with the raw decoder, then resolve it on the road network.
func (d *Decoder) DecodeRaw(ctx context.Context, data []byte) (model.ReferencedLocation, error) {
	if d.raw == nil {
		return nil, ErrNoRawDecoder
	}
	location, err := d.raw.Decode(data)
	if err != nil {
		return nil, &openlr.LocationError{Kind: openlr.ErrInvalidInput, Index: -1, Err: err}
	}
	return d.Decode(ctx, location)
}

// Decode. resolve location on the road network.
func (d *Decoder) Decode(ctx context.Context, location model.Location) (model.ReferencedLocation, error) {
	var (
		decoded model.ReferencedLocation
		err     error
	)
	switch loc := location.(type) {
	case *model.LineLocation:
		decoded, err = d.decodeLine(ctx, loc)
	case *model.PointAlongLineLocation:
		decoded, err = d.decodePointAlongLine(ctx, loc)
	case *model.ClosedLineLocation:
		decoded, err = d.decodeClosedLine(ctx, loc)
	case *model.RectangleLocation:
		decoded, err = d.decodeRectangle(loc)
	case nil:
		return nil, openlr.InvalidInput("nil location")
	default:
		return nil, openlr.InvalidInput("unsupported location type %T", location)
	}
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

func validatePoints(points []model.LocationReferencePoint) error {
	if len(points) < 2 {
		return openlr.InvalidInput("need at least 2 location reference points, got %d", len(points))
	}
	for i, p := range points {
		if !p.FRC.Valid() || !p.FOW.Valid() || !p.LowestFRCToNext.Valid() {
			return &openlr.LocationError{Kind: openlr.ErrInvalidInput, Index: i}
		}
		if !finite(p.Bearing) || !finite(p.Coordinate.Lat) || !finite(p.Coordinate.Lon) {
			return &openlr.LocationError{Kind: openlr.ErrInvalidInput, Index: i,
				Err: errNotFinite}
		}
		if i < len(points)-1 && !(p.DistanceToNext >= 0 && finite(p.DistanceToNext)) {
			return &openlr.LocationError{Kind: openlr.ErrInvalidInput, Index: i}
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func validOffset(offset float64) bool {
	return offset >= 0 && offset < 1
}

// decodedPath. the stitched path and the chosen route of every LRP pair.
type decodedPath struct {
	edges    []model.EdgeID
	vertices []model.VertexID
	routes   []CandidateRoute
}

// decodePath. candidate search for every LRP, route resolution for every LRP pair and stitching.
func (d *Decoder) decodePath(ctx context.Context, points []model.LocationReferencePoint) (decodedPath, error) {
	n := len(points)
	forwardCandidates := make([][]CandidateVertexEdge, n)
	backwardCandidates := make([][]CandidateVertexEdge, n)

	// per LRP errors, the lowest failing index is reported.
	errs := make([]error, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := range points {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if i < n-1 {
				forwardCandidates[i], errs[i] = d.candidatesWithEscalation(points[i], true, i)
				if errs[i] != nil {
					return nil
				}
			}
			if i > 0 {
				backwardCandidates[i], errs[i] = d.candidatesWithEscalation(points[i], false, i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return decodedPath{}, err
	}
	for _, err := range errs {
		if err != nil {
			return decodedPath{}, err
		}
	}

	ranked := make([][]CandidateRoute, n-1)
	for i := 0; i < n-1; i++ {
		if err := ctx.Err(); err != nil {
			return decodedPath{}, err
		}
		ranked[i] = d.findRoutes(forwardCandidates[i], backwardCandidates[i+1], points[i])
		if len(ranked[i]) == 0 {
			d.logger.Debug("no route between lrps", zap.Int("lrp", i),
				zap.Int("from_candidates", len(forwardCandidates[i])),
				zap.Int("to_candidates", len(backwardCandidates[i+1])))
			return decodedPath{}, openlr.NoRouteFound(i)
		}
	}

	return d.stitch(ranked)
}

// candidatesWithEscalation. candidates of lrp, retried once with an escalated radius when none are found.
// Without a vertex in the escalated radius the edges passing within it are used.
func (d *Decoder) candidatesWithEscalation(lrp model.LocationReferencePoint, forward bool,
	index int) ([]CandidateVertexEdge, error) {
	radius := d.config.SearchRadius
	candidates := d.FindCandidatesFor(lrp, forward, radius)
	if len(candidates) > 0 {
		return candidates, nil
	}

	escalated := radius * d.config.RadiusEscalationFactor
	d.logger.Debug("no candidates, escalating search radius", zap.Int("lrp", index),
		zap.Bool("forward", forward), zap.Float64("radius", escalated))
	candidates = d.FindCandidatesFor(lrp, forward, escalated)
	if len(candidates) > 0 {
		return candidates, nil
	}

	candidates = d.FindClosestCandidatesFor(lrp, forward, escalated)
	if len(candidates) == 0 {
		return nil, openlr.NoCandidatesFound(index)
	}
	d.logger.Debug("lrp matched to the closest edges", zap.Int("lrp", index),
		zap.Bool("forward", forward), zap.Int("candidates", len(candidates)))
	return candidates, nil
}

// stitch. pair i+1 uses its best route starting where the route of pair i ends.
func (d *Decoder) stitch(ranked [][]CandidateRoute) (decodedPath, error) {
	chosen := make([]CandidateRoute, 0, len(ranked))
	chosen = append(chosen, ranked[0][0])

	for i := 1; i < len(ranked); i++ {
		prev := chosen[i-1]
		_, end := d.graph.Endpoints(prev.Edges[len(prev.Edges)-1])

		found := false
		for _, route := range ranked[i] {
			start, _ := d.graph.Endpoints(route.Edges[0])
			if start == end {
				chosen = append(chosen, route)
				found = true
				break
			}
		}
		if !found {
			return decodedPath{}, openlr.DiscontinuousMatch(i)
		}
	}

	path := decodedPath{routes: chosen}
	for _, route := range chosen {
		path.edges = append(path.edges, route.Edges...)
	}
	path.vertices = d.pathVertices(path.edges)
	return path, nil
}

func (d *Decoder) pathVertices(edges []model.EdgeID) []model.VertexID {
	if len(edges) == 0 {
		return nil
	}
	vertices := make([]model.VertexID, 0, len(edges)+1)
	tail, _ := d.graph.Endpoints(edges[0])
	vertices = append(vertices, tail)
	for _, e := range edges {
		_, head := d.graph.Endpoints(e)
		vertices = append(vertices, head)
	}
	return vertices
}
