package decoding

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	da "github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/scoring"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/tagmatcher"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/roadnetwork"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// meter per degree of longitude on the equator.
const meterPerDegree = 6371000 * math.Pi / 180

func lonAt(meter float64) float64 {
	return meter / meterPerDegree
}

var secondary = osm.Tags{{Key: "highway", Value: "secondary"}}

// A -100m- B -150m- C along the equator, FRC3 two-way roads.
// X -150m- Y is a separate road, X lies 30m north of C.
func buildABC() *da.Graph {
	b := da.NewGraphBuilder()
	a := b.AddVertex(0, 0)
	bb := b.AddVertex(0, lonAt(100))
	c := b.AddVertex(0, lonAt(250))
	b.AddWay(a, bb, secondary, nil, true)
	b.AddWay(bb, c, secondary, nil, true)

	x := b.AddVertex(lonAt(30), lonAt(250))
	y := b.AddVertex(lonAt(30), lonAt(400))
	b.AddWay(x, y, secondary, nil, true)
	return b.Build()
}

// A-B-C-D square with 200m sides, counter clockwise from the south west corner.
func buildSquare() *da.Graph {
	b := da.NewGraphBuilder()
	a := b.AddVertex(0, 0)
	bb := b.AddVertex(0, lonAt(200))
	c := b.AddVertex(lonAt(200), lonAt(200))
	d := b.AddVertex(lonAt(200), 0)
	b.AddWay(a, bb, secondary, nil, true)
	b.AddWay(bb, c, secondary, nil, true)
	b.AddWay(c, d, secondary, nil, true)
	b.AddWay(d, a, secondary, nil, true)
	return b.Build()
}

func newTestDecoder(t *testing.T, g *da.Graph) (*Decoder, *roadnetwork.RoadNetwork) {
	network := roadnetwork.NewRoadNetwork(g, zap.NewNop())
	matcher := tagmatcher.NewOSMTagMatcher()
	router, err := routing.NewDijkstra(g, matcher, routing.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	return NewDecoder(network, router, matcher, nil, openlr.DefaultConfig(), zap.NewNop()), network
}

func lrp(c model.Coordinate, bearing, dnp float64, last bool) model.LocationReferencePoint {
	return model.LocationReferencePoint{
		Coordinate:      c,
		Bearing:         bearing,
		FRC:             model.FRC3,
		FOW:             model.FOW_SINGLE_CARRIAGEWAY,
		LowestFRCToNext: model.FRC3,
		DistanceToNext:  dnp,
		IsLast:          last,
	}
}

func TestDecodeLineScenario(t *testing.T) {
	g := buildABC()
	decoder, network := newTestDecoder(t, g)
	ab, _ := g.FindEdge(0, 1)
	bc, _ := g.FindEdge(1, 2)

	testCases := []struct {
		name          string
		declared      float64
		minComparison float64
		maxComparison float64
	}{
		{
			name:          "declared distance matches",
			declared:      250,
			minComparison: 0.999,
			maxComparison: 1,
		},
		{
			name:          "gross distance mismatch",
			declared:      1000,
			minComparison: 0,
			maxComparison: 0.2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			points := []model.LocationReferencePoint{
				lrp(network.CoordinateOf(0), 90, tc.declared, false),
				lrp(network.CoordinateOf(2), 270, 0, true),
			}

			decoded, err := decoder.Decode(context.Background(), &model.LineLocation{Points: points})
			require.NoError(t, err)
			line, ok := decoded.(*model.ReferencedLine)
			require.True(t, ok)
			assert.Equal(t, []model.EdgeID{ab, bc}, line.Edges)
			assert.Equal(t, []model.VertexID{0, 1, 2}, line.Vertices)
			assert.Equal(t, 0.0, line.StartOffset)
			assert.Equal(t, 0.0, line.EndOffset)

			from := decoder.FindCandidatesFor(points[0], true, 50)
			to := decoder.FindCandidatesFor(points[1], false, 50)
			require.NotEmpty(t, from)
			require.NotEmpty(t, to)
			route, found := decoder.FindCandidateRoute(from[0], to[0], decoder.routeFloor(points[0]), tc.declared)
			require.True(t, found)
			assert.InDelta(t, 250, route.Length, 0.01)

			distanceScore, ok := route.Score.GetByName(scoring.DISTANCE_COMPARISON)
			require.True(t, ok)
			assert.GreaterOrEqual(t, distanceScore.Ratio(), tc.minComparison)
			assert.LessOrEqual(t, distanceScore.Ratio(), tc.maxComparison)

			_, ok = route.Score.GetByName(scoring.CANDIDATE_ROUTE)
			assert.True(t, ok)
		})
	}
}

func TestDecodeLineOffsets(t *testing.T) {
	g := buildABC()
	decoder, network := newTestDecoder(t, g)
	bc, _ := g.FindEdge(1, 2)

	points := []model.LocationReferencePoint{
		lrp(network.CoordinateOf(0), 90, 250, false),
		lrp(network.CoordinateOf(2), 270, 0, true),
	}
	decoded, err := decoder.Decode(context.Background(), &model.LineLocation{
		Points:         points,
		PositiveOffset: 0.6,
		NegativeOffset: 0.2,
	})
	require.NoError(t, err)

	line := decoded.(*model.ReferencedLine)
	assert.Equal(t, []model.EdgeID{bc}, line.Edges)
	assert.InDelta(t, 50.0/150.0, line.StartOffset, 1e-6)
	assert.InDelta(t, 50.0/150.0, line.EndOffset, 1e-6)
}

func TestDecodeErrors(t *testing.T) {
	g := buildABC()
	decoder, network := newTestDecoder(t, g)

	far := geo.NewCoordinate(0.09, lonAt(250))

	testCases := []struct {
		name     string
		location model.Location
		kind     error
		index    int
	}{
		{
			name: "coordinate 10km away from the network",
			location: &model.LineLocation{Points: []model.LocationReferencePoint{
				lrp(network.CoordinateOf(0), 90, 250, false),
				lrp(far, 270, 0, true),
			}},
			kind:  openlr.ErrNoCandidatesFound,
			index: 1,
		},
		{
			name: "disconnected road",
			location: &model.LineLocation{Points: []model.LocationReferencePoint{
				lrp(network.CoordinateOf(0), 90, 280, false),
				lrp(network.CoordinateOf(4), 270, 0, true),
			}},
			kind:  openlr.ErrNoRouteFound,
			index: 0,
		},
		{
			name: "single lrp",
			location: &model.LineLocation{Points: []model.LocationReferencePoint{
				lrp(network.CoordinateOf(0), 90, 250, true),
			}},
			kind:  openlr.ErrInvalidInput,
			index: -1,
		},
		{
			name: "offset out of range",
			location: &model.LineLocation{Points: []model.LocationReferencePoint{
				lrp(network.CoordinateOf(0), 90, 250, false),
				lrp(network.CoordinateOf(2), 270, 0, true),
			}, PositiveOffset: 1},
			kind:  openlr.ErrInvalidInput,
			index: -1,
		},
		{
			name: "nan bearing",
			location: &model.LineLocation{Points: []model.LocationReferencePoint{
				lrp(network.CoordinateOf(0), 90, 250, false),
				lrp(network.CoordinateOf(2), math.NaN(), 0, true),
			}},
			kind:  openlr.ErrInvalidInput,
			index: 1,
		},
		{
			name: "infinite coordinate",
			location: &model.LineLocation{Points: []model.LocationReferencePoint{
				lrp(geo.NewCoordinate(0, math.Inf(1)), 90, 250, false),
				lrp(network.CoordinateOf(2), 270, 0, true),
			}},
			kind:  openlr.ErrInvalidInput,
			index: 0,
		},
		{
			name: "infinite distance to next",
			location: &model.LineLocation{Points: []model.LocationReferencePoint{
				lrp(network.CoordinateOf(0), 90, math.Inf(1), false),
				lrp(network.CoordinateOf(2), 270, 0, true),
			}},
			kind:  openlr.ErrInvalidInput,
			index: 0,
		},
		{
			name:     "nil location",
			location: nil,
			kind:     openlr.ErrInvalidInput,
			index:    -1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decoder.Decode(context.Background(), tc.location)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.kind), err.Error())
			assert.Equal(t, tc.index, openlr.IndexOf(err))
		})
	}
}

// countingGraph. counts the spatial lookups of the decoder.
type countingGraph struct {
	openlr.Graph
	verticesNear atomic.Int32
	edgesNear    atomic.Int32
}

func (g *countingGraph) VerticesNear(c model.Coordinate, radius float64) []model.VertexID {
	g.verticesNear.Add(1)
	return g.Graph.VerticesNear(c, radius)
}

func (g *countingGraph) EdgesNear(c model.Coordinate, radius float64) []model.EdgeID {
	g.edgesNear.Add(1)
	return g.Graph.EdgesNear(c, radius)
}

func TestDecodeRadiusEscalation(t *testing.T) {
	g := buildABC()
	ab, _ := g.FindEdge(0, 1)
	bc, _ := g.FindEdge(1, 2)

	testCases := []struct {
		name             string
		first            model.Coordinate
		last             model.Coordinate
		edges            []model.EdgeID
		kind             error
		errIndex         int
		wantVerticesNear int32
		wantEdgesNear    int32
	}{
		{
			name:             "vertex within the search radius",
			first:            geo.NewCoordinate(0, 0),
			last:             geo.NewCoordinate(0, lonAt(250)),
			edges:            []model.EdgeID{ab, bc},
			wantVerticesNear: 2,
		},
		{
			// 70m south of A, only A lies within the escalated 100m radius.
			name:             "vertex within the escalated radius",
			first:            geo.NewCoordinate(-lonAt(70), 0),
			last:             geo.NewCoordinate(0, lonAt(250)),
			edges:            []model.EdgeID{ab, bc},
			wantVerticesNear: 3,
		},
		{
			name:             "nothing within the escalated radius",
			first:            geo.NewCoordinate(0, 0),
			last:             geo.NewCoordinate(0.09, lonAt(250)),
			kind:             openlr.ErrNoCandidatesFound,
			errIndex:         1,
			wantVerticesNear: 3,
			wantEdgesNear:    1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, network := newTestDecoder(t, g)
			counting := &countingGraph{Graph: network}
			matcher := tagmatcher.NewOSMTagMatcher()
			router, err := routing.NewDijkstra(g, matcher, routing.DefaultConfig(), zap.NewNop())
			require.NoError(t, err)
			decoder := NewDecoder(counting, router, matcher, nil, openlr.DefaultConfig(), zap.NewNop())

			decoded, err := decoder.Decode(context.Background(), &model.LineLocation{Points: []model.LocationReferencePoint{
				lrp(tc.first, 90, 250, false),
				lrp(tc.last, 270, 0, true),
			}})
			if tc.kind != nil {
				assert.ErrorIs(t, err, tc.kind)
				assert.Equal(t, tc.errIndex, openlr.IndexOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.edges, decoded.(*model.ReferencedLine).Edges)
			}
			// one retry per point, never more.
			assert.Equal(t, tc.wantVerticesNear, counting.verticesNear.Load())
			assert.Equal(t, tc.wantEdgesNear, counting.edgesNear.Load())
		})
	}
}

// A -1000m- C -1000m- D along the equator.
func buildLongRoad() *da.Graph {
	b := da.NewGraphBuilder()
	a := b.AddVertex(0, 0)
	c := b.AddVertex(0, lonAt(1000))
	d := b.AddVertex(0, lonAt(2000))
	b.AddWay(a, c, secondary, nil, true)
	b.AddWay(c, d, secondary, nil, true)
	return b.Build()
}

func TestDecodeClosestEdge(t *testing.T) {
	g := buildLongRoad()
	decoder, network := newTestDecoder(t, g)
	ac, _ := g.FindEdge(0, 1)
	cd, _ := g.FindEdge(1, 2)

	// 500m from any vertex, halfway between C and D.
	midCD := geo.NewCoordinate(0, lonAt(1500))

	forward := decoder.FindClosestCandidatesFor(lrp(midCD, 90, 500, false), true, 100)
	require.NotEmpty(t, forward)
	assert.Equal(t, model.VertexID(1), forward[0].Vertex)
	assert.Equal(t, cd, forward[0].Edge)
	assert.Equal(t, model.VertexID(2), forward[0].TargetVertex)

	backward := decoder.FindClosestCandidatesFor(lrp(midCD, 270, 0, true), false, 100)
	require.NotEmpty(t, backward)
	assert.Equal(t, model.VertexID(2), backward[0].Vertex)
	assert.Equal(t, cd, backward[0].Edge)
	assert.Equal(t, model.VertexID(1), backward[0].TargetVertex)

	assert.Empty(t, decoder.FindCandidatesFor(lrp(midCD, 270, 0, true), false, 100))

	decoded, err := decoder.Decode(context.Background(), &model.LineLocation{Points: []model.LocationReferencePoint{
		lrp(network.CoordinateOf(0), 90, 1500, false),
		lrp(midCD, 270, 0, true),
	}})
	require.NoError(t, err)
	line := decoded.(*model.ReferencedLine)
	assert.Equal(t, []model.EdgeID{ac, cd}, line.Edges)
	assert.Equal(t, []model.VertexID{0, 1, 2}, line.Vertices)
}

func TestDecodeCancelled(t *testing.T) {
	g := buildABC()
	decoder, network := newTestDecoder(t, g)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := decoder.Decode(ctx, &model.LineLocation{Points: []model.LocationReferencePoint{
		lrp(network.CoordinateOf(0), 90, 250, false),
		lrp(network.CoordinateOf(2), 270, 0, true),
	}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStitchDiscontinuous(t *testing.T) {
	g := buildSquare()
	decoder, _ := newTestDecoder(t, g)
	ab, _ := g.FindEdge(0, 1)
	cd, _ := g.FindEdge(2, 3)
	bc, _ := g.FindEdge(1, 2)

	score := scoring.New(scoring.CANDIDATE_ROUTE, "", 1, 1)
	_, err := decoder.stitch([][]CandidateRoute{
		{{Edges: []model.EdgeID{ab}, Score: score}},
		{{Edges: []model.EdgeID{cd}, Score: score}},
	})
	assert.ErrorIs(t, err, openlr.ErrDiscontinuousMatch)
	assert.Equal(t, 1, openlr.IndexOf(err))

	// the second best route of pair 1 continues the path.
	path, err := decoder.stitch([][]CandidateRoute{
		{{Edges: []model.EdgeID{ab}, Score: score}},
		{{Edges: []model.EdgeID{cd}, Score: score}, {Edges: []model.EdgeID{bc, cd}, Score: score}},
	})
	require.NoError(t, err)
	assert.Equal(t, []model.EdgeID{ab, bc, cd}, path.edges)
	assert.Equal(t, []model.VertexID{0, 1, 2, 3}, path.vertices)
}

func TestDecodePointAlongLine(t *testing.T) {
	g := buildABC()
	decoder, network := newTestDecoder(t, g)
	ab, _ := g.FindEdge(0, 1)
	bc, _ := g.FindEdge(1, 2)

	decoded, err := decoder.Decode(context.Background(), &model.PointAlongLineLocation{
		First:          lrp(network.CoordinateOf(0), 90, 250, false),
		Last:           lrp(network.CoordinateOf(2), 270, 0, true),
		PositiveOffset: 0.4,
		Orientation:    model.FIRST_TO_SECOND,
		SideOfRoad:     model.RIGHT,
	})
	require.NoError(t, err)

	point := decoded.(*model.ReferencedPointAlongLine)
	assert.Equal(t, []model.EdgeID{ab, bc}, point.Route.Edges)
	assert.InDelta(t, 0.4, point.Offset, 1e-9)
	assert.InDelta(t, 0, geo.DistanceMeter(point.Coordinate, network.CoordinateOf(1)), 0.01)
	assert.Equal(t, model.FIRST_TO_SECOND, point.Orientation)
	assert.Equal(t, model.RIGHT, point.SideOfRoad)
}

func TestDecodeClosedLine(t *testing.T) {
	g := buildSquare()
	decoder, network := newTestDecoder(t, g)

	// A -> C via B, C -> A via D.
	points := []model.LocationReferencePoint{
		lrp(network.CoordinateOf(0), 90, 400, false),
		lrp(network.CoordinateOf(2), 270, 400, false),
		lrp(network.CoordinateOf(0), 0, 0, true),
	}
	decoded, err := decoder.Decode(context.Background(), &model.ClosedLineLocation{Points: points})
	require.NoError(t, err)

	closed := decoded.(*model.ReferencedClosedLine)
	assert.Equal(t, []model.VertexID{0, 1, 2, 3, 0}, closed.Vertices)
	assert.Len(t, closed.Edges, 4)
}

func TestDecodeRectangle(t *testing.T) {
	g := buildABC()
	decoder, _ := newTestDecoder(t, g)
	bc, _ := g.FindEdge(1, 2)
	cb, _ := g.FindEdge(2, 1)

	decoded, err := decoder.Decode(context.Background(), &model.RectangleLocation{
		LowerLeft:  geo.NewCoordinate(-lonAt(10), lonAt(150)),
		UpperRight: geo.NewCoordinate(lonAt(10), lonAt(200)),
	})
	require.NoError(t, err)
	assert.Equal(t, []model.EdgeID{bc, cb}, decoded.(*model.ReferencedRectangle).Edges)

	_, err = decoder.Decode(context.Background(), &model.RectangleLocation{
		LowerLeft:  geo.NewCoordinate(1, 1),
		UpperRight: geo.NewCoordinate(0, 0),
	})
	assert.ErrorIs(t, err, openlr.ErrInvalidInput)
}

func TestDecodeRawWithoutDecoder(t *testing.T) {
	decoder, _ := newTestDecoder(t, buildABC())
	_, err := decoder.DecodeRaw(context.Background(), []byte("{}"))
	assert.ErrorIs(t, err, ErrNoRawDecoder)
}
