package usecases

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/engine"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/util"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func lonAt(meter float64) float64 {
	return meter / (6371000 * math.Pi / 180)
}

// A -100m- B -150m- C along the equator.
func newTestService(t *testing.T) (*OpenLRService, *datastructure.Graph) {
	b := datastructure.NewGraphBuilder()
	a := b.AddVertex(0, 0)
	bb := b.AddVertex(0, lonAt(100))
	c := b.AddVertex(0, lonAt(250))
	tags := osm.Tags{{Key: "highway", Value: "secondary"}}
	b.AddWay(a, bb, tags, nil, true)
	b.AddWay(bb, c, tags, nil, true)
	g := b.Build()

	e, err := engine.NewEngineFromGraph(g, routing.DefaultConfig(), openlr.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	return NewOpenLRService(zap.NewNop(), e.GetDecoder(), e.GetEncoder(), e.GetRoadNetwork()), g
}

func codeOf(err error) error {
	var uerr *util.Error
	if errors.As(err, &uerr) {
		return uerr.Code()
	}
	return nil
}

func TestOpenLRServiceEncodeDecode(t *testing.T) {
	service, g := newTestService(t)
	ab, _ := g.FindEdge(0, 1)
	bc, _ := g.FindEdge(1, 2)

	encoded, err := service.Encode(&model.ReferencedLine{Edges: []datastructure.Index{ab, bc}, StartOffset: 0.5})
	require.NoError(t, err)

	decoded, err := service.Decode(context.Background(), encoded)
	require.NoError(t, err)
	assert.Equal(t, []datastructure.Index{ab, bc}, decoded.Edges)
	assert.InDelta(t, 200.0, decoded.Length, 1.0)

	coords, err := geo.CoordsFromPolyline(decoded.Path)
	require.NoError(t, err)
	assert.Len(t, coords, 3)

	fc := service.Features(decoded.Edges)
	assert.Len(t, fc.Features, 2)
	assert.Equal(t, 4, service.NumberOfEdges())
}

func TestOpenLRServiceErrors(t *testing.T) {
	service, _ := newTestService(t)

	far := model.LocationReferencePoint{
		Coordinate:      geo.NewCoordinate(1, 1),
		FRC:             model.FRC3,
		FOW:             model.FOW_SINGLE_CARRIAGEWAY,
		LowestFRCToNext: model.FRC3,
		DistanceToNext:  250,
	}
	last := far
	last.Coordinate = geo.NewCoordinate(1, 1.002)
	last.IsLast = true
	last.DistanceToNext = 0

	testCases := []struct {
		name string
		run  func() error
		code error
	}{
		{
			name: "no candidates is not found",
			run: func() error {
				_, err := service.Decode(context.Background(), &model.LineLocation{Points: []model.LocationReferencePoint{far, last}})
				return err
			},
			code: util.ErrNotFound,
		},
		{
			name: "single point line is a bad param",
			run: func() error {
				_, err := service.Decode(context.Background(), &model.LineLocation{Points: []model.LocationReferencePoint{last}})
				return err
			},
			code: util.ErrBadParamInput,
		},
		{
			name: "nil location decode is a bad param",
			run: func() error {
				_, err := service.Decode(context.Background(), nil)
				return err
			},
			code: util.ErrBadParamInput,
		},
		{
			name: "nil location encode is a bad param",
			run: func() error {
				_, err := service.Encode(nil)
				return err
			},
			code: util.ErrBadParamInput,
		},
		{
			name: "empty path is a bad param",
			run: func() error {
				_, err := service.Encode(&model.ReferencedLine{})
				return err
			},
			code: util.ErrBadParamInput,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.Error(t, err)
			assert.Equal(t, tc.code, codeOf(err))
		})
	}
}
