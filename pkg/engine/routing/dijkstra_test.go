package routing

import (
	"testing"

	da "github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/tagmatcher"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

//	    D
//	   / \        (primary)
//	  A-B-C -> E  (residential, C->E oneway)
func buildTestRouter(t *testing.T, config Config) (*Dijkstra, *da.Graph) {
	b := da.NewGraphBuilder()
	a := b.AddVertex(0, 0)
	bb := b.AddVertex(0, 0.001)
	c := b.AddVertex(0, 0.002)
	d := b.AddVertex(0.001, 0.001)
	e := b.AddVertex(0, 0.003)

	residential := osm.Tags{{Key: "highway", Value: "residential"}}
	primary := osm.Tags{{Key: "highway", Value: "primary"}}
	b.AddWay(a, bb, residential, nil, true)
	b.AddWay(bb, c, residential, nil, true)
	b.AddWay(a, d, primary, nil, true)
	b.AddWay(d, c, primary, nil, true)
	b.AddWay(c, e, osm.Tags{{Key: "highway", Value: "residential"}, {Key: "oneway", Value: "yes"}}, nil, true)
	g := b.Build()

	router, err := NewDijkstra(g, tagmatcher.NewOSMTagMatcher(), config, zap.NewNop())
	require.NoError(t, err)
	return router, g
}

func pathVertices(g *da.Graph, from da.Index, path []da.Index) []da.Index {
	vertices := []da.Index{from}
	for _, e := range path {
		vertices = append(vertices, g.GetEdge(e).GetHead())
	}
	return vertices
}

func TestShortestPath(t *testing.T) {
	router, g := buildTestRouter(t, DefaultConfig())

	testCases := []struct {
		name      string
		from, to  da.Index
		lowestFRC model.FRC
		found     bool
		vertices  []da.Index
	}{
		{
			name:      "shortest over all classes",
			from:      0,
			to:        2,
			lowestFRC: model.FRC7,
			found:     true,
			vertices:  []da.Index{0, 1, 2},
		},
		{
			name:      "floor prunes residential",
			from:      0,
			to:        2,
			lowestFRC: model.FRC2,
			found:     true,
			vertices:  []da.Index{0, 3, 2},
		},
		{
			name:      "floor prunes everything",
			from:      0,
			to:        2,
			lowestFRC: model.FRC1,
			found:     false,
		},
		{
			name:      "along oneway",
			from:      0,
			to:        4,
			lowestFRC: model.FRC7,
			found:     true,
			vertices:  []da.Index{0, 1, 2, 4},
		},
		{
			name:      "against oneway",
			from:      4,
			to:        0,
			lowestFRC: model.FRC7,
			found:     false,
		},
		{
			name:      "same vertex",
			from:      1,
			to:        1,
			lowestFRC: model.FRC0,
			found:     true,
			vertices:  []da.Index{1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// second run is served by the path cache.
			for i := 0; i < 2; i++ {
				path, found := router.ShortestPath(tc.from, tc.to, tc.lowestFRC)
				assert.Equal(t, tc.found, found)
				if tc.found {
					assert.Equal(t, tc.vertices, pathVertices(g, tc.from, path))
				}
			}
		})
	}
}

func TestShortestPathBudget(t *testing.T) {
	config := DefaultConfig()
	config.MaxSearchDistance = 150
	router, _ := buildTestRouter(t, config)

	_, found := router.ShortestPath(0, 1, model.FRC7)
	assert.True(t, found)

	_, found = router.ShortestPath(0, 4, model.FRC7)
	assert.False(t, found)
}

func TestEdgeFRC(t *testing.T) {
	router, g := buildTestRouter(t, DefaultConfig())
	e, ok := g.FindEdge(0, 3)
	require.True(t, ok)
	assert.Equal(t, model.FRC2, router.EdgeFRC(e))
}
