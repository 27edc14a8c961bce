package datastructure

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a -- b -- c along the equator, plus a one-way b -> d going north.
func buildTestGraph() *Graph {
	b := NewGraphBuilder()
	a := b.AddVertex(0, 0)
	bb := b.AddVertex(0, 0.001)
	c := b.AddVertex(0, 0.002)
	d := b.AddVertex(0.001, 0.001)

	b.AddWay(a, bb, osm.Tags{{Key: "highway", Value: "primary"}}, nil, true)
	b.AddWay(bb, c, osm.Tags{{Key: "highway", Value: "primary"}},
		[]geo.Coordinate{geo.NewCoordinate(0, 0.001), geo.NewCoordinate(0.0001, 0.0015), geo.NewCoordinate(0, 0.002)}, true)
	b.AddWay(bb, d, osm.Tags{{Key: "highway", Value: "residential"}, {Key: "oneway", Value: "yes"}}, nil, false)
	return b.Build()
}

func TestGraphBuild(t *testing.T) {
	g := buildTestGraph()

	assert.Equal(t, 4, g.NumberOfVertices())
	assert.Equal(t, 5, g.NumberOfEdges())
	assert.Equal(t, Index(3), g.GetOutDegree(1))
	assert.Equal(t, Index(2), g.GetInDegree(1))

	e, ok := g.FindEdge(0, 1)
	require.True(t, ok)
	assert.False(t, g.GetEdge(e).IsReversed())

	e, ok = g.FindEdge(1, 0)
	require.True(t, ok)
	assert.True(t, g.GetEdge(e).IsReversed())

	_, ok = g.FindEdge(3, 1)
	assert.False(t, ok)

	assert.True(t, g.VerticeUandVAreConnected(0, 2))
	assert.False(t, g.VerticeUandVAreConnected(3, 0))
}

func TestEdgeGeometryDirection(t *testing.T) {
	g := buildTestGraph()

	fwd, ok := g.FindEdge(1, 2)
	require.True(t, ok)
	bwd, ok := g.FindEdge(2, 1)
	require.True(t, ok)

	fwdGeom := g.GetEdgeGeometry(fwd)
	bwdGeom := g.GetEdgeGeometry(bwd)
	require.Len(t, fwdGeom, 3)
	require.Len(t, bwdGeom, 3)
	assert.Equal(t, fwdGeom[0], bwdGeom[2])
	assert.Equal(t, fwdGeom[2], bwdGeom[0])

	ab, _ := g.FindEdge(0, 1)
	assert.InDelta(t, 90.0, g.GetBearingAt(0, ab), 0.5)
	assert.InDelta(t, 270.0, g.GetBearingAt(1, ab), 0.5)
}

func TestWriteReadGraph(t *testing.T) {
	g := buildTestGraph()
	filename := filepath.Join(t.TempDir(), "network.txt.bz2")

	require.NoError(t, g.WriteGraph(filename))
	got, err := ReadGraph(filename)
	require.NoError(t, err)

	assert.Equal(t, g.NumberOfVertices(), got.NumberOfVertices())
	assert.Equal(t, g.NumberOfEdges(), got.NumberOfEdges())
	for eId := 0; eId < g.NumberOfEdges(); eId++ {
		want := g.GetEdge(Index(eId))
		have := got.GetEdge(Index(eId))
		assert.Equal(t, want.GetTail(), have.GetTail())
		assert.Equal(t, want.GetHead(), have.GetHead())
		assert.InDelta(t, want.GetLength(), have.GetLength(), 1e-9)
		assert.Equal(t, want.IsReversed(), have.IsReversed())
		assert.Equal(t, g.GetTags(Index(eId)), got.GetTags(Index(eId)))
		assert.Equal(t, g.GetEdgeGeometry(Index(eId)), got.GetEdgeGeometry(Index(eId)))
	}
}

func TestReadGeoJSONNetwork(t *testing.T) {
	data := `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"highway": "primary", "name": "Jalan \"A\""},
     "geometry": {"type": "LineString", "coordinates": [[0.0, 0.0], [0.001, 0.0]]}},
    {"type": "Feature", "properties": {"highway": "secondary", "lanes": 2},
     "geometry": {"type": "LineString", "coordinates": [[0.001, 0.0], [0.0015, 0.0001], [0.002, 0.0]]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "Point", "coordinates": [0.5, 0.5]}}
  ]
}`
	g, err := ReadGeoJSONNetwork(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 3, g.NumberOfVertices())
	assert.Equal(t, 4, g.NumberOfEdges())

	e, ok := g.FindEdge(1, 2)
	require.True(t, ok)
	assert.Equal(t, "secondary", g.GetTags(e).Find("highway"))
	assert.Equal(t, "2", g.GetTags(e).Find("lanes"))
	assert.Len(t, g.GetEdgeGeometry(e), 3)

	fc := g.EdgesToFeatureCollection([]Index{e})
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "secondary", fc.Features[0].Properties["highway"])
	assert.Len(t, fc.Features[0].Geometry.LineString, 3)
}

func TestReadGeoJSONNetworkInvalid(t *testing.T) {
	_, err := ReadGeoJSONNetwork(strings.NewReader(`{"type": "FeatureCollection", "features": [`))
	assert.Error(t, err)
}
