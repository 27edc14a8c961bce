package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testNetwork = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"highway": "residential"},
     "geometry": {"type": "LineString", "coordinates": [[0.0, 0.0], [0.0009, 0.0]]}},
    {"type": "Feature", "properties": {"highway": "residential"},
     "geometry": {"type": "LineString", "coordinates": [[0.0009, 0.0], [0.0022, 0.0]]}}
  ]
}`

func writeTestNetwork(t *testing.T) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "network.geojson")
	require.NoError(t, os.WriteFile(filename, []byte(testNetwork), 0o644))
	return filename
}

func TestNewEngine(t *testing.T) {
	geojsonFile := writeTestNetwork(t)

	engine, err := NewEngine(geojsonFile, zap.NewNop())
	require.NoError(t, err)
	graph := engine.GetRoadNetwork().GetGraph()
	assert.Equal(t, 3, graph.NumberOfVertices())

	// the same network persisted with WriteGraph loads to the same graph.
	graphFile := filepath.Join(t.TempDir(), "network.graph")
	require.NoError(t, graph.WriteGraph(graphFile))
	fromGraph, err := NewEngine(graphFile, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, graph.NumberOfEdges(), fromGraph.GetRoadNetwork().GetGraph().NumberOfEdges())

	_, err = NewEngine(filepath.Join(t.TempDir(), "missing.geojson"), zap.NewNop())
	assert.Error(t, err)
}

func TestEngineRawRoundTrip(t *testing.T) {
	engine, err := NewEngine(writeTestNetwork(t), zap.NewNop())
	require.NoError(t, err)
	graph := engine.GetRoadNetwork().GetGraph()

	ab, ok := graph.FindEdge(0, 1)
	require.True(t, ok)
	bc, ok := graph.FindEdge(1, 2)
	require.True(t, ok)

	data, err := engine.GetEncoder().EncodeRaw(&model.ReferencedLine{Edges: []datastructure.Index{ab, bc}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"line"`)

	decoded, err := engine.GetDecoder().DecodeRaw(context.Background(), data)
	require.NoError(t, err)
	line, ok := decoded.(*model.ReferencedLine)
	require.True(t, ok)
	assert.Equal(t, []datastructure.Index{ab, bc}, line.Edges)
	assert.InDelta(t, 0.0, line.StartOffset, 1e-9)
	assert.InDelta(t, 0.0, line.EndOffset, 1e-9)
}
