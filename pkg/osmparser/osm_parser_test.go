package osmparser

import (
	"context"
	"strings"
	"testing"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 1 - 2 - 3 is a primary road, 2 - 4 - 5 a residential road with a locked gate at 4.
// 6 - 7 is a footway and must be ignored.
const testOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="0.0" lon="0.000"/>
  <node id="2" lat="0.0" lon="0.001"/>
  <node id="3" lat="0.0" lon="0.002"/>
  <node id="4" lat="0.001" lon="0.001">
    <tag k="barrier" v="gate"/>
    <tag k="access" v="no"/>
  </node>
  <node id="5" lat="0.002" lon="0.001"/>
  <node id="6" lat="0.003" lon="0.000"/>
  <node id="7" lat="0.003" lon="0.001"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="primary"/>
    <tag k="name" v="Jalan Utama"/>
    <tag k="source" v="survey"/>
  </way>
  <way id="11">
    <nd ref="2"/>
    <nd ref="4"/>
    <nd ref="5"/>
    <tag k="highway" v="residential"/>
  </way>
  <way id="12">
    <nd ref="6"/>
    <nd ref="7"/>
    <tag k="highway" v="footway"/>
  </way>
</osm>`

func TestParseReader(t *testing.T) {
	p := NewOSMParser(zap.NewNop())
	g, err := p.ParseReader(context.Background(), strings.NewReader(testOSM), false)
	require.NoError(t, err)

	// 1, 2, 3 and 5, the gate becomes 2 vertices.
	assert.Equal(t, 6, g.NumberOfVertices())
	// 1-2, 2-3, 2-gate, gate'-5 in both directions.
	assert.Equal(t, 8, g.NumberOfEdges())

	v1, v2, v3 := p.nodeIDMap[1], p.nodeIDMap[2], p.nodeIDMap[3]
	e, ok := g.FindEdge(v1, v2)
	require.True(t, ok)
	tags := g.GetTags(e)
	assert.Equal(t, "primary", tags.Find("highway"))
	assert.Equal(t, "Jalan Utama", tags.Find("name"))
	assert.Equal(t, "", tags.Find("source"))

	_, ok = g.FindEdge(v2, v3)
	assert.True(t, ok)

	// the locked gate disconnects 2 from 5.
	assert.False(t, g.VerticeUandVAreConnected(v2, p.nodeIDMap[5]))
	_, ok = p.nodeIDMap[6]
	assert.False(t, ok)
}

func TestParseReaderLoop(t *testing.T) {
	data := `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="0.0" lon="0.0"/>
  <node id="2" lat="0.0" lon="0.001"/>
  <node id="3" lat="0.001" lon="0.001"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <nd ref="1"/>
    <tag k="highway" v="tertiary"/>
    <tag k="junction" v="roundabout"/>
  </way>
</osm>`
	p := NewOSMParser(zap.NewNop())
	g, err := p.ParseReader(context.Background(), strings.NewReader(data), false)
	require.NoError(t, err)

	// 1 -> 3 via 2 and 3 -> 1, no self loop.
	assert.Equal(t, 2, g.NumberOfVertices())
	assert.Equal(t, 4, g.NumberOfEdges())
	for e := 0; e < g.NumberOfEdges(); e++ {
		edge := g.GetEdge(datastructure.Index(e))
		assert.NotEqual(t, edge.GetTail(), edge.GetHead())
	}
}
