package datastructure

import (
	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/paulmach/osm"
)

// GraphBuilder assembles a Graph from already-segmented ways (one way = one road segment between two vertices).
type GraphBuilder struct {
	vertices []*Vertex
	edges    []*Edge
	gs       *GraphStorage
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		vertices: make([]*Vertex, 0),
		edges:    make([]*Edge, 0),
		gs:       NewGraphStorage(),
	}
}

func (b *GraphBuilder) AddVertex(lat, lon float64) Index {
	id := Index(len(b.vertices))
	b.vertices = append(b.vertices, NewVertex(lat, lon, id))
	return id
}

func (b *GraphBuilder) NumberOfVertices() int {
	return len(b.vertices)
}

// AddWay. add edge tail->head and, if bidirectional, head->tail sharing the same tags & geometry.
// geometry is digitized from tail to head, nil means a straight segment.
// returns the forward edge id and the backward edge id (INVALID_EDGE_ID if not bidirectional).
func (b *GraphBuilder) AddWay(tail, head Index, tags osm.Tags, geometry []geo.Coordinate,
	bidirectional bool) (Index, Index) {
	if len(geometry) < 2 {
		geometry = []geo.Coordinate{b.vertices[tail].GetCoordinate(), b.vertices[head].GetCoordinate()}
	}
	length := geo.PolylineLength(geometry)

	tagsId := b.gs.AppendTags(tags)
	start, end := b.gs.AppendGlobalPoints(geometry)

	forwardId := Index(len(b.edges))
	b.edges = append(b.edges, NewEdge(forwardId, tail, head, length, tagsId, false))
	b.gs.AppendMapEdgeInfo(NewEdgeExtraInfo(start, end))

	backwardId := INVALID_EDGE_ID
	if bidirectional {
		backwardId = Index(len(b.edges))
		b.edges = append(b.edges, NewEdge(backwardId, head, tail, length, tagsId, true))
		b.gs.AppendMapEdgeInfo(NewEdgeExtraInfo(end, start))
	}
	return forwardId, backwardId
}

// Build. flatten the adjacency into out/in arrays and compute sccs.
func (b *GraphBuilder) Build() *Graph {
	n := len(b.vertices)
	vertices := make([]*Vertex, n+1)
	copy(vertices, b.vertices)
	vertices[n] = NewVertex(0, 0, Index(n)) // dummy

	outDegree := make([]Index, n+1)
	inDegree := make([]Index, n+1)
	for _, e := range b.edges {
		outDegree[e.tail]++
		inDegree[e.head]++
	}

	var firstOut, firstIn Index
	for v := 0; v <= n; v++ {
		vertices[v].firstOut = firstOut
		vertices[v].firstIn = firstIn
		firstOut += outDegree[v]
		firstIn += inDegree[v]
	}

	outEdges := make([]Index, len(b.edges))
	inEdges := make([]Index, len(b.edges))
	outPos := make([]Index, n)
	inPos := make([]Index, n)
	for _, e := range b.edges {
		outEdges[vertices[e.tail].firstOut+outPos[e.tail]] = e.edgeId
		outPos[e.tail]++
		inEdges[vertices[e.head].firstIn+inPos[e.head]] = e.edgeId
		inPos[e.head]++
	}

	g := &Graph{
		vertices: vertices,
		edges:    b.edges,
		outEdges: outEdges,
		inEdges:  inEdges,
	}
	g.SetGraphStorage(b.gs)

	g.RunKosaraju()
	return g
}
