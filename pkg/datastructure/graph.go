package datastructure

import (
	"math"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/paulmach/osm"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
	INVALID_EDGE_ID   Index = math.MaxUint32

	// distance along the edge geometry used for edge bearings (meter)
	BEARING_DISTANCE = 20.0
)

type Vertex struct {
	lat      float64
	lon      float64
	firstOut Index // index of the first outEdge of this vertex in the flattened graph.outEdges array
	firstIn  Index // index of the first inEdge of this vertex in the flattened graph.inEdges array
	id       Index
}

func NewVertex(lat, lon float64, id Index) *Vertex {
	return &Vertex{
		lat: lat,
		lon: lon,
		id:  id,
	}
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetCoordinate() geo.Coordinate {
	return geo.NewCoordinate(v.lat, v.lon)
}

// Edge is a directed road segment tail->head. the two directions of a two-way road are two edges
// sharing the same tags, the one against the way digitization direction is reversed.
type Edge struct {
	dist     float64 // meter
	edgeId   Index
	tail     Index
	head     Index
	tagsId   Index
	reversed bool
}

func NewEdge(edgeId, tail, head Index, dist float64, tagsId Index, reversed bool) *Edge {
	return &Edge{
		edgeId:   edgeId,
		tail:     tail,
		head:     head,
		dist:     dist,
		tagsId:   tagsId,
		reversed: reversed,
	}
}

func (e *Edge) GetEdgeId() Index {
	return e.edgeId
}

func (e *Edge) GetTail() Index {
	return e.tail
}

func (e *Edge) GetHead() Index {
	return e.head
}

func (e *Edge) GetLength() float64 {
	return e.dist
}

func (e *Edge) IsReversed() bool {
	return e.reversed
}

// static road network graph (i.e. can't add new edges after Build)
type Graph struct {
	graphStorage *GraphStorage
	vertices     []*Vertex // last vertex is a dummy sentinel for firstOut/firstIn
	edges        []*Edge
	outEdges     []Index // edge ids grouped by tail
	inEdges      []Index // edge ids grouped by head

	// strongly connected components
	sccs               []Index   // verticeId -> sccId
	sccCondensationAdj [][]Index // condensation connection of scc of u -> scc of v
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices) - 1
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return g.vertices[u]
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	v := g.vertices[u]
	return v.lat, v.lon
}

func (g *Graph) GetVertexCoordinate(u Index) geo.Coordinate {
	return g.vertices[u].GetCoordinate()
}

func (g *Graph) GetEdge(e Index) *Edge {
	return g.edges[e]
}

func (g *Graph) GetOutDegree(u Index) Index {
	return g.vertices[u+1].firstOut - g.vertices[u].firstOut
}

func (g *Graph) GetInDegree(u Index) Index {
	return g.vertices[u+1].firstIn - g.vertices[u].firstIn
}

func (g *Graph) ForOutEdgesOf(u Index, handle func(e *Edge)) {
	for i := g.vertices[u].firstOut; i < g.vertices[u+1].firstOut; i++ {
		handle(g.edges[g.outEdges[i]])
	}
}

func (g *Graph) ForInEdgesOf(v Index, handle func(e *Edge)) {
	for i := g.vertices[v].firstIn; i < g.vertices[v+1].firstIn; i++ {
		handle(g.edges[g.inEdges[i]])
	}
}

func (g *Graph) GetOutEdges(u Index) []Index {
	return g.outEdges[g.vertices[u].firstOut:g.vertices[u+1].firstOut]
}

func (g *Graph) GetInEdges(v Index) []Index {
	return g.inEdges[g.vertices[v].firstIn:g.vertices[v+1].firstIn]
}

func (g *Graph) ForEdges(handle func(e *Edge, percentage float64)) {
	for idx, e := range g.edges {
		percentage := float64(idx) / float64(len(g.edges)) * 100
		handle(e, percentage)
	}
}

func (g *Graph) ForVertices(handle func(v *Vertex)) {
	for _, v := range g.vertices[:g.NumberOfVertices()] {
		handle(v)
	}
}

// FindEdge. return the edge u->v, if there are parallel edges the shortest one.
func (g *Graph) FindEdge(u, v Index) (Index, bool) {
	found := false
	best := INVALID_EDGE_ID
	g.ForOutEdgesOf(u, func(e *Edge) {
		if e.head != v {
			return
		}
		if !found || e.dist < g.edges[best].dist {
			best = e.edgeId
			found = true
		}
	})
	return best, found
}

func (g *Graph) GetTags(e Index) osm.Tags {
	return g.graphStorage.GetTags(g.edges[e].tagsId)
}

// GetEdgeGeometry. geometry of edge e from tail to head, including both endpoints.
func (g *Graph) GetEdgeGeometry(e Index) []geo.Coordinate {
	edge := g.edges[e]
	points := g.graphStorage.GetEdgeGeometry(e)
	if len(points) >= 2 {
		return points
	}
	return []geo.Coordinate{g.GetVertexCoordinate(edge.tail), g.GetVertexCoordinate(edge.head)}
}

// GetBearingAt. bearing of edge e at vertex v, measured along the geometry away from v
// (v is either the tail or the head of e).
func (g *Graph) GetBearingAt(v Index, e Index) float64 {
	coords := g.GetEdgeGeometry(e)
	if g.edges[e].head == v && g.edges[e].tail != v {
		reversed := make([]geo.Coordinate, len(coords))
		for i := range coords {
			reversed[len(coords)-1-i] = coords[i]
		}
		coords = reversed
	}
	return geo.BearingAlongPolyline(coords, BEARING_DISTANCE)
}

func (g *Graph) SetGraphStorage(gs *GraphStorage) {
	g.graphStorage = gs
}

func (g *Graph) SetSCCs(sccs []Index) {
	g.sccs = sccs
}

func (g *Graph) SetSCCCondensationAdj(adj [][]Index) {
	g.sccCondensationAdj = adj
}

func (g *Graph) GetSCCOfAVertex(u Index) Index {
	return g.sccs[u]
}


func (g *Graph) CondensationGraphOrigintoDestinationConnected(u, v Index) bool {
	sccOfU := g.sccs[u]
	sccOfV := g.sccs[v]

	visited := make([]bool, len(g.sccCondensationAdj))
	stack := []Index{sccOfU}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == sccOfV {
			return true
		}
		if visited[cur] {
			continue
		}
		visited[cur] = true
		stack = append(stack, g.sccCondensationAdj[cur]...)
	}
	return false
}

// VerticeUandVAreConnected. true if v is reachable from u.
// O(V_G + E_G), V_G=number of sccs/number of vertices in condensation graph^scc, E_G=number of edges in condensation graph^scc
func (g *Graph) VerticeUandVAreConnected(u, v Index) bool {
	if len(g.sccs) == 0 {
		return true
	}
	if g.GetSCCOfAVertex(u) == g.GetSCCOfAVertex(v) {
		return true
	}

	return g.CondensationGraphOrigintoDestinationConnected(u, v)
}

func (g *Graph) GetHaversineDistanceFromUtoV(u, v Index) float64 {
	uvertex := g.GetVertex(u)
	vvertex := g.GetVertex(v)
	return geo.CalculateHaversineDistance(uvertex.lat, uvertex.lon, vvertex.lat, vvertex.lon)
}
