// Package roadnetwork exposes the in-memory graph and its r-tree as the road network
// consumed by the OpenLR decoder & encoder.
package roadnetwork

import (
	da "github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/spatialindex"
	"github.com/paulmach/osm"
	"go.uber.org/zap"
)

type RoadNetwork struct {
	graph *da.Graph
	rtree *spatialindex.Rtree
}

// NewRoadNetwork. build the spatial index of graph.
func NewRoadNetwork(graph *da.Graph, logger *zap.Logger) *RoadNetwork {
	rt := spatialindex.NewRtree()
	rt.Build(graph, logger)
	return &RoadNetwork{
		graph: graph,
		rtree: rt,
	}
}

func (rn *RoadNetwork) GetGraph() *da.Graph {
	return rn.graph
}

func (rn *RoadNetwork) VerticesNear(c model.Coordinate, radius float64) []model.VertexID {
	return rn.rtree.VerticesNear(c.Lat, c.Lon, radius)
}

func (rn *RoadNetwork) EdgesNear(c model.Coordinate, radius float64) []model.EdgeID {
	return rn.rtree.EdgesNear(c.Lat, c.Lon, radius)
}

func (rn *RoadNetwork) NumberOfEdges() int {
	return rn.graph.NumberOfEdges()
}

func (rn *RoadNetwork) EdgesAt(v model.VertexID, forward bool) []model.EdgeID {
	var edges []da.Index
	if forward {
		edges = rn.graph.GetOutEdges(v)
	} else {
		edges = rn.graph.GetInEdges(v)
	}
	return append([]model.EdgeID(nil), edges...)
}

func (rn *RoadNetwork) Endpoints(e model.EdgeID) (model.VertexID, model.VertexID) {
	edge := rn.graph.GetEdge(e)
	return edge.GetTail(), edge.GetHead()
}

func (rn *RoadNetwork) DigitizedForward(e model.EdgeID) bool {
	return !rn.graph.GetEdge(e).IsReversed()
}

func (rn *RoadNetwork) CoordinateOf(v model.VertexID) model.Coordinate {
	return rn.graph.GetVertexCoordinate(v)
}

func (rn *RoadNetwork) TagsOf(e model.EdgeID) osm.Tags {
	return rn.graph.GetTags(e)
}

func (rn *RoadNetwork) LengthOf(e model.EdgeID) float64 {
	return rn.graph.GetEdge(e).GetLength()
}

func (rn *RoadNetwork) BearingAt(v model.VertexID, e model.EdgeID) float64 {
	return rn.graph.GetBearingAt(v, e)
}

func (rn *RoadNetwork) Geometry(e model.EdgeID) []model.Coordinate {
	return rn.graph.GetEdgeGeometry(e)
}

func (rn *RoadNetwork) EdgesWithin(lowerLeft, upperRight model.Coordinate) []model.EdgeID {
	return rn.rtree.EdgesWithin(lowerLeft, upperRight)
}
