package spatialindex

import (
	"math"
	"sort"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree. two r-trees over the road network: one with a point leaf per vertex (candidate search),
// one with the bounding box of every edge geometry (rectangle locations, closest edge search).
type Rtree struct {
	vertexTree *rtree.RTreeG[datastructure.Index]
	edgeTree   *rtree.RTreeG[datastructure.Index]
	graph      *datastructure.Graph
}

func NewRtree() *Rtree {
	var vt, et rtree.RTreeG[datastructure.Index]
	return &Rtree{
		vertexTree: &vt,
		edgeTree:   &et,
	}
}

// Build. build both r-trees from graph.
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	rt.graph = graph

	graph.ForVertices(func(v *datastructure.Vertex) {
		p := [2]float64{v.GetLon(), v.GetLat()}
		rt.vertexTree.Insert(p, p, v.GetID())
	})

	graph.ForEdges(func(e *datastructure.Edge, percentage float64) {
		if math.Mod(percentage, 10) < 0.0001 {
			log.Debug("Building R-tree spatial index...", zap.Float64("progress", percentage))
		}
		minLon, minLat := math.Inf(1), math.Inf(1)
		maxLon, maxLat := math.Inf(-1), math.Inf(-1)
		for _, c := range graph.GetEdgeGeometry(e.GetEdgeId()) {
			minLon = math.Min(minLon, c.Lon)
			minLat = math.Min(minLat, c.Lat)
			maxLon = math.Max(maxLon, c.Lon)
			maxLat = math.Max(maxLat, c.Lat)
		}
		rt.edgeTree.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, e.GetEdgeId())
	})

	log.Info("R-tree spatial index built.", zap.Int("vertices", rt.vertexTree.Len()),
		zap.Int("edges", rt.edgeTree.Len()))
}

// VerticesNear. vertices within radius (meter) of (qLat, qLon), nearest first.
func (rt *Rtree) VerticesNear(qLat, qLon, radius float64) []datastructure.Index {
	q := geo.NewCoordinate(qLat, qLon)
	lower, upper := geo.BoundingBoxAround(q, radius/1000.0)

	type nearVertex struct {
		id   datastructure.Index
		dist float64
	}
	near := make([]nearVertex, 0, 8)
	rt.vertexTree.Search(lower, upper,
		func(min, max [2]float64, id datastructure.Index) bool {
			d := geo.DistanceMeter(q, geo.NewCoordinate(min[1], min[0]))
			if d <= radius {
				near = append(near, nearVertex{id, d})
			}
			return true
		})

	sort.SliceStable(near, func(i, j int) bool {
		if near[i].dist != near[j].dist {
			return near[i].dist < near[j].dist
		}
		return near[i].id < near[j].id
	})

	results := make([]datastructure.Index, 0, len(near))
	for _, v := range near {
		results = append(results, v.id)
	}
	return results
}

// EdgesNear. edges whose geometry passes within radius (meter) of (qLat, qLon), nearest first.
func (rt *Rtree) EdgesNear(qLat, qLon, radius float64) []datastructure.Index {
	q := geo.NewCoordinate(qLat, qLon)
	lower, upper := geo.BoundingBoxAround(q, radius/1000.0)

	type nearEdge struct {
		id   datastructure.Index
		dist float64
	}
	near := make([]nearEdge, 0, 8)
	rt.edgeTree.Search(lower, upper,
		func(min, max [2]float64, id datastructure.Index) bool {
			_, d := geo.ProjectOntoPolyline(rt.graph.GetEdgeGeometry(id), q)
			if d <= radius {
				near = append(near, nearEdge{id, d})
			}
			return true
		})

	sort.Slice(near, func(i, j int) bool {
		if near[i].dist != near[j].dist {
			return near[i].dist < near[j].dist
		}
		return near[i].id < near[j].id
	})

	results := make([]datastructure.Index, 0, len(near))
	for _, e := range near {
		results = append(results, e.id)
	}
	return results
}

// EdgesWithin. edges whose geometry intersects the box [lowerLeft, upperRight], sorted by edge id.
func (rt *Rtree) EdgesWithin(lowerLeft, upperRight geo.Coordinate) []datastructure.Index {
	bb := datastructure.NewBoundingBox(lowerLeft.Lat, lowerLeft.Lon, upperRight.Lat, upperRight.Lon)

	results := make([]datastructure.Index, 0, 16)
	rt.edgeTree.Search([2]float64{lowerLeft.Lon, lowerLeft.Lat}, [2]float64{upperRight.Lon, upperRight.Lat},
		func(min, max [2]float64, id datastructure.Index) bool {
			if datastructure.PolylineIntersectsBox(rt.graph.GetEdgeGeometry(id), bb) {
				results = append(results, id)
			}
			return true
		})

	sort.Slice(results, func(i, j int) bool {
		return results[i] < results[j]
	})
	return results
}
