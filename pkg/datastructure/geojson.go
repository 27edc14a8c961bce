package datastructure

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/util"
	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// coordinates closer than ~1cm are merged into the same vertex.
const vertexPrecision = 1e7

// ReadGeoJSONNetwork. build a road network from a FeatureCollection of LineStrings.
// each LineString is one road segment between its first & last coordinate, its string properties become osm tags.
// every segment is added in both directions; one-way restrictions are left to the tag matcher.
func ReadGeoJSONNetwork(r io.Reader) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read geojson")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal geojson feature collection")
	}

	b := NewGraphBuilder()
	vertexIds := make(map[[2]int64]Index)
	vertexOf := func(c []float64) Index {
		key := [2]int64{int64(math.Round(c[1] * vertexPrecision)), int64(math.Round(c[0] * vertexPrecision))}
		if id, ok := vertexIds[key]; ok {
			return id
		}
		id := b.AddVertex(c[1], c[0])
		vertexIds[key] = id
		return id
	}

	for i, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsLineString() {
			continue
		}
		coords := f.Geometry.LineString
		if len(coords) < 2 {
			return nil, errors.Errorf("feature %d: linestring with less than 2 coordinates", i)
		}

		geometry := make([]geo.Coordinate, 0, len(coords))
		for _, c := range coords {
			if len(c) < 2 {
				return nil, errors.Errorf("feature %d: invalid coordinate", i)
			}
			geometry = append(geometry, geo.NewCoordinate(c[1], c[0]))
		}

		tail := vertexOf(coords[0])
		head := vertexOf(coords[len(coords)-1])
		if tail == head && len(coords) == 2 {
			continue
		}
		b.AddWay(tail, head, tagsFromProperties(f.Properties), geometry, true)
	}

	return b.Build(), nil
}

func tagsFromProperties(props map[string]interface{}) osm.Tags {
	tags := make(osm.Tags, 0, len(props))
	for k, v := range props {
		if v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			tags = append(tags, osm.Tag{Key: k, Value: val})
		case bool, float64:
			tags = append(tags, osm.Tag{Key: k, Value: fmt.Sprint(val)})
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Key < tags[j].Key
	})
	return tags
}

// EdgesToFeatureCollection. export edges as LineString features (digitized along the edge direction).
func (g *Graph) EdgesToFeatureCollection(edges []Index) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, eId := range edges {
		edge := g.GetEdge(eId)
		geometry := g.GetEdgeGeometry(eId)
		line := make([][]float64, 0, len(geometry))
		for _, c := range geometry {
			line = append(line, []float64{c.Lon, c.Lat})
		}

		f := geojson.NewLineStringFeature(line)
		f.SetProperty("edge_id", eId)
		f.SetProperty("tail", edge.GetTail())
		f.SetProperty("head", edge.GetHead())
		f.SetProperty("length", util.RoundFloat(edge.GetLength(), 2))
		for _, tag := range g.GetTags(eId) {
			f.SetProperty(tag.Key, tag.Value)
		}
		fc.AddFeature(f)
	}
	return fc
}
