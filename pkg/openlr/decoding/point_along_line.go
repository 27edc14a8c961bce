package decoding

import (
	"context"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
)

func (d *Decoder) decodePointAlongLine(ctx context.Context,
	loc *model.PointAlongLineLocation) (*model.ReferencedPointAlongLine, error) {
	points := []model.LocationReferencePoint{loc.First, loc.Last}
	if err := validatePoints(points); err != nil {
		return nil, err
	}
	if !validOffset(loc.PositiveOffset) {
		return nil, openlr.InvalidInput("offset must be in [0,1), got %v", loc.PositiveOffset)
	}

	path, err := d.decodePath(ctx, points)
	if err != nil {
		return nil, err
	}

	routeLength := path.routes[0].Length
	geometry := make([]model.Coordinate, 0, 2*len(path.edges))
	for _, e := range path.edges {
		edgeGeometry := d.graph.Geometry(e)
		if len(geometry) > 0 && len(edgeGeometry) > 0 {
			edgeGeometry = edgeGeometry[1:]
		}
		geometry = append(geometry, edgeGeometry...)
	}

	offsetMeter := loc.PositiveOffset * routeLength
	return &model.ReferencedPointAlongLine{
		Route: &model.ReferencedLine{
			Edges:    path.edges,
			Vertices: path.vertices,
		},
		Offset:      loc.PositiveOffset,
		Coordinate:  geo.PointAlongPolyline(geometry, offsetMeter),
		Orientation: loc.Orientation,
		SideOfRoad:  loc.SideOfRoad,
	}, nil
}
