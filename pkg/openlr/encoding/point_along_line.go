package encoding

import (
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
)

// encodePointAlongLine. the route must be expressible by two LRPs.
func (e *Encoder) encodePointAlongLine(loc *model.ReferencedPointAlongLine) (*model.PointAlongLineLocation, error) {
	if loc.Route == nil {
		return nil, openlr.InvalidInput("point along line without route")
	}
	vertices, err := e.validatePath(loc.Route.Edges, loc.Route.Vertices)
	if err != nil {
		return nil, err
	}
	if !validOffset(loc.Offset) {
		return nil, openlr.InvalidInput("offset must be in [0,1), got %v", loc.Offset)
	}

	points, err := e.encodePath(loc.Route.Edges, vertices)
	if err != nil {
		return nil, err
	}
	if len(points) != 2 {
		return nil, openlr.InvalidInput("route of a point along line needs 2 location reference points, got %d",
			len(points))
	}

	return &model.PointAlongLineLocation{
		First:          points[0],
		Last:           points[1],
		PositiveOffset: loc.Offset,
		Orientation:    loc.Orientation,
		SideOfRoad:     loc.SideOfRoad,
	}, nil
}
