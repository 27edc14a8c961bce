package decoding

import (
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
)

// decodeRectangle. every edge intersecting the rectangle, no map matching involved.
func (d *Decoder) decodeRectangle(loc *model.RectangleLocation) (*model.ReferencedRectangle, error) {
	if !(loc.LowerLeft.Lat < loc.UpperRight.Lat) || !(loc.LowerLeft.Lon < loc.UpperRight.Lon) {
		return nil, openlr.InvalidInput("lower left corner must be below & left of the upper right corner")
	}

	return &model.ReferencedRectangle{
		LowerLeft:  loc.LowerLeft,
		UpperRight: loc.UpperRight,
		Edges:      d.graph.EdgesWithin(loc.LowerLeft, loc.UpperRight),
	}, nil
}
