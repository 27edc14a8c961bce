package encoding

import (
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
)

func (e *Encoder) encodeRectangle(loc *model.ReferencedRectangle) (*model.RectangleLocation, error) {
	if !(loc.LowerLeft.Lat < loc.UpperRight.Lat) || !(loc.LowerLeft.Lon < loc.UpperRight.Lon) {
		return nil, openlr.InvalidInput("lower left corner must be below & left of the upper right corner")
	}
	return &model.RectangleLocation{
		LowerLeft:  loc.LowerLeft,
		UpperRight: loc.UpperRight,
	}, nil
}
