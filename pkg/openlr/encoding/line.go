package encoding

import (
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/util"
	"go.uber.org/zap"
)

func (e *Encoder) encodeLine(loc *model.ReferencedLine) (*model.LineLocation, error) {
	vertices, err := e.validatePath(loc.Edges, loc.Vertices)
	if err != nil {
		return nil, err
	}
	if !validOffset(loc.StartOffset) || !validOffset(loc.EndOffset) {
		return nil, openlr.InvalidInput("offsets must be in [0,1), got %v and %v", loc.StartOffset, loc.EndOffset)
	}
	if len(loc.Edges) == 1 && loc.StartOffset+loc.EndOffset >= 1 {
		return nil, openlr.InvalidInput("offsets cover the whole edge")
	}

	points, err := e.encodePath(loc.Edges, vertices)
	if err != nil {
		return nil, err
	}

	firstDNP := points[0].DistanceToNext
	lastDNP := points[len(points)-2].DistanceToNext
	line := &model.LineLocation{
		Points:         points,
		PositiveOffset: offsetFraction(loc.StartOffset*e.graph.LengthOf(loc.Edges[0]), firstDNP),
		NegativeOffset: offsetFraction(loc.EndOffset*e.graph.LengthOf(loc.Edges[len(loc.Edges)-1]), lastDNP),
	}
	e.logger.Debug("encoded line location", zap.Int("edges", len(loc.Edges)), zap.Int("lrps", len(points)))
	return line, nil
}

func validOffset(offset float64) bool {
	return offset >= 0 && offset < 1
}

func offsetFraction(meter, dnp float64) float64 {
	if !(dnp > 0) {
		return 0
	}
	// the offset stays inside the first/last lrp segment.
	return util.Clamp(meter/dnp, 0, 0.999999)
}
