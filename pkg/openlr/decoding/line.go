package decoding

import (
	"context"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"go.uber.org/zap"
)

func (d *Decoder) decodeLine(ctx context.Context, loc *model.LineLocation) (*model.ReferencedLine, error) {
	if err := validatePoints(loc.Points); err != nil {
		return nil, err
	}
	if !validOffset(loc.PositiveOffset) || !validOffset(loc.NegativeOffset) {
		return nil, openlr.InvalidInput("offsets must be in [0,1), got %v and %v", loc.PositiveOffset, loc.NegativeOffset)
	}

	path, err := d.decodePath(ctx, loc.Points)
	if err != nil {
		return nil, err
	}

	// offsets are relative to the length of the first & last pair route.
	startMeter := loc.PositiveOffset * path.routes[0].Length
	endMeter := loc.NegativeOffset * path.routes[len(path.routes)-1].Length

	line, err := d.trim(path.edges, startMeter, endMeter)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("decoded line location", zap.Int("lrps", len(loc.Points)), zap.Int("edges", len(line.Edges)),
		zap.Float64("start_offset", line.StartOffset), zap.Float64("end_offset", line.EndOffset))
	return line, nil
}

// trim. drop whole edges covered by the start/end offsets (meter), the remainder becomes
// the fraction cut away from the new first/last edge.
func (d *Decoder) trim(edges []model.EdgeID, startMeter, endMeter float64) (*model.ReferencedLine, error) {
	first, last := 0, len(edges)-1
	for first < last && startMeter >= d.graph.LengthOf(edges[first]) {
		startMeter -= d.graph.LengthOf(edges[first])
		first++
	}
	for last > first && endMeter >= d.graph.LengthOf(edges[last]) {
		endMeter -= d.graph.LengthOf(edges[last])
		last--
	}

	kept := append([]model.EdgeID(nil), edges[first:last+1]...)
	startOffset := edgeFraction(startMeter, d.graph.LengthOf(kept[0]))
	endOffset := edgeFraction(endMeter, d.graph.LengthOf(kept[len(kept)-1]))
	if len(kept) == 1 && startOffset+endOffset >= 1 {
		return nil, openlr.InvalidInput("offsets cover the whole location")
	}

	return &model.ReferencedLine{
		Edges:       kept,
		Vertices:    d.pathVertices(kept),
		StartOffset: startOffset,
		EndOffset:   endOffset,
	}, nil
}

func edgeFraction(meter, length float64) float64 {
	if !(length > 0) {
		return 0
	}
	f := meter / length
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
