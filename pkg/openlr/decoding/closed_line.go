package decoding

import (
	"context"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
)

func (d *Decoder) decodeClosedLine(ctx context.Context, loc *model.ClosedLineLocation) (*model.ReferencedClosedLine, error) {
	if err := validatePoints(loc.Points); err != nil {
		return nil, err
	}

	path, err := d.decodePath(ctx, loc.Points)
	if err != nil {
		return nil, err
	}
	if path.vertices[0] != path.vertices[len(path.vertices)-1] {
		return nil, openlr.DiscontinuousMatch(len(loc.Points) - 1)
	}

	return &model.ReferencedClosedLine{
		Edges:    path.edges,
		Vertices: path.vertices,
	}, nil
}
