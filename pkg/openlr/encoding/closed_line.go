package encoding

import (
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
)

func (e *Encoder) encodeClosedLine(loc *model.ReferencedClosedLine) (*model.ClosedLineLocation, error) {
	vertices, err := e.validatePath(loc.Edges, loc.Vertices)
	if err != nil {
		return nil, err
	}
	if vertices[0] != vertices[len(vertices)-1] {
		return nil, openlr.InvalidInput("closed line must end at its start vertex")
	}
	if len(loc.Edges) < 2 {
		return nil, openlr.InvalidInput("closed line needs at least 2 edges")
	}

	points, err := e.encodePath(loc.Edges, vertices)
	if err != nil {
		return nil, err
	}
	return &model.ClosedLineLocation{Points: points}, nil
}
