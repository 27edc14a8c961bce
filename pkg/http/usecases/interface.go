package usecases

import (
	"context"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
)

type LocationDecoder interface {
	Decode(ctx context.Context, location model.Location) (model.ReferencedLocation, error)
}

type LocationEncoder interface {
	Encode(location model.ReferencedLocation) (model.Location, error)
}

type RoadNetwork interface {
	GetGraph() *datastructure.Graph
	Geometry(e model.EdgeID) []model.Coordinate
	LengthOf(e model.EdgeID) float64
}
