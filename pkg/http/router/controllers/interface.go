package controllers

import (
	"context"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	geojson "github.com/paulmach/go.geojson"
)

type OpenLRService interface {
	Decode(ctx context.Context, location model.Location) (*usecases.DecodedLocation, error)
	Encode(location model.ReferencedLocation) (model.Location, error)
	Features(edges []model.EdgeID) *geojson.FeatureCollection
	NumberOfEdges() int
}
