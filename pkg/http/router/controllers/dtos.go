package controllers

import (
	"github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/codec"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	geojson "github.com/paulmach/go.geojson"
)

type decodeRequest struct {
	codec.Document
	Type string `json:"type" validate:"required,oneof=line point_along_line closed_line rectangle"`
	// include the decoded edges as a geojson FeatureCollection.
	Geojson bool `json:"geojson"`
}

func (r decodeRequest) location() (model.Location, error) {
	doc := r.Document
	doc.Type = r.Type
	return doc.Location()
}

type coordinateDTO struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

func (c coordinateDTO) toCoordinate() geo.Coordinate {
	return geo.NewCoordinate(c.Lat, c.Lon)
}

type encodeRequest struct {
	Type     string                `json:"type" validate:"required,oneof=line point_along_line closed_line rectangle"`
	Edges    []datastructure.Index `json:"edges" validate:"required_unless=Type rectangle,dive,min=0"`
	Vertices []datastructure.Index `json:"vertices"`

	StartOffset float64 `json:"start_offset" validate:"min=0,lt=1"`
	EndOffset   float64 `json:"end_offset" validate:"min=0,lt=1"`

	// point along line
	Offset      float64           `json:"offset" validate:"min=0,max=1"`
	Coordinate  *coordinateDTO    `json:"coordinate"`
	Orientation model.Orientation `json:"orientation" validate:"max=3"`
	SideOfRoad  model.SideOfRoad  `json:"side_of_road" validate:"max=3"`

	// rectangle
	LowerLeft  *coordinateDTO `json:"lower_left" validate:"required_if=Type rectangle"`
	UpperRight *coordinateDTO `json:"upper_right" validate:"required_if=Type rectangle"`
}

func (r encodeRequest) toReferencedLocation() model.ReferencedLocation {
	switch r.Type {
	case model.POINT_ALONG_LINE_LOCATION.String():
		point := &model.ReferencedPointAlongLine{
			Route:       &model.ReferencedLine{Edges: r.Edges, Vertices: r.Vertices},
			Offset:      r.Offset,
			Orientation: r.Orientation,
			SideOfRoad:  r.SideOfRoad,
		}
		if r.Coordinate != nil {
			point.Coordinate = r.Coordinate.toCoordinate()
		}
		return point
	case model.CLOSED_LINE_LOCATION.String():
		return &model.ReferencedClosedLine{Edges: r.Edges, Vertices: r.Vertices}
	case model.RECTANGLE_LOCATION.String():
		return &model.ReferencedRectangle{
			LowerLeft:  r.LowerLeft.toCoordinate(),
			UpperRight: r.UpperRight.toCoordinate(),
		}
	default:
		return &model.ReferencedLine{
			Edges:       r.Edges,
			Vertices:    r.Vertices,
			StartOffset: r.StartOffset,
			EndOffset:   r.EndOffset,
		}
	}
}

type decodeResponse struct {
	Type        string                     `json:"type"`
	Edges       []datastructure.Index      `json:"edges"`
	Vertices    []datastructure.Index      `json:"vertices,omitempty"`
	StartOffset float64                    `json:"start_offset"`
	EndOffset   float64                    `json:"end_offset"`
	Offset      *float64                   `json:"offset,omitempty"`
	Coordinate  *geo.Coordinate            `json:"coordinate,omitempty"`
	Path        string                     `json:"path,omitempty"`
	Length      float64                    `json:"length"`
	Geojson     *geojson.FeatureCollection `json:"geojson,omitempty"`
}

func NewDecodeResponse(decoded *usecases.DecodedLocation, features *geojson.FeatureCollection) decodeResponse {
	resp := decodeResponse{
		Type:    decoded.Location.Type().String(),
		Edges:   decoded.Edges,
		Path:    decoded.Path,
		Length:  decoded.Length,
		Geojson: features,
	}
	switch loc := decoded.Location.(type) {
	case *model.ReferencedLine:
		resp.Vertices = loc.Vertices
		resp.StartOffset = loc.StartOffset
		resp.EndOffset = loc.EndOffset
	case *model.ReferencedPointAlongLine:
		resp.Vertices = loc.Route.Vertices
		offset := loc.Offset
		coordinate := loc.Coordinate
		resp.Offset = &offset
		resp.Coordinate = &coordinate
	case *model.ReferencedClosedLine:
		resp.Vertices = loc.Vertices
	}
	if resp.Edges == nil {
		resp.Edges = []datastructure.Index{}
	}
	return resp
}
