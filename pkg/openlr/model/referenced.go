package model

import "github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"

type EdgeID = datastructure.Index
type VertexID = datastructure.Index

// ReferencedLocation. a location bound to edges & vertices of a road network.
type ReferencedLocation interface {
	Type() LocationType
}

// ReferencedLine. Vertices has len(Edges)+1 entries. StartOffset and EndOffset are the fractions
// of the first and last edge that are cut away (0 = complete edge).
type ReferencedLine struct {
	Edges       []EdgeID
	Vertices    []VertexID
	StartOffset float64
	EndOffset   float64
}

func (l *ReferencedLine) Type() LocationType {
	return LINE_LOCATION
}

// ReferencedPointAlongLine. Offset is the position of the point as a fraction of the route length.
type ReferencedPointAlongLine struct {
	Route       *ReferencedLine
	Offset      float64
	Coordinate  Coordinate
	Orientation Orientation
	SideOfRoad  SideOfRoad
}

func (p *ReferencedPointAlongLine) Type() LocationType {
	return POINT_ALONG_LINE_LOCATION
}

// ReferencedClosedLine. Vertices starts and ends at the same vertex.
type ReferencedClosedLine struct {
	Edges    []EdgeID
	Vertices []VertexID
}

func (c *ReferencedClosedLine) Type() LocationType {
	return CLOSED_LINE_LOCATION
}

type ReferencedRectangle struct {
	LowerLeft  Coordinate
	UpperRight Coordinate
	Edges      []EdgeID
}

func (r *ReferencedRectangle) Type() LocationType {
	return RECTANGLE_LOCATION
}
