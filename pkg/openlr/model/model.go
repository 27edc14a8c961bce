package model

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
)

type Coordinate = geo.Coordinate

// FRC. functional road class, FRC0 main road ... FRC7 other class road.
type FRC uint8

const (
	FRC0 FRC = iota
	FRC1
	FRC2
	FRC3
	FRC4
	FRC5
	FRC6
	FRC7
)

func (f FRC) String() string {
	return fmt.Sprintf("FRC%d", uint8(f))
}

func (f FRC) Valid() bool {
	return f <= FRC7
}

// FOW. form of way.
type FOW uint8

const (
	FOW_UNDEFINED FOW = iota
	FOW_MOTORWAY
	FOW_MULTIPLE_CARRIAGEWAY
	FOW_SINGLE_CARRIAGEWAY
	FOW_ROUNDABOUT
	FOW_TRAFFICSQUARE
	FOW_SLIPROAD
	FOW_OTHER
)

var fowNames = [...]string{
	"UNDEFINED",
	"MOTORWAY",
	"MULTIPLE_CARRIAGEWAY",
	"SINGLE_CARRIAGEWAY",
	"ROUNDABOUT",
	"TRAFFICSQUARE",
	"SLIPROAD",
	"OTHER",
}

func (f FOW) String() string {
	if int(f) < len(fowNames) {
		return fowNames[f]
	}
	return fmt.Sprintf("FOW(%d)", uint8(f))
}

func (f FOW) Valid() bool {
	return f <= FOW_OTHER
}

// LocationReferencePoint. one point of a location reference.
type LocationReferencePoint struct {
	Coordinate      Coordinate `json:"coordinate"`
	Bearing         float64    `json:"bearing"`
	FRC             FRC        `json:"frc"`
	FOW             FOW        `json:"fow"`
	LowestFRCToNext FRC        `json:"lowest_frc_to_next"`
	DistanceToNext  float64    `json:"distance_to_next"`
	IsLast          bool       `json:"is_last"`
}
