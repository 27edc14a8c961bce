package model

type LocationType uint8

const (
	LINE_LOCATION LocationType = iota
	POINT_ALONG_LINE_LOCATION
	CLOSED_LINE_LOCATION
	RECTANGLE_LOCATION
)

var locationTypeNames = [...]string{
	"line",
	"point_along_line",
	"closed_line",
	"rectangle",
}

func (t LocationType) String() string {
	if int(t) < len(locationTypeNames) {
		return locationTypeNames[t]
	}
	return "unknown"
}

// ParseLocationType. inverse of LocationType.String.
func ParseLocationType(s string) (LocationType, bool) {
	for i, name := range locationTypeNames {
		if name == s {
			return LocationType(i), true
		}
	}
	return 0, false
}

// Location. a map-independent location reference.
type Location interface {
	Type() LocationType
}

// LineLocation. PositiveOffset/NegativeOffset are fractions in [0,1) of the distance between the
// first two (last two) LRPs.
type LineLocation struct {
	Points         []LocationReferencePoint `json:"points"`
	PositiveOffset float64                  `json:"positive_offset"`
	NegativeOffset float64                  `json:"negative_offset"`
}

func (l *LineLocation) Type() LocationType {
	return LINE_LOCATION
}

type Orientation uint8

const (
	NO_ORIENTATION Orientation = iota
	FIRST_TO_SECOND
	SECOND_TO_FIRST
	BOTH_DIRECTIONS
)

type SideOfRoad uint8

const (
	ON_ROAD_OR_UNKNOWN SideOfRoad = iota
	RIGHT
	LEFT
	BOTH_SIDES
)

// PointAlongLineLocation. a point PositiveOffset (fraction of First.DistanceToNext) along the line First -> Last.
type PointAlongLineLocation struct {
	First          LocationReferencePoint `json:"first"`
	Last           LocationReferencePoint `json:"last"`
	PositiveOffset float64                `json:"positive_offset"`
	Orientation    Orientation            `json:"orientation"`
	SideOfRoad     SideOfRoad             `json:"side_of_road"`
}

func (p *PointAlongLineLocation) Type() LocationType {
	return POINT_ALONG_LINE_LOCATION
}

// ClosedLineLocation. the last LRP repeats the first.
type ClosedLineLocation struct {
	Points []LocationReferencePoint `json:"points"`
}

func (c *ClosedLineLocation) Type() LocationType {
	return CLOSED_LINE_LOCATION
}

type RectangleLocation struct {
	LowerLeft  Coordinate `json:"lower_left"`
	UpperRight Coordinate `json:"upper_right"`
}

func (r *RectangleLocation) Type() LocationType {
	return RECTANGLE_LOCATION
}
