package pkg

const (
	INF_WEIGHT float64 = 1e15
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	UNKNOWN        OsmHighwayType = 17
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	default:
		return UNKNOWN
	}
}

// IsLink. true for the *_link highway types (slip roads).
func (h OsmHighwayType) IsLink() bool {
	switch h {
	case MOTORWAY_LINK, TRUNK_LINK, PRIMARY_LINK, SECONDARY_LINK, TERTIARY_LINK:
		return true
	default:
		return false
	}
}
