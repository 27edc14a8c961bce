// Package openlr holds the capabilities the referenced decoder & encoder consume,
// their configuration and the location error taxonomy.
package openlr

import (
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"github.com/paulmach/osm"
)

// Graph. read-only road network. Safe for concurrent reads.
type Graph interface {
	// VerticesNear. vertices within radius (meter) of c, nearest first.
	VerticesNear(c model.Coordinate, radius float64) []model.VertexID
	// EdgesNear. edges whose geometry passes within radius (meter) of c, nearest first.
	EdgesNear(c model.Coordinate, radius float64) []model.EdgeID
	NumberOfEdges() int
	// EdgesAt. out-edges of v if forward, in-edges of v otherwise.
	EdgesAt(v model.VertexID, forward bool) []model.EdgeID
	Endpoints(e model.EdgeID) (tail model.VertexID, head model.VertexID)
	// DigitizedForward. false if e runs against the direction its tags were digitized in.
	DigitizedForward(e model.EdgeID) bool
	CoordinateOf(v model.VertexID) model.Coordinate
	TagsOf(e model.EdgeID) osm.Tags
	LengthOf(e model.EdgeID) float64
	// BearingAt. bearing of e at its endpoint v, measured along e away from v.
	BearingAt(v model.VertexID, e model.EdgeID) float64
	// Geometry. polyline of e from tail to head.
	Geometry(e model.EdgeID) []model.Coordinate
	EdgesWithin(lowerLeft, upperRight model.Coordinate) []model.EdgeID
}

// Router. shortest path from -> to only using edges with FRC <= lowestFRC.
// from == to yields an empty path.
type Router interface {
	ShortestPath(from, to model.VertexID, lowestFRC model.FRC) ([]model.EdgeID, bool)
}

// TagMatcher. maps edge tags to OpenLR road attributes.
type TagMatcher interface {
	Classify(tags osm.Tags) (model.FRC, model.FOW, bool)
	// OnewayRestriction. nil = no restriction, true = only along the digitization, false = only against it.
	OnewayRestriction(tags osm.Tags) *bool
}

type RawDecoder interface {
	Decode(data []byte) (model.Location, error)
}

type RawEncoder interface {
	Encode(location model.Location) ([]byte, error)
}
