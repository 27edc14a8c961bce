package decoding

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/scoring"
	"github.com/paulmach/osm"
)

// match arc score by FRC class distance, 0 beyond the table.
var frcMatchTable = [...]float64{1, 0.75, 0.5, 0.25}

const (
	fowExactMatch      = 1.0
	fowCompatibleMatch = 0.5
	fowOtherMatch      = 0.25
)

// FindCandidatesFor. candidate vertex/edge pairs within radius (meter) of lrp, best first.
// An empty result is not an error.
func (d *Decoder) FindCandidatesFor(lrp model.LocationReferencePoint, forward bool,
	radius float64) []CandidateVertexEdge {
	candidates := make([]CandidateVertexEdge, 0, 8)

	for _, v := range d.graph.VerticesNear(lrp.Coordinate, radius) {
		vCoord := d.graph.CoordinateOf(v)
		dist := geo.DistanceMeter(lrp.Coordinate, vCoord)
		vertexScore := scoring.New(scoring.VERTEX_DISTANCE,
			fmt.Sprintf("distance %.1fm to vertex %d", dist, v), math.Max(0, 1-dist/radius), 1)

		for _, e := range d.graph.EdgesAt(v, forward) {
			if candidate, ok := d.candidateAt(lrp, v, e, forward, vertexScore); ok {
				candidates = append(candidates, candidate)
			}
		}
	}

	return d.rankCandidates(candidates)
}

// FindClosestCandidatesFor. candidates on the edges passing within radius (meter) of lrp, for an lrp
// that lies between vertices. Every edge yields the candidate at the endpoint it is entered from
// (forward) or left at (backward), scored by the distance of lrp to the edge geometry.
func (d *Decoder) FindClosestCandidatesFor(lrp model.LocationReferencePoint, forward bool,
	radius float64) []CandidateVertexEdge {
	candidates := make([]CandidateVertexEdge, 0, 8)

	for _, e := range d.graph.EdgesNear(lrp.Coordinate, radius) {
		_, dist := geo.ProjectOntoPolyline(d.graph.Geometry(e), lrp.Coordinate)
		tail, head := d.graph.Endpoints(e)
		v := tail
		if !forward {
			v = head
		}
		distanceScore := scoring.New(scoring.VERTEX_DISTANCE,
			fmt.Sprintf("distance %.1fm to edge %d", dist, e), math.Max(0, 1-dist/radius), 1)

		if candidate, ok := d.candidateAt(lrp, v, e, forward, distanceScore); ok {
			candidates = append(candidates, candidate)
		}
	}

	return d.rankCandidates(candidates)
}

// candidateAt. candidate of lrp at vertex v leaving (forward) or entering (backward) v through e.
// false if e can not be travelled in that direction.
func (d *Decoder) candidateAt(lrp model.LocationReferencePoint, v model.VertexID, e model.EdgeID, forward bool,
	distanceScore scoring.Score) (CandidateVertexEdge, bool) {
	tags := d.graph.TagsOf(e)
	if !d.traversable(e, tags) {
		return CandidateVertexEdge{}, false
	}

	tail, head := d.graph.Endpoints(e)
	target := head
	if !forward {
		target = tail
	}

	arcScore := scoring.New(scoring.MATCH_ARC, "frc/fow match", d.matchArc(tags, lrp.FRC, lrp.FOW), 1)

	bearing := d.graph.BearingAt(v, e)
	bearingDiff := geo.AngleDifference(lrp.Bearing, bearing)
	bearingScore := scoring.New(scoring.BEARING_DIFF,
		fmt.Sprintf("bearing difference %.1f", bearingDiff), 1-bearingDiff/180, 1)

	return CandidateVertexEdge{
		Vertex:                 v,
		VertexCoordinate:       d.graph.CoordinateOf(v),
		Score:                  scoring.Sum(scoring.Sum(distanceScore, arcScore), bearingScore),
		Edge:                   e,
		TargetVertex:           target,
		TargetVertexCoordinate: d.graph.CoordinateOf(target),
	}, true
}

func (d *Decoder) rankCandidates(candidates []CandidateVertexEdge) []CandidateVertexEdge {
	sortCandidates(candidates)
	if d.config.MaxCandidatesPerPoint > 0 && len(candidates) > d.config.MaxCandidatesPerPoint {
		candidates = candidates[:d.config.MaxCandidatesPerPoint]
	}
	return candidates
}

// traversable. false if the oneway tags of e forbid travelling along e.
func (d *Decoder) traversable(e model.EdgeID, tags osm.Tags) bool {
	restriction := d.matcher.OnewayRestriction(tags)
	if restriction == nil {
		return true
	}
	return *restriction == d.graph.DigitizedForward(e)
}

// matchArc. average of the FRC & FOW similarity, 0 if the tags can not be classified.
func (d *Decoder) matchArc(tags osm.Tags, frc model.FRC, fow model.FOW) float64 {
	edgeFRC, edgeFOW, ok := d.matcher.Classify(tags)
	if !ok {
		return 0
	}

	frcScore := 0.0
	classDistance := int(edgeFRC) - int(frc)
	if classDistance < 0 {
		classDistance = -classDistance
	}
	if classDistance < len(frcMatchTable) {
		frcScore = frcMatchTable[classDistance]
	}

	fowScore := fowOtherMatch
	switch {
	case edgeFOW == fow:
		fowScore = fowExactMatch
	case fowCompatible(edgeFOW, fow):
		fowScore = fowCompatibleMatch
	}

	return (frcScore + fowScore) / 2
}

func fowCompatible(a, b model.FOW) bool {
	if a == model.FOW_UNDEFINED || b == model.FOW_UNDEFINED || a == model.FOW_OTHER || b == model.FOW_OTHER {
		return true
	}
	if a > b {
		a, b = b, a
	}
	switch {
	case a == model.FOW_MOTORWAY && b == model.FOW_MULTIPLE_CARRIAGEWAY:
		return true
	case a == model.FOW_MULTIPLE_CARRIAGEWAY && b == model.FOW_SINGLE_CARRIAGEWAY:
		return true
	case a == model.FOW_ROUNDABOUT && b == model.FOW_TRAFFICSQUARE:
		return true
	case b == model.FOW_SLIPROAD && (a == model.FOW_MOTORWAY || a == model.FOW_MULTIPLE_CARRIAGEWAY):
		return true
	}
	return false
}
