package decoding

import (
	"sort"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/scoring"
)

// CandidateVertexEdge. a possible match of one LRP. Edge connects Vertex and TargetVertex along the
// search direction: an out-edge of Vertex for forward candidates, an in-edge of Vertex coming from
// TargetVertex for backward candidates.
type CandidateVertexEdge struct {
	Vertex                 model.VertexID
	VertexCoordinate       model.Coordinate
	Score                  scoring.Score
	Edge                   model.EdgeID
	TargetVertex           model.VertexID
	TargetVertexCoordinate model.Coordinate
}

// CandidateRoute. Edges is contiguous and starts at the from candidate's Vertex.
type CandidateRoute struct {
	Edges  []model.EdgeID
	Length float64
	Score  scoring.Score
}

// sortCandidates. descending score, candidates with equal score keep their relative order.
func sortCandidates(candidates []CandidateVertexEdge) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score.GetValue() > candidates[j].Score.GetValue()
	})
}
