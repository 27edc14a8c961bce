package decoding

import (
	"fmt"
	"math"
	"sort"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/scoring"
)

// FindCandidateRoute. path from.Edge + shortest path + to.Edge and its score. lowestFRC is the
// router's class floor, declaredDistance the distance to next of the from LRP (meter).
// false when the router finds no path.
func (d *Decoder) FindCandidateRoute(from, to CandidateVertexEdge, lowestFRC model.FRC,
	declaredDistance float64) (CandidateRoute, bool) {
	var edges []model.EdgeID
	switch {
	case from.Edge == to.Edge:
		edges = []model.EdgeID{from.Edge}
	case from.TargetVertex == to.TargetVertex:
		edges = []model.EdgeID{from.Edge, to.Edge}
	default:
		path, ok := d.router.ShortestPath(from.TargetVertex, to.TargetVertex, lowestFRC)
		if !ok {
			return CandidateRoute{}, false
		}
		edges = make([]model.EdgeID, 0, len(path)+2)
		edges = append(edges, from.Edge)
		edges = append(edges, path...)
		edges = append(edges, to.Edge)
	}

	length := 0.0
	for _, e := range edges {
		length += d.graph.LengthOf(e)
	}

	candidateScore := scoring.New(scoring.CANDIDATE_ROUTE, "from & to candidate score",
		from.Score.GetValue()*to.Score.GetValue(), from.Score.GetReference()*to.Score.GetReference())
	distanceScore := scoring.New(scoring.DISTANCE_COMPARISON,
		fmt.Sprintf("route length %.1fm, declared %.1fm", length, declaredDistance),
		d.distanceComparison(length, declaredDistance), 1)

	return CandidateRoute{
		Edges:  edges,
		Length: length,
		Score:  scoring.Product(candidateScore, distanceScore),
	}, true
}

// distanceComparison. 1 at zero deviation, strictly decreasing in |length - declared|.
func (d *Decoder) distanceComparison(length, declared float64) float64 {
	scale := math.Max(declared, d.config.DistanceResolution)
	if !(scale > 0) {
		scale = 1
	}
	return math.Exp(-d.config.DistancePenalty * math.Abs(length-declared) / scale)
}

// routeFloor. lowest FRC the router may use between lrp and the next LRP.
func (d *Decoder) routeFloor(lrp model.LocationReferencePoint) model.FRC {
	floor := int(lrp.LowestFRCToNext) + d.config.FRCFloorTolerance
	if floor > int(model.FRC7) {
		floor = int(model.FRC7)
	}
	return model.FRC(floor)
}

type routeJob struct {
	index    int
	from, to CandidateVertexEdge
}

type routeResult struct {
	index int
	route CandidateRoute
	ok    bool
}

// findRoutes. every viable route between the from & to candidates of lrp, best first.
// Only the first MaxRouteCombinations combinations (in candidate rank order) are evaluated.
func (d *Decoder) findRoutes(fromCandidates, toCandidates []CandidateVertexEdge,
	lrp model.LocationReferencePoint) []CandidateRoute {
	jobs := make([]routeJob, 0, len(fromCandidates)*len(toCandidates))
	for _, from := range fromCandidates {
		for _, to := range toCandidates {
			if d.config.MaxRouteCombinations > 0 && len(jobs) >= d.config.MaxRouteCombinations {
				break
			}
			jobs = append(jobs, routeJob{index: len(jobs), from: from, to: to})
		}
	}

	floor := d.routeFloor(lrp)
	results := concurrent.Map(d.config.RouteWorkers, jobs, func(job routeJob) routeResult {
		route, ok := d.FindCandidateRoute(job.from, job.to, floor, lrp.DistanceToNext)
		return routeResult{index: job.index, route: route, ok: ok}
	})

	viable := make([]routeResult, 0, len(results))
	for _, res := range results {
		if res.ok {
			viable = append(viable, res)
		}
	}
	sort.Slice(viable, func(i, j int) bool {
		if viable[i].route.Score.GetValue() != viable[j].route.Score.GetValue() {
			return viable[i].route.Score.GetValue() > viable[j].route.Score.GetValue()
		}
		return viable[i].index < viable[j].index
	})

	routes := make([]CandidateRoute, 0, len(viable))
	for _, res := range viable {
		routes = append(routes, res.route)
	}
	return routes
}
