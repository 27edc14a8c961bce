package encoding

import (
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"go.uber.org/zap"
)

type edgeAttributes struct {
	frc model.FRC
	fow model.FOW
}

// classifyEdges. FRC/FOW of every edge of the path.
func (e *Encoder) classifyEdges(edges []model.EdgeID) ([]edgeAttributes, error) {
	attrs := make([]edgeAttributes, len(edges))
	for i, edge := range edges {
		frc, fow, ok := e.matcher.Classify(e.graph.TagsOf(edge))
		if !ok {
			if !e.config.DefaultOnUnknownTags {
				return nil, openlr.TagClassificationFailed(int(edge))
			}
			e.logger.Warn("unknown road tags, using FRC7/OTHER", zap.Uint32("edge", uint32(edge)))
			frc, fow = model.FRC7, model.FOW_OTHER
		}
		attrs[i] = edgeAttributes{frc: frc, fow: fow}
	}
	return attrs, nil
}

// partition. positions in vertices where an LRP is placed, always including the first & last vertex.
func (e *Encoder) partition(edges []model.EdgeID, vertices []model.VertexID, attrs []edgeAttributes) []int {
	boundaries := []int{0}
	// the iteration budget is shared by all segments of the path.
	iterations := 0
	exhausted := false

	start := 0
	for start < len(edges) {
		end := e.segmentEnd(edges, attrs, start)

		// shrink the segment until the decoder would find it again.
		for end-start > 2 {
			if iterations >= e.config.MaxEncodeIterations {
				if !exhausted {
					e.logger.Warn("route verification iteration limit reached, keeping unverified segments",
						zap.Int("iterations", iterations), zap.Int("segment_start", start))
					exhausted = true
				}
				break
			}
			deviation, ok := e.verifySegment(edges, vertices, attrs, start, end)
			if ok {
				break
			}
			iterations++
			end = deviation
		}

		boundaries = append(boundaries, end)
		start = end
	}
	return boundaries
}

// segmentEnd. longest segment from start within MaxLRPDistance, optionally stopping at FRC changes.
// a segment holds at least one edge.
func (e *Encoder) segmentEnd(edges []model.EdgeID, attrs []edgeAttributes, start int) int {
	length := e.graph.LengthOf(edges[start])
	end := start + 1
	for end < len(edges) {
		next := e.graph.LengthOf(edges[end])
		if length+next > e.config.MaxLRPDistance {
			break
		}
		if e.config.SplitOnFRCChange && attrs[end].frc != attrs[end-1].frc {
			break
		}
		length += next
		end++
	}
	return end
}

// verifySegment. the decoder resolves the segment [start, end) as first edge + shortest path + last edge.
// If the shortest path differs from the segment, returns the vertex position where it deviates.
func (e *Encoder) verifySegment(edges []model.EdgeID, vertices []model.VertexID, attrs []edgeAttributes,
	start, end int) (int, bool) {
	middle := edges[start+1 : end-1]
	path, ok := e.router.ShortestPath(vertices[start+1], vertices[end-1], e.routeFloor(attrs[start:end]))
	if !ok {
		return start + 1, false
	}

	for i := range middle {
		if i >= len(path) || path[i] != middle[i] {
			return start + 1 + i, false
		}
	}
	if len(path) != len(middle) {
		return end - 1, false
	}
	return 0, true
}

// lowestFRC. least important FRC of the segment, the LowestFRCToNext attribute.
func lowestFRC(attrs []edgeAttributes) model.FRC {
	lowest := model.FRC0
	for _, a := range attrs {
		if a.frc > lowest {
			lowest = a.frc
		}
	}
	return lowest
}

// routeFloor. same floor the decoder uses for a segment.
func (e *Encoder) routeFloor(attrs []edgeAttributes) model.FRC {
	floor := int(lowestFRC(attrs)) + e.config.FRCFloorTolerance
	if floor > int(model.FRC7) {
		floor = int(model.FRC7)
	}
	return model.FRC(floor)
}

// encodePath. LRPs of the path, the last LRP describes the incoming edge of the last vertex.
func (e *Encoder) encodePath(edges []model.EdgeID, vertices []model.VertexID) ([]model.LocationReferencePoint, error) {
	attrs, err := e.classifyEdges(edges)
	if err != nil {
		return nil, err
	}
	boundaries := e.partition(edges, vertices, attrs)

	points := make([]model.LocationReferencePoint, 0, len(boundaries))
	for i := 0; i < len(boundaries)-1; i++ {
		start, end := boundaries[i], boundaries[i+1]
		dnp := 0.0
		for _, edge := range edges[start:end] {
			dnp += e.graph.LengthOf(edge)
		}
		points = append(points, model.LocationReferencePoint{
			Coordinate:      e.graph.CoordinateOf(vertices[start]),
			Bearing:         e.graph.BearingAt(vertices[start], edges[start]),
			FRC:             attrs[start].frc,
			FOW:             attrs[start].fow,
			LowestFRCToNext: lowestFRC(attrs[start:end]),
			DistanceToNext:  dnp,
		})
	}

	last := len(edges) - 1
	points = append(points, model.LocationReferencePoint{
		Coordinate:      e.graph.CoordinateOf(vertices[len(vertices)-1]),
		Bearing:         e.graph.BearingAt(vertices[len(vertices)-1], edges[last]),
		FRC:             attrs[last].frc,
		FOW:             attrs[last].fow,
		LowestFRCToNext: attrs[last].frc,
		IsLast:          true,
	})
	return points, nil
}
