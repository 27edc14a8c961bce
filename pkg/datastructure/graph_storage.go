package datastructure

import (
	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/paulmach/osm"
)

type GraphStorage struct {
	globalPoints []geo.Coordinate

	mapEdgeInfo []EdgeExtraInfo
	tags        []osm.Tags
}

// EdgeExtraInfo. geometry of an edge in globalPoints. startPointsIndex > endPointsIndex means
// the geometry is stored in the opposite direction (the reversed edge of a two-way road).
type EdgeExtraInfo struct {
	startPointsIndex Index
	endPointsIndex   Index
}

func NewEdgeExtraInfo(startPointsIdx, endPointsIdx Index) EdgeExtraInfo {
	return EdgeExtraInfo{
		startPointsIndex: startPointsIdx,
		endPointsIndex:   endPointsIdx,
	}
}

func NewGraphStorage() *GraphStorage {
	return &GraphStorage{
		mapEdgeInfo:  make([]EdgeExtraInfo, 0),
		tags:         make([]osm.Tags, 0),
		globalPoints: make([]geo.Coordinate, 0),
	}
}

// AppendGlobalPoints. append edge geometry, return [start, end) index in globalPoints.
func (gs *GraphStorage) AppendGlobalPoints(edgePoints []geo.Coordinate) (Index, Index) {
	start := Index(len(gs.globalPoints))
	gs.globalPoints = append(gs.globalPoints, edgePoints...)
	return start, Index(len(gs.globalPoints))
}

func (gs *GraphStorage) AppendMapEdgeInfo(edgeInfo EdgeExtraInfo) {
	gs.mapEdgeInfo = append(gs.mapEdgeInfo, edgeInfo)
}

func (gs *GraphStorage) AppendTags(tags osm.Tags) Index {
	gs.tags = append(gs.tags, tags)
	return Index(len(gs.tags) - 1)
}

func (gs *GraphStorage) GetTags(tagsId Index) osm.Tags {
	if int(tagsId) >= len(gs.tags) {
		return nil
	}
	return gs.tags[tagsId]
}

func (gs *GraphStorage) GetEdgeGeometry(edgeID Index) []geo.Coordinate {
	if int(edgeID) >= len(gs.mapEdgeInfo) {
		return nil
	}
	edge := gs.mapEdgeInfo[edgeID]
	var (
		edgePoints []geo.Coordinate
	)
	startIndex := edge.startPointsIndex
	endIndex := edge.endPointsIndex
	if startIndex <= endIndex {
		edgePoints = gs.globalPoints[startIndex:endIndex]

		return edgePoints
	}

	edgePoints = make([]geo.Coordinate, 0, startIndex-endIndex)
	for i := int(startIndex) - 1; i >= int(endIndex); i-- {
		edgePoints = append(edgePoints, gs.globalPoints[i])
	}

	return edgePoints
}
