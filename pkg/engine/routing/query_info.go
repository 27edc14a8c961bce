package routing

import (
	da "github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"
)

// vertexInfo. search label of a vertex: tentative distance, the edge used to reach it & its heap node.
type vertexInfo struct {
	dist       float64
	parentEdge da.Index
	heapNode   *da.PriorityQueueNode[da.Index]
	settled    bool
}

func newVertexInfo(dist float64, parentEdge da.Index, heapNode *da.PriorityQueueNode[da.Index]) *vertexInfo {
	return &vertexInfo{
		dist:       dist,
		parentEdge: parentEdge,
		heapNode:   heapNode,
	}
}

func (vi *vertexInfo) update(dist float64, parentEdge da.Index) {
	vi.dist = dist
	vi.parentEdge = parentEdge
}

type pathCacheKey struct {
	from, to  da.Index
	lowestFRC uint8
}
