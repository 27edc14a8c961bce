package routing

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/navigatorx-openlr/pkg"
	da "github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	// a search stops once this many vertices are settled.
	MaxSettledVertices int
	// meter, a search stops once the smallest tentative distance exceeds it.
	MaxSearchDistance float64
	PathCacheSize     int
}

func DefaultConfig() Config {
	return Config{
		MaxSettledVertices: 100000,
		MaxSearchDistance:  100000,
		PathCacheSize:      10000,
	}
}

func ConfigFromViper() Config {
	def := DefaultConfig()
	viper.SetDefault("ROUTER_MAX_SETTLED_VERTICES", def.MaxSettledVertices)
	viper.SetDefault("ROUTER_MAX_SEARCH_DISTANCE", def.MaxSearchDistance)
	viper.SetDefault("ROUTER_PATH_CACHE_SIZE", def.PathCacheSize)
	return Config{
		MaxSettledVertices: viper.GetInt("ROUTER_MAX_SETTLED_VERTICES"),
		MaxSearchDistance:  viper.GetFloat64("ROUTER_MAX_SEARCH_DISTANCE"),
		PathCacheSize:      viper.GetInt("ROUTER_PATH_CACHE_SIZE"),
	}
}

// Dijkstra. FRC-floored shortest path search over the road network.
// Safe for concurrent use: every query keeps its own labels, the path cache is thread-safe.
type Dijkstra struct {
	graph  *da.Graph
	logger *zap.Logger
	cache  *lru.Cache[pathCacheKey, []da.Index]
	config Config

	edgeFRC     []model.FRC
	edgeAllowed []bool
}

// NewDijkstra. classify every edge once with matcher. unclassifiable edges get FRC7,
// edges whose oneway tags forbid their direction are never traversed.
func NewDijkstra(graph *da.Graph, matcher openlr.TagMatcher, config Config, logger *zap.Logger) (*Dijkstra, error) {
	cacheSize := config.PathCacheSize
	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New[pathCacheKey, []da.Index](cacheSize)
	if err != nil {
		return nil, err
	}

	d := &Dijkstra{
		graph:       graph,
		logger:      logger,
		cache:       cache,
		config:      config,
		edgeFRC:     make([]model.FRC, graph.NumberOfEdges()),
		edgeAllowed: make([]bool, graph.NumberOfEdges()),
	}

	graph.ForEdges(func(e *da.Edge, percentage float64) {
		tags := graph.GetTags(e.GetEdgeId())
		frc, _, ok := matcher.Classify(tags)
		if !ok {
			frc = model.FRC7
		}
		d.edgeFRC[e.GetEdgeId()] = frc

		restriction := matcher.OnewayRestriction(tags)
		d.edgeAllowed[e.GetEdgeId()] = restriction == nil || *restriction != e.IsReversed()
	})
	return d, nil
}

// ShortestPath. shortest path from -> to using only edges with FRC <= lowestFRC.
// false if to is unreachable under the floor or the search budget is exhausted.
func (d *Dijkstra) ShortestPath(from, to da.Index, lowestFRC model.FRC) ([]da.Index, bool) {
	if from == to {
		return []da.Index{}, true
	}
	if int(from) >= d.graph.NumberOfVertices() || int(to) >= d.graph.NumberOfVertices() {
		return nil, false
	}
	if !d.graph.VerticeUandVAreConnected(from, to) {
		return nil, false
	}

	key := pathCacheKey{from: from, to: to, lowestFRC: uint8(lowestFRC)}
	if path, ok := d.cache.Get(key); ok {
		if path == nil {
			return nil, false
		}
		return append([]da.Index(nil), path...), true
	}

	path, found := d.search(from, to, lowestFRC)
	if found {
		d.cache.Add(key, path)
		return append([]da.Index(nil), path...), true
	}
	d.cache.Add(key, nil)
	return nil, false
}

func (d *Dijkstra) search(from, to da.Index, lowestFRC model.FRC) ([]da.Index, bool) {
	pq := da.NewFourAryHeap[da.Index]()
	info := make(map[da.Index]*vertexInfo)

	sNode := da.NewPriorityQueueNode(0, from)
	pq.Insert(sNode)
	info[from] = newVertexInfo(0, da.INVALID_EDGE_ID, sNode)

	numSettledNodes := 0
	for !pq.IsEmpty() {
		uNode, _ := pq.ExtractMin()
		u := uNode.GetItem()
		uInfo := info[u]
		uInfo.settled = true
		numSettledNodes++

		if u == to {
			return d.unpackPath(info, from, to), true
		}
		if numSettledNodes >= d.config.MaxSettledVertices || uInfo.dist > d.config.MaxSearchDistance {
			d.logger.Debug("shortest path search budget exhausted",
				zap.Uint32("from", uint32(from)), zap.Uint32("to", uint32(to)),
				zap.Int("settled", numSettledNodes), zap.Float64("distance", uInfo.dist))
			return nil, false
		}

		d.graph.ForOutEdgesOf(u, func(e *da.Edge) {
			eId := e.GetEdgeId()
			if !d.edgeAllowed[eId] || d.edgeFRC[eId] > lowestFRC {
				return
			}

			v := e.GetHead()
			newDist := uInfo.dist + e.GetLength()
			if da.Ge(newDist, pkg.INF_WEIGHT) {
				return
			}

			vInfo, labelled := info[v]
			if labelled {
				if vInfo.settled || da.Ge(newDist, vInfo.dist) {
					return
				}
				vInfo.update(newDist, eId)
				pq.DecreaseKey(vInfo.heapNode, newDist)
				return
			}

			vNode := da.NewPriorityQueueNode(newDist, v)
			info[v] = newVertexInfo(newDist, eId, vNode)
			pq.Insert(vNode)
		})
	}
	return nil, false
}

func (d *Dijkstra) unpackPath(info map[da.Index]*vertexInfo, from, to da.Index) []da.Index {
	path := make([]da.Index, 0, 8)
	for cur := to; cur != from; {
		eId := info[cur].parentEdge
		path = append(path, eId)
		cur = d.graph.GetEdge(eId).GetTail()
	}
	return util.ReverseG(path)
}

// EdgeFRC. FRC the router assigned to edge e.
func (d *Dijkstra) EdgeFRC(e da.Index) model.FRC {
	return d.edgeFRC[e]
}
