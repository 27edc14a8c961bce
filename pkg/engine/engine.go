package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/codec"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/decoding"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/encoding"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/tagmatcher"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/osmparser"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/roadnetwork"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Engine struct {
	network *roadnetwork.RoadNetwork
	decoder *decoding.Decoder
	encoder *encoding.Encoder
}

func (e *Engine) GetRoadNetwork() *roadnetwork.RoadNetwork {
	return e.network
}

func (e *Engine) GetDecoder() *decoding.Decoder {
	return e.decoder
}

func (e *Engine) GetEncoder() *encoding.Encoder {
	return e.encoder
}

// NewEngine. networkFilePath is a GeoJSON linestring network (.geojson, .json), an openstreetmap
// extract (.osm.pbf, .osm) or a graph written by datastructure.WriteGraph.
func NewEngine(networkFilePath string, logger *zap.Logger) (*Engine, error) {
	logger.Info("Reading road network from ", zap.String("networkFilePath", networkFilePath))
	graph, err := readNetwork(networkFilePath, logger)
	if err != nil {
		return nil, err
	}
	return NewEngineFromGraph(graph, routing.ConfigFromViper(), openlr.ConfigFromViper(), logger)
}

func NewEngineFromGraph(graph *datastructure.Graph, routerConfig routing.Config, config openlr.Config,
	logger *zap.Logger) (*Engine, error) {
	logger.Info("Building spatial index & router...",
		zap.Int("vertices", graph.NumberOfVertices()), zap.Int("edges", graph.NumberOfEdges()))

	network := roadnetwork.NewRoadNetwork(graph, logger)
	matcher := tagmatcher.NewOSMTagMatcher()
	router, err := routing.NewDijkstra(graph, matcher, routerConfig, logger)
	if err != nil {
		return nil, err
	}
	jsonCodec := codec.NewJSONCodec()

	return &Engine{
		network: network,
		decoder: decoding.NewDecoder(network, router, matcher, jsonCodec, config, logger),
		encoder: encoding.NewEncoder(network, router, matcher, jsonCodec, config, logger),
	}, nil
}

func readNetwork(networkFilePath string, logger *zap.Logger) (*datastructure.Graph, error) {
	switch strings.ToLower(filepath.Ext(networkFilePath)) {
	case ".pbf", ".osm":
		return osmparser.NewOSMParser(logger).Parse(context.Background(), networkFilePath)
	case ".geojson", ".json":
		f, err := os.Open(networkFilePath)
		if err != nil {
			return nil, errors.Wrap(err, "open network")
		}
		defer f.Close()
		return datastructure.ReadGeoJSONNetwork(f)
	default:
		return datastructure.ReadGraph(networkFilePath)
	}
}
