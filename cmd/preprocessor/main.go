package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/logger"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/osmparser"
	"go.uber.org/zap"
)

var (
	mapFile   = flag.String("f", "./data/map.osm.pbf", "openstreetmap extract (.osm.pbf or .osm)")
	graphFile = flag.String("o", "./data/network.graph", "output road network file")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	graph, err := osmparser.NewOSMParser(logger).Parse(context.Background(), *mapFile)
	if err != nil {
		panic(err)
	}

	logger.Info("Writing road network", zap.String("graphFile", *graphFile))
	if err := graph.WriteGraph(*graphFile); err != nil {
		panic(err)
	}
}
