package main

import (
	"context"
	"errors"
	"flag"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/engine"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/http"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/logger"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/util"
	"go.uber.org/zap"
)

var (
	networkFile  = flag.String("network", "./data/network.graph", "road network file (.graph, .geojson, .osm.pbf, .osm)")
	useRateLimit = flag.Bool("rate_limit", false, "enable per client rate limiting")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	openlrEngine, err := engine.NewEngine(*networkFile, logger)
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)

	openlrService := usecases.NewOpenLRService(logger, openlrEngine.GetDecoder(), openlrEngine.GetEncoder(),
		openlrEngine.GetRoadNetwork())
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx,
		logger, *useRateLimit, openlrService)

	signal := http.GracefulShutdown()

	logger.Info("Navigatorx OpenLR Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
