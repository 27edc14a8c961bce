package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/navigatorx-openlr/pkg/http/router"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/navigatorx-openlr/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. start the API in the background, Wait returns its error once ctx is done.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	openlrService controllers.OpenLRService,
) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	server := http_router.NewAPI(log)

	s.g = &errgroup.Group{}
	s.g.Go(func() error {
		return server.Run(
			ctx, config, log,
			useRateLimit, openlrService,
		)
	})

	return s, nil
}

func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}

// GracefulShutdown. block until SIGINT or SIGTERM.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}
