package http_server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port    int
	Timeout time.Duration
}

func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: http.TimeoutHandler(handler, config.Timeout, "request timeout"),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},

		ReadTimeout:       viper.GetDuration("HTTP_SERVER_READ_TIMEOUT"),
		WriteTimeout:      config.Timeout + viper.GetDuration("HTTP_SERVER_WRITE_TIMEOUT"),
		IdleTimeout:       viper.GetDuration("HTTP_SERVER_IDLE_TIMEOUT"),
		ReadHeaderTimeout: viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
	}
}
