package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/navigatorx-openlr/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/navigatorx-openlr/pkg/http/server"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"

	httpSwagger "github.com/swaggo/http-swagger"
)

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

//	@title			Navigatorx OpenLR API
//	@version		1.0
//	@description	OpenLR location reference decoding & encoding on an openstreetmap road network.

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	log *zap.Logger,

	useRateLimit bool,
	openlrService controllers.OpenLRService,
) error {
	log.Info("Run httprouter API")

	handler := api.Handler(log, useRateLimit, openlrService)

	srv := http_server.New(ctx, handler, config)
	log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		log.Info("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		log.Info("Context canceled, shutting down server")
		_ = srv.Shutdown(context.Background())
		return ctx.Err()
	}
}

// Handler. router wrapped in the middleware chain.
func (api *API) Handler(log *zap.Logger, useRateLimit bool, openlrService controllers.OpenLRService) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)

	group := router_helper.NewRouteGroup(router, "/api")

	openlrRoutes := controllers.New(openlrService, log)
	openlrRoutes.Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(log)}
	if useRateLimit {
		mwChain = append(mwChain, Limit)
	}
	return alice.New(mwChain...).Then(router)
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
