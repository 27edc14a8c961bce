package router_helper

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup. registers handlers on router under a common path prefix.
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{router: router, prefix: strings.TrimSuffix(prefix, "/")}
}

func (g *RouteGroup) Group(prefix string) *RouteGroup {
	return NewRouteGroup(g.router, g.prefix+"/"+strings.Trim(prefix, "/"))
}

func (g *RouteGroup) path(p string) string {
	return g.prefix + "/" + strings.TrimPrefix(p, "/")
}

func (g *RouteGroup) Handle(method, path string, handle httprouter.Handle) {
	g.router.Handle(method, g.path(path), handle)
}

func (g *RouteGroup) GET(path string, handle httprouter.Handle) {
	g.Handle(http.MethodGet, path, handle)
}

func (g *RouteGroup) POST(path string, handle httprouter.Handle) {
	g.Handle(http.MethodPost, path, handle)
}
