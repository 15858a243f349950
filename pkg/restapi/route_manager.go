package restapi

import (
	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/runtime/syncutils"
)

// RestRouteManager keeps track of the route groups that components registered under /api.
type RestRouteManager struct {
	echo   *echo.Echo
	routes []string
	mutex  syncutils.RWMutex
}

func NewRestRouteManager(e *echo.Echo) *RestRouteManager {
	return &RestRouteManager{
		echo: e,
	}
}

// Routes returns the registered route groups.
func (p *RestRouteManager) Routes() []string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	return append([]string(nil), p.routes...)
}

// AddRoute registers the route group /api/<route>.
func (p *RestRouteManager) AddRoute(route string) *echo.Group {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.routes = append(p.routes, route)

	return p.echo.Group("/api/" + route)
}
