package registryapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/identity-registry/components/metricstracker"
	"github.com/iotaledger/identity-registry/components/restapi"
	"github.com/iotaledger/identity-registry/pkg/balances"
	"github.com/iotaledger/identity-registry/pkg/identity"
	restapipkg "github.com/iotaledger/identity-registry/pkg/restapi"
	"github.com/iotaledger/inx-app/pkg/httpserver"
)

const (
	// RouteInfo is the route for getting the registry info.
	// GET returns the parameters and statistics of the registry.
	RouteInfo = "/info"

	// RouteIdentity is the route for managing the identity of the calling account.
	// PUT sets or replaces the identity.
	// DELETE clears the identity and releases its deposit.
	RouteIdentity = "/identity"

	// RouteIdentityByAccountID is the route for getting or removing the identity of an account.
	// GET returns the identity together with its external judgements.
	// DELETE removes the identity and slashes its deposit (privileged).
	RouteIdentityByAccountID = "/identities/:" + restapipkg.ParameterAccountID

	// RouteJudgements is the route for the judgements of an account.
	// GET returns the judgements of one storage path, selected by the "external" query parameter.
	// POST provides a judgement (privileged).
	RouteJudgements = "/identities/:" + restapipkg.ParameterAccountID + "/judgements"

	// RouteBalance is the route for getting the balance of an account.
	// GET returns the free and reserved balance.
	RouteBalance = "/balances/:" + restapipkg.ParameterAccountID
)

func init() {
	Component = &app.Component{
		Name:      "RegistryAPIV1",
		DepsFunc:  func(cDeps dependencies) { deps = cDeps },
		Configure: configure,
		IsEnabled: func(c *dig.Container) bool {
			return restapi.ParamsRestAPI.Enabled
		},
	}
}

var (
	Component *app.Component
	deps      dependencies
)

type dependencies struct {
	dig.In

	AppInfo          *app.Info
	RestRouteManager *restapipkg.RestRouteManager
	Registry         *identity.Registry
	Ledger           *balances.Ledger
	MetricsTracker   *metricstracker.MetricsTracker `optional:"true"`
}

func configure() error {
	// check if RestAPI plugin is disabled
	if !Component.App().IsComponentEnabled(restapi.Component.Identifier()) {
		Component.LogPanicf("RestAPI plugin needs to be enabled to use the %s plugin", Component.Name)
	}

	routeGroup := deps.RestRouteManager.AddRoute("registry/v1")

	routeGroup.GET(RouteInfo, func(c echo.Context) error {
		resp, err := info()
		if err != nil {
			return err
		}

		return httpserver.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.PUT(RouteIdentity, func(c echo.Context) error {
		resp, err := setIdentity(c)
		if err != nil {
			return err
		}

		return httpserver.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.DELETE(RouteIdentity, func(c echo.Context) error {
		resp, err := clearIdentity(c)
		if err != nil {
			return err
		}

		return httpserver.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.GET(RouteIdentityByAccountID, func(c echo.Context) error {
		resp, err := identityByAccountID(c)
		if err != nil {
			return err
		}

		return httpserver.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.DELETE(RouteIdentityByAccountID, func(c echo.Context) error {
		resp, err := killIdentity(c)
		if err != nil {
			return err
		}

		return httpserver.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.GET(RouteJudgements, func(c echo.Context) error {
		resp, err := judgementsByAccountID(c)
		if err != nil {
			return err
		}

		return httpserver.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.POST(RouteJudgements, func(c echo.Context) error {
		if err := provideJudgement(c); err != nil {
			return err
		}

		return c.NoContent(http.StatusNoContent)
	})

	routeGroup.GET(RouteBalance, func(c echo.Context) error {
		resp, err := balanceByAccountID(c)
		if err != nil {
			return err
		}

		return httpserver.JSONResponse(c, http.StatusOK, resp)
	})

	return nil
}
