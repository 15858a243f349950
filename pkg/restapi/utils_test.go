package restapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/pkg/restapi"
	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/iota.go/v4/tpkg"
)

func TestRouteMatcher(t *testing.T) {
	public := []string{"/health", "/api/registry/v1/identities*"}
	protected := []string{"^/api/routes$"}

	publicRoutes, err := restapi.NewRouteMatcher(public)
	require.NoError(t, err)

	require.True(t, publicRoutes.Matches("/health"))
	require.True(t, publicRoutes.Matches("/HEALTH"))
	require.False(t, publicRoutes.Matches("/healthz"))
	require.True(t, publicRoutes.Matches("/api/registry/v1/identities/0x01/judgements"))
	require.False(t, publicRoutes.Matches("/api/registry/v1/identity"))
	require.False(t, publicRoutes.Matches("/api/routes"))

	exposedRoutes, err := restapi.NewRouteMatcher(public, protected)
	require.NoError(t, err)
	require.True(t, exposedRoutes.Matches("/api/routes"))
	require.True(t, exposedRoutes.Matches("/health"))
	require.False(t, exposedRoutes.Matches("/api/routes/extra"))

	emptyRoutes, err := restapi.NewRouteMatcher()
	require.NoError(t, err)
	require.False(t, emptyRoutes.Matches("/health"))

	_, err = restapi.NewRouteMatcher(public, []string{"^("})
	require.Error(t, err)
}

func TestRestRouteManager(t *testing.T) {
	manager := restapi.NewRestRouteManager(echo.New())

	require.NotNil(t, manager.AddRoute("registry/v1"))
	require.Equal(t, []string{"registry/v1"}, manager.Routes())
}

func TestParseParams(t *testing.T) {
	newContext := func(target string, accountID string) echo.Context {
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetParamNames(restapi.ParameterAccountID)
		c.SetParamValues(accountID)

		return c
	}

	accountID := tpkg.RandAccountID()

	parsed, err := restapi.ParseAccountIDParam(newContext("/", accountID.ToHex()))
	require.NoError(t, err)
	require.Equal(t, accountID, parsed)

	_, err = restapi.ParseAccountIDParam(newContext("/", "0x1234"))
	require.True(t, ierrors.Is(err, httpserver.ErrInvalidParameter))

	external, err := restapi.ParseExternalQueryParam(newContext("/", ""))
	require.NoError(t, err)
	require.False(t, external)

	external, err = restapi.ParseExternalQueryParam(newContext("/?external=true", ""))
	require.NoError(t, err)
	require.True(t, external)

	_, err = restapi.ParseExternalQueryParam(newContext("/?external=maybe", ""))
	require.True(t, ierrors.Is(err, httpserver.ErrInvalidParameter))
}
