package registryapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jwtgo "github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/pkg/identity"
	"github.com/iotaledger/identity-registry/pkg/jwt"
	"github.com/iotaledger/identity-registry/pkg/model"
	restapipkg "github.com/iotaledger/identity-registry/pkg/restapi"
	"github.com/iotaledger/identity-registry/pkg/testsuite"
	"github.com/iotaledger/inx-app/pkg/httpserver"
	iotago "github.com/iotaledger/iota.go/v4"
)

func setupDeps(t *testing.T) *testsuite.TestSuite {
	ts := testsuite.NewTestSuite(t)
	t.Cleanup(ts.Shutdown)

	deps = dependencies{
		AppInfo:  &app.Info{Name: "identity-registry", Version: "test"},
		Registry: ts.Registry,
		Ledger:   ts.Ledger,
	}

	return ts
}

func newContext(method string, body string, claims *jwt.AuthClaims, accountID *iotago.AccountID) echo.Context {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	c := echo.New().NewContext(req, httptest.NewRecorder())
	if claims != nil {
		c.Set(jwt.ContextKeyClaims, claims)
	}
	if accountID != nil {
		c.SetParamNames(restapipkg.ParameterAccountID)
		c.SetParamValues(accountID.ToHex())
	}

	return c
}

func signedClaims(accountID iotago.AccountID) *jwt.AuthClaims {
	return &jwt.AuthClaims{StandardClaims: jwtgo.StandardClaims{Subject: accountID.ToHex()}}
}

func privilegedClaims() *jwt.AuthClaims {
	return &jwt.AuthClaims{StandardClaims: jwtgo.StandardClaims{Subject: "admin"}, Privileged: true}
}

func TestRegistryAPI_Lifecycle(t *testing.T) {
	ts := setupDeps(t)
	alice := ts.Account("alice")

	// "display" in hex
	resp, err := setIdentity(newContext(http.MethodPut, `{"display":"0x646973706c6179"}`, signedClaims(alice), nil))
	require.NoError(t, err)
	require.Equal(t, alice.ToHex(), resp.AccountID)
	require.Equal(t, "0x646973706c6179", resp.Info.Display)
	require.EqualValues(t, 21, resp.Deposit)
	require.Empty(t, resp.Judgements)

	require.NoError(t, provideJudgement(newContext(http.MethodPost, `{"id":3,"judgement":2}`, privilegedClaims(), &alice)))
	require.NoError(t, provideJudgement(newContext(http.MethodPost, `{"id":1,"judgement":1,"external":true}`, privilegedClaims(), &alice)))

	resp, err = identityByAccountID(newContext(http.MethodGet, "", nil, &alice))
	require.NoError(t, err)
	require.Equal(t, []JudgementJSON{{ID: 3, Judgement: "KnownGood", Sticky: true}}, resp.Judgements)
	require.Equal(t, []JudgementJSON{{ID: 1, Judgement: "Reasonable", Sticky: false}}, resp.ExternalJudgements)
	require.EqualValues(t, 1, resp.ExternalCount)

	c := newContext(http.MethodGet, "", nil, &alice)
	c.QueryParams().Set(restapipkg.QueryParameterExternal, "true")
	judgementsResp, err := judgementsByAccountID(c)
	require.NoError(t, err)
	require.True(t, judgementsResp.External)
	require.Len(t, judgementsResp.Judgements, 1)

	balanceResp, err := balanceByAccountID(newContext(http.MethodGet, "", nil, &alice))
	require.NoError(t, err)
	require.EqualValues(t, 979, balanceResp.Free)
	require.EqualValues(t, 21, balanceResp.Reserved)

	infoResp, err := info()
	require.NoError(t, err)
	require.Equal(t, 1, infoResp.IdentityCount)
	require.Equal(t, ts.Parameters(), infoResp.Parameters)
	require.Nil(t, infoResp.Rates)

	depositResp, err := clearIdentity(newContext(http.MethodDelete, "", signedClaims(alice), nil))
	require.NoError(t, err)
	require.EqualValues(t, 21, depositResp.Deposit)

	_, err = identityByAccountID(newContext(http.MethodGet, "", nil, &alice))
	require.True(t, ierrors.Is(err, echo.ErrNotFound))
}

func TestRegistryAPI_KillIdentity(t *testing.T) {
	ts := setupDeps(t)
	bob := ts.Account("bob")
	require.NoError(t, ts.SetIdentity("bob", testsuite.Info("bob", "", "", "")))

	_, err := killIdentity(newContext(http.MethodDelete, "", signedClaims(bob), &bob))
	require.True(t, ierrors.Is(err, echo.ErrForbidden))

	resp, err := killIdentity(newContext(http.MethodDelete, "", privilegedClaims(), &bob))
	require.NoError(t, err)
	require.EqualValues(t, 17, resp.Deposit)
	ts.AssertNoIdentity("bob")
	ts.AssertBalance("bob", 983, 0)
}

func TestRegistryAPI_InvalidRequests(t *testing.T) {
	ts := setupDeps(t)
	alice := ts.Account("alice")

	_, err := setIdentity(newContext(http.MethodPut, `{"display":"0x646973706c6179"}`, nil, nil))
	require.True(t, ierrors.Is(err, echo.ErrUnauthorized))

	_, err = setIdentity(newContext(http.MethodPut, `{"display":"0x646973706c6179"}`, privilegedClaims(), nil))
	require.True(t, ierrors.Is(err, echo.ErrForbidden))

	_, err = setIdentity(newContext(http.MethodPut, `{"display":"not hex"}`, signedClaims(alice), nil))
	require.Error(t, err)
	ts.AssertNoIdentity("alice")

	err = provideJudgement(newContext(http.MethodPost, `{"id":0,"judgement":1}`, privilegedClaims(), &alice))
	require.True(t, ierrors.Is(err, echo.ErrNotFound))

	c := newContext(http.MethodGet, "", nil, nil)
	c.SetParamNames(restapipkg.ParameterAccountID)
	c.SetParamValues("0x1234")
	_, err = identityByAccountID(c)
	require.True(t, ierrors.Is(err, httpserver.ErrInvalidParameter))

	require.NoError(t, ts.SetIdentity("alice", testsuite.Info("alice", "", "", "")))

	c = newContext(http.MethodGet, "", nil, &alice)
	c.QueryParams().Set(restapipkg.QueryParameterExternal, "maybe")
	_, err = judgementsByAccountID(c)
	require.True(t, ierrors.Is(err, httpserver.ErrInvalidParameter))
}

func TestOriginFromClaims(t *testing.T) {
	accountID := iotago.AccountID{1, 2, 3}

	origin, err := originFromClaims(signedClaims(accountID))
	require.NoError(t, err)
	require.Equal(t, identity.Signed(accountID), origin)

	origin, err = originFromClaims(privilegedClaims())
	require.NoError(t, err)
	require.Equal(t, identity.Privileged(), origin)

	_, err = originFromClaims(&jwt.AuthClaims{StandardClaims: jwtgo.StandardClaims{Subject: "alice"}})
	require.True(t, ierrors.Is(err, echo.ErrUnauthorized))
}

func TestHTTPError(t *testing.T) {
	for _, test := range []struct {
		err      error
		expected *echo.HTTPError
	}{
		{identity.ErrNoIdentity, echo.ErrNotFound},
		{identity.ErrInvalidTarget, echo.ErrNotFound},
		{identity.ErrStickyJudgement, echo.ErrConflict},
		{identity.ErrTooManyJudgements, echo.ErrConflict},
		{identity.ErrInvalidJudgement, echo.ErrBadRequest},
		{ierrors.WithMessage(model.ErrFieldTooLong, "display"), echo.ErrBadRequest},
		{identity.ErrInsufficientBalance, echo.ErrUnprocessableEntity},
		{identity.ErrBadOrigin, echo.ErrForbidden},
		{ierrors.New("disk on fire"), echo.ErrInternalServerError},
	} {
		err := httpError(test.err, "operation failed for %s", "alice")
		require.True(t, ierrors.Is(err, test.expected), "%s", err)
		require.Contains(t, err.Error(), "operation failed for alice")
	}
}

func TestIdentityInfoJSON(t *testing.T) {
	info := &model.IdentityInfo{Display: []byte("alice"), Email: []byte("alice@example.org")}

	encoded := newIdentityInfoJSON(info)
	require.Empty(t, encoded.Legal)

	decoded, err := encoded.IdentityInfo()
	require.NoError(t, err)
	require.Equal(t, info, decoded)
}
