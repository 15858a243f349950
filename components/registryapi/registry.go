package registryapi

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/pkg/identity"
	"github.com/iotaledger/identity-registry/pkg/jwt"
	"github.com/iotaledger/identity-registry/pkg/model"
	restapipkg "github.com/iotaledger/identity-registry/pkg/restapi"
	"github.com/iotaledger/inx-app/pkg/httpserver"
	iotago "github.com/iotaledger/iota.go/v4"
)

func info() (*InfoResponse, error) {
	identityCount, err := deps.Registry.IdentityCount()
	if err != nil {
		return nil, ierrors.Wrapf(echo.ErrInternalServerError, "failed to count identities: %s", err)
	}

	resp := &InfoResponse{
		Name:          deps.AppInfo.Name,
		Version:       deps.AppInfo.Version,
		Parameters:    deps.Registry.Parameters(),
		IdentityCount: identityCount,
	}

	if deps.MetricsTracker != nil {
		rates := deps.MetricsTracker.Rates()
		resp.Rates = &rates
	}

	return resp, nil
}

func setIdentity(c echo.Context) (*IdentityResponse, error) {
	origin, err := originFromContext(c)
	if err != nil {
		return nil, err
	}

	accountID, err := origin.Account()
	if err != nil {
		return nil, httpError(err, "the caller has no account")
	}

	request := &IdentityInfoJSON{}
	if err = c.Bind(request); err != nil {
		return nil, ierrors.Wrapf(httpserver.ErrInvalidParameter, "invalid request, error: %s", err)
	}

	identityInfo, err := request.IdentityInfo()
	if err != nil {
		return nil, ierrors.Wrapf(httpserver.ErrInvalidParameter, "invalid request, error: %s", err)
	}

	if err = deps.Registry.SetIdentity(origin, identityInfo); err != nil {
		return nil, httpError(err, "failed to set identity of %s", accountID.ToHex())
	}

	return identityResponse(accountID)
}

func clearIdentity(c echo.Context) (*DepositResponse, error) {
	origin, err := originFromContext(c)
	if err != nil {
		return nil, err
	}

	accountID, err := origin.Account()
	if err != nil {
		return nil, httpError(err, "the caller has no account")
	}

	released, err := deps.Registry.ClearIdentity(origin)
	if err != nil {
		return nil, httpError(err, "failed to clear identity of %s", accountID.ToHex())
	}

	return &DepositResponse{
		AccountID: accountID.ToHex(),
		Deposit:   released,
	}, nil
}

func killIdentity(c echo.Context) (*DepositResponse, error) {
	origin, err := originFromContext(c)
	if err != nil {
		return nil, err
	}

	accountID, err := restapipkg.ParseAccountIDParam(c)
	if err != nil {
		return nil, err
	}

	slashed, err := deps.Registry.KillIdentity(origin, accountID)
	if err != nil {
		return nil, httpError(err, "failed to kill identity of %s", accountID.ToHex())
	}

	return &DepositResponse{
		AccountID: accountID.ToHex(),
		Deposit:   slashed,
	}, nil
}

func provideJudgement(c echo.Context) error {
	origin, err := originFromContext(c)
	if err != nil {
		return err
	}

	accountID, err := restapipkg.ParseAccountIDParam(c)
	if err != nil {
		return err
	}

	request := &JudgementRequest{}
	if err = c.Bind(request); err != nil {
		return ierrors.Wrapf(httpserver.ErrInvalidParameter, "invalid request, error: %s", err)
	}

	provide := deps.Registry.ProvideJudgementInline
	if request.External {
		provide = deps.Registry.ProvideJudgementExternal
	}

	if err = provide(origin, model.JudgementID(request.ID), accountID, request.Judgement); err != nil {
		return httpError(err, "failed to provide judgement %d for %s", request.ID, accountID.ToHex())
	}

	return nil
}

func identityByAccountID(c echo.Context) (*IdentityResponse, error) {
	accountID, err := restapipkg.ParseAccountIDParam(c)
	if err != nil {
		return nil, err
	}

	return identityResponse(accountID)
}

func identityResponse(accountID iotago.AccountID) (*IdentityResponse, error) {
	registration, exists, err := deps.Registry.IdentityOf(accountID)
	if err != nil {
		return nil, ierrors.Wrapf(echo.ErrInternalServerError, "failed to load identity of %s: %s", accountID.ToHex(), err)
	}
	if !exists {
		return nil, ierrors.Wrapf(echo.ErrNotFound, "identity not found: %s", accountID.ToHex())
	}

	externalJudgements, err := deps.Registry.ExternalJudgements(accountID)
	if err != nil {
		return nil, ierrors.Wrapf(echo.ErrInternalServerError, "failed to load external judgements of %s: %s", accountID.ToHex(), err)
	}

	return &IdentityResponse{
		AccountID:          accountID.ToHex(),
		Info:               newIdentityInfoJSON(registration.Info),
		Judgements:         newJudgementsJSON(registration.Judgements),
		ExternalJudgements: newJudgementsJSON(externalJudgements),
		ExternalCount:      registration.ExternalCount,
		Deposit:            registration.Deposit,
	}, nil
}

func judgementsByAccountID(c echo.Context) (*JudgementsResponse, error) {
	accountID, err := restapipkg.ParseAccountIDParam(c)
	if err != nil {
		return nil, err
	}

	external, err := restapipkg.ParseExternalQueryParam(c)
	if err != nil {
		return nil, err
	}

	registration, exists, err := deps.Registry.IdentityOf(accountID)
	if err != nil {
		return nil, ierrors.Wrapf(echo.ErrInternalServerError, "failed to load identity of %s: %s", accountID.ToHex(), err)
	}
	if !exists {
		return nil, ierrors.Wrapf(echo.ErrNotFound, "identity not found: %s", accountID.ToHex())
	}

	judgements := registration.Judgements
	if external {
		if judgements, err = deps.Registry.ExternalJudgements(accountID); err != nil {
			return nil, ierrors.Wrapf(echo.ErrInternalServerError, "failed to load external judgements of %s: %s", accountID.ToHex(), err)
		}
	}

	return &JudgementsResponse{
		AccountID:  accountID.ToHex(),
		External:   external,
		Judgements: newJudgementsJSON(judgements),
	}, nil
}

func balanceByAccountID(c echo.Context) (*BalanceResponse, error) {
	accountID, err := restapipkg.ParseAccountIDParam(c)
	if err != nil {
		return nil, err
	}

	balance := deps.Ledger.Balance(accountID)

	return &BalanceResponse{
		AccountID: accountID.ToHex(),
		Free:      balance.Free,
		Reserved:  balance.Reserved,
	}, nil
}

// originFromContext derives the origin of a call from the verified JWT claims.
func originFromContext(c echo.Context) (identity.Origin, error) {
	claims, exists := jwt.ClaimsFromContext(c)
	if !exists {
		return identity.Origin{}, ierrors.Wrap(echo.ErrUnauthorized, "missing JWT claims")
	}

	return originFromClaims(claims)
}

func originFromClaims(claims *jwt.AuthClaims) (identity.Origin, error) {
	if claims.Privileged {
		return identity.Privileged(), nil
	}

	accountID, err := iotago.AccountIDFromHexString(claims.Subject)
	if err != nil {
		return identity.Origin{}, ierrors.Wrapf(echo.ErrUnauthorized, "invalid JWT subject %s: %s", claims.Subject, err)
	}

	return identity.Signed(accountID), nil
}

// httpError maps the errors of the registry to the HTTP errors of echo.
func httpError(err error, format string, args ...any) error {
	httpErr := echo.ErrInternalServerError
	switch {
	case ierrors.Is(err, identity.ErrNoIdentity), ierrors.Is(err, identity.ErrInvalidTarget):
		httpErr = echo.ErrNotFound
	case ierrors.Is(err, identity.ErrStickyJudgement), ierrors.Is(err, identity.ErrTooManyJudgements):
		httpErr = echo.ErrConflict
	case ierrors.Is(err, identity.ErrInvalidJudgement), ierrors.Is(err, identity.ErrFieldTooLong):
		httpErr = echo.ErrBadRequest
	case ierrors.Is(err, identity.ErrInsufficientBalance):
		httpErr = echo.ErrUnprocessableEntity
	case ierrors.Is(err, identity.ErrBadOrigin):
		httpErr = echo.ErrForbidden
	}

	return ierrors.Wrapf(httpErr, "%s: %s", fmt.Sprintf(format, args...), err)
}
