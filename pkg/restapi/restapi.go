package restapi

import (
	"math"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/pkg/model"
	"github.com/iotaledger/inx-app/pkg/httpserver"
	iotago "github.com/iotaledger/iota.go/v4"
)

const (
	// ParameterAccountID is used to identify an account by its ID.
	ParameterAccountID = "accountID"

	// ParameterJudgementID is used to identify a judgement by its ID.
	ParameterJudgementID = "judgementID"

	// QueryParameterExternal is used to select the judgements stored outside of the identity record.
	QueryParameterExternal = "external"
)

func ParseJudgementIDParam(c echo.Context) (model.JudgementID, error) {
	id, err := httpserver.ParseUint64Param(c, ParameterJudgementID)
	if err != nil {
		return 0, ierrors.Wrapf(httpserver.ErrInvalidParameter, "invalid judgementID, error: %s", err)
	}
	if id > math.MaxUint32 {
		return 0, ierrors.Wrapf(httpserver.ErrInvalidParameter, "invalid judgementID, %d exceeds the maximum of %d", id, uint32(math.MaxUint32))
	}

	return model.JudgementID(id), nil
}

// ParseAccountIDParam parses the hex encoded account ID parameter.
func ParseAccountIDParam(c echo.Context) (iotago.AccountID, error) {
	accountIDHex := strings.ToLower(c.Param(ParameterAccountID))

	accountID, err := iotago.AccountIDFromHexString(accountIDHex)
	if err != nil {
		return iotago.EmptyAccountID, ierrors.Wrapf(httpserver.ErrInvalidParameter, "invalid accountID: %s, error: %s", accountIDHex, err)
	}

	return accountID, nil
}

// ParseExternalQueryParam parses the optional external query parameter. It defaults to false.
func ParseExternalQueryParam(c echo.Context) (bool, error) {
	if len(c.QueryParam(QueryParameterExternal)) == 0 {
		return false, nil
	}

	external, err := httpserver.ParseBoolQueryParam(c, QueryParameterExternal)
	if err != nil {
		return false, ierrors.Wrapf(httpserver.ErrInvalidParameter, "invalid %s, error: %s", QueryParameterExternal, err)
	}

	return external, nil
}
