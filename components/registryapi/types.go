package registryapi

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/components/metricstracker"
	"github.com/iotaledger/identity-registry/pkg/model"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/iota.go/v4/hexutil"
)

// InfoResponse defines the response of a GET info REST API call.
type InfoResponse struct {
	// The name of the app.
	Name string `json:"name"`
	// The version of the app.
	Version string `json:"version"`
	// The parameters the registry operates with.
	Parameters model.Parameters `json:"parameters"`
	// The number of registered identities.
	IdentityCount int `json:"identityCount"`
	// The rates measured by the metrics tracker, if it is enabled.
	Rates *metricstracker.RegistryRates `json:"rates,omitempty"`
}

// IdentityInfoJSON is the hex encoded form of model.IdentityInfo.
type IdentityInfoJSON struct {
	Display string `json:"display,omitempty"`
	Legal   string `json:"legal,omitempty"`
	Web     string `json:"web,omitempty"`
	Email   string `json:"email,omitempty"`
}

func newIdentityInfoJSON(info *model.IdentityInfo) IdentityInfoJSON {
	encode := func(field []byte) string {
		if len(field) == 0 {
			return ""
		}

		return hexutil.EncodeHex(field)
	}

	return IdentityInfoJSON{
		Display: encode(info.Display),
		Legal:   encode(info.Legal),
		Web:     encode(info.Web),
		Email:   encode(info.Email),
	}
}

// IdentityInfo decodes the hex encoded fields.
func (i *IdentityInfoJSON) IdentityInfo() (*model.IdentityInfo, error) {
	decode := func(name string, field string) ([]byte, error) {
		if len(field) == 0 {
			return nil, nil
		}

		decoded, err := hexutil.DecodeHex(field)
		if err != nil {
			return nil, ierrors.Wrapf(err, "failed to decode %s", name)
		}

		return decoded, nil
	}

	var err error
	info := &model.IdentityInfo{}
	if info.Display, err = decode("display", i.Display); err != nil {
		return nil, err
	}
	if info.Legal, err = decode("legal", i.Legal); err != nil {
		return nil, err
	}
	if info.Web, err = decode("web", i.Web); err != nil {
		return nil, err
	}
	if info.Email, err = decode("email", i.Email); err != nil {
		return nil, err
	}

	return info, nil
}

// JudgementJSON is a single judgement as returned by the REST API.
type JudgementJSON struct {
	ID        uint32 `json:"id"`
	Judgement string `json:"judgement"`
	Sticky    bool   `json:"sticky"`
}

func newJudgementsJSON(judgements model.Judgements) []JudgementJSON {
	result := make([]JudgementJSON, 0, len(judgements))
	for _, entry := range judgements {
		result = append(result, JudgementJSON{
			ID:        uint32(entry.ID),
			Judgement: entry.Judgement.String(),
			Sticky:    entry.Judgement.IsSticky(),
		})
	}

	return result
}

// IdentityResponse defines the response of a GET identity REST API call.
type IdentityResponse struct {
	AccountID          string           `json:"accountId"`
	Info               IdentityInfoJSON `json:"info"`
	Judgements         []JudgementJSON  `json:"judgements"`
	ExternalJudgements []JudgementJSON  `json:"externalJudgements"`
	ExternalCount      uint32           `json:"externalCount"`
	Deposit            iotago.BaseToken `json:"deposit"`
}

// JudgementsResponse defines the response of a GET judgements REST API call.
type JudgementsResponse struct {
	AccountID  string          `json:"accountId"`
	External   bool            `json:"external"`
	Judgements []JudgementJSON `json:"judgements"`
}

// JudgementRequest defines the request of a POST judgements REST API call.
type JudgementRequest struct {
	ID        uint32 `json:"id"`
	Judgement uint8  `json:"judgement"`
	External  bool   `json:"external"`
}

// DepositResponse defines the response of the REST API calls that remove an identity.
type DepositResponse struct {
	AccountID string           `json:"accountId"`
	Deposit   iotago.BaseToken `json:"deposit"`
}

// BalanceResponse defines the response of a GET balance REST API call.
type BalanceResponse struct {
	AccountID string           `json:"accountId"`
	Free      iotago.BaseToken `json:"free"`
	Reserved  iotago.BaseToken `json:"reserved"`
}
