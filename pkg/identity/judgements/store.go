package judgements

import (
	"github.com/iotaledger/identity-registry/pkg/model"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Store is a storage path for the judgements of an identity record. Every method receives the loaded record of the
// account and may update it. Changes to the record are persisted by the Store.
type Store interface {
	// Judgement returns the judgement stored under the given id.
	Judgement(accountID iotago.AccountID, registration *model.Registration, id model.JudgementID) (judgement model.Judgement, exists bool, err error)

	// InsertOrReplace sets the judgement under the given id. It fails with model.ErrStickyJudgement if a sticky
	// judgement is stored under the id and with model.ErrTooManyJudgements if the id is new and the path is full.
	InsertOrReplace(accountID iotago.AccountID, registration *model.Registration, id model.JudgementID, judgement model.Judgement) error

	// Clear removes all judgements of the account and returns how many were removed.
	Clear(accountID iotago.AccountID, registration *model.Registration) (removed uint32, err error)

	// Count returns the number of judgements the account holds on this path.
	Count(accountID iotago.AccountID, registration *model.Registration) (uint32, error)
}
