package permanent

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/identity-registry/pkg/model"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Judgements stores judgements outside of the identity records. Keys are the account id followed by the big endian
// judgement id, so that all judgements of an account share a prefix.
type Judgements struct {
	store kvstore.KVStore
}

func NewJudgements(store kvstore.KVStore) *Judgements {
	return &Judgements{
		store: store,
	}
}

// Account returns the judgements of a single account.
func (j *Judgements) Account(accountID iotago.AccountID) *kvstore.TypedStore[model.JudgementID, model.Judgement] {
	return kvstore.NewTypedStore(lo.PanicOnErr(j.store.WithExtendedRealm(accountID[:])), model.JudgementID.Bytes, model.JudgementIDFromBytes, model.Judgement.Bytes, model.JudgementFromBytes)
}

// Load returns the judgement stored for the account under the given id.
func (j *Judgements) Load(accountID iotago.AccountID, id model.JudgementID) (judgement model.Judgement, exists bool, err error) {
	if judgement, err = j.Account(accountID).Get(id); err != nil {
		if ierrors.Is(err, kvstore.ErrKeyNotFound) {
			return model.JudgementUnknown, false, nil
		}

		return model.JudgementUnknown, false, ierrors.Wrapf(err, "failed to load judgement %d of %s", id, accountID)
	}

	return judgement, true, nil
}

func (j *Judgements) Store(accountID iotago.AccountID, id model.JudgementID, judgement model.Judgement) error {
	if err := j.Account(accountID).Set(id, judgement); err != nil {
		return ierrors.Wrapf(err, "failed to store judgement %d of %s", id, accountID)
	}

	return nil
}

// Count returns the number of judgements stored for the account.
func (j *Judgements) Count(accountID iotago.AccountID) (count uint32, err error) {
	if err = j.store.IterateKeys(accountID[:], func(kvstore.Key) (advance bool) {
		count++

		return true
	}); err != nil {
		return 0, ierrors.Wrapf(err, "failed to count judgements of %s", accountID)
	}

	return count, nil
}

// DeleteAll removes every judgement of the account and returns how many were removed. Only the existing entries of
// the account are visited.
func (j *Judgements) DeleteAll(accountID iotago.AccountID) (uint32, error) {
	count, err := j.Count(accountID)
	if err != nil {
		return 0, err
	}

	if count == 0 {
		return 0, nil
	}

	if err = j.store.DeletePrefix(accountID[:]); err != nil {
		return 0, ierrors.Wrapf(err, "failed to delete judgements of %s", accountID)
	}

	return count, nil
}

// Stream calls the consumer for every judgement of the account until it returns an error. The order depends on the
// underlying engine.
func (j *Judgements) Stream(accountID iotago.AccountID, consumer func(id model.JudgementID, judgement model.Judgement) error) error {
	var innerErr error
	if storageErr := j.Account(accountID).Iterate(kvstore.EmptyPrefix, func(id model.JudgementID, judgement model.Judgement) (advance bool) {
		innerErr = consumer(id, judgement)

		return innerErr == nil
	}); storageErr != nil {
		return ierrors.Wrapf(storageErr, "failed to iterate over judgements of %s", accountID)
	}

	if innerErr != nil {
		return ierrors.Wrapf(innerErr, "failed to stream judgements of %s", accountID)
	}

	return nil
}
