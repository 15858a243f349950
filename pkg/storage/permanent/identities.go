package permanent

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/identity-registry/pkg/model"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Identities stores the identity record of each account.
type Identities struct {
	store *kvstore.TypedStore[iotago.AccountID, *model.Registration]
}

func NewIdentities(store kvstore.KVStore) *Identities {
	return &Identities{
		store: kvstore.NewTypedStore(store, iotago.AccountID.Bytes, iotago.AccountIDFromBytes, (*model.Registration).Bytes, model.RegistrationFromBytes),
	}
}

// Load returns the record of the given account.
func (i *Identities) Load(accountID iotago.AccountID) (registration *model.Registration, exists bool, err error) {
	if registration, err = i.store.Get(accountID); err != nil {
		if ierrors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, false, nil
		}

		return nil, false, ierrors.Wrapf(err, "failed to load identity of %s", accountID)
	}

	return registration, true, nil
}

func (i *Identities) Has(accountID iotago.AccountID) (bool, error) {
	has, err := i.store.Has(accountID)
	if err != nil {
		return false, ierrors.Wrapf(err, "failed to check identity of %s", accountID)
	}

	return has, nil
}

func (i *Identities) Store(accountID iotago.AccountID, registration *model.Registration) error {
	if err := i.store.Set(accountID, registration); err != nil {
		return ierrors.Wrapf(err, "failed to store identity of %s", accountID)
	}

	return nil
}

func (i *Identities) Delete(accountID iotago.AccountID) error {
	if err := i.store.Delete(accountID); err != nil {
		return ierrors.Wrapf(err, "failed to delete identity of %s", accountID)
	}

	return nil
}

// Stream calls the consumer for every stored record until it returns an error.
func (i *Identities) Stream(consumer func(accountID iotago.AccountID, registration *model.Registration) error) error {
	var innerErr error
	if storageErr := i.store.Iterate(kvstore.EmptyPrefix, func(accountID iotago.AccountID, registration *model.Registration) (advance bool) {
		innerErr = consumer(accountID, registration)

		return innerErr == nil
	}); storageErr != nil {
		return ierrors.Wrap(storageErr, "failed to iterate over identities")
	}

	if innerErr != nil {
		return ierrors.Wrap(innerErr, "failed to stream identities")
	}

	return nil
}

// Count returns the number of stored records.
func (i *Identities) Count() (count int, err error) {
	if err = i.store.IterateKeys(kvstore.EmptyPrefix, func(iotago.AccountID) (advance bool) {
		count++

		return true
	}); err != nil {
		return 0, ierrors.Wrap(err, "failed to count identities")
	}

	return count, nil
}
