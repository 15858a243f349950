package permanent

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/runtime/syncutils"
	"github.com/iotaledger/identity-registry/pkg/model"
)

const (
	snapshotImportedKey byte = iota
	parametersKey
	ledgerStateKey
)

// Settings keeps the bookkeeping values of the registry database.
type Settings struct {
	mutex syncutils.RWMutex
	store kvstore.KVStore

	parameters *kvstore.TypedValue[*model.Parameters]
}

func NewSettings(store kvstore.KVStore) *Settings {
	return &Settings{
		store:      store,
		parameters: kvstore.NewTypedValue(store, []byte{parametersKey}, (*model.Parameters).Bytes, model.ParametersFromBytes),
	}
}

func (s *Settings) IsSnapshotImported() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return lo.PanicOnErr(s.store.Has([]byte{snapshotImportedKey}))
}

func (s *Settings) SetSnapshotImported() (err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.store.Set([]byte{snapshotImportedKey}, []byte{1})
}

// Parameters returns the parameters the database was last opened with.
func (s *Settings) Parameters() (parameters *model.Parameters, exists bool, err error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if parameters, err = s.parameters.Get(); err != nil {
		if ierrors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, false, nil
		}

		return nil, false, ierrors.Wrap(err, "failed to load parameters")
	}

	return parameters, true, nil
}

func (s *Settings) StoreParameters(parameters *model.Parameters) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.parameters.Set(parameters); err != nil {
		return ierrors.Wrap(err, "failed to store parameters")
	}

	return nil
}

// LedgerState returns the serialized balances persisted at the last shutdown.
func (s *Settings) LedgerState() (ledgerState []byte, exists bool, err error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if ledgerState, err = s.store.Get([]byte{ledgerStateKey}); err != nil {
		if ierrors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, false, nil
		}

		return nil, false, ierrors.Wrap(err, "failed to load ledger state")
	}

	return ledgerState, true, nil
}

func (s *Settings) StoreLedgerState(ledgerState []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.store.Set([]byte{ledgerStateKey}, ledgerState); err != nil {
		return ierrors.Wrap(err, "failed to store ledger state")
	}

	return nil
}
