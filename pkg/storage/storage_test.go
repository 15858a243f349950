package storage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/db"
	"github.com/iotaledger/identity-registry/pkg/model"
	"github.com/iotaledger/identity-registry/pkg/storage"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/iota.go/v4/tpkg"
)

func newStorage(t *testing.T) *storage.Storage {
	s := storage.Create(t.TempDir(), 1, func(err error) {
		t.Error(err)
	}, storage.WithDBEngine(db.EngineMapDB))
	t.Cleanup(s.Shutdown)

	return s
}

func TestStorage_Identities(t *testing.T) {
	s := newStorage(t)
	alice, bob := tpkg.RandAccountID(), tpkg.RandAccountID()

	_, exists, err := s.Identities().Load(alice)
	require.NoError(t, err)
	require.False(t, exists)

	registration := model.NewRegistration()
	registration.Info.Display = []byte("alice")
	registration.Judgements = model.Judgements{{ID: 1, Judgement: model.JudgementReasonable}}
	registration.ExternalCount = 2
	registration.Deposit = 16

	require.NoError(t, s.Identities().Store(alice, registration))
	require.NoError(t, s.Identities().Store(bob, model.NewRegistration()))

	loaded, exists, err := s.Identities().Load(alice)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, []byte("alice"), loaded.Info.Display)
	require.Equal(t, registration.Judgements, loaded.Judgements)
	require.EqualValues(t, 2, loaded.ExternalCount)
	require.EqualValues(t, 16, loaded.Deposit)

	count, err := s.Identities().Count()
	require.NoError(t, err)
	require.Equal(t, 2, count)

	streamed := make(map[iotago.AccountID]iotago.BaseToken)
	require.NoError(t, s.Identities().Stream(func(accountID iotago.AccountID, registration *model.Registration) error {
		streamed[accountID] = registration.Deposit

		return nil
	}))
	require.Equal(t, map[iotago.AccountID]iotago.BaseToken{alice: 16, bob: 0}, streamed)

	require.NoError(t, s.Identities().Delete(alice))
	has, err := s.Identities().Has(alice)
	require.NoError(t, err)
	require.False(t, has)
}

func TestStorage_Judgements(t *testing.T) {
	s := newStorage(t)
	alice, bob := tpkg.RandAccountID(), tpkg.RandAccountID()

	require.NoError(t, s.Judgements().Store(alice, 7, model.JudgementKnownGood))
	require.NoError(t, s.Judgements().Store(alice, 3, model.JudgementLowQuality))
	require.NoError(t, s.Judgements().Store(alice, 300, model.JudgementErroneous))
	require.NoError(t, s.Judgements().Store(bob, 3, model.JudgementReasonable))

	judgement, exists, err := s.Judgements().Load(alice, 3)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, model.JudgementLowQuality, judgement)

	_, exists, err = s.Judgements().Load(alice, 4)
	require.NoError(t, err)
	require.False(t, exists)

	count, err := s.Judgements().Count(alice)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	streamed := make(map[model.JudgementID]model.Judgement)
	require.NoError(t, s.Judgements().Stream(alice, func(id model.JudgementID, judgement model.Judgement) error {
		streamed[id] = judgement

		return nil
	}))
	require.Equal(t, map[model.JudgementID]model.Judgement{
		3:   model.JudgementLowQuality,
		7:   model.JudgementKnownGood,
		300: model.JudgementErroneous,
	}, streamed)

	removed, err := s.Judgements().DeleteAll(alice)
	require.NoError(t, err)
	require.EqualValues(t, 3, removed)

	removed, err = s.Judgements().DeleteAll(alice)
	require.NoError(t, err)
	require.Zero(t, removed)

	count, err = s.Judgements().Count(bob)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestStorage_Settings(t *testing.T) {
	s := newStorage(t)

	_, exists, err := s.Settings().Parameters()
	require.NoError(t, err)
	require.False(t, exists)

	parameters := &model.Parameters{BasicDeposit: 10, ByteDeposit: 1, MaxJudgements: 20, MaxFieldLength: 64}
	require.NoError(t, s.Settings().StoreParameters(parameters))

	stored, exists, err := s.Settings().Parameters()
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, parameters, stored)

	require.False(t, s.Settings().IsSnapshotImported())
	require.NoError(t, s.Settings().SetSnapshotImported())
	require.True(t, s.Settings().IsSnapshotImported())

	require.Zero(t, s.Size())
}
