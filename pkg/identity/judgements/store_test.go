package judgements_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/iotaledger/hive.go/db"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/pkg/identity/judgements"
	"github.com/iotaledger/identity-registry/pkg/identity/judgements/inlinestore"
	"github.com/iotaledger/identity-registry/pkg/identity/judgements/mapstore"
	"github.com/iotaledger/identity-registry/pkg/model"
	"github.com/iotaledger/identity-registry/pkg/storage"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/iota.go/v4/tpkg"
)

const maxJudgements = 5

type storeFactory func(s *storage.Storage) judgements.Store

var stores = map[string]storeFactory{
	"inline": func(s *storage.Storage) judgements.Store {
		return inlinestore.New(s.Identities(), maxJudgements)
	},
	"external": func(s *storage.Storage) judgements.Store {
		return mapstore.New(s.Identities(), s.Judgements(), maxJudgements)
	},
}

func newStorage(t require.TestingT, tempDir string) *storage.Storage {
	return storage.Create(tempDir, 1, func(err error) {
		require.NoError(t, err)
	}, storage.WithDBEngine(db.EngineMapDB))
}

func TestStore_InsertOrReplace(t *testing.T) {
	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			s := newStorage(t, t.TempDir())
			defer s.Shutdown()

			store := newStore(s)
			accountID := tpkg.RandAccountID()
			registration := model.NewRegistration()
			require.NoError(t, s.Identities().Store(accountID, registration))

			for id := model.JudgementID(0); id < maxJudgements; id++ {
				require.NoError(t, store.InsertOrReplace(accountID, registration, id, model.JudgementReasonable))
			}

			err := store.InsertOrReplace(accountID, registration, maxJudgements, model.JudgementReasonable)
			require.True(t, ierrors.Is(err, model.ErrTooManyJudgements))

			// replacing an existing id does not need capacity
			require.NoError(t, store.InsertOrReplace(accountID, registration, 2, model.JudgementKnownGood))

			err = store.InsertOrReplace(accountID, registration, 2, model.JudgementLowQuality)
			require.True(t, ierrors.Is(err, model.ErrStickyJudgement))

			judgement, exists, err := store.Judgement(accountID, registration, 2)
			require.NoError(t, err)
			require.True(t, exists)
			require.Equal(t, model.JudgementKnownGood, judgement)

			count, err := store.Count(accountID, registration)
			require.NoError(t, err)
			require.EqualValues(t, maxJudgements, count)

			removed, err := store.Clear(accountID, registration)
			require.NoError(t, err)
			require.EqualValues(t, maxJudgements, removed)
		})
	}
}

func TestStore_ExternalCountIsPersisted(t *testing.T) {
	s := newStorage(t, t.TempDir())
	defer s.Shutdown()

	store := mapstore.New(s.Identities(), s.Judgements(), maxJudgements)
	accountID := tpkg.RandAccountID()
	registration := model.NewRegistration()
	require.NoError(t, s.Identities().Store(accountID, registration))

	require.NoError(t, store.InsertOrReplace(accountID, registration, 9, model.JudgementReasonable))
	require.NoError(t, store.InsertOrReplace(accountID, registration, 9, model.JudgementLowQuality))
	require.NoError(t, store.InsertOrReplace(accountID, registration, 1, model.JudgementErroneous))

	stored, exists, err := s.Identities().Load(accountID)
	require.NoError(t, err)
	require.True(t, exists)
	require.EqualValues(t, 2, stored.ExternalCount)
	require.Empty(t, stored.Judgements)
}

// TestStore_Model checks both storage paths against a plain map under random sequences of judgements.
func TestStore_Model(t *testing.T) {
	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			tempDir := t.TempDir()

			rapid.Check(t, func(t *rapid.T) {
				s := newStorage(t, tempDir)
				defer s.Shutdown()

				store := newStore(s)
				accountID := iotago.AccountID(rapid.SliceOfN(rapid.Byte(), iotago.AccountIDLength, iotago.AccountIDLength).Draw(t, "accountID"))
				registration := model.NewRegistration()
				require.NoError(t, s.Identities().Store(accountID, registration))

				expected := make(map[model.JudgementID]model.Judgement)
				steps := rapid.IntRange(1, 30).Draw(t, "steps")
				for i := 0; i < steps; i++ {
					id := model.JudgementID(rapid.Uint32Range(0, 8).Draw(t, "id"))
					judgement := model.Judgement(rapid.IntRange(int(model.JudgementUnknown), int(model.JudgementLowQuality)).Draw(t, "judgement"))

					err := store.InsertOrReplace(accountID, registration, id, judgement)

					existing, exists := expected[id]
					switch {
					case exists && existing.IsSticky():
						require.True(t, ierrors.Is(err, model.ErrStickyJudgement))
					case !exists && len(expected) == maxJudgements:
						require.True(t, ierrors.Is(err, model.ErrTooManyJudgements))
					default:
						require.NoError(t, err)
						expected[id] = judgement
					}

					for expectedID, expectedJudgement := range expected {
						actual, found, err := store.Judgement(accountID, registration, expectedID)
						require.NoError(t, err)
						require.True(t, found)
						require.Equal(t, expectedJudgement, actual)
					}

					count, err := store.Count(accountID, registration)
					require.NoError(t, err)
					require.EqualValues(t, len(expected), count)
					require.True(t, registration.Judgements.IsSorted())
				}

				removed, err := store.Clear(accountID, registration)
				require.NoError(t, err)
				require.EqualValues(t, len(expected), removed)
			})
		})
	}
}
