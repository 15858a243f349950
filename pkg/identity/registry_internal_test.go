package identity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/db"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/identity-registry/pkg/balances"
	"github.com/iotaledger/identity-registry/pkg/identity/judgements"
	"github.com/iotaledger/identity-registry/pkg/model"
	"github.com/iotaledger/identity-registry/pkg/storage"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/iota.go/v4/tpkg"
)

var errDrainFailed = ierrors.New("drain failed")

// drainFailingStore is a judgements.Store whose Clear fails without removing anything.
type drainFailingStore struct {
	judgements.Store
}

func (d *drainFailingStore) Clear(iotago.AccountID, *model.Registration) (uint32, error) {
	return 0, errDrainFailed
}

func newTestRegistry(t *testing.T) (*Registry, *balances.Ledger) {
	storageInstance := storage.Create(t.TempDir(), 1, func(err error) {
		t.Error(err)
	}, storage.WithDBEngine(db.EngineMapDB))
	t.Cleanup(storageInstance.Shutdown)

	ledger := balances.NewLedger(500)
	registry := New(log.NewLogger(), storageInstance, ledger)
	t.Cleanup(registry.Shutdown)

	return registry, ledger
}

func TestRegistry_RemoveIdentityRestoresRecordOnDrainError(t *testing.T) {
	registry, ledger := newTestRegistry(t)

	alice := tpkg.RandAccountID()
	require.NoError(t, ledger.Mint(alice, 1000))
	require.NoError(t, registry.SetIdentity(Signed(alice), &model.IdentityInfo{Display: []byte("alice")}))
	require.NoError(t, registry.ProvideJudgementInline(Privileged(), 1, alice, uint8(model.JudgementKnownGood)))
	require.NoError(t, registry.ProvideJudgementExternal(Privileged(), 2, alice, uint8(model.JudgementReasonable)))
	require.NoError(t, registry.ProvideJudgementExternal(Privileged(), 3, alice, uint8(model.JudgementErroneous)))

	expected, exists, err := registry.IdentityOf(alice)
	require.NoError(t, err)
	require.True(t, exists)
	expectedBalance := ledger.Balance(alice)
	require.EqualValues(t, 19, expectedBalance.Reserved)

	var removedEvents int
	registry.Events.IdentityCleared.Hook(func(*IdentityRemovedEvent) { removedEvents++ })
	registry.Events.IdentityKilled.Hook(func(*IdentityRemovedEvent) { removedEvents++ })

	external := registry.external
	registry.external = &drainFailingStore{Store: external}

	_, err = registry.ClearIdentity(Signed(alice))
	require.True(t, ierrors.Is(err, errDrainFailed))

	_, err = registry.KillIdentity(Privileged(), alice)
	require.True(t, ierrors.Is(err, errDrainFailed))

	actual, exists, err := registry.IdentityOf(alice)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, expected, actual)
	require.Equal(t, expectedBalance, ledger.Balance(alice))
	require.Zero(t, removedEvents)

	externalJudgements, err := registry.ExternalJudgements(alice)
	require.NoError(t, err)
	require.Len(t, externalJudgements, 2)

	registry.external = external

	released, err := registry.ClearIdentity(Signed(alice))
	require.NoError(t, err)
	require.EqualValues(t, 19, released)
	require.Equal(t, balances.Balance{Free: 1000}, ledger.Balance(alice))
	require.Equal(t, 1, removedEvents)
}
