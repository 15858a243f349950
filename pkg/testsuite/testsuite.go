package testsuite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/db"
	"github.com/iotaledger/hive.go/ds/shrinkingmap"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/identity-registry/pkg/balances"
	"github.com/iotaledger/identity-registry/pkg/identity"
	"github.com/iotaledger/identity-registry/pkg/model"
	"github.com/iotaledger/identity-registry/pkg/storage"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/iota.go/v4/tpkg"
)

const databaseVersion byte = 1

// TestSuite wires a registry to an in-memory database and a funded balance ledger.
type TestSuite struct {
	Testing testing.TB

	Storage  *storage.Storage
	Ledger   *balances.Ledger
	Registry *identity.Registry
	Events   *EventRecorder

	accounts *shrinkingmap.ShrinkingMap[string, iotago.AccountID]

	optsGenesisBalance   iotago.BaseToken
	optsMinimumBalance   iotago.BaseToken
	optsRegistryOptions  []options.Option[identity.Registry]
	optsStorageDirectory string
	optsDBEngine         db.Engine
}

func NewTestSuite(testingT testing.TB, opts ...options.Option[TestSuite]) *TestSuite {
	return options.Apply(&TestSuite{
		Testing:            testingT,
		accounts:           shrinkingmap.New[string, iotago.AccountID](),
		optsGenesisBalance: 1000,
		optsMinimumBalance: 500,
		optsDBEngine:       db.EngineMapDB,
	}, opts, func(t *TestSuite) {
		if t.optsStorageDirectory == "" {
			t.optsStorageDirectory = testingT.TempDir()
		}

		t.Storage = storage.Create(t.optsStorageDirectory, databaseVersion, func(err error) {
			testingT.Error(err)
		}, storage.WithDBEngine(t.optsDBEngine))
		t.Ledger = balances.NewLedger(t.optsMinimumBalance)
		t.Registry = identity.New(log.NewLogger(), t.Storage, t.Ledger, t.optsRegistryOptions...)
		t.Events = NewEventRecorder(t.Registry.Events)
	})
}

// Account returns the account registered under the alias. New accounts are funded with the genesis balance.
func (t *TestSuite) Account(alias string) iotago.AccountID {
	accountID, created := t.accounts.GetOrCreate(alias, tpkg.RandAccountID)
	if created {
		require.NoError(t.Testing, t.Ledger.Mint(accountID, t.optsGenesisBalance))
	}

	return accountID
}

func (t *TestSuite) Parameters() model.Parameters {
	return t.Registry.Parameters()
}

func (t *TestSuite) SetIdentity(alias string, info *model.IdentityInfo) error {
	return t.Registry.SetIdentity(identity.Signed(t.Account(alias)), info)
}

func (t *TestSuite) ProvideJudgementInline(id model.JudgementID, target string, judgement model.Judgement) error {
	return t.Registry.ProvideJudgementInline(identity.Privileged(), id, t.Account(target), uint8(judgement))
}

func (t *TestSuite) ProvideJudgementExternal(id model.JudgementID, target string, judgement model.Judgement) error {
	return t.Registry.ProvideJudgementExternal(identity.Privileged(), id, t.Account(target), uint8(judgement))
}

// ProvideJudgement gives a judgement on either storage path.
func (t *TestSuite) ProvideJudgement(external bool, id model.JudgementID, target string, judgement model.Judgement) error {
	if external {
		return t.ProvideJudgementExternal(id, target, judgement)
	}

	return t.ProvideJudgementInline(id, target, judgement)
}

func (t *TestSuite) ClearIdentity(alias string) (iotago.BaseToken, error) {
	return t.Registry.ClearIdentity(identity.Signed(t.Account(alias)))
}

func (t *TestSuite) KillIdentity(target string) (iotago.BaseToken, error) {
	return t.Registry.KillIdentity(identity.Privileged(), t.Account(target))
}

// Judgements returns the judgements of the account on the requested path.
func (t *TestSuite) Judgements(alias string, external bool) model.Judgements {
	if external {
		externalJudgements, err := t.Registry.ExternalJudgements(t.Account(alias))
		require.NoError(t.Testing, err)

		return externalJudgements
	}

	registration, exists, err := t.Registry.IdentityOf(t.Account(alias))
	require.NoError(t.Testing, err)
	require.True(t.Testing, exists, "identity of %s does not exist", alias)

	return registration.Judgements
}

// Shutdown shuts down the registry and its storage.
func (t *TestSuite) Shutdown() {
	t.Registry.Shutdown()
	t.Storage.Shutdown()
}

// Info creates an IdentityInfo where empty strings are left unset.
func Info(display string, legal string, web string, email string) *model.IdentityInfo {
	field := func(value string) []byte {
		if value == "" {
			return nil
		}

		return []byte(value)
	}

	return &model.IdentityInfo{
		Display: field(display),
		Legal:   field(legal),
		Web:     field(web),
		Email:   field(email),
	}
}
