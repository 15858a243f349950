package registry

import (
	"context"

	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/hive.go/db"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/runtime/event"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
	"github.com/iotaledger/identity-registry/pkg/balances"
	"github.com/iotaledger/identity-registry/pkg/daemon"
	"github.com/iotaledger/identity-registry/pkg/identity"
	"github.com/iotaledger/identity-registry/pkg/model"
	"github.com/iotaledger/identity-registry/pkg/snapshot"
	"github.com/iotaledger/identity-registry/pkg/storage"
	iotago "github.com/iotaledger/iota.go/v4"
)

const databaseVersion byte = 1

func init() {
	Component = &app.Component{
		Name:      "Registry",
		DepsFunc:  func(cDeps dependencies) { deps = cDeps },
		Params:    params,
		Provide:   provide,
		Configure: configure,
		Run:       run,
	}
}

var (
	Component *app.Component
	deps      dependencies
)

type dependencies struct {
	dig.In

	Storage  *storage.Storage
	Ledger   *balances.Ledger
	Registry *identity.Registry
}

func provide(c *dig.Container) error {
	if err := c.Provide(func() *storage.Storage {
		dbEngine := db.EngineRocksDB
		if ParamsDatabase.InMemory {
			dbEngine = db.EngineMapDB
		}

		return storage.Create(ParamsDatabase.Directory, databaseVersion, func(err error) {
			Component.LogErrorf("Error in Storage: %s", err)
		}, storage.WithDBEngine(dbEngine))
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	if err := c.Provide(func() *balances.Ledger {
		return balances.NewLedger(iotago.BaseToken(ParamsBalances.MinimumBalance))
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	return c.Provide(func(storageInstance *storage.Storage, ledger *balances.Ledger) *identity.Registry {
		if ParamsRegistry.MaxFieldLength > model.MaxFieldLengthLimit {
			Component.LogPanicf("registry.maxFieldLength must not exceed %d", model.MaxFieldLengthLimit)
		}

		return identity.New(Component.Logger, storageInstance, ledger,
			identity.WithBasicDeposit(iotago.BaseToken(ParamsRegistry.BasicDeposit)),
			identity.WithByteDeposit(iotago.BaseToken(ParamsRegistry.ByteDeposit)),
			identity.WithMaxJudgements(ParamsRegistry.MaxJudgements),
			identity.WithMaxFieldLength(uint8(ParamsRegistry.MaxFieldLength)),
		)
	})
}

func configure() error {
	if err := loadState(); err != nil {
		Component.LogPanicf("failed to load registry state: %s", err)
	}

	deps.Registry.Events.IdentitySet.Hook(func(accountID iotago.AccountID) {
		Component.LogDebugf("IdentitySet: %s", accountID)
	}, event.WithWorkerPool(Component.WorkerPool))

	deps.Registry.Events.JudgementGiven.Hook(func(e *identity.JudgementGivenEvent) {
		Component.LogDebugf("JudgementGiven: %s, id %d, %s, external %t", e.Target, e.ID, e.Judgement, e.External)
	}, event.WithWorkerPool(Component.WorkerPool))

	deps.Registry.Events.IdentityCleared.Hook(func(e *identity.IdentityRemovedEvent) {
		Component.LogDebugf("IdentityCleared: %s, released %d", e.AccountID, e.Deposit)
	}, event.WithWorkerPool(Component.WorkerPool))

	deps.Registry.Events.IdentityKilled.Hook(func(e *identity.IdentityRemovedEvent) {
		Component.LogInfof("IdentityKilled: %s, slashed %d", e.AccountID, e.Deposit)
	}, event.WithWorkerPool(Component.WorkerPool))

	return nil
}

func run() error {
	return Component.Daemon().BackgroundWorker(Component.Name, func(ctx context.Context) {
		<-ctx.Done()
		Component.LogInfo("Gracefully shutting down the Registry...")

		if ParamsSnapshot.ExportOnShutdown {
			if err := snapshot.Write(ParamsSnapshot.Path, deps.Ledger, deps.Registry); err != nil {
				Component.LogErrorf("failed to write snapshot: %s", err)
			} else {
				Component.LogInfof("Snapshot written to %s", ParamsSnapshot.Path)
			}
		}

		if err := persistLedger(); err != nil {
			Component.LogErrorf("failed to persist balances: %s", err)
		}

		deps.Registry.Shutdown()
		deps.Storage.Shutdown()
	}, daemon.PriorityRegistry)
}

// loadState restores the balances persisted at the last shutdown, imports the snapshot into a fresh database or
// funds the genesis accounts if there is no snapshot.
func loadState() error {
	restored, err := restoreLedger()
	if err != nil {
		return err
	}
	if restored {
		Component.LogInfo("Balances restored from the database")

		return nil
	}

	if deps.Registry.IsSnapshotImported() {
		Component.LogWarn("Snapshot was imported before, but no balances were persisted")

		return nil
	}

	imported, err := snapshot.Read(ParamsSnapshot.Path, deps.Ledger, deps.Registry)
	if err != nil {
		return err
	}
	if imported {
		Component.LogInfof("Registry state imported from %s", ParamsSnapshot.Path)

		return nil
	}

	for _, account := range ParamsBalances.GenesisAccounts {
		accountID, err := iotago.AccountIDFromHexString(account)
		if err != nil {
			return ierrors.Wrapf(err, "invalid genesis account %s", account)
		}

		if err = deps.Ledger.Mint(accountID, iotago.BaseToken(ParamsBalances.GenesisBalance)); err != nil {
			return err
		}
	}

	Component.LogInfof("Funded %d genesis accounts", len(ParamsBalances.GenesisAccounts))

	return nil
}

func restoreLedger() (bool, error) {
	ledgerState, exists, err := deps.Storage.Settings().LedgerState()
	if err != nil || !exists {
		return false, err
	}

	if err = deps.Ledger.Import(stream.NewByteReader(ledgerState)); err != nil {
		return false, ierrors.Wrap(err, "failed to restore balances")
	}

	return true, nil
}

func persistLedger() error {
	byteBuffer := stream.NewByteBuffer()
	if err := deps.Ledger.Export(byteBuffer); err != nil {
		return err
	}

	ledgerState, err := byteBuffer.Bytes()
	if err != nil {
		return err
	}

	return deps.Storage.Settings().StoreLedgerState(ledgerState)
}
