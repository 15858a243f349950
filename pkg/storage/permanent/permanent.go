package permanent

import (
	"github.com/iotaledger/hive.go/db"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/runtime/ioutils"
	"github.com/iotaledger/identity-registry/pkg/storage/database"
)

const (
	settingsPrefix byte = iota
	identitiesPrefix
	judgementsPrefix
)

type Permanent struct {
	dbConfig     database.Config
	store        *database.DBInstance
	errorHandler func(error)

	settings   *Settings
	identities *Identities
	judgements *Judgements
}

// New returns a new permanent storage instance.
func New(dbConfig database.Config, errorHandler func(error)) *Permanent {
	p := &Permanent{
		errorHandler: errorHandler,
		dbConfig:     dbConfig,
		store:        database.NewDBInstance(dbConfig),
	}

	p.settings = NewSettings(lo.PanicOnErr(p.store.KVStore().WithExtendedRealm(kvstore.Realm{settingsPrefix})))
	p.identities = NewIdentities(lo.PanicOnErr(p.store.KVStore().WithExtendedRealm(kvstore.Realm{identitiesPrefix})))
	p.judgements = NewJudgements(lo.PanicOnErr(p.store.KVStore().WithExtendedRealm(kvstore.Realm{judgementsPrefix})))

	return p
}

func (p *Permanent) Settings() *Settings {
	return p.settings
}

// Identities returns the storage of the identity records.
func (p *Permanent) Identities() *Identities {
	return p.identities
}

// Judgements returns the storage of the judgements kept outside of the identity records.
func (p *Permanent) Judgements() *Judgements {
	return p.judgements
}

// Size returns the size of the permanent storage.
func (p *Permanent) Size() int64 {
	if p.dbConfig.Engine == db.EngineMapDB {
		return 0
	}

	dbSize, err := ioutils.FolderSize(p.dbConfig.Directory)
	if err != nil {
		p.errorHandler(ierrors.Wrapf(err, "dbDirectorySize failed for %s", p.dbConfig.Directory))
		return 0
	}

	return dbSize
}

func (p *Permanent) Shutdown() {
	p.store.Close()
}

func (p *Permanent) Flush() {
	if err := p.store.KVStore().Flush(); err != nil {
		p.errorHandler(err)
	}
}
