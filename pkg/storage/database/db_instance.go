package database

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
)

type DBInstance struct {
	store         kvstore.KVStore
	healthTracker *kvstore.StoreHealthTracker
	dbConfig      Config
}

func NewDBInstance(dbConfig Config) *DBInstance {
	store, err := StoreWithDefaultSettings(dbConfig.Directory, true, dbConfig.Engine)
	if err != nil {
		panic(err)
	}

	storeHealthTracker, err := kvstore.NewStoreHealthTracker(store, dbConfig.PrefixHealth, dbConfig.Version, nil)
	if err != nil {
		panic(ierrors.Wrapf(err, "database in %s is corrupted, delete database and restore from snapshot", dbConfig.Directory))
	}
	if err = storeHealthTracker.MarkCorrupted(); err != nil {
		panic(err)
	}

	return &DBInstance{
		store:         store,
		healthTracker: storeHealthTracker,
		dbConfig:      dbConfig,
	}
}

func (d *DBInstance) Close() {
	d.MarkHealthy()

	if err := FlushAndClose(d.store); err != nil {
		panic(err)
	}
}

func (d *DBInstance) MarkHealthy() {
	if err := d.healthTracker.MarkHealthy(); err != nil {
		panic(err)
	}
}

func (d *DBInstance) MarkCorrupted() {
	if err := d.healthTracker.MarkCorrupted(); err != nil {
		panic(err)
	}
}

func (d *DBInstance) Config() Config {
	return d.dbConfig
}

func (d *DBInstance) KVStore() kvstore.KVStore {
	return d.store
}
