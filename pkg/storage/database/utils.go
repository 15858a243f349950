package database

import (
	"github.com/iotaledger/hive.go/db"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/kvstore/rocksdb"
)

// AllowedEngines are the engines the registry database can be opened with.
var AllowedEngines = []db.Engine{db.EngineRocksDB, db.EngineMapDB}

func NewRocksDB(path string) (*rocksdb.RocksDB, error) {
	return rocksdb.CreateDB(path,
		rocksdb.ReadFillCache(false),
		rocksdb.WriteDisableWAL(false),
	)
}

// StoreWithDefaultSettings opens the KVStore of the given engine in path.
func StoreWithDefaultSettings(path string, createDatabaseIfNotExists bool, dbEngine db.Engine) (kvstore.KVStore, error) {
	if dbEngine == db.EngineMapDB {
		return mapdb.NewMapDB(), nil
	}

	targetEngine, err := db.CheckEngine(path, createDatabaseIfNotExists, dbEngine, AllowedEngines)
	if err != nil {
		return nil, ierrors.Wrapf(err, "failed to check database engine in %s", path)
	}

	switch targetEngine {
	case db.EngineRocksDB:
		rocksDB, err := NewRocksDB(path)
		if err != nil {
			return nil, ierrors.Wrapf(err, "failed to create rocksdb in %s", path)
		}

		return rocksdb.New(rocksDB), nil

	case db.EngineMapDB:
		return mapdb.NewMapDB(), nil

	default:
		return nil, ierrors.Errorf("unknown database engine: %s, supported engines: rocksdb/mapdb", dbEngine)
	}
}

func FlushAndClose(store kvstore.KVStore) error {
	if err := store.Flush(); err != nil {
		return err
	}

	return store.Close()
}
