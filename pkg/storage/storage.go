package storage

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/iotaledger/hive.go/db"
	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/identity-registry/pkg/storage/database"
	"github.com/iotaledger/identity-registry/pkg/storage/permanent"
)

const (
	permanentDirName = "permanent"

	storePrefixHealth byte = 255
)

// Storage is an abstraction around the storage layer of the registry.
type Storage struct {
	directory string

	// permanent holds the identity records and the externally stored judgements.
	permanent *permanent.Permanent

	shutdownOnce sync.Once
	errorHandler func(error)

	optsDBEngine db.Engine
}

// New creates a new storage instance in the given directory.
func New(directory string, errorHandler func(error), opts ...options.Option[Storage]) *Storage {
	return options.Apply(&Storage{
		directory:    directory,
		errorHandler: errorHandler,
		optsDBEngine: db.EngineRocksDB,
	}, opts)
}

// Create creates a new storage instance with the named database version in the given directory and initializes its
// permanent section.
func Create(directory string, dbVersion byte, errorHandler func(error), opts ...options.Option[Storage]) *Storage {
	s := New(directory, errorHandler, opts...)
	s.permanent = permanent.New(database.Config{
		Engine:       s.optsDBEngine,
		Directory:    s.pathWithCreate(permanentDirName),
		Version:      dbVersion,
		PrefixHealth: []byte{storePrefixHealth},
	}, errorHandler)

	return s
}

func (s *Storage) Directory() string {
	return s.directory
}

func (s *Storage) Settings() *permanent.Settings {
	return s.permanent.Settings()
}

func (s *Storage) Identities() *permanent.Identities {
	return s.permanent.Identities()
}

func (s *Storage) Judgements() *permanent.Judgements {
	return s.permanent.Judgements()
}

// Size returns the size of the underlying database and files.
func (s *Storage) Size() int64 {
	return s.permanent.Size()
}

// Shutdown shuts down the storage.
func (s *Storage) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.permanent.Shutdown()
	})
}

func (s *Storage) Flush() {
	s.permanent.Flush()
}

func (s *Storage) pathWithCreate(name string) string {
	path := filepath.Join(s.directory, name)
	if s.optsDBEngine != db.EngineMapDB {
		if err := os.MkdirAll(path, 0o700); err != nil {
			panic(err)
		}
	}

	return path
}
