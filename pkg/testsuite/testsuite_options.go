package testsuite

import (
	"github.com/iotaledger/hive.go/db"
	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/identity-registry/pkg/identity"
	iotago "github.com/iotaledger/iota.go/v4"
)

func WithGenesisBalance(genesisBalance iotago.BaseToken) options.Option[TestSuite] {
	return func(t *TestSuite) {
		t.optsGenesisBalance = genesisBalance
	}
}

func WithMinimumBalance(minimumBalance iotago.BaseToken) options.Option[TestSuite] {
	return func(t *TestSuite) {
		t.optsMinimumBalance = minimumBalance
	}
}

func WithRegistryOptions(opts ...options.Option[identity.Registry]) options.Option[TestSuite] {
	return func(t *TestSuite) {
		t.optsRegistryOptions = append(t.optsRegistryOptions, opts...)
	}
}

// WithStorage opens the database in the given directory with the given engine instead of a fresh in-memory one.
func WithStorage(directory string, engine db.Engine) options.Option[TestSuite] {
	return func(t *TestSuite) {
		t.optsStorageDirectory = directory
		t.optsDBEngine = engine
	}
}
