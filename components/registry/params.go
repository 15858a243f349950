package registry

import (
	"github.com/iotaledger/hive.go/app"
)

// ParametersRegistry contains the economic and size limits of the registry.
type ParametersRegistry struct {
	// BasicDeposit is the amount held on deposit for a registered identity.
	BasicDeposit uint64 `default:"10" usage:"the amount held on deposit for a registered identity"`
	// ByteDeposit is the amount held on deposit per encoded byte of identity information.
	ByteDeposit uint64 `default:"1" usage:"the amount held on deposit per encoded byte of identity information"`
	// MaxJudgements is the maximum number of judgements an account can hold on each storage path.
	MaxJudgements uint32 `default:"20" usage:"the maximum number of judgements an account can hold on each storage path"`
	// MaxFieldLength is the maximum length of a single identity field.
	MaxFieldLength uint32 `default:"64" usage:"the maximum length of a single identity field (at most 255)"`
}

// ParametersDatabase contains the definition of configuration parameters used by the storage layer.
type ParametersDatabase struct {
	// Directory defines the directory of the database.
	Directory string `default:"db" usage:"path to the database directory"`

	// InMemory defines whether to use an in-memory database.
	InMemory bool `default:"false" usage:"whether the database is only kept in memory and not persisted"`
}

// ParametersSnapshot contains the definition of configuration parameters used for snapshots.
type ParametersSnapshot struct {
	// Path is the path to the snapshot file.
	Path string `default:"./snapshot.bin" usage:"the path of the snapshot file"`
	// ExportOnShutdown defines whether a snapshot is written to Path when the app shuts down.
	ExportOnShutdown bool `default:"false" usage:"whether a snapshot is written when the app shuts down"`
}

// ParametersBalances contains the definition of configuration parameters used by the balance ledger.
type ParametersBalances struct {
	// MinimumBalance is the free balance an account has to keep when reserving deposits.
	MinimumBalance uint64 `default:"500" usage:"the free balance an account has to keep when reserving deposits"`
	// GenesisBalance is the balance every genesis account is funded with.
	GenesisBalance uint64 `default:"1000" usage:"the balance every genesis account is funded with"`
	// GenesisAccounts are the hex encoded accounts that are funded on a fresh start.
	GenesisAccounts []string `usage:"the hex encoded accounts that are funded on a fresh start"`
}

var (
	ParamsRegistry = &ParametersRegistry{}
	ParamsDatabase = &ParametersDatabase{}
	ParamsSnapshot = &ParametersSnapshot{}
	ParamsBalances = &ParametersBalances{}
)

var params = &app.ComponentParams{
	Params: map[string]any{
		"registry": ParamsRegistry,
		"database": ParamsDatabase,
		"snapshot": ParamsSnapshot,
		"balances": ParamsBalances,
	},
}
