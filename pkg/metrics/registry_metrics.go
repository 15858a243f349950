package metrics

import "go.uber.org/atomic"

// RegistryMetrics defines metrics over the entire runtime of the registry.
type RegistryMetrics struct {
	// The number of executed operations.
	Operations atomic.Uint64
	// The summed weight of all executed operations.
	Weight atomic.Uint64
	// The number of judgements given on either path.
	Judgements atomic.Uint64
	// The tokens released back to accounts that cleared their identity.
	ReleasedDeposits atomic.Uint64
	// The tokens slashed from killed identities.
	SlashedDeposits atomic.Uint64
}
