package testsuite

import (
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/identity-registry/pkg/model"
	iotago "github.com/iotaledger/iota.go/v4"
)

func (t *TestSuite) AssertIdentity(alias string, expectedInfo *model.IdentityInfo, expectedDeposit iotago.BaseToken) {
	registration, exists, err := t.Registry.IdentityOf(t.Account(alias))
	require.NoError(t.Testing, err)
	require.True(t.Testing, exists, "AssertIdentity: identity of %s does not exist", alias)

	require.Equal(t.Testing, expectedInfo, registration.Info, "AssertIdentity: %s: info mismatch", alias)
	require.Equal(t.Testing, expectedDeposit, registration.Deposit, "AssertIdentity: %s: deposit mismatch", alias)
}

func (t *TestSuite) AssertNoIdentity(alias string) {
	_, exists, err := t.Registry.IdentityOf(t.Account(alias))
	require.NoError(t.Testing, err)
	require.False(t.Testing, exists, "AssertNoIdentity: identity of %s exists", alias)

	externalJudgements, err := t.Registry.ExternalJudgements(t.Account(alias))
	require.NoError(t.Testing, err)
	require.Empty(t.Testing, externalJudgements, "AssertNoIdentity: %s has external judgements left", alias)
}

// AssertJudgements checks the judgements of the account on the requested path.
func (t *TestSuite) AssertJudgements(alias string, external bool, expected model.Judgements) {
	actual := t.Judgements(alias, external)

	require.True(t.Testing, actual.IsSorted(), "AssertJudgements: %s: judgements are not sorted: %v", alias, actual)
	require.ElementsMatch(t.Testing, expected, actual, "AssertJudgements: %s: judgements mismatch", alias)
	if len(expected) > 0 {
		require.Equal(t.Testing, expected, actual, "AssertJudgements: %s: judgements mismatch", alias)
	}
}

// AssertExternalCount checks that the counter of the record matches the externally stored judgements.
func (t *TestSuite) AssertExternalCount(alias string) {
	registration, exists, err := t.Registry.IdentityOf(t.Account(alias))
	require.NoError(t.Testing, err)
	require.True(t.Testing, exists, "AssertExternalCount: identity of %s does not exist", alias)

	count, err := t.Storage.Judgements().Count(t.Account(alias))
	require.NoError(t.Testing, err)
	require.Equal(t.Testing, count, registration.ExternalCount, "AssertExternalCount: %s: counter mismatch", alias)
}

func (t *TestSuite) AssertBalance(alias string, expectedFree iotago.BaseToken, expectedReserved iotago.BaseToken) {
	balance := t.Ledger.Balance(t.Account(alias))

	require.Equal(t.Testing, expectedFree, balance.Free, "AssertBalance: %s: free balance mismatch", alias)
	require.Equal(t.Testing, expectedReserved, balance.Reserved, "AssertBalance: %s: reserved balance mismatch", alias)
}
