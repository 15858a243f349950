package balances_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
	"github.com/iotaledger/identity-registry/pkg/balances"
	"github.com/iotaledger/identity-registry/pkg/identity/deposit"
	"github.com/iotaledger/iota.go/v4/tpkg"
)

func TestLedger_ReserveUnreserve(t *testing.T) {
	ledger := balances.NewLedger(500)
	alice, bob := tpkg.RandAccountID(), tpkg.RandAccountID()

	require.NoError(t, ledger.Mint(alice, 1000))
	require.EqualValues(t, 1000, ledger.TotalIssuance())
	require.EqualValues(t, 500, ledger.MinimumBalance())

	require.NoError(t, ledger.Reserve(alice, 500))
	require.Equal(t, balances.Balance{Free: 500, Reserved: 500}, ledger.Balance(alice))

	require.True(t, ierrors.Is(ledger.Reserve(alice, 1), deposit.ErrInsufficientBalance))
	require.True(t, ierrors.Is(ledger.Reserve(bob, 1), deposit.ErrInsufficientBalance))

	require.Zero(t, ledger.Unreserve(alice, 200))
	require.EqualValues(t, 700, ledger.FreeBalance(alice))
	require.EqualValues(t, 300, ledger.ReservedBalance(alice))

	require.EqualValues(t, 100, ledger.Unreserve(alice, 400))
	require.Equal(t, balances.Balance{Free: 1000}, ledger.Balance(alice))

	require.EqualValues(t, 10, ledger.Unreserve(bob, 10))
	require.EqualValues(t, 1000, ledger.TotalIssuance())
}

func TestLedger_SlashReserved(t *testing.T) {
	ledger := balances.NewLedger(0)
	alice := tpkg.RandAccountID()

	require.NoError(t, ledger.Mint(alice, 100))
	require.NoError(t, ledger.Reserve(alice, 40))

	slashed, remainder := ledger.SlashReserved(alice, 50)
	require.EqualValues(t, 40, slashed)
	require.EqualValues(t, 10, remainder)
	require.Equal(t, balances.Balance{Free: 60}, ledger.Balance(alice))
	require.EqualValues(t, 60, ledger.TotalIssuance())

	slashed, remainder = ledger.SlashReserved(tpkg.RandAccountID(), 5)
	require.Zero(t, slashed)
	require.EqualValues(t, 5, remainder)
}

func TestLedger_ExportImport(t *testing.T) {
	ledger := balances.NewLedger(10)
	alice, bob := tpkg.RandAccountID(), tpkg.RandAccountID()

	require.NoError(t, ledger.Mint(alice, 100))
	require.NoError(t, ledger.Mint(bob, 200))
	require.NoError(t, ledger.Reserve(bob, 50))

	writer := stream.NewByteBuffer()
	require.NoError(t, ledger.Export(writer))

	exported, err := writer.Bytes()
	require.NoError(t, err)

	imported := balances.NewLedger(0)
	require.NoError(t, imported.Import(stream.NewByteReader(exported)))

	require.EqualValues(t, 10, imported.MinimumBalance())
	require.EqualValues(t, 300, imported.TotalIssuance())
	require.Equal(t, balances.Balance{Free: 100}, imported.Balance(alice))
	require.Equal(t, balances.Balance{Free: 150, Reserved: 50}, imported.Balance(bob))
}
