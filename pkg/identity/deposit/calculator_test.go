package deposit_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/pkg/balances"
	"github.com/iotaledger/identity-registry/pkg/identity/deposit"
	"github.com/iotaledger/identity-registry/pkg/model"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/iota.go/v4/tpkg"
)

func TestCalculator_Deposit(t *testing.T) {
	calculator := deposit.NewCalculator(10, 1, nil)

	require.EqualValues(t, 14, calculator.Deposit(&model.IdentityInfo{}))
	require.EqualValues(t, 21, calculator.Deposit(&model.IdentityInfo{Display: []byte("display")}))

	saturated := deposit.NewCalculator(iotago.MaxBaseToken-5, iotago.MaxBaseToken/2, nil)
	require.Equal(t, iotago.MaxBaseToken, saturated.Deposit(&model.IdentityInfo{}))

	require.Equal(t, iotago.MaxBaseToken, deposit.NewCalculator(10, iotago.MaxBaseToken, nil).Deposit(&model.IdentityInfo{}))
}

func TestCalculator_Monotonicity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		calculator := deposit.NewCalculator(
			iotago.BaseToken(rapid.Uint64Range(0, 1_000_000).Draw(t, "basicDeposit")),
			iotago.BaseToken(rapid.Uint64Range(1, 1_000_000).Draw(t, "byteDeposit")),
			nil,
		)

		field := func(label string) []byte {
			return rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, label)
		}
		a := &model.IdentityInfo{Display: field("a.display"), Legal: field("a.legal"), Web: field("a.web"), Email: field("a.email")}
		b := &model.IdentityInfo{Display: field("b.display"), Legal: field("b.legal"), Web: field("b.web"), Email: field("b.email")}

		switch {
		case b.EncodedSize() > a.EncodedSize():
			require.Greater(t, calculator.Deposit(b), calculator.Deposit(a))
		case b.EncodedSize() < a.EncodedSize():
			require.Less(t, calculator.Deposit(b), calculator.Deposit(a))
		default:
			require.Equal(t, calculator.Deposit(b), calculator.Deposit(a))
		}
	})
}

func TestCalculator_Rejig(t *testing.T) {
	ledger := balances.NewLedger(500)
	accountID := tpkg.RandAccountID()
	require.NoError(t, ledger.Mint(accountID, 1000))

	calculator := deposit.NewCalculator(10, 1, ledger)

	require.NoError(t, calculator.Rejig(accountID, 0, 21))
	require.Equal(t, balances.Balance{Free: 979, Reserved: 21}, ledger.Balance(accountID))

	require.NoError(t, calculator.Rejig(accountID, 21, 17))
	require.Equal(t, balances.Balance{Free: 983, Reserved: 17}, ledger.Balance(accountID))

	require.NoError(t, calculator.Rejig(accountID, 17, 17))
	require.Equal(t, balances.Balance{Free: 983, Reserved: 17}, ledger.Balance(accountID))

	// the free balance must not drop below the minimum balance
	err := calculator.Rejig(accountID, 17, 17+484)
	require.True(t, ierrors.Is(err, deposit.ErrInsufficientBalance))
	require.Equal(t, balances.Balance{Free: 983, Reserved: 17}, ledger.Balance(accountID))

	require.NoError(t, calculator.Rejig(accountID, 17, 17+483))
	require.Equal(t, balances.Balance{Free: 500, Reserved: 500}, ledger.Balance(accountID))

	require.EqualValues(t, 500, calculator.Release(accountID, 500))
	require.Equal(t, balances.Balance{Free: 1000}, ledger.Balance(accountID))
}

func TestCalculator_ReleaseShortfallPanics(t *testing.T) {
	ledger := balances.NewLedger(0)
	accountID := tpkg.RandAccountID()
	require.NoError(t, ledger.Mint(accountID, 100))

	calculator := deposit.NewCalculator(10, 1, ledger)
	require.NoError(t, calculator.Rejig(accountID, 0, 10))

	require.Panics(t, func() {
		_ = calculator.Rejig(accountID, 20, 0)
	})
}

func TestCalculator_Slash(t *testing.T) {
	ledger := balances.NewLedger(0)
	accountID := tpkg.RandAccountID()
	require.NoError(t, ledger.Mint(accountID, 100))

	calculator := deposit.NewCalculator(10, 1, ledger)
	require.NoError(t, calculator.Rejig(accountID, 0, 30))

	require.EqualValues(t, 30, calculator.Slash(accountID, 30))
	require.Equal(t, balances.Balance{Free: 70}, ledger.Balance(accountID))
	require.EqualValues(t, 70, ledger.TotalIssuance())
}
