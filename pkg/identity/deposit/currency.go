package deposit

import (
	"github.com/iotaledger/hive.go/ierrors"
	iotago "github.com/iotaledger/iota.go/v4"
)

// ErrInsufficientBalance is returned by a Currency if the free balance of an account can not cover a reserve.
var ErrInsufficientBalance = ierrors.New("insufficient balance")

// Currency is the balance ledger that deposits are held in.
type Currency interface {
	// Reserve moves amount from the free to the reserved balance of the account.
	Reserve(accountID iotago.AccountID, amount iotago.BaseToken) error
	// Unreserve moves up to amount from the reserved back to the free balance and returns the part that could not be
	// unreserved.
	Unreserve(accountID iotago.AccountID, amount iotago.BaseToken) (surplus iotago.BaseToken)
	// SlashReserved burns up to amount of the reserved balance and returns the burned amount and the part that could
	// not be slashed.
	SlashReserved(accountID iotago.AccountID, amount iotago.BaseToken) (slashed iotago.BaseToken, remainder iotago.BaseToken)
	// MinimumBalance is the balance an account needs to keep to exist.
	MinimumBalance() iotago.BaseToken
}
