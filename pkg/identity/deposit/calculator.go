package deposit

import (
	"github.com/iotaledger/hive.go/core/safemath"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/pkg/model"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Calculator prices identity information and keeps the reserved deposit of an account in line with it.
type Calculator struct {
	basicDeposit iotago.BaseToken
	byteDeposit  iotago.BaseToken
	currency     Currency
}

func NewCalculator(basicDeposit iotago.BaseToken, byteDeposit iotago.BaseToken, currency Currency) *Calculator {
	return &Calculator{
		basicDeposit: basicDeposit,
		byteDeposit:  byteDeposit,
		currency:     currency,
	}
}

// Deposit returns the deposit required for the info. The result saturates at iotago.MaxBaseToken.
func (c *Calculator) Deposit(info *model.IdentityInfo) iotago.BaseToken {
	return saturatingAdd(c.basicDeposit, saturatingMul(c.byteDeposit, iotago.BaseToken(info.EncodedSize())))
}

// Rejig reserves or releases the difference between the current and the new deposit of the account.
func (c *Calculator) Rejig(accountID iotago.AccountID, currentDeposit iotago.BaseToken, newDeposit iotago.BaseToken) error {
	switch {
	case newDeposit > currentDeposit:
		if err := c.currency.Reserve(accountID, newDeposit-currentDeposit); err != nil {
			return ierrors.Wrapf(err, "failed to reserve %d for %s", newDeposit-currentDeposit, accountID)
		}

	case newDeposit < currentDeposit:
		c.Release(accountID, currentDeposit-newDeposit)
	}

	return nil
}

// Release unreserves amount for the account and returns it. The amount must be held in reserve.
func (c *Calculator) Release(accountID iotago.AccountID, amount iotago.BaseToken) iotago.BaseToken {
	if surplus := c.currency.Unreserve(accountID, amount); surplus != 0 {
		panic(ierrors.Errorf("deposit of %s is missing %d of %d reserved tokens", accountID, surplus, amount))
	}

	return amount
}

// Slash burns up to amount of the reserve of the account and returns the burned amount.
func (c *Calculator) Slash(accountID iotago.AccountID, amount iotago.BaseToken) iotago.BaseToken {
	slashed, _ := c.currency.SlashReserved(accountID, amount)

	return slashed
}

func saturatingAdd(a iotago.BaseToken, b iotago.BaseToken) iotago.BaseToken {
	result, err := safemath.SafeAdd(a, b)
	if err != nil {
		return iotago.MaxBaseToken
	}

	return result
}

func saturatingMul(a iotago.BaseToken, b iotago.BaseToken) iotago.BaseToken {
	result, err := safemath.SafeMul(a, b)
	if err != nil {
		return iotago.MaxBaseToken
	}

	return result
}
