package balances

import (
	"io"

	"github.com/iotaledger/hive.go/core/safemath"
	"github.com/iotaledger/hive.go/ds/shrinkingmap"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/runtime/syncutils"
	"github.com/iotaledger/hive.go/serializer/v2"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
	"github.com/iotaledger/identity-registry/pkg/identity/deposit"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Balance is the split of the tokens an account holds.
type Balance struct {
	Free     iotago.BaseToken `json:"free"`
	Reserved iotago.BaseToken `json:"reserved"`
}

// Ledger is an in-memory balance ledger that supports reserving parts of the free balance of an account.
type Ledger struct {
	balances       *shrinkingmap.ShrinkingMap[iotago.AccountID, *Balance]
	minimumBalance iotago.BaseToken
	totalIssuance  iotago.BaseToken

	mutex syncutils.RWMutex
}

var _ deposit.Currency = &Ledger{}

// NewLedger creates a ledger in which a reserve must leave at least minimumBalance of free tokens.
func NewLedger(minimumBalance iotago.BaseToken) *Ledger {
	return &Ledger{
		balances:       shrinkingmap.New[iotago.AccountID, *Balance](),
		minimumBalance: minimumBalance,
	}
}

// Mint adds amount to the free balance of the account.
func (l *Ledger) Mint(accountID iotago.AccountID, amount iotago.BaseToken) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	totalIssuance, err := safemath.SafeAdd(l.totalIssuance, amount)
	if err != nil {
		return ierrors.Wrapf(err, "failed to mint %d for %s", amount, accountID)
	}

	balance, _ := l.balances.GetOrCreate(accountID, func() *Balance { return new(Balance) })
	if balance.Free, err = safemath.SafeAdd(balance.Free, amount); err != nil {
		return ierrors.Wrapf(err, "failed to mint %d for %s", amount, accountID)
	}
	l.totalIssuance = totalIssuance

	return nil
}

// Balance returns a copy of the balance of the account.
func (l *Ledger) Balance(accountID iotago.AccountID) Balance {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if balance, exists := l.balances.Get(accountID); exists {
		return *balance
	}

	return Balance{}
}

func (l *Ledger) FreeBalance(accountID iotago.AccountID) iotago.BaseToken {
	return l.Balance(accountID).Free
}

func (l *Ledger) ReservedBalance(accountID iotago.AccountID) iotago.BaseToken {
	return l.Balance(accountID).Reserved
}

// TotalIssuance returns the sum of all balances, which shrinks when reserves are slashed.
func (l *Ledger) TotalIssuance() iotago.BaseToken {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.totalIssuance
}

func (l *Ledger) MinimumBalance() iotago.BaseToken {
	return l.minimumBalance
}

func (l *Ledger) Reserve(accountID iotago.AccountID, amount iotago.BaseToken) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	balance, exists := l.balances.Get(accountID)
	if !exists {
		return ierrors.WithMessagef(deposit.ErrInsufficientBalance, "account %s has no balance", accountID)
	}

	remainingFree, err := safemath.SafeSub(balance.Free, amount)
	if err != nil || remainingFree < l.minimumBalance {
		return ierrors.WithMessagef(deposit.ErrInsufficientBalance, "account %s can not reserve %d of %d free tokens", accountID, amount, balance.Free)
	}

	reserved, err := safemath.SafeAdd(balance.Reserved, amount)
	if err != nil {
		return ierrors.Wrapf(err, "failed to reserve %d for %s", amount, accountID)
	}

	balance.Free, balance.Reserved = remainingFree, reserved

	return nil
}

func (l *Ledger) Unreserve(accountID iotago.AccountID, amount iotago.BaseToken) (surplus iotago.BaseToken) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	balance, exists := l.balances.Get(accountID)
	if !exists {
		return amount
	}

	actual := min(amount, balance.Reserved)
	balance.Reserved -= actual
	balance.Free += actual

	return amount - actual
}

func (l *Ledger) SlashReserved(accountID iotago.AccountID, amount iotago.BaseToken) (slashed iotago.BaseToken, remainder iotago.BaseToken) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	balance, exists := l.balances.Get(accountID)
	if !exists {
		return 0, amount
	}

	slashed = min(amount, balance.Reserved)
	balance.Reserved -= slashed
	l.totalIssuance -= slashed

	return slashed, amount - slashed
}

// Export writes the balances of all accounts to the writer.
func (l *Ledger) Export(writer io.WriteSeeker) error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if err := stream.Write(writer, l.minimumBalance); err != nil {
		return ierrors.Wrap(err, "failed to write minimum balance")
	}

	return stream.WriteCollection(writer, serializer.SeriLengthPrefixTypeAsUint32, func() (elementsCount int, err error) {
		l.balances.ForEach(func(accountID iotago.AccountID, balance *Balance) bool {
			if err = stream.Write(writer, accountID); err != nil {
				err = ierrors.Wrapf(err, "failed to write account %s", accountID)
			} else if err = stream.Write(writer, balance.Free); err != nil {
				err = ierrors.Wrapf(err, "failed to write free balance of %s", accountID)
			} else if err = stream.Write(writer, balance.Reserved); err != nil {
				err = ierrors.Wrapf(err, "failed to write reserved balance of %s", accountID)
			}
			elementsCount++

			return err == nil
		})

		return elementsCount, err
	})
}

// Import replaces the ledger state with the balances read from the reader.
func (l *Ledger) Import(reader io.ReadSeeker) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	minimumBalance, err := stream.Read[iotago.BaseToken](reader)
	if err != nil {
		return ierrors.Wrap(err, "failed to read minimum balance")
	}

	balances := shrinkingmap.New[iotago.AccountID, *Balance]()
	var totalIssuance iotago.BaseToken
	if err = stream.ReadCollection(reader, serializer.SeriLengthPrefixTypeAsUint32, func(i int) error {
		accountID, err := stream.Read[iotago.AccountID](reader)
		if err != nil {
			return ierrors.Wrapf(err, "failed to read account at index %d", i)
		}

		balance := new(Balance)
		if balance.Free, err = stream.Read[iotago.BaseToken](reader); err != nil {
			return ierrors.Wrapf(err, "failed to read free balance of %s", accountID)
		}
		if balance.Reserved, err = stream.Read[iotago.BaseToken](reader); err != nil {
			return ierrors.Wrapf(err, "failed to read reserved balance of %s", accountID)
		}

		if totalIssuance, err = safemath.SafeAdd(totalIssuance, balance.Free); err != nil {
			return ierrors.Wrapf(err, "total issuance overflows at %s", accountID)
		}
		if totalIssuance, err = safemath.SafeAdd(totalIssuance, balance.Reserved); err != nil {
			return ierrors.Wrapf(err, "total issuance overflows at %s", accountID)
		}

		balances.Set(accountID, balance)

		return nil
	}); err != nil {
		return ierrors.Wrap(err, "failed to read balances")
	}

	l.minimumBalance = minimumBalance
	l.balances = balances
	l.totalIssuance = totalIssuance

	return nil
}
