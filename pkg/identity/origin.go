package identity

import (
	"github.com/iotaledger/hive.go/ierrors"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Origin is the already authenticated caller of a registry operation.
type Origin struct {
	accountID  iotago.AccountID
	signed     bool
	privileged bool
}

// Signed returns the Origin of an ordinary call signed by the given account.
func Signed(accountID iotago.AccountID) Origin {
	return Origin{accountID: accountID, signed: true}
}

// Privileged returns the Origin of a call that is permitted to judge and remove identities of other accounts.
func Privileged() Origin {
	return Origin{privileged: true}
}

// Account returns the signing account or ErrBadOrigin.
func (o Origin) Account() (iotago.AccountID, error) {
	if !o.signed {
		return iotago.EmptyAccountID, ierrors.WithMessage(ErrBadOrigin, "signed origin required")
	}

	return o.accountID, nil
}

func (o Origin) EnsurePrivileged() error {
	if !o.privileged {
		return ierrors.WithMessage(ErrBadOrigin, "privileged origin required")
	}

	return nil
}

func (o Origin) String() string {
	switch {
	case o.privileged:
		return "Privileged"
	case o.signed:
		return "Signed(" + o.accountID.ToHex() + ")"
	default:
		return "None"
	}
}
