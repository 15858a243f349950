package identity

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/pkg/identity/deposit"
	"github.com/iotaledger/identity-registry/pkg/model"
)

var (
	ErrNoIdentity        = ierrors.New("no identity")
	ErrInvalidTarget     = ierrors.New("invalid target")
	ErrBadOrigin         = ierrors.New("bad origin")
	ErrRegistryNotEmpty  = ierrors.New("registry is not empty")
	ErrInvalidSnapshot   = ierrors.New("invalid snapshot")
	ErrStickyJudgement   = model.ErrStickyJudgement
	ErrTooManyJudgements = model.ErrTooManyJudgements
	ErrInvalidJudgement  = model.ErrInvalidJudgement
	ErrFieldTooLong      = model.ErrFieldTooLong

	ErrInsufficientBalance = deposit.ErrInsufficientBalance
)
