package model

import "github.com/iotaledger/hive.go/ierrors"

var (
	ErrInvalidJudgement  = ierrors.New("invalid judgement")
	ErrStickyJudgement   = ierrors.New("sticky judgement")
	ErrTooManyJudgements = ierrors.New("too many judgements")
	ErrFieldTooLong      = ierrors.New("identity field too long")
)
