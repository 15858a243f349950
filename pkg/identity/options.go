package identity

import (
	"github.com/iotaledger/hive.go/runtime/options"
	iotago "github.com/iotaledger/iota.go/v4"
)

func WithBasicDeposit(basicDeposit iotago.BaseToken) options.Option[Registry] {
	return func(r *Registry) {
		r.optsParameters.BasicDeposit = basicDeposit
	}
}

func WithByteDeposit(byteDeposit iotago.BaseToken) options.Option[Registry] {
	return func(r *Registry) {
		r.optsParameters.ByteDeposit = byteDeposit
	}
}

func WithMaxJudgements(maxJudgements uint32) options.Option[Registry] {
	return func(r *Registry) {
		r.optsParameters.MaxJudgements = maxJudgements
	}
}

func WithMaxFieldLength(maxFieldLength uint8) options.Option[Registry] {
	return func(r *Registry) {
		r.optsParameters.MaxFieldLength = maxFieldLength
	}
}

func WithWeights(weights WeightInfo) options.Option[Registry] {
	return func(r *Registry) {
		r.optsWeights = weights
	}
}
