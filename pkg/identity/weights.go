package identity

// Operation names a registry operation.
type Operation string

const (
	OperationSetIdentity              Operation = "setIdentity"
	OperationProvideJudgementInline   Operation = "provideJudgementInline"
	OperationProvideJudgementExternal Operation = "provideJudgementExternal"
	OperationClearIdentity            Operation = "clearIdentity"
	OperationKillIdentity             Operation = "killIdentity"
)

// Weight is the relative execution cost of an operation.
type Weight uint64

// WeightInfo prices the operations of the registry by their complexity parameters, where b is the encoded size of the
// identity information and j the number of judgements involved.
type WeightInfo interface {
	SetIdentity(b uint32) Weight
	SetIdentityUpdate(b uint32, j uint32) Weight
	ProvideJudgementInline(j uint32) Weight
	ProvideJudgementExternal() Weight
	ClearIdentityInlineUsage(j uint32) Weight
	ClearIdentityExternalUsage(j uint32) Weight
}

// FlatWeights prices every operation with a constant weight.
type FlatWeights struct{}

var _ WeightInfo = FlatWeights{}

func (FlatWeights) SetIdentity(uint32) Weight { return 10_000 }

func (FlatWeights) SetIdentityUpdate(uint32, uint32) Weight { return 20_000 }

func (FlatWeights) ProvideJudgementInline(uint32) Weight { return 15_000 }

func (FlatWeights) ProvideJudgementExternal() Weight { return 12_000 }

func (FlatWeights) ClearIdentityInlineUsage(uint32) Weight { return 8_000 }

func (FlatWeights) ClearIdentityExternalUsage(uint32) Weight { return 25_000 }
