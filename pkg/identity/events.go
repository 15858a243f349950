package identity

import (
	"github.com/iotaledger/hive.go/runtime/event"
	"github.com/iotaledger/identity-registry/pkg/model"
	iotago "github.com/iotaledger/iota.go/v4"
)

type Events struct {
	// IdentitySet is triggered when an account set or replaced its identity.
	IdentitySet *event.Event1[iotago.AccountID]
	// JudgementGiven is triggered when a judgement was given on an identity.
	JudgementGiven *event.Event1[*JudgementGivenEvent]
	// IdentityCleared is triggered when an account removed its identity and got its deposit back.
	IdentityCleared *event.Event1[*IdentityRemovedEvent]
	// IdentityKilled is triggered when an identity was forcefully removed and its deposit slashed.
	IdentityKilled *event.Event1[*IdentityRemovedEvent]
	// OperationExecuted is triggered after every successful operation with the weight it was priced at.
	OperationExecuted *event.Event1[*OperationExecutedEvent]

	event.Group[Events, *Events]
}

var NewEvents = event.CreateGroupConstructor(func() (newEvents *Events) {
	return &Events{
		IdentitySet:     event.New1[iotago.AccountID](),
		JudgementGiven:  event.New1[*JudgementGivenEvent](),
		IdentityCleared: event.New1[*IdentityRemovedEvent](),
		IdentityKilled:  event.New1[*IdentityRemovedEvent](),

		OperationExecuted: event.New1[*OperationExecutedEvent](),
	}
})

type JudgementGivenEvent struct {
	Target    iotago.AccountID
	ID        model.JudgementID
	Judgement model.Judgement
	External  bool
}

type IdentityRemovedEvent struct {
	AccountID iotago.AccountID
	Deposit   iotago.BaseToken
}

type OperationExecutedEvent struct {
	Operation Operation
	Weight    Weight
}
