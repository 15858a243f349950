package testsuite

import (
	"github.com/iotaledger/hive.go/runtime/syncutils"
	"github.com/iotaledger/identity-registry/pkg/identity"
	iotago "github.com/iotaledger/iota.go/v4"
)

// EventRecorder keeps every event triggered by a registry in order.
type EventRecorder struct {
	IdentitySet     []iotago.AccountID
	JudgementGiven  []*identity.JudgementGivenEvent
	IdentityCleared []*identity.IdentityRemovedEvent
	IdentityKilled  []*identity.IdentityRemovedEvent
	Operations      []*identity.OperationExecutedEvent

	mutex syncutils.RWMutex
}

func NewEventRecorder(events *identity.Events) *EventRecorder {
	r := new(EventRecorder)

	events.IdentitySet.Hook(func(accountID iotago.AccountID) {
		r.mutex.Lock()
		defer r.mutex.Unlock()

		r.IdentitySet = append(r.IdentitySet, accountID)
	})
	events.JudgementGiven.Hook(func(event *identity.JudgementGivenEvent) {
		r.mutex.Lock()
		defer r.mutex.Unlock()

		r.JudgementGiven = append(r.JudgementGiven, event)
	})
	events.IdentityCleared.Hook(func(event *identity.IdentityRemovedEvent) {
		r.mutex.Lock()
		defer r.mutex.Unlock()

		r.IdentityCleared = append(r.IdentityCleared, event)
	})
	events.IdentityKilled.Hook(func(event *identity.IdentityRemovedEvent) {
		r.mutex.Lock()
		defer r.mutex.Unlock()

		r.IdentityKilled = append(r.IdentityKilled, event)
	})
	events.OperationExecuted.Hook(func(event *identity.OperationExecutedEvent) {
		r.mutex.Lock()
		defer r.mutex.Unlock()

		r.Operations = append(r.Operations, event)
	})

	return r
}
