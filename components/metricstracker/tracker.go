package metricstracker

import (
	"time"

	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/runtime/syncutils"
	"github.com/iotaledger/identity-registry/pkg/identity"
	"github.com/iotaledger/identity-registry/pkg/metrics"
)

// RegistryRates are the rates measured over the last interval.
type RegistryRates struct {
	OperationsPerSecond float64 `json:"operationsPerSecond"`
	WeightPerSecond     float64 `json:"weightPerSecond"`
}

// MetricsTracker counts the operations of a registry and derives their rates.
type MetricsTracker struct {
	metrics *metrics.RegistryMetrics

	oldOperations uint64
	oldWeight     uint64
	oldTime       time.Time

	rates     RegistryRates
	ratesLock syncutils.RWMutex

	now func() time.Time
}

func New() *MetricsTracker {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *MetricsTracker {
	return &MetricsTracker{
		metrics: &metrics.RegistryMetrics{},
		oldTime: now(),
		now:     now,
	}
}

// Metrics returns the counters of the tracker.
func (m *MetricsTracker) Metrics() *metrics.RegistryMetrics {
	return m.metrics
}

func (m *MetricsTracker) Rates() RegistryRates {
	m.ratesLock.RLock()
	defer m.ratesLock.RUnlock()

	return m.rates
}

// Hook attaches the tracker to the events of the registry and returns a function that detaches it again.
func (m *MetricsTracker) Hook(events *identity.Events) (unhook func()) {
	return lo.Batch(
		events.OperationExecuted.Hook(func(event *identity.OperationExecutedEvent) {
			m.metrics.Operations.Inc()
			m.metrics.Weight.Add(uint64(event.Weight))
		}).Unhook,
		events.JudgementGiven.Hook(func(_ *identity.JudgementGivenEvent) {
			m.metrics.Judgements.Inc()
		}).Unhook,
		events.IdentityCleared.Hook(func(event *identity.IdentityRemovedEvent) {
			m.metrics.ReleasedDeposits.Add(uint64(event.Deposit))
		}).Unhook,
		events.IdentityKilled.Hook(func(event *identity.IdentityRemovedEvent) {
			m.metrics.SlashedDeposits.Add(uint64(event.Deposit))
		}).Unhook,
	)
}

// measure computes the rates since the last measurement.
func (m *MetricsTracker) measure() {
	newTime := m.now()
	timeDiff := newTime.Sub(m.oldTime).Seconds()
	if timeDiff <= 0 {
		return
	}
	m.oldTime = newTime

	m.ratesLock.Lock()
	defer m.ratesLock.Unlock()

	newOperations := m.metrics.Operations.Load()
	m.rates.OperationsPerSecond = float64(newOperations-m.oldOperations) / timeDiff
	m.oldOperations = newOperations

	newWeight := m.metrics.Weight.Load()
	m.rates.WeightPerSecond = float64(newWeight-m.oldWeight) / timeDiff
	m.oldWeight = newWeight
}
