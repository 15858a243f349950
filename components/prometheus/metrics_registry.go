package prometheus

import (
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/identity-registry/components/prometheus/collector"
	"github.com/iotaledger/identity-registry/pkg/identity"
)

const (
	registryNamespace = "registry"

	identities            = "identities"
	operationsTotal       = "operations_total"
	operationWeight       = "operation_weight"
	judgementsTotal       = "judgements_total"
	releasedDepositsTotal = "released_deposits_total"
	slashedDepositsTotal  = "slashed_deposits_total"
	operationsPerSecond   = "operations_per_second"
	weightPerSecond       = "weight_per_second"

	judgementPathInline   = "inline"
	judgementPathExternal = "external"
)

var unhookRegistryEvents func()

var RegistryMetrics = collector.NewCollection(registryNamespace,
	collector.WithMetric(collector.NewMetric(identities,
		collector.WithType(collector.Gauge),
		collector.WithHelp("Number of registered identities."),
		collector.WithCollectFunc(func() (metricValue float64, labelValues []string) {
			count, err := deps.Registry.IdentityCount()
			if err != nil {
				Component.LogWarnf("failed to count identities: %s", err)

				return 0, nil
			}

			return float64(count), nil
		}),
	)),
	collector.WithMetric(collector.NewMetric(operationsTotal,
		collector.WithType(collector.Counter),
		collector.WithHelp("Number of executed operations per operation."),
		collector.WithLabels("operation"),
		collector.WithInitFunc(func() {
			unhookRegistryEvents = lo.Batch(
				deps.Registry.Events.OperationExecuted.Hook(func(event *identity.OperationExecutedEvent) {
					deps.Collector.Increment(registryNamespace, operationsTotal, string(event.Operation))
					deps.Collector.Update(registryNamespace, operationWeight, float64(event.Weight), string(event.Operation))
				}).Unhook,
				deps.Registry.Events.JudgementGiven.Hook(func(event *identity.JudgementGivenEvent) {
					path := judgementPathInline
					if event.External {
						path = judgementPathExternal
					}
					deps.Collector.Increment(registryNamespace, judgementsTotal, path, event.Judgement.String())
				}).Unhook,
				deps.Registry.Events.IdentityCleared.Hook(func(event *identity.IdentityRemovedEvent) {
					deps.Collector.Update(registryNamespace, releasedDepositsTotal, float64(event.Deposit))
				}).Unhook,
				deps.Registry.Events.IdentityKilled.Hook(func(event *identity.IdentityRemovedEvent) {
					deps.Collector.Update(registryNamespace, slashedDepositsTotal, float64(event.Deposit))
				}).Unhook,
			)
		}),
		collector.WithShutdownFunc(func() {
			if unhookRegistryEvents != nil {
				unhookRegistryEvents()
			}
		}),
	)),
	collector.WithMetric(collector.NewMetric(operationWeight,
		collector.WithType(collector.Histogram),
		collector.WithHelp("Weight the executed operations were priced at."),
		collector.WithLabels("operation"),
		collector.WithBuckets(5_000, 10_000, 20_000, 40_000, 80_000, 160_000),
	)),
	collector.WithMetric(collector.NewMetric(judgementsTotal,
		collector.WithType(collector.Counter),
		collector.WithHelp("Number of given judgements per storage path and judgement."),
		collector.WithLabels("path", "judgement"),
	)),
	collector.WithMetric(collector.NewMetric(releasedDepositsTotal,
		collector.WithType(collector.Counter),
		collector.WithHelp("Deposits released by cleared identities."),
	)),
	collector.WithMetric(collector.NewMetric(slashedDepositsTotal,
		collector.WithType(collector.Counter),
		collector.WithHelp("Deposits slashed by killed identities."),
	)),
	collector.WithMetric(collector.NewMetric(operationsPerSecond,
		collector.WithType(collector.Gauge),
		collector.WithHelp("Operations per second measured over the last interval of the metrics tracker."),
		collector.WithCollectFunc(func() (metricValue float64, labelValues []string) {
			if deps.MetricsTracker == nil {
				return 0, nil
			}

			return deps.MetricsTracker.Rates().OperationsPerSecond, nil
		}),
	)),
	collector.WithMetric(collector.NewMetric(weightPerSecond,
		collector.WithType(collector.Gauge),
		collector.WithHelp("Weight per second measured over the last interval of the metrics tracker."),
		collector.WithCollectFunc(func() (metricValue float64, labelValues []string) {
			if deps.MetricsTracker == nil {
				return 0, nil
			}

			return deps.MetricsTracker.Rates().WeightPerSecond, nil
		}),
	)),
)
