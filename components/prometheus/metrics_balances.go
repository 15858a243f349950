package prometheus

import (
	"github.com/iotaledger/identity-registry/components/prometheus/collector"
)

const (
	balancesNamespace = "balances"

	totalIssuance  = "total_issuance"
	minimumBalance = "minimum_balance"
)

var BalanceMetrics = collector.NewCollection(balancesNamespace,
	collector.WithMetric(collector.NewMetric(totalIssuance,
		collector.WithType(collector.Gauge),
		collector.WithHelp("Total amount of tokens held by all accounts, reserved tokens included."),
		collector.WithCollectFunc(func() (metricValue float64, labelValues []string) {
			return float64(deps.Ledger.TotalIssuance()), nil
		}),
	)),
	collector.WithMetric(collector.NewMetric(minimumBalance,
		collector.WithType(collector.Gauge),
		collector.WithHelp("Free balance an account has to keep when reserving deposits."),
		collector.WithInitValueFunc(func() (metricValue float64, labelValues []string) {
			return float64(deps.Ledger.MinimumBalance()), nil
		}),
	)),
)
