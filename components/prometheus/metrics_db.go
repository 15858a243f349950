package prometheus

import (
	"github.com/iotaledger/identity-registry/components/prometheus/collector"
)

const (
	dbNamespace = "db"

	sizeBytesPermanent = "size_bytes_permanent"
)

var DBMetrics = collector.NewCollection(dbNamespace,
	collector.WithMetric(collector.NewMetric(sizeBytesPermanent,
		collector.WithType(collector.Gauge),
		collector.WithHelp("DB size in bytes for permanent storage."),
		collector.WithCollectFunc(func() (metricValue float64, labelValues []string) {
			return float64(deps.Storage.Size()), nil
		}),
	)),
)
