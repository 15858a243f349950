package collector

import (
	"fmt"

	"github.com/iotaledger/hive.go/runtime/options"
)

// Collection groups the metrics of one namespace. Metrics are registered and collected in the order they were added.
type Collection struct {
	CollectionName string

	metrics     []*Metric
	metricsByID map[string]*Metric
}

func NewCollection(name string, opts ...options.Option[Collection]) *Collection {
	return options.Apply(&Collection{
		CollectionName: name,
		metricsByID:    make(map[string]*Metric),
	}, opts, func(c *Collection) {
		for _, metric := range c.metrics {
			metric.Namespace = c.CollectionName
			metric.initPromMetric()
		}
	})
}

// GetMetric returns the metric with the given name or nil.
func (c *Collection) GetMetric(metricName string) *Metric {
	return c.metricsByID[metricName]
}

// MetricNames returns the names of the metrics in the order they were added.
func (c *Collection) MetricNames() []string {
	names := make([]string, len(c.metrics))
	for i, metric := range c.metrics {
		names[i] = metric.Name
	}

	return names
}

// WithMetric adds a metric to the collection. Names must be unique within a collection.
func WithMetric(metric *Metric) options.Option[Collection] {
	return func(c *Collection) {
		if metric == nil {
			return
		}

		if _, exists := c.metricsByID[metric.Name]; exists {
			panic(fmt.Sprintf("metric %s is defined twice in collection %s", metric.Name, c.CollectionName))
		}

		c.metrics = append(c.metrics, metric)
		c.metricsByID[metric.Name] = metric
	}
}
