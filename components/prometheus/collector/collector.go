package collector

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iotaledger/hive.go/log"
)

// Collector is responsible for creation and collection of metrics for the prometheus.
type Collector struct {
	Registry    *prometheus.Registry
	collections map[string]*Collection

	log.Logger
}

// New creates an instance of Collector with a new prometheus registry for the registry metrics collection.
func New(logger log.Logger) *Collector {
	return &Collector{
		Registry:    prometheus.NewRegistry(),
		collections: make(map[string]*Collection),
		Logger:      logger,
	}
}

func (c *Collector) RegisterCollection(coll *Collection) {
	c.collections[coll.CollectionName] = coll
	for _, m := range coll.metrics {
		c.Registry.MustRegister(m.promMetric)
		if m.initValueFunc != nil {
			metricValue, labelValues := m.initValueFunc()
			c.update(m, metricValue, labelValues...)
		}
		if m.initFunc != nil {
			m.initFunc()
		}
	}
}

// Collect collects all metrics from the registered collections.
func (c *Collector) Collect() {
	for _, collection := range c.collections {
		for _, metric := range collection.metrics {
			if metric.resetEnabled {
				metric.reset()
			}
			if metric.collectFunc != nil {
				value, labelValues := metric.collectFunc()
				c.update(metric, value, labelValues...)
			}
		}
	}
}

// Update updates the value of the existing metric defined by the subsystem and metricName.
// Gauges are set to the value, counters are increased by it and histograms observe it.
// Note that the label values must be passed in the same order as they were defined in the metric, and must match the
// number of labels defined in the metric.
func (c *Collector) Update(subsystem string, metricName string, metricValue float64, labelValues ...string) {
	if m := c.getMetric(subsystem, metricName); m != nil {
		c.update(m, metricValue, labelValues...)
	}
}

// Increment increments the value of the existing metric defined by the subsystem and metricName.
// Note that the label values must be passed in the same order as they were defined in the metric, and must match the
// number of labels defined in the metric.
func (c *Collector) Increment(subsystem string, metricName string, labelValues ...string) {
	m := c.getMetric(subsystem, metricName)
	if m == nil {
		return
	}

	if !m.labelsMatch(labelValues) {
		c.LogWarn("nothing incremented, label values and labels length mismatch", "metric", m.Name, "labelValues", labelValues, "labels", m.labels)

		return
	}

	m.increment(labelValues...)
}

// DeleteLabels deletes the metric with the given labels values.
func (c *Collector) DeleteLabels(subsystem string, metricName string, labelValues map[string]string) {
	if m := c.getMetric(subsystem, metricName); m != nil {
		m.deleteLabels(labelValues)
	}
}

// ResetMetric resets the metric with the given name.
func (c *Collector) ResetMetric(subsystem string, metricName string) {
	if m := c.getMetric(subsystem, metricName); m != nil {
		m.reset()
	}
}

// Shutdown runs the shutdown hooks of all metrics.
func (c *Collector) Shutdown() {
	for _, collection := range c.collections {
		for _, metric := range collection.metrics {
			if metric.shutdownFunc != nil {
				metric.shutdownFunc()
			}
		}
	}
}

func (c *Collector) update(m *Metric, metricValue float64, labelValues ...string) {
	if !m.labelsMatch(labelValues) {
		c.LogWarn("nothing updated, label values and labels length mismatch", "metric", m.Name, "labelValues", labelValues, "labels", m.labels)

		return
	}

	m.update(metricValue, labelValues...)
}

func (c *Collector) getMetric(subsystem string, metricName string) *Metric {
	col := c.getCollection(subsystem)
	if col != nil {
		return col.GetMetric(metricName)
	}

	return nil
}

func (c *Collector) getCollection(subsystem string) *Collection {
	if collection, exists := c.collections[subsystem]; exists {
		return collection
	}

	return nil
}
