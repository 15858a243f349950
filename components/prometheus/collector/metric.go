package collector

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iotaledger/hive.go/runtime/options"
)

type MetricType uint8

const (
	// Gauge is a metric that represents a single numerical value that can arbitrarily go up and down.
	// During metric Update the collected value is set, thus previous value is overwritten.
	Gauge MetricType = iota
	// Counter is a cumulative metric that represents a single numerical value that only ever goes up.
	// During metric Update the collected value is added to its current value.
	Counter
	// Histogram samples observations and counts them in configurable buckets.
	// During metric Update the collected value is observed.
	Histogram
)

// Metric is a single metric that will be registered to prometheus registry and collected with WithCollectFunc callback.
// Metrics that are driven by events use WithInitFunc to attach to the events and update the metric through the
// Collector instead.
type Metric struct {
	Name          string
	Type          MetricType
	Namespace     string
	help          string
	labels        []string
	buckets       []float64
	collectFunc   func() (value float64, labelValues []string)
	initValueFunc func() (value float64, labelValues []string)
	initFunc      func()
	shutdownFunc  func()

	promMetric   prometheus.Collector
	resetEnabled bool // if enabled metric will be reset before each collectFunction call

	once sync.Once
}

// NewMetric creates a new metric with given name and options.
func NewMetric(name string, opts ...options.Option[Metric]) *Metric {
	return options.Apply(&Metric{
		Name: name,
	}, opts)
}

func (m *Metric) initPromMetric() {
	m.once.Do(func() {
		m.promMetric = m.newPromMetric()
	})
}

func (m *Metric) newPromMetric() prometheus.Collector {
	switch m.Type {
	case Counter:
		opts := prometheus.CounterOpts{Name: m.Name, Namespace: m.Namespace, Help: m.help}
		if len(m.labels) > 0 {
			return prometheus.NewCounterVec(opts, m.labels)
		}

		return prometheus.NewCounter(opts)
	case Histogram:
		opts := prometheus.HistogramOpts{Name: m.Name, Namespace: m.Namespace, Help: m.help, Buckets: m.buckets}
		if len(m.labels) > 0 {
			return prometheus.NewHistogramVec(opts, m.labels)
		}

		return prometheus.NewHistogram(opts)
	default:
		opts := prometheus.GaugeOpts{Name: m.Name, Namespace: m.Namespace, Help: m.help}
		if len(m.labels) > 0 {
			return prometheus.NewGaugeVec(opts, m.labels)
		}

		return prometheus.NewGauge(opts)
	}
}

func (m *Metric) labelsMatch(labelValues []string) bool {
	return len(labelValues) == len(m.labels)
}

func (m *Metric) update(value float64, labelValues ...string) {
	switch metric := m.promMetric.(type) {
	case prometheus.Gauge:
		metric.Set(value)
	case *prometheus.GaugeVec:
		metric.WithLabelValues(labelValues...).Set(value)
	case prometheus.Counter:
		metric.Add(value)
	case *prometheus.CounterVec:
		metric.WithLabelValues(labelValues...).Add(value)
	case prometheus.Histogram:
		metric.Observe(value)
	case *prometheus.HistogramVec:
		metric.WithLabelValues(labelValues...).Observe(value)
	}
}

func (m *Metric) increment(labelValues ...string) {
	switch metric := m.promMetric.(type) {
	case prometheus.Gauge:
		metric.Inc()
	case *prometheus.GaugeVec:
		metric.WithLabelValues(labelValues...).Inc()
	case prometheus.Counter:
		metric.Inc()
	case *prometheus.CounterVec:
		metric.WithLabelValues(labelValues...).Inc()
	case prometheus.Histogram:
		metric.Observe(1)
	case *prometheus.HistogramVec:
		metric.WithLabelValues(labelValues...).Observe(1)
	}
}

// reset clears the labeled values of the metric. Unlabeled gauges are set to zero, unlabeled counters and
// histograms are registered collectors that can not be replaced, so they keep their value.
func (m *Metric) reset() {
	switch metric := m.promMetric.(type) {
	case prometheus.Gauge:
		metric.Set(0)
	case *prometheus.GaugeVec:
		metric.Reset()
	case *prometheus.CounterVec:
		metric.Reset()
	case *prometheus.HistogramVec:
		metric.Reset()
	}
}

// deleteLabels deletes the metric value matching the provided labels.
func (m *Metric) deleteLabels(labels map[string]string) {
	// We can only reset labels if we initialized this metric to have labels in the first place.
	if len(m.labels) == 0 || len(m.labels) != len(labels) {
		return
	}

	switch metric := m.promMetric.(type) {
	case *prometheus.GaugeVec:
		metric.Delete(labels)
	case *prometheus.CounterVec:
		metric.Delete(labels)
	case *prometheus.HistogramVec:
		metric.Delete(labels)
	}
}

// WithType sets the metric type: Gauge, Counter, Histogram.
func WithType(t MetricType) options.Option[Metric] {
	return func(m *Metric) {
		m.Type = t
	}
}

// WithHelp sets the help text for the metric.
func WithHelp(help string) options.Option[Metric] {
	return func(m *Metric) {
		m.help = help
	}
}

// WithLabels allows to define labels for the metric, they will need to be passed in the same order to the Update.
func WithLabels(labels ...string) options.Option[Metric] {
	return func(m *Metric) {
		m.labels = labels
	}
}

// WithBuckets sets the upper bounds of the buckets of a Histogram. The default buckets of prometheus are used if unset.
func WithBuckets(buckets ...float64) options.Option[Metric] {
	return func(m *Metric) {
		m.buckets = buckets
	}
}

// WithResetBeforeCollecting  if enabled there will be a reset call on metric before each collectFunction call.
func WithResetBeforeCollecting(resetEnabled bool) options.Option[Metric] {
	return func(m *Metric) {
		m.resetEnabled = resetEnabled
	}
}

// WithCollectFunc allows to define a function that will be called each time when prometheus will scrap the data.
// Should be used when metric value can be read at any time and we don't need to attach to an event.
func WithCollectFunc(collectFunc func() (metricValue float64, labelValues []string)) options.Option[Metric] {
	return func(m *Metric) {
		m.collectFunc = collectFunc
	}
}

// WithInitValueFunc allows to set function that sets an initial value for a metric.
func WithInitValueFunc(initValueFunc func() (metricValue float64, labelValues []string)) options.Option[Metric] {
	return func(m *Metric) {
		m.initValueFunc = initValueFunc
	}
}

// WithInitFunc allows to define a function that will be called once when metric is created. Should be used instead of WithCollectFunc
// when metric value needs to be collected on event. With this type of collection we need to make sure that we call one
// of update methods of collector e.g.: Increment, Update.
func WithInitFunc(initFunc func()) options.Option[Metric] {
	return func(m *Metric) {
		m.initFunc = initFunc
	}
}

// WithShutdownFunc allows to define a function that is called when the collector shuts down, e.g. to detach from
// the events WithInitFunc attached to.
func WithShutdownFunc(shutdownFunc func()) options.Option[Metric] {
	return func(m *Metric) {
		m.shutdownFunc = shutdownFunc
	}
}
