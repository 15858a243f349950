package daemon

// Please add the dependencies if you add your own priority here.
// Otherwise investigating deadlocks at shutdown is much more complicated.

const (
	PriorityRegistry       = iota // no dependencies, closes the database
	PriorityMetricsTracker        // depends on Registry
	PriorityRestAPI               // depends on Registry
	PriorityMetrics               // depends on Registry, MetricsTracker
)
