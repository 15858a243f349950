package metricstracker

import (
	"time"

	"github.com/iotaledger/hive.go/app"
)

// ParametersMetricsTracker contains the definition of the parameters used by Metrics Tracker.
type ParametersMetricsTracker struct {
	// Enabled defines whether the Metrics Tracker component is enabled.
	Enabled bool `default:"true" usage:"whether the Metrics Tracker component is enabled"`
	// Interval defines how often the rates are measured.
	Interval time.Duration `default:"10s" usage:"the interval in which the operation rates are measured"`
}

var ParamsMetricsTracker = &ParametersMetricsTracker{}

var params = &app.ComponentParams{
	Params: map[string]any{
		"metricsTracker": ParamsMetricsTracker,
	},
}
