package metricstracker

import (
	"context"

	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/hive.go/runtime/timeutil"
	"github.com/iotaledger/identity-registry/pkg/daemon"
	"github.com/iotaledger/identity-registry/pkg/identity"
)

func init() {
	Component = &app.Component{
		Name:     "MetricsTracker",
		DepsFunc: func(cDeps dependencies) { deps = cDeps },
		Params:   params,
		Provide:  provide,
		Run:      run,
		IsEnabled: func(_ *dig.Container) bool {
			return ParamsMetricsTracker.Enabled
		},
	}
}

var (
	Component *app.Component
	deps      dependencies
)

type dependencies struct {
	dig.In
	Registry       *identity.Registry
	MetricsTracker *MetricsTracker
}

func provide(c *dig.Container) error {
	if err := c.Provide(New); err != nil {
		Component.LogPanic(err.Error())
	}

	return nil
}

func run() error {
	Component.LogInfo("Starting Metrics Tracker ...")

	if err := Component.Daemon().BackgroundWorker("Metrics Tracker", func(ctx context.Context) {
		Component.LogInfo("Starting Metrics Tracker ... done")

		unhook := deps.MetricsTracker.Hook(deps.Registry.Events)

		ticker := timeutil.NewTicker(deps.MetricsTracker.measure, ParamsMetricsTracker.Interval, ctx)
		ticker.WaitForGracefulShutdown()

		Component.LogInfo("Stopping Metrics Tracker ...")

		unhook()

		Component.LogInfo("Stopping Metrics Tracker ... done")
	}, daemon.PriorityMetricsTracker); err != nil {
		Component.LogPanicf("failed to start worker: %s", err)
	}

	return nil
}
