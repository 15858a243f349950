package prometheus

// prometheus is the component responsible for the collection of prometheus metrics.
// All metrics should be defined in metrics_namespace.go files with a different namespace for each collection.
// Metrics naming should follow the guidelines from: https://prometheus.io/docs/practices/naming/
// In short:
// 	all metrics should be in base units, do not mix units,
// 	add suffix describing the unit,
// 	use 'total' suffix for accumulating counter

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/components/metricstracker"
	"github.com/iotaledger/identity-registry/components/prometheus/collector"
	"github.com/iotaledger/identity-registry/pkg/balances"
	"github.com/iotaledger/identity-registry/pkg/daemon"
	"github.com/iotaledger/identity-registry/pkg/identity"
	"github.com/iotaledger/identity-registry/pkg/storage"
)

func init() {
	Component = &app.Component{
		Name:     "Prometheus",
		DepsFunc: func(cDeps dependencies) { deps = cDeps },
		Params:   params,
		Run:      run,
		IsEnabled: func(container *dig.Container) bool {
			if err := container.Provide(createCollector); err != nil {
				panic(ierrors.Wrap(err, "failed to provide collector"))
			}

			return ParamsPrometheus.Enabled
		},
	}
}

var (
	Component *app.Component
	deps      dependencies

	server *http.Server
)

type dependencies struct {
	dig.In

	AppInfo        *app.Info
	Storage        *storage.Storage
	Ledger         *balances.Ledger
	Registry       *identity.Registry
	MetricsTracker *metricstracker.MetricsTracker `optional:"true"`

	Collector *collector.Collector
}

func run() error {
	Component.LogInfo("Starting Prometheus exporter ...")

	if ParamsPrometheus.GoMetrics {
		deps.Collector.Registry.MustRegister(collectors.NewGoCollector())
	}
	if ParamsPrometheus.ProcessMetrics {
		deps.Collector.Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	registerMetrics()

	return Component.Daemon().BackgroundWorker("Prometheus exporter", func(ctx context.Context) {
		Component.LogInfo("Starting Prometheus exporter ... done")

		engine := echo.New()
		engine.HideBanner = true
		engine.Use(middleware.Recover())

		engine.GET("/metrics", func(c echo.Context) error {
			deps.Collector.Collect()

			handler := promhttp.HandlerFor(
				deps.Collector.Registry,
				promhttp.HandlerOpts{
					EnableOpenMetrics: true,
				},
			)
			if ParamsPrometheus.PromhttpMetrics {
				handler = promhttp.InstrumentMetricHandler(deps.Collector.Registry, handler)
			}
			handler.ServeHTTP(c.Response().Writer, c.Request())

			return nil
		})
		bindAddr := ParamsPrometheus.BindAddress
		server = &http.Server{Addr: bindAddr, Handler: engine, ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second}

		go func() {
			Component.LogInfof("You can now access the Prometheus exporter using: http://%s/metrics", bindAddr)
			if err := server.ListenAndServe(); err != nil && !ierrors.Is(err, http.ErrServerClosed) {
				Component.LogError("Stopping Prometheus exporter due to an error ... done")
			}
		}()

		<-ctx.Done()
		Component.LogInfo("Stopping Prometheus exporter ...")

		if server != nil {
			//nolint:contextcheck // false positive
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := server.Shutdown(shutdownCtx); err != nil {
				Component.LogError(err.Error())
			}
			cancel()
		}
		deps.Collector.Shutdown()

		Component.LogInfo("Stopping Prometheus exporter ... done")
	}, daemon.PriorityMetrics)
}

func createCollector() *collector.Collector {
	return collector.New(Component.Logger)
}

func registerMetrics() {
	deps.Collector.RegisterCollection(InfoMetrics)

	if ParamsPrometheus.RegistryMetrics {
		deps.Collector.RegisterCollection(RegistryMetrics)
	}
	if ParamsPrometheus.BalanceMetrics {
		deps.Collector.RegisterCollection(BalanceMetrics)
	}
	if ParamsPrometheus.DBMetrics {
		deps.Collector.RegisterCollection(DBMetrics)
	}
}
