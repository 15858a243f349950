package app

import (
	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/hive.go/app/components/profiling"
	"github.com/iotaledger/hive.go/app/components/shutdown"
	"github.com/iotaledger/identity-registry/components/metricstracker"
	"github.com/iotaledger/identity-registry/components/prometheus"
	"github.com/iotaledger/identity-registry/components/registry"
	"github.com/iotaledger/identity-registry/components/registryapi"
	"github.com/iotaledger/identity-registry/components/restapi"
)

var (
	// Name of the app.
	Name = "identity-registry"

	// Version of the app.
	Version = "0.1.0"
)

func App() *app.App {
	return app.New(Name, Version,
		app.WithInitComponent(InitComponent),
		app.WithComponents(
			shutdown.Component,
			profiling.Component,
			registry.Component,
			metricstracker.Component,
			restapi.Component,
			registryapi.Component,
			prometheus.Component,
		),
	)
}

var InitComponent *app.InitComponent

func init() {
	InitComponent = &app.InitComponent{
		Component: &app.Component{
			Name: "App",
		},
		NonHiddenFlags: []string{
			"config",
			"help",
			"version",
		},
	}
}
