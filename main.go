package main

import (
	"github.com/iotaledger/identity-registry/components/app"
	"github.com/iotaledger/identity-registry/pkg/toolset"
)

func main() {
	if toolset.ShouldHandleTools() {
		toolset.HandleTools()
	}

	app.App().Run()
}
