package prometheus

import (
	"github.com/iotaledger/hive.go/app"
)

// ParametersPrometheus contains the definition of the parameters used by the Prometheus exporter of the registry.
type ParametersPrometheus struct {
	Enabled     bool   `default:"true" usage:"whether the Prometheus exporter of the registry is enabled"`
	BindAddress string `default:"0.0.0.0:9311" usage:"the bind address of the Prometheus exporter"`

	// RegistryMetrics defines whether identity and operation metrics are exported.
	RegistryMetrics bool `default:"true" usage:"export identity, judgement and operation metrics"`
	// BalanceMetrics defines whether the total issuance and the minimum balance are exported.
	BalanceMetrics bool `default:"true" usage:"export balance ledger metrics"`
	DBMetrics      bool `default:"true" usage:"export the size of the registry database"`

	GoMetrics       bool `default:"false" usage:"include go metrics"`
	ProcessMetrics  bool `default:"false" usage:"include process metrics"`
	PromhttpMetrics bool `default:"false" usage:"include promhttp metrics"`
}

var ParamsPrometheus = &ParametersPrometheus{}

var params = &app.ComponentParams{
	Params: map[string]any{
		"prometheus": ParamsPrometheus,
	},
}
