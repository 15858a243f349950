package restapi

import (
	"time"

	"github.com/iotaledger/hive.go/app"
)

// ParametersRestAPI contains the definition of the parameters used by the REST API of the registry.
type ParametersRestAPI struct {
	Enabled     bool   `default:"true" usage:"whether the REST API of the registry is enabled"`
	BindAddress string `default:"0.0.0.0:8080" usage:"the bind address of the REST API"`
	// PublicRoutes can be read without a token. Writing to them still requires one.
	PublicRoutes []string `usage:"the routes that can be read without a token, * matches any suffix"`
	// ProtectedRoutes require a token for every request.
	ProtectedRoutes           []string `usage:"the routes that require a token for every request, * matches any suffix"`
	DebugRequestLoggerEnabled bool     `default:"false" usage:"whether requests are logged at debug level"`

	JWTAuth struct {
		// Salt is mixed into the token secret. Changing it invalidates all issued tokens.
		Salt           string        `default:"IOTA" usage:"the salt of the token secret, changing it invalidates all issued tokens"`
		PrivateKeyPath string        `default:"identity.key" usage:"the path of the ed25519 key the token secret is derived from, created if missing"`
		SessionTimeout time.Duration `default:"0s" usage:"how long issued tokens are valid, 0s issues tokens that do not expire"`
	} `name:"jwtAuth"`

	Limits struct {
		MaxBodyLength string `default:"1M" usage:"the maximum size of a request body"`
	}
}

var ParamsRestAPI = &ParametersRestAPI{
	PublicRoutes: []string{
		"/health",
		"/api/routes",
		"/api/registry/v1/info",
		"/api/registry/v1/identities*",
		"/api/registry/v1/balances*",
	},
	ProtectedRoutes: []string{
		"/api/*",
	},
}

var params = &app.ComponentParams{
	Params: map[string]any{
		"restAPI": ParamsRestAPI,
	},
	Masked: []string{"restAPI.jwtAuth.salt"},
}
