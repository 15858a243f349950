package restapi

import (
	"crypto/ed25519"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/crypto/pem"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/pkg/jwt"
	"github.com/iotaledger/identity-registry/pkg/restapi"
)

// JWTIssuer is the issuer and audience of the tokens of the REST API.
const JWTIssuer = "identity-registry"

func apiMiddleware() echo.MiddlewareFunc {
	publicRoutes, err := restapi.NewRouteMatcher(ParamsRestAPI.PublicRoutes)
	if err != nil {
		Component.LogFatal(err.Error())
	}

	exposedRoutes, err := restapi.NewRouteMatcher(ParamsRestAPI.PublicRoutes, ParamsRestAPI.ProtectedRoutes)
	if err != nil {
		Component.LogFatal(err.Error())
	}

	// reading routes are public, so the token is only verified for writing requests
	skipper := func(c echo.Context) bool {
		return c.Request().Method == echo.GET && publicRoutes.Matches(c.Request().URL.Path)
	}

	salt := ParamsRestAPI.JWTAuth.Salt
	if len(salt) == 0 {
		Component.LogFatalf("'%s' should not be empty", Component.App().Config().GetParameterPath(&(ParamsRestAPI.JWTAuth.Salt)))
	}

	signingKey, err := loadOrCreateSigningKey(ParamsRestAPI.JWTAuth.PrivateKeyPath)
	if err != nil {
		Component.LogPanicf("loading the JWT signing key failed: %s", err)
	}

	jwtAuth, err = jwt.NewAuth(salt, ParamsRestAPI.JWTAuth.SessionTimeout, JWTIssuer, signingKey)
	if err != nil {
		Component.LogPanicf("JWT auth initialization failed: %s", err)
	}

	jwtAllow := func(c echo.Context, claims *jwt.AuthClaims) bool {
		return exposedRoutes.Matches(c.Request().URL.Path) && (claims.Privileged || len(claims.Subject) > 0)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		jwtMiddlewareHandler := jwtAuth.Middleware(skipper, jwtAllow)(next)

		return func(c echo.Context) error {
			if exposedRoutes.Matches(c.Request().URL.Path) {
				return jwtMiddlewareHandler(c)
			}

			return echo.ErrForbidden
		}
	}
}

// loadOrCreateSigningKey reads the ed25519 private key at filePath and creates it if it does not exist.
func loadOrCreateSigningKey(filePath string) (ed25519.PrivateKey, error) {
	_, err := os.Stat(filePath)
	switch {
	case err == nil:
		return pem.ReadEd25519PrivateKeyFromPEMFile(filePath)

	case os.IsNotExist(err):
		_, privateKey, err := ed25519.GenerateKey(nil)
		if err != nil {
			return nil, ierrors.Wrap(err, "failed to generate signing key")
		}

		if err = pem.WriteEd25519PrivateKeyToPEMFile(filePath, privateKey); err != nil {
			return nil, ierrors.Wrapf(err, "failed to write signing key to %s", filePath)
		}
		Component.LogInfof("Generated a new JWT signing key in %s", filePath)

		return privateKey, nil

	default:
		return nil, ierrors.Wrapf(err, "unable to check signing key file (%s)", filePath)
	}
}
