package jwt

import (
	"crypto/ed25519"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/blake2b"

	"github.com/iotaledger/hive.go/ierrors"
)

const (
	// ContextKeyClaims is the key under which the verified claims are stored in the echo context.
	ContextKeyClaims = "jwtClaims"

	authScheme = "Bearer"
)

var (
	ErrJWTInvalid = ierrors.New("invalid JWT")
	ErrJWTMissing = ierrors.New("missing or malformed JWT")
)

// AuthClaims are the claims of a token issued for the REST API. The subject is the hex encoded account the token
// acts for.
type AuthClaims struct {
	jwt.StandardClaims
	Privileged bool `json:"privileged,omitempty"`
}

// VerifySubject compares the subject of the claims with expected.
func (c *AuthClaims) VerifySubject(expected string) bool {
	return c.Subject == expected
}

type Auth struct {
	issuer         string
	sessionTimeout time.Duration
	secret         []byte
}

// NewAuth creates an Auth that signs tokens with a secret derived from the signing key and the salt. A zero
// sessionTimeout issues tokens that do not expire.
func NewAuth(salt string, sessionTimeout time.Duration, issuer string, signingKey ed25519.PrivateKey) (*Auth, error) {
	if len(salt) == 0 {
		return nil, ierrors.New("salt must not be empty")
	}
	if len(signingKey) != ed25519.PrivateKeySize {
		return nil, ierrors.Errorf("invalid signing key length: %d", len(signingKey))
	}

	secret := blake2b.Sum256(append(signingKey.Seed(), salt...))

	return &Auth{
		issuer:         issuer,
		sessionTimeout: sessionTimeout,
		secret:         secret[:],
	}, nil
}

// IssueJWT issues a token for the subject.
func (a *Auth) IssueJWT(subject string, privileged bool) (string, error) {
	now := time.Now()

	claims := &AuthClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			Issuer:    a.issuer,
			Audience:  a.issuer,
			IssuedAt:  now.Unix(),
			NotBefore: now.Unix(),
		},
		Privileged: privileged,
	}
	if a.sessionTimeout > 0 {
		claims.ExpiresAt = now.Add(a.sessionTimeout).Unix()
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// VerifyJWT parses the token and returns its claims if it was issued by this Auth and has not expired.
func (a *Auth) VerifyJWT(token string) (*AuthClaims, error) {
	parsedToken, err := jwt.ParseWithClaims(token, &AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierrors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return a.secret, nil
	})
	if err != nil {
		return nil, ierrors.Wrap(ErrJWTInvalid, err.Error())
	}

	claims, ok := parsedToken.Claims.(*AuthClaims)
	if !ok || !parsedToken.Valid {
		return nil, ErrJWTInvalid
	}

	if !claims.VerifyIssuer(a.issuer, true) || !claims.VerifyAudience(a.issuer, true) {
		return nil, ierrors.Wrap(ErrJWTInvalid, "issuer or audience mismatch")
	}

	return claims, nil
}

// Middleware verifies the bearer token of every request that is not skipped and stores its claims under
// ContextKeyClaims. Requests are rejected if allow returns false for the claims.
func (a *Auth) Middleware(skipper middleware.Skipper, allow func(c echo.Context, claims *AuthClaims) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return ierrors.Wrap(echo.ErrUnauthorized, err.Error())
			}

			claims, err := a.VerifyJWT(token)
			if err != nil {
				return ierrors.Wrap(echo.ErrUnauthorized, err.Error())
			}

			if allow != nil && !allow(c, claims) {
				return echo.ErrUnauthorized
			}

			c.Set(ContextKeyClaims, claims)

			return next(c)
		}
	}
}

// ClaimsFromContext returns the claims the middleware stored in the context.
func ClaimsFromContext(c echo.Context) (*AuthClaims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*AuthClaims)

	return claims, ok
}

func bearerToken(header string) (string, error) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, authScheme) || len(token) == 0 {
		return "", ErrJWTMissing
	}

	return token, nil
}
