// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/templates/records-api/internal/config"
	"github.com/carterperez-dev/templates/records-api/internal/core"
	"github.com/carterperez-dev/templates/records-api/internal/middleware"
)

const (
	minSecretLength = 32
	emailClaim      = "email"
)

type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
	TTL       time.Duration
}

// TokenIssuer signs HS256 access tokens with a process-wide secret. Tokens
// carry no server-side state and cannot be revoked before they expire.
type TokenIssuer struct {
	key    jwk.Key
	config config.JWTConfig
	now    func() time.Time
}

func NewTokenIssuer(cfg config.JWTConfig) (*TokenIssuer, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, fmt.Errorf(
			"jwt secret must be at least %d bytes: %w",
			minSecretLength,
			core.ErrInvalidInput,
		)
	}

	if cfg.AccessTokenExpire <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive: %w", core.ErrInvalidInput)
	}

	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import signing key: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return &TokenIssuer{key: key, config: cfg, now: time.Now}, nil
}

func (i *TokenIssuer) Issue(accountID, email string) (*IssuedToken, error) {
	now := i.now()
	expiresAt := now.Add(i.config.AccessTokenExpire)

	token, err := jwt.NewBuilder().
		JwtID(uuid.NewString()).
		Issuer(i.config.Issuer).
		Audience([]string{i.config.Audience}).
		Subject(accountID).
		IssuedAt(now).
		NotBefore(now).
		Expiration(expiresAt).
		Claim(emailClaim, email).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), i.key))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &IssuedToken{
		Token:     string(signed),
		ExpiresAt: expiresAt,
		TTL:       i.config.AccessTokenExpire,
	}, nil
}

// VerifyAccessToken checks signature, issuer, audience and time claims. It
// serves the request guard only.
func (i *TokenIssuer) VerifyAccessToken(
	_ context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), i.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(i.config.Issuer),
		jwt.WithAudience(i.config.Audience),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	var email string
	if err := token.Get(emailClaim, &email); err != nil {
		return nil, fmt.Errorf(
			"verify token: missing email claim: %w",
			core.ErrTokenInvalid,
		)
	}

	return &middleware.AccessTokenClaims{
		UserID: subject,
		Email:  email,
	}, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}
