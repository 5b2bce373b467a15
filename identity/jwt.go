package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// tokenContextKey carries the raw bearer token through a request context.
type tokenContextKey struct{}

// ContextWithToken attaches a raw bearer token to the context.
// The HTTP layer calls this from its auth middleware.
func ContextWithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext returns the bearer token attached to the context, or "".
func TokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(tokenContextKey{}).(string)
	return tok
}

// TokenSource yields the caller's raw token for a given context.
type TokenSource func(ctx context.Context) string

// JWTProvider verifies HMAC-signed session tokens locally. The identity
// service signs tokens with a shared secret; `sub` carries the user id and
// `role` the routing hint.
type JWTProvider struct {
	secret []byte
	source TokenSource
}

// NewJWTProvider creates a provider reading tokens via source.
// A nil source falls back to TokenFromContext.
func NewJWTProvider(secret []byte, source TokenSource) *JWTProvider {
	if source == nil {
		source = TokenFromContext
	}
	return &JWTProvider{secret: secret, source: source}
}

// CurrentUser parses and verifies the caller's token. A missing, expired or
// otherwise invalid token is "no session", not a fault.
func (p *JWTProvider) CurrentUser(ctx context.Context) (*Session, error) {
	raw := p.source(ctx)
	if raw == "" {
		return nil, nil
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, nil
	}

	sub := stringClaim(claims, "sub")
	if sub == "" {
		return nil, nil
	}

	return &Session{
		UserID: UserID(sub),
		Role:   Role(stringClaim(claims, "role")),
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key]; ok {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}
