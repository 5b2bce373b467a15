package identity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/seller-core/identity"
)

var testSecret = []byte("test-secret-do-not-ship")

// signToken builds an HMAC token the way the identity service does.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

// =============================================================================
// RESOLVER
// =============================================================================

func TestResolver_NoSessionFailsClosed(t *testing.T) {
	// GIVEN: A provider reporting no session
	// WHEN: The caller is resolved
	// THEN: ErrUnauthenticated, never an empty id with a nil error

	r := identity.NewResolver(identity.Static{})

	uid, err := r.Resolve(context.Background())
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)
	assert.Empty(t, uid)
}

func TestResolver_EmptyUserIDFailsClosed(t *testing.T) {
	// A session with a blank user id is as good as no session: letting it
	// through would turn owner-scoped filters into unscoped ones.
	r := identity.NewResolver(identity.Static{Session: &identity.Session{UserID: ""}})

	_, err := r.Resolve(context.Background())
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)
}

func TestResolver_ProviderFaultIsNotUnauthenticated(t *testing.T) {
	fault := errors.New("identity service unreachable")
	r := identity.NewResolver(faultProvider{err: fault})

	_, err := r.Resolve(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, identity.ErrUnauthenticated)
}

type faultProvider struct{ err error }

func (f faultProvider) CurrentUser(context.Context) (*identity.Session, error) {
	return nil, f.err
}

// =============================================================================
// JWT PROVIDER
// =============================================================================

func TestJWTProvider_ValidToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":  "seller-42",
		"role": "seller",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	ctx := identity.ContextWithToken(context.Background(), token)

	r := identity.NewResolver(identity.NewJWTProvider(testSecret, nil))
	sess, err := r.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, identity.UserID("seller-42"), sess.UserID)
	assert.Equal(t, identity.RoleSeller, sess.Role)
}

func TestJWTProvider_NoTokenMeansNoSession(t *testing.T) {
	r := identity.NewResolver(identity.NewJWTProvider(testSecret, nil))

	_, err := r.Current(context.Background())
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)
}

func TestJWTProvider_BadTokensMeanNoSession(t *testing.T) {
	// An invalid token is "no session", not a provider fault: garbage in a
	// header must not surface as a 5xx.
	expired := signToken(t, jwt.MapClaims{
		"sub": "seller-42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := func() string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "seller-42"})
		signed, err := tok.SignedString([]byte("some-other-secret"))
		require.NoError(t, err)
		return signed
	}()
	missingSub := signToken(t, jwt.MapClaims{
		"role": "seller",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"expired", expired},
		{"wrong key", wrongKey},
		{"missing sub", missingSub},
	}

	r := identity.NewResolver(identity.NewJWTProvider(testSecret, nil))
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := identity.ContextWithToken(context.Background(), tc.token)
			_, err := r.Current(ctx)
			assert.ErrorIs(t, err, identity.ErrUnauthenticated)
		})
	}
}

// =============================================================================
// ROLE ROUTING
// =============================================================================

func TestLandingPath(t *testing.T) {
	assert.Equal(t, "/seller/dashboard", identity.LandingPath(identity.RoleSeller))
	assert.Equal(t, "/admin", identity.LandingPath(identity.RoleAdmin))
	assert.Equal(t, "/", identity.LandingPath(identity.RoleBuyer))
	assert.Equal(t, "/", identity.LandingPath(identity.Role("unknown")), "unknown hints land on the storefront")
}
