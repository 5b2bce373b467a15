/*
Package identity resolves "who is acting" for every record operation.

PURPOSE:
  Wraps the external identity provider behind a small Provider interface
  and a Resolver that FAILS CLOSED: no valid session means an error, never
  an empty user id. An empty owner id leaking into a store filter would
  turn an owner-scoped query into an unscoped one, so the Resolver is the
  only place allowed to decide that a caller is authenticated.

ROLE HINTS:
  Sessions carry a role hint (buyer/seller/admin). It is routing metadata
  for the post-login landing page only. Authorization inside the core is
  ownership-based, never role-based.

PROVIDERS:
  - jwt.go:    HMAC-verified bearer tokens (production)
  - static.go: Fixed session (tests, development)

SEE ALSO:
  - record/repository.go: Consumes the Resolver on every operation
*/
package identity

import (
	"context"
	"errors"
)

// UserID identifies an authenticated user.
type UserID string

// Role is a post-login routing hint. Never used for authorization.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Session is the identity provider's answer for the current caller.
type Session struct {
	UserID UserID
	Role   Role
}

// ErrUnauthenticated is returned by Resolve when no valid session exists.
// Callers MUST treat this as terminal for any record-scoped operation.
var ErrUnauthenticated = errors.New("unauthenticated")

// Provider is the external identity collaborator. A (nil, nil) return means
// "no session"; a non-nil error means the provider itself is unreachable and
// propagates to the top-level boundary as a fault.
type Provider interface {
	CurrentUser(ctx context.Context) (*Session, error)
}

// Resolver resolves the acting user, failing closed.
type Resolver struct {
	provider Provider
}

func NewResolver(p Provider) *Resolver {
	return &Resolver{provider: p}
}

// Resolve returns the current user's id or ErrUnauthenticated.
// It never returns an empty id with a nil error.
func (r *Resolver) Resolve(ctx context.Context) (UserID, error) {
	sess, err := r.Current(ctx)
	if err != nil {
		return "", err
	}
	return sess.UserID, nil
}

// Current returns the full session, including the role hint.
func (r *Resolver) Current(ctx context.Context) (*Session, error) {
	sess, err := r.provider.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.UserID == "" {
		return nil, ErrUnauthenticated
	}
	return sess, nil
}

// LandingPath maps a role hint to its post-login landing page.
// Unknown hints land on the buyer storefront.
func LandingPath(role Role) string {
	switch role {
	case RoleSeller:
		return "/seller/dashboard"
	case RoleAdmin:
		return "/admin"
	default:
		return "/"
	}
}
