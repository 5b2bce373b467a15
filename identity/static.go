package identity

import "context"

// Static is a Provider that always answers with the same session.
// Used by tests and the -dev-user server mode. A nil Session means
// every caller is unauthenticated.
type Static struct {
	Session *Session
}

func (s Static) CurrentUser(_ context.Context) (*Session, error) {
	return s.Session, nil
}

// StaticSeller returns a Static provider for a seller with the given id.
func StaticSeller(id UserID) Static {
	return Static{Session: &Session{UserID: id, Role: RoleSeller}}
}
