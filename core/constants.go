package core

// AccountKind is the authentication method an account was created with. It is
// fixed at creation; a login attempt with the other kind is rejected.
type AccountKind string

const (
	AccountKindEmail  AccountKind = "email"
	AccountKindGoogle AccountKind = "google"
)

func (k AccountKind) Valid() bool {
	return k == AccountKindEmail || k == AccountKindGoogle
}
