package core

import (
	"context"
)

// OTPService issues and validates short-lived numeric codes for out-of-band
// email verification before account creation. The code travels only over the
// email side channel; the caller gets an opaque token id to hand back
// together with the code the user typed.
type OTPService interface {
	// Generate creates a 6-digit code keyed by a fresh token id, persists
	// it, and emails the code to the address. Only the token id is
	// returned.
	Generate(ctx context.Context, email string) (string, error)

	// Validate reports whether the token id and code pair exactly matches
	// an issued, unexpired record. A matching record is consumed.
	Validate(tokenID string, code string) (bool, error)

	// RequestAccount rejects already-registered emails before issuing a
	// verification code.
	RequestAccount(ctx context.Context, email string) (string, error)

	// RevokeForEmail discards every outstanding code issued to the address.
	RevokeForEmail(email string) error
}
