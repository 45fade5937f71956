package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.morpionai.com/account/core"
)

func newUserFixture(t *testing.T) *UserServiceDefault {
	t.Helper()
	return NewUserService(newTestConfig(), newTestDB(t), newTestLogger())
}

func TestCreateAccountRejectsMalformedEmail(t *testing.T) {
	users := newUserFixture(t)

	_, err := users.CreateAccount("not-an-email", "alice", "password123", core.AccountKindEmail, "Alice", "Smith")
	require.Error(t, err)

	accErr := core.AsAccountError(err)
	require.NotNil(t, accErr)
	assert.True(t, accErr.IsErrorType(core.ErrKeyEmailInvalid))
}

func TestCreateAccountChecksSyntaxOnly(t *testing.T) {
	users := newUserFixture(t)

	// A well-formed address on an unresolvable domain must still insert;
	// creation never touches DNS.
	user, err := users.CreateAccount("alice@no-such-host.invalid", "alice", "password123", core.AccountKindEmail, "Alice", "Smith")
	require.NoError(t, err)
	assert.Equal(t, "alice@no-such-host.invalid", user.Email)
}

func TestUpdateEmailSameAddressRejected(t *testing.T) {
	users := newUserFixture(t)

	_, err := users.CreateAccount("alice@example.com", "alice", "password123", core.AccountKindEmail, "Alice", "Smith")
	require.NoError(t, err)

	_, err = users.UpdateEmail("alice@example.com", "alice@example.com")
	require.Error(t, err)

	accErr := core.AsAccountError(err)
	require.NotNil(t, accErr)
	assert.True(t, accErr.IsErrorType(core.ErrKeyUpdatingSameEmail))
}
