package localidentity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain/identity"
	localidentity "staybook/internal/infra/identity"
)

func TestRegisterLoginAuthenticate(t *testing.T) {
	ctx := context.Background()
	gate := localidentity.NewGate()

	id, err := gate.Register(ctx, "host@example.com", "s3cret", identity.GroupHosts)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	token, err := gate.Login(ctx, "host@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	who, err := gate.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, id, who.ID)
	assert.True(t, who.InGroup(identity.GroupHosts))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	gate := localidentity.NewGate()

	_, err := gate.Register(ctx, "guest@example.com", "pw")
	require.NoError(t, err)

	_, err = gate.Register(ctx, "Guest@Example.com", "pw2")
	assert.ErrorIs(t, err, localidentity.ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	gate := localidentity.NewGate()

	_, err := gate.Register(ctx, "guest@example.com", "pw")
	require.NoError(t, err)

	_, err = gate.Login(ctx, "guest@example.com", "nope")
	assert.ErrorIs(t, err, localidentity.ErrBadPassword)

	_, err = gate.Login(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, localidentity.ErrBadPassword)
}

func TestAuthenticateRejectsUnknownToken(t *testing.T) {
	ctx := context.Background()
	gate := localidentity.NewGate()

	_, err := gate.Authenticate(ctx, "")
	assert.ErrorIs(t, err, identity.ErrCredentialRequired)

	_, err = gate.Authenticate(ctx, "bogus")
	assert.ErrorIs(t, err, identity.ErrInvalidCredential)
}
