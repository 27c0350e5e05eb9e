package auth_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/goliatone/go-airline-auth"
)

func newUserDirectory(repo auth.RepositoryManager) *auth.UserDirectory {
	return auth.NewUserDirectory(repo, newTestTokenService(), newTestHasher())
}

func TestUserDirectoryRegister(t *testing.T) {
	ctx := context.Background()
	repo := newMemManager()
	dir := newUserDirectory(repo)

	session, err := dir.Register(ctx, "u@x.com", "Ann", "secret1")
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.Equal(t, "u@x.com", session.User.Email)
	assert.Equal(t, "Ann", session.User.Name)
	assert.NotEmpty(t, session.User.ID)
	assert.NotEmpty(t, session.Token)

	claims, err := newTestTokenService().Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User, claims)

	// the stored record carries a digest, never the input
	require.Len(t, repo.users, 1)
	assert.NotEqual(t, "secret1", repo.users[0].PasswordHash)
	assert.NotEmpty(t, repo.users[0].PasswordHash)
}

func TestUserDirectoryRegisterSessionNeverExposesPassword(t *testing.T) {
	ctx := context.Background()
	dir := newUserDirectory(newMemManager())

	session, err := dir.Register(ctx, "u@x.com", "Ann", "secret1")
	require.NoError(t, err)

	raw, err := json.Marshal(session)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret1")
	assert.NotContains(t, string(raw), "password")
}

func TestUserDirectoryRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	dir := newUserDirectory(newMemManager())

	_, err := dir.Register(ctx, "u@x.com", "Ann", "secret1")
	require.NoError(t, err)

	session, err := dir.Register(ctx, "u@x.com", "Someone Else", "another2")
	assert.Nil(t, session)
	assert.ErrorIs(t, err, auth.ErrUserExists)
	assert.EqualError(t, err, auth.MsgUserExists)
}

func TestUserDirectoryLogin(t *testing.T) {
	ctx := context.Background()
	dir := newUserDirectory(newMemManager())

	registered, err := dir.Register(ctx, "u@x.com", "Ann", "secret1")
	require.NoError(t, err)

	session, err := dir.Login(ctx, "u@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.User, session.User)
	assert.NotEmpty(t, session.Token)
}

func TestUserDirectoryLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	dir := newUserDirectory(newMemManager())

	_, err := dir.Register(ctx, "u@x.com", "Ann", "secret1")
	require.NoError(t, err)

	_, wrongPassword := dir.Login(ctx, "u@x.com", "not-it")
	_, unknownEmail := dir.Login(ctx, "nobody@x.com", "secret1")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.ErrorIs(t, wrongPassword, auth.ErrInvalidUserCredentials)
	assert.ErrorIs(t, unknownEmail, auth.ErrInvalidUserCredentials)
}

func TestUserDirectoryDeterministicIDs(t *testing.T) {
	ctx := context.Background()
	dir := newUserDirectory(newMemManager()).WithDeterministicIDs()

	session, err := dir.Register(ctx, "u@x.com", "Ann", "secret1")
	require.NoError(t, err)

	want, err := hashid.NewUUID("u@x.com")
	require.NoError(t, err)
	assert.Equal(t, want.String(), session.User.ID)
}
