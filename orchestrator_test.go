package auth_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/goliatone/go-airline-auth"
)

func newOrchestrator(repo auth.RepositoryManager) *auth.Orchestrator {
	tokens := newTestTokenService()
	hasher := newTestHasher()
	return auth.NewOrchestrator(
		auth.NewUserDirectory(repo, tokens, hasher),
		auth.NewTenantRegistry(repo, tokens, hasher),
		tokens,
	)
}

func TestOrchestratorRegisterAndLoginUser(t *testing.T) {
	ctx := context.Background()
	orch := newOrchestrator(newMemManager())

	registered, err := orch.RegisterUser(ctx, "u@x.com", "Ann", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", registered.User.Email)

	session, err := orch.LoginUser(ctx, "u@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.User, session.User)
}

func TestOrchestratorErrorsAreOperationErrors(t *testing.T) {
	ctx := context.Background()
	orch := newOrchestrator(newMemManager())

	_, err := orch.RegisterUser(ctx, "u@x.com", "Ann", "secret1")
	require.NoError(t, err)

	_, err = orch.RegisterUser(ctx, "u@x.com", "Ann", "secret1")
	require.Error(t, err)

	var opErr *auth.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, 400, opErr.Status)
	assert.Equal(t, auth.MsgUserExists, opErr.Message)

	_, err = orch.LoginUser(ctx, "u@x.com", "wrong")
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, 400, opErr.Status)
	assert.Equal(t, auth.MsgInvalidUserCredentials, opErr.Message)
}

func TestOrchestratorRegisterTenantAndLoginAdmin(t *testing.T) {
	ctx := context.Background()
	orch := newOrchestrator(newMemManager())

	registered, err := orch.RegisterTenant(ctx, tenantRegistrationFixture())
	require.NoError(t, err)
	assert.Equal(t, "skyline", registered.User.Airline.Alias)

	session, err := orch.LoginAdmin(ctx, "a@x.com", "Abcdef12")
	require.NoError(t, err)
	assert.Equal(t, registered.User, session.User)

	var opErr *auth.OperationError
	_, err = orch.LoginAdmin(ctx, "a@x.com", "wrong")
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, 400, opErr.Status)
	assert.Equal(t, auth.MsgInvalidAdminCredentials, opErr.Message)
}

func TestOrchestratorVerifyTokenRefreshes(t *testing.T) {
	ctx := context.Background()
	orch := newOrchestrator(newMemManager())

	session, err := orch.RegisterUser(ctx, "u@x.com", "Ann", "secret1")
	require.NoError(t, err)

	verified, err := orch.VerifyToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User, verified.User)
	assert.NotEmpty(t, verified.Token)

	// the refreshed token is itself verifiable and carries the same
	// identity
	again, err := orch.VerifyToken(ctx, verified.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User, again.User)
}

func TestOrchestratorVerifyTokenInvalid(t *testing.T) {
	ctx := context.Background()
	orch := newOrchestrator(newMemManager())

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verified, err := orch.VerifyToken(ctx, tt.token)
			assert.Nil(t, verified)

			var opErr *auth.OperationError
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, 401, opErr.Status)
			assert.Equal(t, auth.MsgInvalidToken, opErr.Message)
		})
	}
}

func TestAsOperationError(t *testing.T) {
	assert.Nil(t, auth.AsOperationError(nil))

	passthrough := &auth.OperationError{Status: 418, Message: "teapot"}
	assert.Same(t, passthrough, auth.AsOperationError(passthrough))

	opErr := auth.AsOperationError(auth.ErrInvalidToken)
	assert.Equal(t, 401, opErr.Status)
	assert.Equal(t, auth.MsgInvalidToken, opErr.Message)

	opErr = auth.AsOperationError(auth.ErrUserExists)
	assert.Equal(t, 400, opErr.Status)
	assert.Equal(t, auth.MsgUserExists, opErr.Message)

	opErr = auth.AsOperationError(goerrors.New("boom", goerrors.CategoryInternal))
	assert.Equal(t, 400, opErr.Status)
	assert.Equal(t, "boom", opErr.Message)

	opErr = auth.AsOperationError(errors.New("plain failure"))
	assert.Equal(t, 400, opErr.Status)
	assert.Equal(t, "plain failure", opErr.Message)
}
