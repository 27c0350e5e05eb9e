package auth_test

import (
	"errors"
	"fmt"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/goliatone/go-airline-auth"
)

func TestDuplicateErrorMessages(t *testing.T) {
	assert.EqualError(t,
		auth.NewDuplicateAliasError("skyline"),
		"Ya existe una aerolínea con el alias: skyline")
	assert.EqualError(t,
		auth.NewDuplicateAirlineEmailError("ops@skyline.io"),
		"Ya existe una aerolínea registrada con el email: ops@skyline.io")
	assert.EqualError(t,
		auth.NewDuplicateAdminEmailError("a@x.com"),
		"Ya existe un administrador con el email: a@x.com")
}

func TestDuplicateErrorsCarryMetadata(t *testing.T) {
	err := auth.NewDuplicateAliasError("skyline")
	require.Equal(t, goerrors.CategoryConflict, err.Category)
	assert.Equal(t, "DUPLICATE_ALIAS", err.TextCode)
	assert.Equal(t, "skyline", err.Metadata["alias"])
}

func TestInvalidTokenErrorShape(t *testing.T) {
	var richErr *goerrors.Error
	require.True(t, goerrors.As(auth.ErrInvalidToken, &richErr))
	assert.Equal(t, "INVALID_TOKEN", richErr.TextCode)
	assert.Equal(t, auth.MsgInvalidToken, richErr.Message)
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil",
			err:  nil,
			want: false,
		},
		{
			name: "sqlite unique violation",
			err:  errors.New("UNIQUE constraint failed: airlines.alias"),
			want: true,
		},
		{
			name: "postgres unique violation",
			err:  errors.New(`duplicate key value violates unique constraint "airlines_alias_key"`),
			want: true,
		},
		{
			name: "wrapped violation",
			err:  fmt.Errorf("insert failed: %w", errors.New("UNIQUE constraint failed: users.email")),
			want: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("disk I/O error"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.IsUniqueViolation(tt.err))
		})
	}
}
