package services

import (
	"context"
	"testing"

	"github.com/careercompass/api/internal/auth"
	"github.com/careercompass/api/internal/models"
	"github.com/careercompass/api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	tokens := auth.NewMockTokens("test-secret-123")
	svc := NewAuthService(newFakeUserRepo(), tokens)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{FullName: " Ada Lovelace ", Email: "Ada@Example.com", Password: "engine-no-1"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", reg.User.Email)
	assert.Equal(t, "Ada Lovelace", reg.User.FullName)
	assert.Equal(t, models.RoleUser, reg.User.Role)
	assert.NotEqual(t, "engine-no-1", reg.User.PasswordHash)

	id, err := tokens.Verify(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, id.Subject)
	assert.Equal(t, auth.KindMock, id.Kind)

	login, err := svc.Login(ctx, "ada@example.com", "engine-no-1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), auth.NewMockTokens("test-secret-123"))
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{FullName: "Ada", Email: "ada@example.com", Password: "engine-no-1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{FullName: "Ada", Email: "ADA@example.com", Password: "engine-no-2"})
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
	assert.Contains(t, err.Error(), "An account with this email already exists")
}

func TestLoginFailures(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, auth.NewMockTokens("test-secret-123"))
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{FullName: "Ada", Email: "ada@example.com", Password: "engine-no-1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ada@example.com", "wrong-password")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	_, err = svc.Login(ctx, "nobody@example.com", "engine-no-1")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	assert.Contains(t, err.Error(), "Invalid email or password")

	users.users["ada@example.com"].IsActive = false
	_, err = svc.Login(ctx, "ada@example.com", "engine-no-1")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}
