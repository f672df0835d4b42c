package user

import (
	"context"
	"testing"

	"detailing/database/repository/memory"
	"detailing/models"
	"detailing/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := &DefaultUserService{Repo: memory.NewUserRepo(), AdminEmails: []string{"owner@example.com"}}

	resp, err := svc.RegisterUser(ctx, models.RegisterRequest{Name: "Sam", Email: " Sam@Example.com ", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, resp.Role)
	assert.NotEmpty(t, resp.Token)

	claims, err := utils.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, claims.UserID)

	_, err = svc.RegisterUser(ctx, models.RegisterRequest{Email: "sam@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.AuthenticateUser(ctx, "sam@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.AuthenticateUser(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	auth, err := svc.AuthenticateUser(ctx, "sam@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, resp.ID, auth.ID)

	u, err := svc.GetUserByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", u.Email)
	assert.NotEqual(t, "hunter22", u.PasswordHash)
}

func TestRegister_AdminEmails(t *testing.T) {
	svc := &DefaultUserService{Repo: memory.NewUserRepo(), AdminEmails: []string{" Owner@Example.com"}}
	resp, err := svc.RegisterUser(context.Background(), models.RegisterRequest{Email: "owner@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.Role)
}

func TestGetUserByID_NotFound(t *testing.T) {
	svc := &DefaultUserService{Repo: memory.NewUserRepo()}
	_, err := svc.GetUserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
