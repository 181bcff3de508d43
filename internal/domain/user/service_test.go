// internal/domain/user/service_test.go
package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/marketplace-backend/internal/domain/user"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"github.com/your-org/marketplace-backend/internal/pkg/auth"
	"github.com/your-org/marketplace-backend/internal/testutil"
)

func newUserService(t *testing.T) *user.Service {
	return user.NewService(testutil.NewDB(t), testutil.NewConfig())
}

func TestRegister(t *testing.T) {
	svc := newUserService(t)

	profile, err := svc.Register(&user.RegisterRequest{Username: "bea", Password: "password123", Role: "buyer"})
	require.NoError(t, err)
	assert.Equal(t, "bea", profile.Username)
	assert.Equal(t, auth.RoleBuyer, profile.Role)

	// Role labels normalize to lowercase
	profile, err = svc.Register(&user.RegisterRequest{Username: "sal", Password: "password123", Role: "Seller"})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleSeller, profile.Role)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register(&user.RegisterRequest{Username: "eve", Password: "password123", Role: "admin"})
	assert.True(t, apperr.Is(err, apperr.CodeInvalid))

	_, err = svc.Register(&user.RegisterRequest{Username: "eve", Password: "password123", Role: "wizard"})
	assert.True(t, apperr.Is(err, apperr.CodeInvalid))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register(&user.RegisterRequest{Username: "bea", Password: "password123", Role: "buyer"})
	require.NoError(t, err)

	_, err = svc.Register(&user.RegisterRequest{Username: "bea", Password: "different456", Role: "seller"})
	assert.True(t, apperr.Is(err, apperr.CodeConflict))
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register(&user.RegisterRequest{Username: "bea", Password: "short", Role: "buyer"})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc := newUserService(t)
	cfg := testutil.NewConfig()

	_, err := svc.Register(&user.RegisterRequest{Username: "bea", Password: "password123", Role: "buyer"})
	require.NoError(t, err)

	response, err := svc.Login(&user.LoginRequest{Username: "bea", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, "bea", response.User.Username)

	claims, err := auth.NewJWTManager(cfg).ValidateAccessToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, response.User.ID, claims.UserID)
	assert.Equal(t, auth.RoleBuyer, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register(&user.RegisterRequest{Username: "bea", Password: "password123", Role: "buyer"})
	require.NoError(t, err)

	_, err = svc.Login(&user.LoginRequest{Username: "bea", Password: "wrongpassword"})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthenticated))

	_, err = svc.Login(&user.LoginRequest{Username: "nobody", Password: "password123"})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthenticated), "unknown user and wrong password are indistinguishable")
}

func TestListAndProfile(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register(&user.RegisterRequest{Username: "bea", Password: "password123", Role: "buyer"})
	require.NoError(t, err)
	profile, err := svc.Register(&user.RegisterRequest{Username: "sal", Password: "password123", Role: "seller"})
	require.NoError(t, err)

	profiles, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, profiles, 2)

	loaded, err := svc.GetProfile(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "sal", loaded.Username)

	_, err = svc.GetProfile(9999)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}
