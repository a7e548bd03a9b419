package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wanderquest/internal/models/request_models"
	"wanderquest/pkg/utils"
)

func newAccountService(t *testing.T) (AccountServiceInterface, *fakeUserRepo, *utils.TokenManager) {
	t.Helper()
	repo := newFakeUserRepo()
	tokens := utils.NewTokenManager("test-secret", 0)
	return NewAccountService(repo, tokens, zap.NewNop()), repo, tokens
}

func TestAccountService_RegisterThenLogin(t *testing.T) {
	svc, _, tokens := newAccountService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, request_models.RegisterRequest{Email: "a@b.co", Password: "Passw0rd"})
	require.NoError(t, err)
	registeredID, err := tokens.ValidateToken(token)
	require.NoError(t, err)

	token, err = svc.Login(ctx, request_models.LoginRequest{Email: "a@b.co", Password: "Passw0rd"})
	require.NoError(t, err)
	loginID, err := tokens.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, registeredID, loginID)
}

func TestAccountService_LoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, request_models.RegisterRequest{Email: "a@b.co", Password: "Passw0rd"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, request_models.LoginRequest{Email: "a@b.co", Password: "Wrong1234"})
	_, unknownEmail := svc.Login(ctx, request_models.LoginRequest{Email: "nobody@b.co", Password: "Passw0rd"})

	assert.ErrorIs(t, wrongPassword, utils.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, utils.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAccountService_RegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, request_models.RegisterRequest{Email: "a@b.co", Password: "Passw0rd"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, request_models.RegisterRequest{Email: " A@B.co ", Password: "Passw0rd"})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestAccountService_RegisterRejectsWeakPassword(t *testing.T) {
	svc, repo, _ := newAccountService(t)

	_, err := svc.Register(context.Background(), request_models.RegisterRequest{Email: "a@b.co", Password: "password"})

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Fields[0].Field)
	assert.Empty(t, repo.users)
}

func TestAccountService_ProfileExcludesPassword(t *testing.T) {
	svc, _, tokens := newAccountService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, request_models.RegisterRequest{Email: "a@b.co", Password: "Passw0rd"})
	require.NoError(t, err)
	userID, err := tokens.ValidateToken(token)
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), profile.ID)
	assert.Equal(t, "a@b.co", profile.Email)
	assert.NotNil(t, profile.Preferences)

	_, err = svc.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}

func TestAccountService_UpdatePreferences(t *testing.T) {
	svc, _, tokens := newAccountService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, request_models.RegisterRequest{Email: "a@b.co", Password: "Passw0rd"})
	require.NoError(t, err)
	userID, _ := tokens.ValidateToken(token)

	profile, err := svc.UpdatePreferences(ctx, userID, request_models.UpdatePreferencesRequest{
		Preferences: map[string]interface{}{"theme": "dark"},
	})
	require.NoError(t, err)
	assert.Equal(t, "dark", profile.Preferences["theme"])
}

func TestAccountService_ChangePassword(t *testing.T) {
	svc, _, tokens := newAccountService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, request_models.RegisterRequest{Email: "a@b.co", Password: "Passw0rd"})
	require.NoError(t, err)
	userID, _ := tokens.ValidateToken(token)

	err = svc.ChangePassword(ctx, userID, request_models.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "N3wPassword"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, userID, request_models.ChangePasswordRequest{CurrentPassword: "Passw0rd", NewPassword: "short"})
	assert.ErrorIs(t, err, utils.ErrValidation)

	require.NoError(t, svc.ChangePassword(ctx, userID, request_models.ChangePasswordRequest{CurrentPassword: "Passw0rd", NewPassword: "N3wPassword"}))

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "a@b.co", Password: "Passw0rd"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "a@b.co", Password: "N3wPassword"})
	assert.NoError(t, err)
}
