package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wanderquest/internal/models/db_models"
	"wanderquest/internal/models/request_models"
	"wanderquest/internal/models/response_models"
	"wanderquest/internal/repositories"
	"wanderquest/pkg/utils"
	"wanderquest/pkg/validation"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (string, error)
	Login(ctx context.Context, request request_models.LoginRequest) (string, error)
	GetProfile(ctx context.Context, userId uuid.UUID) (*response_models.ProfileResponse, error)
	UpdatePreferences(ctx context.Context, userId uuid.UUID, request request_models.UpdatePreferencesRequest) (*response_models.ProfileResponse, error)
	ChangePassword(ctx context.Context, userId uuid.UUID, request request_models.ChangePasswordRequest) error
}

type AccountService struct {
	userRepo repositories.UserRepository
	tokens   *utils.TokenManager
	log      *zap.Logger
}

func NewAccountService(userRepo repositories.UserRepository, tokens *utils.TokenManager, log *zap.Logger) AccountServiceInterface {
	return &AccountService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log.Named("account"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) (string, error) {
	email := normalizeEmail(request.Email)
	if verr := validation.Credentials(email, request.Password, true); verr != nil {
		return "", verr
	}

	existing, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return "", utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &db_models.User{
		Email:    email,
		Password: hashedPassword,
	}
	if err := a.userRepo.Insert(ctx, user); err != nil {
		if errors.Is(err, utils.ErrEmailAlreadyExists) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	a.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return a.issueToken(user.ID)
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, error) {
	user, err := a.userRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	// Unknown email and wrong password are indistinguishable to the caller.
	if user == nil {
		return "", utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(user.Password, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return a.issueToken(user.ID)
}

func (a *AccountService) GetProfile(ctx context.Context, userId uuid.UUID) (*response_models.ProfileResponse, error) {
	user, err := a.userRepo.FindById(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	profile := db_models.BuildProfileResponse(user)
	return &profile, nil
}

func (a *AccountService) UpdatePreferences(ctx context.Context, userId uuid.UUID, request request_models.UpdatePreferencesRequest) (*response_models.ProfileResponse, error) {
	prefs := request.Preferences
	if prefs == nil {
		prefs = map[string]interface{}{}
	}

	ok, err := a.userRepo.UpdatePreferences(ctx, userId, prefs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !ok {
		return nil, utils.ErrUserNotFound
	}
	return a.GetProfile(ctx, userId)
}

func (a *AccountService) ChangePassword(ctx context.Context, userId uuid.UUID, request request_models.ChangePasswordRequest) error {
	if !validation.ValidPassword(request.NewPassword) {
		return utils.NewValidationError("newPassword", validation.PasswordRequirements)
	}

	user, err := a.userRepo.FindById(ctx, userId)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return utils.ErrUserNotFound
	}
	if err := utils.ComparePasswords(user.Password, request.CurrentPassword); err != nil {
		return utils.ErrInvalidCredentials
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := a.userRepo.UpdatePassword(ctx, userId, hashedPassword); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	a.log.Info("password changed", zap.String("user_id", userId.String()))
	return nil
}

func (a *AccountService) issueToken(userId uuid.UUID) (string, error) {
	token, err := a.tokens.CreateToken(userId)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
