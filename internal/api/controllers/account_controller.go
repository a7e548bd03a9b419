package controllers

import (
	"github.com/gin-gonic/gin"

	"wanderquest/internal/models/request_models"
	"wanderquest/internal/models/response_models"
	"wanderquest/internal/services"
	"wanderquest/pkg/utils"
)

const PasswordChangedMessage = "Password updated"

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create a user and return a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RegisterRequest true "Registration payload"
// @Success 201 {object} response_models.TokenResponse
// @Failure 400 {object} utils.APIError
// @Failure 409 {object} utils.APIError
// @Router /auth/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := a.accountService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, response_models.TokenResponse{Token: token})
}

// Login godoc
// @Summary Login
// @Description Authenticate with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} response_models.TokenResponse
// @Failure 401 {object} utils.APIError
// @Router /auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.TokenResponse{Token: token})
}

// GetProfile godoc
// @Summary Current user profile
// @Tags Auth
// @Produce json
// @Success 200 {object} response_models.ProfileResponse
// @Failure 401 {object} utils.APIError
// @Security BearerAuth
// @Router /auth/profile [get]
func (a *AccountController) GetProfile(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	profile, err := a.accountService.GetProfile(c.Request.Context(), userId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile)
}

// UpdateProfile godoc
// @Summary Replace the user's preferences
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.UpdatePreferencesRequest true "Preferences"
// @Success 200 {object} response_models.ProfileResponse
// @Security BearerAuth
// @Router /auth/profile [put]
func (a *AccountController) UpdateProfile(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}
	var req request_models.UpdatePreferencesRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := a.accountService.UpdatePreferences(c.Request.Context(), userId, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile)
}

// ChangePassword godoc
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} utils.MessageResponse
// @Failure 401 {object} utils.APIError
// @Security BearerAuth
// @Router /auth/password [put]
func (a *AccountController) ChangePassword(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}
	var req request_models.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := a.accountService.ChangePassword(c.Request.Context(), userId, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondMessage(c, PasswordChangedMessage)
}
