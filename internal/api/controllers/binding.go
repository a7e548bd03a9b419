package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wanderquest/pkg/utils"
	"wanderquest/pkg/validation"
)

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.RespondValidationError(c, validation.Translate(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		utils.RespondValidationError(c, validation.Translate(err))
		return false
	}
	return true
}

func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userId, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
	}
	return userId, ok
}
