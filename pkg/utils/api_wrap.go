package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	TraceIDKey = "trace_id"
	UserIDKey  = "user_id"
	LoggerKey  = "logger"
)

// APIError is the body of every non-2xx response.
type APIError struct {
	Error   string       `json:"error"`
	Errors  []FieldError `json:"errors,omitempty"`
	Details string       `json:"details,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func RespondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func RespondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

func RespondError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, APIError{
		Error:   message,
		TraceID: c.GetString(TraceIDKey),
	})
}

func RespondValidationError(c *gin.Context, verr *ValidationError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, APIError{
		Error:   verr.First(),
		Errors:  verr.Fields,
		TraceID: c.GetString(TraceIDKey),
	})
}

// Logger returns the request scoped logger installed by the logging
// middleware, or the global one.
func Logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(LoggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.L()
}

// CurrentUserID returns the id the JWT middleware stored on the context.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func HandleServiceError(c *gin.Context, err error) {
	var verr *ValidationError

	switch {
	case errors.As(err, &verr):
		RespondValidationError(c, verr)
	case errors.Is(err, ErrValidation):
		RespondError(c, http.StatusBadRequest, "Validation failed")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrItineraryNotFound):
		RespondError(c, http.StatusNotFound, "Itinerary not found")
	case errors.Is(err, ErrUserNotFound):
		RespondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrLocationNotFound):
		RespondError(c, http.StatusNotFound, "Location not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already exists")
	case errors.Is(err, ErrUpstream):
		Logger(c).Warn("upstream error", zap.Error(err))
		respondInternal(c, "External API Error", err)
	case errors.Is(err, ErrDatabaseError):
		Logger(c).Error("database error", zap.Error(err))
		respondInternal(c, "Internal server error", err)
	default:
		Logger(c).Error("unknown error", zap.Error(err))
		respondInternal(c, "Internal server error", err)
	}
}

func respondInternal(c *gin.Context, message string, err error) {
	body := APIError{
		Error:   message,
		TraceID: c.GetString(TraceIDKey),
	}
	if gin.Mode() != gin.ReleaseMode {
		body.Details = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}
