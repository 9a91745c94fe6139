package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aptmap/backend/internal/model"
	"github.com/aptmap/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const exposeDetailKey = "expose_error_detail"

type apiError struct {
	status  int
	code    string
	message string
}

var errInternal = apiError{http.StatusInternalServerError, "internal_error", "Internal server error"}

func classify(err error) apiError {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return apiError{http.StatusBadRequest, "validation_error", "Invalid request"}
	case errors.Is(err, service.ErrInvalidCredentials):
		return apiError{http.StatusUnauthorized, "invalid_credentials", "Invalid email or password"}
	case errors.Is(err, service.ErrMissingToken):
		return apiError{http.StatusUnauthorized, "authentication_required", "Authentication required"}
	case errors.Is(err, service.ErrInvalidToken):
		return apiError{http.StatusUnauthorized, "invalid_token", "Invalid token"}
	case errors.Is(err, service.ErrExpiredToken):
		return apiError{http.StatusUnauthorized, "token_expired", "Token expired"}
	case errors.Is(err, service.ErrRefreshRejected):
		return apiError{http.StatusForbidden, "invalid_refresh_token", "Invalid refresh token"}
	case errors.Is(err, service.ErrIncorrectPassword):
		return apiError{http.StatusBadRequest, "incorrect_password", "Current password is incorrect"}
	case errors.Is(err, service.ErrDuplicateUser):
		return apiError{http.StatusConflict, "duplicate_user", "User already exists"}
	case errors.Is(err, service.ErrUserNotFound):
		return apiError{http.StatusNotFound, "user_not_found", "User not found"}
	default:
		return errInternal
	}
}

// writeError maps service errors onto the JSON error shape and aborts the
// chain. Server errors are logged with the full cause.
func writeError(c *gin.Context, err error) {
	e := classify(err)
	if e.status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "http.error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
			"err", err,
		)
	}

	body := model.ErrorResponse{Error: e.code, Message: e.message}
	if c.GetBool(exposeDetailKey) {
		body.Detail = err.Error()
	}
	c.AbortWithStatusJSON(e.status, body)
}

// writeBindError answers a failed ShouldBindJSON with per-field messages
// when the validator produced them.
func writeBindError(c *gin.Context, err error) {
	body := model.ErrorResponse{Error: "validation_error", Message: "Invalid request"}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		body.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			body.Fields[fe.Field()] = fieldMessage(fe)
		}
	} else {
		body.Message = "Malformed request body"
	}
	if c.GetBool(exposeDetailKey) {
		body.Detail = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "strongpassword":
		return "must be 8 to 72 characters and contain a digit, an upper case letter, a lower case letter and a special character"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
