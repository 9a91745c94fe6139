package handler

import (
	"net/http"

	"github.com/aptmap/backend/internal/model"
	"github.com/aptmap/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.AuthService
}

func NewUserHandler(svc *service.AuthService) *UserHandler {
	return &UserHandler{svc: svc}
}

// GetUser godoc
// @Summary Get current user
// @Tags user
// @Produce json
// @Success 200 {object} model.UserEnvelope
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/user [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	auth := GetAuthUser(c)
	if auth == nil {
		writeError(c, service.ErrMissingToken)
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), auth.LoginID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.UserEnvelope{
		Message: "User retrieved successfully",
		User:    user.Response(),
	})
}

// ChangePassword godoc
// @Summary Change password
// @Description Existing sessions stay valid.
// @Tags user
// @Accept json
// @Produce json
// @Param request body model.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/change-password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	auth := GetAuthUser(c)
	if auth == nil {
		writeError(c, service.ErrMissingToken)
		return
	}

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), auth.LoginID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Password changed successfully"})
}

// UpdateInfo godoc
// @Summary Update profile
// @Description Omitted fields keep their value. The login id never changes.
// @Tags user
// @Accept json
// @Produce json
// @Param request body model.UpdateInfoRequest true "Name and/or contact email"
// @Success 200 {object} model.UserEnvelope
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/update-info [post]
func (h *UserHandler) UpdateInfo(c *gin.Context) {
	auth := GetAuthUser(c)
	if auth == nil {
		writeError(c, service.ErrMissingToken)
		return
	}

	var req model.UpdateInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), auth.LoginID, service.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.UserEnvelope{
		Message: "User info updated successfully",
		User:    user.Response(),
	})
}
