package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aptmap/backend/internal/model"
	"github.com/aptmap/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register godoc
// @Summary Register a new user
// @Description The email becomes the immutable login id.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Name, email and password"
// @Success 201 {object} model.RegisterResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	id, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		LoginID:  req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.RegisterResponse{
		Message: "User registered successfully",
		UserID:  id,
	})
}

// Login godoc
// @Summary Login
// @Description Sets access_token and refresh_token httpOnly cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Email and password"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setAccessCookie(c, res.AccessToken)
	h.setRefreshCookie(c, res.RefreshToken)
	c.JSON(http.StatusOK, model.LoginResponse{
		Message: "Logged in successfully",
		User:    res.User.Response(),
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Uses the refresh_token cookie. The refresh token is not rotated.
// @Tags auth
// @Produce json
// @Success 200 {object} model.MessageResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(service.RefreshCookieName)
	accessToken, err := h.svc.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setAccessCookie(c, accessToken)
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Token refreshed successfully"})
}

// Logout godoc
// @Summary Logout
// @Description Clears the stored refresh token and both cookies. An expired access token is accepted.
// @Tags auth
// @Produce json
// @Success 200 {object} model.MessageResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	accessToken, _ := c.Cookie(service.AccessCookieName)
	loginID, err := h.svc.EndSession(c.Request.Context(), accessToken)

	// 어떤 경우에도 쿠키는 지웁니다.
	h.clearCookies(c)
	if errors.Is(err, service.ErrMissingToken) || errors.Is(err, service.ErrInvalidToken) {
		writeError(c, err)
		return
	}
	if err != nil {
		slog.WarnContext(c.Request.Context(), "auth.logout_failed",
			"login_id", loginID,
			"request_id", c.GetString(requestIDKey),
			"err", err,
		)
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) setAccessCookie(c *gin.Context, token string) {
	cfg := h.svc.CookieConfig()
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(service.AccessCookieName, token, cfg.AccessMaxAge, cfg.Path, "", cfg.Secure, true)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	cfg := h.svc.CookieConfig()
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(service.RefreshCookieName, token, cfg.RefreshMaxAge, cfg.Path, "", cfg.Secure, true)
}

func (h *AuthHandler) clearCookies(c *gin.Context) {
	cfg := h.svc.CookieConfig()
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(service.AccessCookieName, "", -1, cfg.Path, "", cfg.Secure, true)
	c.SetCookie(service.RefreshCookieName, "", -1, cfg.Path, "", cfg.Secure, true)
}
