package delivery

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lms-backend/internal/apperror"
	"lms-backend/internal/user/dto"
	"lms-backend/internal/user/usecase"
	"lms-backend/pkg/config"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	config      *config.Config
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		config:      cfg,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Fail(c, apperror.BadRequest(err.Error()))
		return
	}

	activationToken, err := h.authUsecase.Register(c.Request.Context(), req)
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         fmt.Sprintf("email sent to %s successfully", req.Email),
		"activationToken": activationToken,
	})
}

func (h *AuthHandler) Activate(c *gin.Context) {
	var req dto.ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Fail(c, apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.Activate(c.Request.Context(), req); err != nil {
		apperror.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "account activated successfully",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Fail(c, apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.authUsecase.Login(c.Request.Context(), req)
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"user":        result.User,
		"accessToken": result.AccessToken,
	})
}

func (h *AuthHandler) SocialAuth(c *gin.Context) {
	var req dto.SocialAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Fail(c, apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.authUsecase.SocialAuth(c.Request.Context(), req)
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"user":        result.User,
		"accessToken": result.AccessToken,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		apperror.Fail(c, apperror.Unauthorized("login first to access this resource"))
		return
	}

	h.clearAuthCookies(c)
	if err := h.authUsecase.Logout(c.Request.Context(), user.ID); err != nil {
		apperror.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "logged out successfully",
	})
}

// Refresh rotates the token pair using the refresh cookie and leaves the
// resolved user on the context for anything chained behind it.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshTokenCookie)
	if err != nil || refreshToken == "" {
		apperror.Fail(c, apperror.Unauthorized("login first to access this resource"))
		return
	}

	result, err := h.authUsecase.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	setCurrentUser(c, *result.User)
	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"accessToken": result.AccessToken,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		apperror.Fail(c, apperror.Unauthorized("login first to access this resource"))
		return
	}

	current, err := h.authUsecase.Me(c.Request.Context(), user.ID)
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    current,
	})
}

func (h *AuthHandler) UpdateInfo(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		apperror.Fail(c, apperror.Unauthorized("login first to access this resource"))
		return
	}

	var req dto.UpdateInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Fail(c, apperror.BadRequest(err.Error()))
		return
	}

	updated, err := h.authUsecase.UpdateInfo(c.Request.Context(), user.ID, req)
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    updated,
	})
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		apperror.Fail(c, apperror.Unauthorized("login first to access this resource"))
		return
	}

	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Fail(c, apperror.BadRequest(err.Error()))
		return
	}

	updated, err := h.authUsecase.UpdatePassword(c.Request.Context(), user.ID, req)
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    updated,
	})
}

func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		apperror.Fail(c, apperror.Unauthorized("login first to access this resource"))
		return
	}

	var req dto.UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Fail(c, apperror.BadRequest(err.Error()))
		return
	}

	updated, err := h.authUsecase.UpdateAvatar(c.Request.Context(), user.ID, req.Avatar)
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "avatar updated successfully",
		"user":    updated,
	})
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	secure := h.config.Env == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, accessToken, int(h.config.AccessTokenExpiry.Seconds()), "/", "", secure, true)
	c.SetCookie(refreshTokenCookie, refreshToken, int(h.config.RefreshTokenExpiry.Seconds()), "/", "", secure, true)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	secure := h.config.Env == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, "", -1, "/", "", secure, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", secure, true)
}
