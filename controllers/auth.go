package controllers

import (
	"log"
	"net/http"

	"LoveForTennis/middleware"
	"LoveForTennis/models/dto"
	"LoveForTennis/services/auth"

	"github.com/gin-gonic/gin"
)

// @Summary Logs a user in
// @Description Checks the credentials, starts a session cookie and returns a Bearer access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} dto.AuthResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/auth/login [post]
func Login(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequest
		if !bindJSON(c, &req) {
			return
		}

		res := svc.Login(c.Request.Context(), req)
		if !res.Success {
			c.JSON(http.StatusUnauthorized, res)
			return
		}
		if err := middleware.StartSession(c, res.User.ID, res.User.Roles); err != nil {
			log.Printf("[AUTH] Error saving session for %s: %v", res.User.ID, err)
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Summary Registers a new player
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "New account"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.AuthResponse
// @Router /api/auth/register [post]
func Register(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.RegisterRequest
		if !bindJSON(c, &req) {
			return
		}
		res := svc.Register(c.Request.Context(), req)
		if !res.Success {
			c.JSON(http.StatusBadRequest, res)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

// @Summary Requests a password reset
// @Description Always answers with the same message, whether or not the email exists
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.AuthResponse
// @Router /api/auth/forgot-password [post]
func ForgotPassword(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ForgotPasswordRequest
		if !bindJSON(c, &req) {
			return
		}
		c.JSON(http.StatusOK, svc.ForgotPassword(c.Request.Context(), req))
	}
}

// @Summary Resets a password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.AuthResponse
// @Router /api/auth/reset-password [post]
func ResetPassword(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ResetPasswordRequest
		if !bindJSON(c, &req) {
			return
		}
		res := svc.ResetPassword(c.Request.Context(), req)
		if !res.Success {
			c.JSON(http.StatusBadRequest, res)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Summary Returns the signed-in user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserInfo
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/auth/profile [get]
// @Security ApiKeyAuth
func Profile(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		info := svc.GetUserInfo(c.Request.Context(), middleware.CurrentUserID(c))
		if info == nil {
			fail(c, errUserGone)
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

// @Summary Logs the user out
// @Description Clears the session cookie. Bearer tokens stay valid until they expire.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Router /api/auth/logout [post]
// @Security ApiKeyAuth
func Logout(c *gin.Context) {
	if err := middleware.EndSession(c); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Message: "Logged out."})
}
