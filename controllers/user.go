package controllers

import (
	"net/http"

	"LoveForTennis/middleware"
	"LoveForTennis/services/user"

	"github.com/gin-gonic/gin"
)

// @Summary Lists users with their roles
// @Tags users
// @Produce json
// @Success 200 {array} dto.User
// @Failure 403 {object} ErrorResponse
// @Router /api/users [get]
// @Security ApiKeyAuth
func ListUsers(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// @Summary Deletes a user without bookings
// @Tags users
// @Param id path string true "User id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/users/{id} [delete]
// @Security ApiKeyAuth
func DeleteUser(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c)); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
