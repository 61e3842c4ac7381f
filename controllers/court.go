package controllers

import (
	"net/http"

	"LoveForTennis/middleware"
	"LoveForTennis/models/dto"
	"LoveForTennis/services/court"

	"github.com/gin-gonic/gin"
)

// @Summary Lists the courts
// @Tags court
// @Produce json
// @Success 200 {array} dto.Court
// @Router /api/court [get]
func ListCourts(svc *court.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		courts, err := svc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, courts)
	}
}

// @Summary Gets a court
// @Tags court
// @Produce json
// @Param id path int true "Court id"
// @Success 200 {object} dto.Court
// @Failure 404 {object} ErrorResponse
// @Router /api/court/{id} [get]
func GetCourt(svc *court.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		ct, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, ct)
	}
}

// @Summary Creates a court
// @Description Times of day use HH:MM:SS
// @Tags court
// @Accept json
// @Produce json
// @Param request body dto.Court true "Court"
// @Success 201 {object} dto.Court
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/court [post]
// @Security ApiKeyAuth
func CreateCourt(svc *court.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.Court
		if !bindJSON(c, &req) {
			return
		}
		created, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// @Summary Updates a court
// @Tags court
// @Accept json
// @Produce json
// @Param id path int true "Court id"
// @Param request body dto.Court true "Court"
// @Success 200 {object} dto.Court
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/court/{id} [put]
// @Security ApiKeyAuth
func UpdateCourt(svc *court.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var req dto.Court
		if !bindJSON(c, &req) {
			return
		}
		req.ID = id
		updated, err := svc.Update(c.Request.Context(), req)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// @Summary Deletes a court without bookings
// @Tags court
// @Param id path int true "Court id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/court/{id} [delete]
// @Security ApiKeyAuth
func DeleteCourt(svc *court.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary Disables a court for a period
// @Description Without "to" the court stays disabled until enabled again
// @Tags court
// @Accept json
// @Produce json
// @Param id path int true "Court id"
// @Param request body dto.DisableCourtRequest true "Period"
// @Success 200 {object} dto.Court
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/court/{id}/disable [post]
// @Security ApiKeyAuth
func DisableCourt(svc *court.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var req dto.DisableCourtRequest
		if !bindJSON(c, &req) {
			return
		}
		disabled, err := svc.Disable(c.Request.Context(), id, req.From, req.To, middleware.CurrentUserID(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, disabled)
	}
}

// @Summary Enables a disabled court
// @Tags court
// @Produce json
// @Param id path int true "Court id"
// @Success 200 {object} dto.Court
// @Failure 404 {object} ErrorResponse
// @Router /api/court/{id}/enable [post]
// @Security ApiKeyAuth
func EnableCourt(svc *court.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		enabled, err := svc.Enable(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, enabled)
	}
}
