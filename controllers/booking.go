package controllers

import (
	"net/http"

	"LoveForTennis/middleware"
	"LoveForTennis/models/dto"
	"LoveForTennis/services/booking"
	"LoveForTennis/utils/apperror"

	"github.com/gin-gonic/gin"
)

var errNotYourBooking = apperror.Forbidden("Only the booking owner, an admin or a board member can change this booking.")

// @Summary Lists all bookings
// @Tags booking
// @Produce json
// @Success 200 {array} dto.Booking
// @Router /api/booking [get]
// @Security ApiKeyAuth
func ListBookings(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := svc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}

// @Summary Gets a booking with its players
// @Tags booking
// @Produce json
// @Param id path int true "Booking id"
// @Success 200 {object} dto.Booking
// @Failure 404 {object} ErrorResponse
// @Router /api/booking/{id} [get]
// @Security ApiKeyAuth
func GetBooking(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		b, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// @Summary Lists the bookings made by a user
// @Tags booking
// @Produce json
// @Param userId path string true "User id"
// @Success 200 {array} dto.Booking
// @Router /api/booking/user/{userId} [get]
// @Security ApiKeyAuth
func ListBookingsByUser(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := svc.ListByUser(c.Request.Context(), c.Param("userId"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}

// @Summary Court calendar
// @Description Bookings of a court starting in [from, to). Defaults to the next seven days.
// @Tags booking
// @Produce json
// @Param courtId path int true "Court id"
// @Param from query string false "RFC 3339 start"
// @Param to query string false "RFC 3339 end"
// @Success 200 {array} dto.Booking
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/booking/court/{courtId} [get]
// @Security ApiKeyAuth
func ListBookingsByCourt(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		courtID, ok := paramID(c, "courtId")
		if !ok {
			return
		}
		from, to, ok := timeRange(c)
		if !ok {
			return
		}
		bookings, err := svc.ListByCourt(c.Request.Context(), courtID, from, to)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}

// @Summary Books a court
// @Description bookedByUserId defaults to the signed-in user. Booking for someone else needs Admin or BoardMember.
// @Tags booking
// @Accept json
// @Produce json
// @Param request body dto.Booking true "Booking"
// @Success 201 {object} dto.Booking
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/booking [post]
// @Security ApiKeyAuth
func CreateBooking(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.Booking
		if !bindJSON(c, &req) {
			return
		}
		if req.BookedByUserID == "" {
			req.BookedByUserID = middleware.CurrentUserID(c)
		}
		if !canManage(c, req.BookedByUserID) {
			fail(c, errNotYourBooking)
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

// owned loads the booking in :id and checks the caller may change it.
func owned(c *gin.Context, svc *booking.Service) (*dto.Booking, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	existing, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return nil, false
	}
	if !canManage(c, existing.BookedByUserID) {
		fail(c, errNotYourBooking)
		return nil, false
	}
	return existing, true
}

// @Summary Updates a booking
// @Tags booking
// @Accept json
// @Produce json
// @Param id path int true "Booking id"
// @Param request body dto.Booking true "Booking"
// @Success 200 {object} dto.Booking
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/booking/{id} [put]
// @Security ApiKeyAuth
func UpdateBooking(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		existing, ok := owned(c, svc)
		if !ok {
			return
		}
		var req dto.Booking
		if !bindJSON(c, &req) {
			return
		}
		req.ID = existing.ID
		if req.BookedByUserID == "" {
			req.BookedByUserID = existing.BookedByUserID
		}
		if !canManage(c, req.BookedByUserID) {
			fail(c, errNotYourBooking)
			return
		}
		updated, err := svc.Update(c.Request.Context(), req)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// @Summary Cancels a booking
// @Description Keeps the booking but frees its slot
// @Tags booking
// @Produce json
// @Param id path int true "Booking id"
// @Success 200 {object} dto.Booking
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/booking/{id}/cancel [post]
// @Security ApiKeyAuth
func CancelBooking(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		existing, ok := owned(c, svc)
		if !ok {
			return
		}
		cancelled, err := svc.Cancel(c.Request.Context(), existing.ID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cancelled)
	}
}

// @Summary Deletes a booking and its players
// @Tags booking
// @Param id path int true "Booking id"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/booking/{id} [delete]
// @Security ApiKeyAuth
func DeleteBooking(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		existing, ok := owned(c, svc)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), existing.ID); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
