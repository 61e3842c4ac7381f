package controllers

import (
	"net/http"

	"LoveForTennis/models/dto"
	"LoveForTennis/services/booking"
	"LoveForTennis/services/bookingplayer"

	"github.com/gin-gonic/gin"
)

// @Summary Lists all booking players
// @Tags bookingplayer
// @Produce json
// @Success 200 {array} dto.BookingPlayer
// @Router /api/bookingplayer [get]
// @Security ApiKeyAuth
func ListBookingPlayers(svc *bookingplayer.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		players, err := svc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, players)
	}
}

// @Summary Gets a booking player
// @Tags bookingplayer
// @Produce json
// @Param id path int true "Booking player id"
// @Success 200 {object} dto.BookingPlayer
// @Failure 404 {object} ErrorResponse
// @Router /api/bookingplayer/{id} [get]
// @Security ApiKeyAuth
func GetBookingPlayer(svc *bookingplayer.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		p, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// @Summary Lists the players of a booking
// @Tags bookingplayer
// @Produce json
// @Param bookingId path int true "Booking id"
// @Success 200 {array} dto.BookingPlayer
// @Router /api/bookingplayer/booking/{bookingId} [get]
// @Security ApiKeyAuth
func ListPlayersByBooking(svc *bookingplayer.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, ok := paramID(c, "bookingId")
		if !ok {
			return
		}
		players, err := svc.ListByBooking(c.Request.Context(), bookingID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, players)
	}
}

// @Summary Lists the bookings a user plays in
// @Tags bookingplayer
// @Produce json
// @Param playerUserId path string true "User id"
// @Success 200 {array} dto.BookingPlayer
// @Router /api/bookingplayer/player/{playerUserId} [get]
// @Security ApiKeyAuth
func ListPlayersByUser(svc *bookingplayer.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		players, err := svc.ListByPlayer(c.Request.Context(), c.Param("playerUserId"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, players)
	}
}

// managesBooking checks the caller may change the players of bookingID.
func managesBooking(c *gin.Context, bookings *booking.Service, bookingID uint) bool {
	b, err := bookings.Get(c.Request.Context(), bookingID)
	if err != nil {
		fail(c, err)
		return false
	}
	if !canManage(c, b.BookedByUserID) {
		fail(c, errNotYourBooking)
		return false
	}
	return true
}

// @Summary Adds a player to a booking
// @Tags bookingplayer
// @Accept json
// @Produce json
// @Param request body dto.BookingPlayer true "Booking player"
// @Success 201 {object} dto.BookingPlayer
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/bookingplayer [post]
// @Security ApiKeyAuth
func CreateBookingPlayer(svc *bookingplayer.Service, bookings *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.BookingPlayer
		if !bindJSON(c, &req) {
			return
		}
		if !managesBooking(c, bookings, req.BookingID) {
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

// @Summary Updates a booking player
// @Tags bookingplayer
// @Accept json
// @Produce json
// @Param id path int true "Booking player id"
// @Param request body dto.BookingPlayer true "Booking player"
// @Success 200 {object} dto.BookingPlayer
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/bookingplayer/{id} [put]
// @Security ApiKeyAuth
func UpdateBookingPlayer(svc *bookingplayer.Service, bookings *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		existing, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		var req dto.BookingPlayer
		if !bindJSON(c, &req) {
			return
		}
		req.ID = id
		if !managesBooking(c, bookings, existing.BookingID) {
			return
		}
		if req.BookingID != existing.BookingID && !managesBooking(c, bookings, req.BookingID) {
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

// @Summary Removes a player from a booking
// @Tags bookingplayer
// @Param id path int true "Booking player id"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/bookingplayer/{id} [delete]
// @Security ApiKeyAuth
func DeleteBookingPlayer(svc *bookingplayer.Service, bookings *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		existing, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		if !managesBooking(c, bookings, existing.BookingID) {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
