package dto

import (
	"time"

	models "LoveForTennis/models/postgres"
)

type Booking struct {
	ID               uint               `json:"id"`
	BookedByUserID   string             `json:"bookedByUserId"`
	CourtID          uint               `json:"courtId"`
	BookingFrom      time.Time          `json:"bookingFrom"`
	BookingTo        time.Time          `json:"bookingTo"`
	Cancelled        bool               `json:"cancelled"`
	BookingType      models.BookingType `json:"bookingType"`
	Created          time.Time          `json:"created"`
	LastUpdated      *time.Time         `json:"lastUpdated"`
	BookedByUserName string             `json:"bookedByUserName"`
	CourtName        string             `json:"courtName"`
	Players          []BookingPlayer    `json:"players"`
}

// BookingEvent is pushed to realtime subscribers of a court.
type BookingEvent struct {
	Action      string    `json:"action"`
	BookingID   uint      `json:"bookingId"`
	CourtID     uint      `json:"courtId"`
	BookingFrom time.Time `json:"bookingFrom"`
	BookingTo   time.Time `json:"bookingTo"`
	Cancelled   bool      `json:"cancelled"`
}

const (
	BookingCreated   = "created"
	BookingUpdated   = "updated"
	BookingCancelled = "cancelled"
	BookingDeleted   = "deleted"
)

func NewBooking(b *models.Booking) Booking {
	out := Booking{
		ID:             b.ID,
		BookedByUserID: b.BookedByUserID,
		CourtID:        b.CourtID,
		BookingFrom:    b.BookingFrom,
		BookingTo:      b.BookingTo,
		Cancelled:      b.Cancelled,
		BookingType:    b.BookingType,
		Created:        b.Created,
		LastUpdated:    b.LastUpdated,
		Players:        make([]BookingPlayer, 0, len(b.Players)),
	}
	if b.BookedByUser != nil {
		out.BookedByUserName = b.BookedByUser.FullName()
	}
	if b.Court != nil {
		out.CourtName = b.Court.Name
	}
	for i := range b.Players {
		out.Players = append(out.Players, NewBookingPlayer(&b.Players[i]))
	}
	return out
}

func NewBookingEvent(action string, b *models.Booking) BookingEvent {
	return BookingEvent{
		Action:      action,
		BookingID:   b.ID,
		CourtID:     b.CourtID,
		BookingFrom: b.BookingFrom,
		BookingTo:   b.BookingTo,
		Cancelled:   b.Cancelled,
	}
}
