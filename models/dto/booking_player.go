package dto

import (
	"time"

	models "LoveForTennis/models/postgres"
)

type BookingPlayer struct {
	ID             uint       `json:"id"`
	BookingID      uint       `json:"bookingId"`
	PlayerUserID   string     `json:"playerUserId"`
	Created        time.Time  `json:"created"`
	LastUpdated    *time.Time `json:"lastUpdated"`
	PlayerUserName string     `json:"playerUserName"`
}

func NewBookingPlayer(p *models.BookingPlayer) BookingPlayer {
	out := BookingPlayer{
		ID:           p.ID,
		BookingID:    p.BookingID,
		PlayerUserID: p.PlayerUserID,
		Created:      p.Created,
		LastUpdated:  p.LastUpdated,
	}
	if p.PlayerUser != nil {
		out.PlayerUserName = p.PlayerUser.FullName()
	}
	return out
}
