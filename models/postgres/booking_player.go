package postgres

import "time"

/*
 * 'BookingPlayer' attaches a user as a player of a booking.
 * A user appears at most once per booking.
 */
type BookingPlayer struct {
	ID           uint      `gorm:"primaryKey"`
	BookingID    uint      `gorm:"not null;uniqueIndex:idx_booking_players_booking_player"`
	PlayerUserID string    `gorm:"size:36;not null;uniqueIndex:idx_booking_players_booking_player;index"`
	Created      time.Time `gorm:"not null"`
	LastUpdated  *time.Time

	PlayerUser *User `gorm:"foreignKey:PlayerUserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}
