package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type BookingType string

const (
	BookingRegular    BookingType = "Regular"
	BookingTraining   BookingType = "Training"
	BookingMatch      BookingType = "Match"
	BookingTournament BookingType = "Tournament"
)

func (b BookingType) Valid() bool {
	switch b {
	case BookingRegular, BookingTraining, BookingMatch, BookingTournament:
		return true
	}
	return false
}

var ErrBookingInterval = errors.New("booking end must be after its start")

/*
 * 'Booking' reserves a court over the half-open interval [BookingFrom, BookingTo).
 * Cancelled bookings stay in the table but no longer occupy the slot.
 */
type Booking struct {
	ID             uint        `gorm:"primaryKey"`
	BookedByUserID string      `gorm:"size:36;not null;index"`
	CourtID        uint        `gorm:"not null;index:idx_bookings_court_from"`
	BookingFrom    time.Time   `gorm:"not null;index:idx_bookings_court_from"`
	BookingTo      time.Time   `gorm:"not null"`
	Cancelled      bool        `gorm:"not null;default:false"`
	BookingType    BookingType `gorm:"size:32;not null"`
	Created        time.Time   `gorm:"not null"`
	LastUpdated    *time.Time

	BookedByUser *User           `gorm:"foreignKey:BookedByUserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Court        *Court          `gorm:"foreignKey:CourtID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Players      []BookingPlayer `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (b *Booking) BeforeSave(tx *gorm.DB) error {
	if !b.BookingTo.After(b.BookingFrom) {
		return ErrBookingInterval
	}
	if b.BookingType == "" {
		b.BookingType = BookingRegular
	}
	return nil
}

// Overlaps reports whether the booking intersects [from, to).
func (b *Booking) Overlaps(from, to time.Time) bool {
	return b.BookingFrom.Before(to) && from.Before(b.BookingTo)
}
