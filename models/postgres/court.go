package postgres

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SurfaceType string

const (
	SurfaceClay            SurfaceType = "Clay"
	SurfaceRedPlus         SurfaceType = "RedPlus"
	SurfaceHard            SurfaceType = "Hard"
	SurfaceGrass           SurfaceType = "Grass"
	SurfaceCarpet          SurfaceType = "Carpet"
	SurfaceArtificialGrass SurfaceType = "ArtificialGrass"
)

func (s SurfaceType) Valid() bool {
	switch s {
	case SurfaceClay, SurfaceRedPlus, SurfaceHard, SurfaceGrass, SurfaceCarpet, SurfaceArtificialGrass:
		return true
	}
	return false
}

// BookingTimeType is the slot granularity a court accepts.
type BookingTimeType string

const (
	BookingTimeHour     BookingTimeType = "Hour"
	BookingTimeHalfHour BookingTimeType = "HalfHour"
)

func (b BookingTimeType) Valid() bool {
	return b == BookingTimeHour || b == BookingTimeHalfHour
}

// Step returns the minute alignment required by the granularity.
func (b BookingTimeType) Step() time.Duration {
	if b == BookingTimeHalfHour {
		return 30 * time.Minute
	}
	return time.Hour
}

type InOrOutdoorType string

const (
	Indoor  InOrOutdoorType = "Indoor"
	Outdoor InOrOutdoorType = "Outdoor"
)

func (i InOrOutdoorType) Valid() bool {
	return i == Indoor || i == Outdoor
}

var (
	ErrCourtWindow           = errors.New("booking window start must be before its end")
	ErrCourtDisabledInterval = errors.New("disabled period start must not be after its end")
)

/*
 * 'Court' is a bookable tennis court. Bookings must fit inside the daily
 * window [BookingAllowedFrom, BookingAllowedTill] and start at most
 * BookingsOpenForNumberOfDaysIntoTheFuture days ahead (nil = unlimited).
 */
type Court struct {
	ID                                       uint            `gorm:"primaryKey"`
	Name                                     string          `gorm:"size:100;not null"`
	Description                              string          `gorm:"size:500"`
	SurfaceType                              SurfaceType     `gorm:"size:32;not null"`
	AllowedBookingTimeType                   BookingTimeType `gorm:"size:16;not null"`
	InOrOutdoorType                          InOrOutdoorType `gorm:"size:16;not null"`
	BookingAllowedFrom                       datatypes.Time  `gorm:"not null"`
	BookingAllowedTill                       datatypes.Time  `gorm:"not null"`
	BookingsOpenForNumberOfDaysIntoTheFuture *int
	IsDisabledFrom                           *time.Time
	IsDisabledTo                             *time.Time
	IsDisabledByUser                         *string `gorm:"size:256"`
}

func (c *Court) BeforeSave(tx *gorm.DB) error {
	if time.Duration(c.BookingAllowedFrom) >= time.Duration(c.BookingAllowedTill) {
		return ErrCourtWindow
	}
	if c.IsDisabledFrom != nil && c.IsDisabledTo != nil && c.IsDisabledFrom.After(*c.IsDisabledTo) {
		return ErrCourtDisabledInterval
	}
	return nil
}

// DisabledDuring reports whether the disabled period intersects [from, to).
// A missing end bound means the court stays disabled indefinitely.
func (c *Court) DisabledDuring(from, to time.Time) bool {
	if c.IsDisabledFrom == nil {
		return false
	}
	if !c.IsDisabledFrom.Before(to) {
		return false
	}
	return c.IsDisabledTo == nil || from.Before(*c.IsDisabledTo)
}
