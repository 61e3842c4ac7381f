package booking

import (
	"testing"
	"time"

	models "LoveForTennis/models/postgres"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func hourlyCourt(days int) *models.Court {
	return &models.Court{
		AllowedBookingTimeType:                   models.BookingTimeHour,
		BookingAllowedFrom:                       datatypes.NewTime(7, 0, 0, 0),
		BookingAllowedTill:                       datatypes.NewTime(22, 0, 0, 0),
		BookingsOpenForNumberOfDaysIntoTheFuture: &days,
	}
}

func TestCheckSlot(t *testing.T) {
	now := time.Date(2030, 5, 17, 8, 15, 0, 0, time.UTC)
	at := func(day, hour, minute int) time.Time {
		return time.Date(2030, 5, day, hour, minute, 0, 0, time.UTC)
	}
	disabledFrom := at(20, 0, 0)
	disabledTo := at(21, 0, 0)

	halfHour := hourlyCourt(14)
	halfHour.AllowedBookingTimeType = models.BookingTimeHalfHour

	disabled := hourlyCourt(14)
	disabled.IsDisabledFrom = &disabledFrom
	disabled.IsDisabledTo = &disabledTo

	openEnded := hourlyCourt(14)
	openEnded.IsDisabledFrom = &disabledFrom

	unlimited := hourlyCourt(0)
	unlimited.BookingsOpenForNumberOfDaysIntoTheFuture = nil

	cases := []struct {
		name     string
		court    *models.Court
		from, to time.Time
		want     error
	}{
		{"valid hour", hourlyCourt(14), at(17, 10, 0), at(17, 11, 0), nil},
		{"end before start", hourlyCourt(14), at(17, 11, 0), at(17, 10, 0), ErrInvalidInterval},
		{"empty slot", hourlyCourt(14), at(17, 10, 0), at(17, 10, 0), ErrInvalidInterval},
		{"half past on hourly court", hourlyCourt(14), at(17, 10, 30), at(17, 11, 30), ErrMisaligned},
		{"half past on half-hour court", halfHour, at(17, 10, 30), at(17, 11, 0), nil},
		{"quarter on half-hour court", halfHour, at(17, 10, 15), at(17, 11, 0), ErrMisaligned},
		{"seconds set", hourlyCourt(14), at(17, 10, 0).Add(time.Second), at(17, 11, 0), ErrMisaligned},
		{"before opening", hourlyCourt(14), at(18, 6, 0), at(18, 8, 0), ErrOutsideWindow},
		{"until closing", hourlyCourt(14), at(18, 21, 0), at(18, 22, 0), nil},
		{"after closing", hourlyCourt(14), at(18, 21, 0), at(18, 23, 0), ErrOutsideWindow},
		{"already started", hourlyCourt(14), at(17, 8, 0), at(17, 9, 0), ErrInPast},
		{"last day of horizon", hourlyCourt(14), at(31, 21, 0), at(31, 22, 0), nil},
		{"beyond horizon", hourlyCourt(13), at(31, 10, 0), at(31, 11, 0), ErrTooFarAhead},
		{"unlimited horizon", unlimited, time.Date(2031, 1, 2, 10, 0, 0, 0, time.UTC), time.Date(2031, 1, 2, 11, 0, 0, 0, time.UTC), nil},
		{"inside disabled period", disabled, at(20, 10, 0), at(20, 11, 0), ErrCourtDisabled},
		{"after disabled period", disabled, at(21, 10, 0), at(21, 11, 0), nil},
		{"open ended disabled period", openEnded, at(25, 10, 0), at(25, 11, 0), ErrCourtDisabled},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := checkSlot(c.court, c.from, c.to, now, time.UTC)
			if c.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestCheckSlotUsesClubTimezone(t *testing.T) {
	loc := time.FixedZone("club", 2*60*60)
	now := time.Date(2030, 5, 17, 0, 0, 0, 0, time.UTC)

	// 05:00 UTC is 07:00 at the club, the opening hour.
	from := time.Date(2030, 5, 18, 5, 0, 0, 0, time.UTC)
	assert.NoError(t, checkSlot(hourlyCourt(14), from, from.Add(time.Hour), now, loc))
	assert.ErrorIs(t, checkSlot(hourlyCourt(14), from, from.Add(time.Hour), now, time.UTC), ErrOutsideWindow)
}
