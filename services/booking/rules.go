package booking

import (
	"time"

	models "LoveForTennis/models/postgres"
	"LoveForTennis/utils/apperror"
)

var (
	ErrNotFound        = apperror.NotFound("Booking not found.")
	ErrCourtNotFound   = apperror.NotFound("Court not found.")
	ErrUserNotFound    = apperror.NotFound("User not found.")
	ErrInvalidInterval = apperror.Validation("Booking end must be after booking start.")
	ErrInvalidRange    = apperror.Validation("Range end must be after range start.")
	ErrInvalidType     = apperror.Validation("Invalid booking type.")
	ErrMisaligned      = apperror.Validation("Booking times must align to the court's booking granularity.")
	ErrOutsideWindow   = apperror.Validation("Booking must lie within the court's allowed booking hours.")
	ErrInPast          = apperror.Validation("Bookings cannot start in the past.")
	ErrTooFarAhead     = apperror.Validation("Booking lies beyond the days the court is open for booking.")
	ErrCourtDisabled   = apperror.Conflict("Court is disabled for the requested period.")
	ErrOverlap         = apperror.Conflict("The court is already booked for the requested time.")
)

// checkSlot applies the court rules to [from, to). Times of day and
// calendar days are read in loc, the club's timezone.
func checkSlot(court *models.Court, from, to, now time.Time, loc *time.Location) error {
	if !to.After(from) {
		return ErrInvalidInterval
	}

	localFrom, localTo := from.In(loc), to.In(loc)
	step := court.AllowedBookingTimeType.Step()
	if !aligned(localFrom, step) || !aligned(localTo, step) {
		return ErrMisaligned
	}

	open := atTimeOfDay(localFrom, time.Duration(court.BookingAllowedFrom))
	closing := atTimeOfDay(localFrom, time.Duration(court.BookingAllowedTill))
	if localFrom.Before(open) || localTo.After(closing) {
		return ErrOutsideWindow
	}

	if from.Before(now) {
		return ErrInPast
	}
	if days := court.BookingsOpenForNumberOfDaysIntoTheFuture; days != nil {
		today := now.In(loc)
		limit := time.Date(today.Year(), today.Month(), today.Day()+*days+1, 0, 0, 0, 0, loc)
		if to.After(limit) {
			return ErrTooFarAhead
		}
	}

	if court.DisabledDuring(from, to) {
		return ErrCourtDisabled
	}
	return nil
}

func aligned(t time.Time, step time.Duration) bool {
	if t.Second() != 0 || t.Nanosecond() != 0 {
		return false
	}
	return (time.Duration(t.Minute())*time.Minute)%step == 0
}

// atTimeOfDay returns the instant offset past midnight on the day of t.
func atTimeOfDay(t time.Time, offset time.Duration) time.Time {
	hours := int(offset / time.Hour)
	minutes := int(offset % time.Hour / time.Minute)
	return time.Date(t.Year(), t.Month(), t.Day(), hours, minutes, 0, 0, t.Location())
}
