package dto

import (
	"time"

	models "LoveForTennis/models/postgres"

	"gorm.io/datatypes"
)

type Court struct {
	ID                                       uint                   `json:"id"`
	Name                                     string                 `json:"name"`
	Description                              string                 `json:"description"`
	SurfaceType                              models.SurfaceType     `json:"surfaceType"`
	AllowedBookingTimeType                   models.BookingTimeType `json:"allowedBookingTimeType"`
	InOrOutdoorType                          models.InOrOutdoorType `json:"inOrOutdoorType"`
	BookingAllowedFrom                       datatypes.Time         `json:"bookingAllowedFrom"`
	BookingAllowedTill                       datatypes.Time         `json:"bookingAllowedTill"`
	BookingsOpenForNumberOfDaysIntoTheFuture *int                   `json:"bookingsOpenForNumberOfDaysIntoTheFuture"`
	IsDisabledFrom                           *time.Time             `json:"isDisabledFrom"`
	IsDisabledTo                             *time.Time             `json:"isDisabledTo"`
	IsDisabledByUser                         *string                `json:"isDisabledByUser"`
}

type DisableCourtRequest struct {
	From time.Time  `json:"from" binding:"required"`
	To   *time.Time `json:"to"`
}

func NewCourt(c *models.Court) Court {
	return Court{
		ID:                                       c.ID,
		Name:                                     c.Name,
		Description:                              c.Description,
		SurfaceType:                              c.SurfaceType,
		AllowedBookingTimeType:                   c.AllowedBookingTimeType,
		InOrOutdoorType:                          c.InOrOutdoorType,
		BookingAllowedFrom:                       c.BookingAllowedFrom,
		BookingAllowedTill:                       c.BookingAllowedTill,
		BookingsOpenForNumberOfDaysIntoTheFuture: c.BookingsOpenForNumberOfDaysIntoTheFuture,
		IsDisabledFrom:                           c.IsDisabledFrom,
		IsDisabledTo:                             c.IsDisabledTo,
		IsDisabledByUser:                         c.IsDisabledByUser,
	}
}

// Entity copies the transfer object onto a model, leaving the id to the caller.
func (c Court) Entity() models.Court {
	return models.Court{
		Name:                                     c.Name,
		Description:                              c.Description,
		SurfaceType:                              c.SurfaceType,
		AllowedBookingTimeType:                   c.AllowedBookingTimeType,
		InOrOutdoorType:                          c.InOrOutdoorType,
		BookingAllowedFrom:                       c.BookingAllowedFrom,
		BookingAllowedTill:                       c.BookingAllowedTill,
		BookingsOpenForNumberOfDaysIntoTheFuture: c.BookingsOpenForNumberOfDaysIntoTheFuture,
		IsDisabledFrom:                           c.IsDisabledFrom,
		IsDisabledTo:                             c.IsDisabledTo,
		IsDisabledByUser:                         c.IsDisabledByUser,
	}
}
