package court

import (
	"context"
	"strings"
	"time"

	"LoveForTennis/models/dto"
	models "LoveForTennis/models/postgres"
	"LoveForTennis/repository"
	"LoveForTennis/utils/apperror"
)

var (
	ErrNotFound        = apperror.NotFound("Court not found.")
	ErrHasBookings     = apperror.Conflict("Court has bookings and cannot be deleted.")
	ErrNameRequired    = apperror.Validation("Court name is required.")
	ErrNameTooLong     = apperror.Validation("Court name must be at most 100 characters.")
	ErrDescTooLong     = apperror.Validation("Court description must be at most 500 characters.")
	ErrInvalidSurface  = apperror.Validation("Invalid surface type.")
	ErrInvalidTimeType = apperror.Validation("Invalid allowed booking time type.")
	ErrInvalidInOut    = apperror.Validation("Invalid indoor/outdoor type.")
	ErrInvalidWindow   = apperror.Validation("Booking allowed from must be before booking allowed till.")
	ErrInvalidHorizon  = apperror.Validation("Days into the future must not be negative.")
	ErrInvalidDisabled = apperror.Validation("Disabled from must not be after disabled to.")
)

type Service struct {
	courts repository.CourtRepository
}

func NewService(courts repository.CourtRepository) *Service {
	return &Service{courts: courts}
}

func translate(err error) error {
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return apperror.Internal(err)
}

func validate(c *models.Court) error {
	name := strings.TrimSpace(c.Name)
	switch {
	case name == "":
		return ErrNameRequired
	case len(name) > 100:
		return ErrNameTooLong
	case len(c.Description) > 500:
		return ErrDescTooLong
	case !c.SurfaceType.Valid():
		return ErrInvalidSurface
	case !c.AllowedBookingTimeType.Valid():
		return ErrInvalidTimeType
	case !c.InOrOutdoorType.Valid():
		return ErrInvalidInOut
	case time.Duration(c.BookingAllowedFrom) >= time.Duration(c.BookingAllowedTill),
		time.Duration(c.BookingAllowedTill) > 24*time.Hour:
		return ErrInvalidWindow
	case c.BookingsOpenForNumberOfDaysIntoTheFuture != nil && *c.BookingsOpenForNumberOfDaysIntoTheFuture < 0:
		return ErrInvalidHorizon
	case c.IsDisabledFrom != nil && c.IsDisabledTo != nil && c.IsDisabledFrom.After(*c.IsDisabledTo):
		return ErrInvalidDisabled
	}
	c.Name = name
	return nil
}

func (s *Service) List(ctx context.Context) ([]dto.Court, error) {
	courts, err := s.courts.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out := make([]dto.Court, 0, len(courts))
	for i := range courts {
		out = append(out, dto.NewCourt(&courts[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*dto.Court, error) {
	c, err := s.courts.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	out := dto.NewCourt(c)
	return &out, nil
}

func (s *Service) Create(ctx context.Context, in dto.Court) (*dto.Court, error) {
	entity := in.Entity()
	if err := validate(&entity); err != nil {
		return nil, err
	}
	if err := s.courts.Create(ctx, &entity); err != nil {
		return nil, apperror.Internal(err)
	}
	out := dto.NewCourt(&entity)
	return &out, nil
}

func (s *Service) Update(ctx context.Context, in dto.Court) (*dto.Court, error) {
	if _, err := s.courts.GetByID(ctx, in.ID); err != nil {
		return nil, translate(err)
	}
	entity := in.Entity()
	entity.ID = in.ID
	if err := validate(&entity); err != nil {
		return nil, err
	}
	if err := s.courts.Save(ctx, &entity); err != nil {
		return nil, apperror.Internal(err)
	}
	out := dto.NewCourt(&entity)
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.courts.GetByID(ctx, id); err != nil {
		return translate(err)
	}
	n, err := s.courts.CountBookings(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if n > 0 {
		return ErrHasBookings
	}
	if err := s.courts.Delete(ctx, id); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return ErrHasBookings
		}
		return translate(err)
	}
	return nil
}

// Disable closes the court from `from` until `to`, or indefinitely when
// to is nil. byUser is recorded for display.
func (s *Service) Disable(ctx context.Context, id uint, from time.Time, to *time.Time, byUser string) (*dto.Court, error) {
	c, err := s.courts.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	from = from.UTC()
	if to != nil {
		utc := to.UTC()
		to = &utc
	}
	c.IsDisabledFrom = &from
	c.IsDisabledTo = to
	c.IsDisabledByUser = &byUser
	if err := validate(c); err != nil {
		return nil, err
	}
	if err := s.courts.Save(ctx, c); err != nil {
		return nil, apperror.Internal(err)
	}
	out := dto.NewCourt(c)
	return &out, nil
}

func (s *Service) Enable(ctx context.Context, id uint) (*dto.Court, error) {
	c, err := s.courts.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	c.IsDisabledFrom = nil
	c.IsDisabledTo = nil
	c.IsDisabledByUser = nil
	if err := s.courts.Save(ctx, c); err != nil {
		return nil, apperror.Internal(err)
	}
	out := dto.NewCourt(c)
	return &out, nil
}
