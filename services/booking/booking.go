package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"LoveForTennis/models/dto"
	models "LoveForTennis/models/postgres"
	"LoveForTennis/repository"
	"LoveForTennis/utils/apperror"

	"gorm.io/gorm"
)

// Notifier receives every booking change after it is committed.
type Notifier interface {
	BookingChanged(event dto.BookingEvent)
}

type noopNotifier struct{}

func (noopNotifier) BookingChanged(dto.BookingEvent) {}

type Service struct {
	db       *gorm.DB
	bookings repository.BookingRepository
	courts   repository.CourtRepository
	users    repository.UserRepository
	notifier Notifier
	loc      *time.Location
	now      func() time.Time
}

// NewService builds the booking service. A nil notifier drops events and a
// nil loc means UTC.
func NewService(db *gorm.DB, bookings repository.BookingRepository, courts repository.CourtRepository,
	users repository.UserRepository, notifier Notifier, loc *time.Location) *Service {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		db:       db,
		bookings: bookings,
		courts:   courts,
		users:    users,
		notifier: notifier,
		loc:      loc,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func translate(err error) error {
	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
		return appErr
	case repository.IsNotFound(err):
		return ErrNotFound
	case repository.IsOverlap(err):
		return ErrOverlap
	case errors.Is(err, models.ErrBookingInterval):
		return ErrInvalidInterval
	case repository.IsForeignKeyViolation(err):
		return apperror.NotFound("Referenced court or user not found.")
	}
	return apperror.Internal(err)
}

func toDtos(bookings []models.Booking) []dto.Booking {
	out := make([]dto.Booking, 0, len(bookings))
	for i := range bookings {
		out = append(out, dto.NewBooking(&bookings[i]))
	}
	return out
}

func (s *Service) List(ctx context.Context) ([]dto.Booking, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toDtos(bookings), nil
}

func (s *Service) Get(ctx context.Context, id uint) (*dto.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	out := dto.NewBooking(b)
	return &out, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]dto.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toDtos(bookings), nil
}

// ListByCourt returns the court calendar for bookings starting in [from, to).
func (s *Service) ListByCourt(ctx context.Context, courtID uint, from, to time.Time) ([]dto.Booking, error) {
	if !to.After(from) {
		return nil, ErrInvalidRange
	}
	if _, err := s.courts.GetByID(ctx, courtID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCourtNotFound
		}
		return nil, apperror.Internal(err)
	}
	bookings, err := s.bookings.ListByCourt(ctx, courtID, from.UTC(), to.UTC())
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toDtos(bookings), nil
}

func bookingType(t models.BookingType) (models.BookingType, error) {
	if t == "" {
		return models.BookingRegular, nil
	}
	if !t.Valid() {
		return "", ErrInvalidType
	}
	return t, nil
}

func (s *Service) ensureUser(ctx context.Context, id string) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return apperror.Internal(err)
	}
	return nil
}

// Create books a court slot. The court row stays locked from the overlap
// check until the insert commits.
func (s *Service) Create(ctx context.Context, in dto.Booking) (*dto.Booking, error) {
	kind, err := bookingType(in.BookingType)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, in.BookedByUserID); err != nil {
		return nil, err
	}

	entity := models.Booking{
		BookedByUserID: in.BookedByUserID,
		CourtID:        in.CourtID,
		BookingFrom:    in.BookingFrom.UTC(),
		BookingTo:      in.BookingTo.UTC(),
		BookingType:    kind,
		Created:        s.now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		courts, bookings := s.courts.WithTx(tx), s.bookings.WithTx(tx)

		court, err := courts.LockByID(ctx, entity.CourtID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrCourtNotFound
			}
			return err
		}
		if err := checkSlot(court, entity.BookingFrom, entity.BookingTo, s.now(), s.loc); err != nil {
			return err
		}
		overlapping, err := bookings.FindOverlapping(ctx, court.ID, entity.BookingFrom, entity.BookingTo, 0)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return ErrOverlap
		}
		return bookings.Create(ctx, &entity)
	})
	if err != nil {
		return nil, translate(err)
	}

	log.Printf("[BOOKING] Booking %d created on court %d by %s", entity.ID, entity.CourtID, entity.BookedByUserID)
	s.notifier.BookingChanged(dto.NewBookingEvent(dto.BookingCreated, &entity))
	return s.Get(ctx, entity.ID)
}

// Update rewrites a booking. Court rules are checked again when the slot
// moves or a cancelled booking is reactivated; the overlap check runs for
// every booking that is not cancelled.
func (s *Service) Update(ctx context.Context, in dto.Booking) (*dto.Booking, error) {
	kind, err := bookingType(in.BookingType)
	if err != nil {
		return nil, err
	}
	existing, err := s.bookings.GetByID(ctx, in.ID)
	if err != nil {
		return nil, translate(err)
	}
	if in.BookedByUserID != existing.BookedByUserID {
		if err := s.ensureUser(ctx, in.BookedByUserID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	entity := models.Booking{
		ID:             existing.ID,
		BookedByUserID: in.BookedByUserID,
		CourtID:        in.CourtID,
		BookingFrom:    in.BookingFrom.UTC(),
		BookingTo:      in.BookingTo.UTC(),
		Cancelled:      in.Cancelled,
		BookingType:    kind,
		Created:        existing.Created,
		LastUpdated:    &now,
	}
	slotChanged := entity.CourtID != existing.CourtID ||
		!entity.BookingFrom.Equal(existing.BookingFrom) ||
		!entity.BookingTo.Equal(existing.BookingTo) ||
		(existing.Cancelled && !entity.Cancelled)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		courts, bookings := s.courts.WithTx(tx), s.bookings.WithTx(tx)

		court, err := courts.LockByID(ctx, entity.CourtID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrCourtNotFound
			}
			return err
		}
		if !entity.BookingTo.After(entity.BookingFrom) {
			return ErrInvalidInterval
		}
		if !entity.Cancelled {
			if slotChanged {
				if err := checkSlot(court, entity.BookingFrom, entity.BookingTo, now, s.loc); err != nil {
					return err
				}
			}
			overlapping, err := bookings.FindOverlapping(ctx, court.ID, entity.BookingFrom, entity.BookingTo, entity.ID)
			if err != nil {
				return err
			}
			if len(overlapping) > 0 {
				return ErrOverlap
			}
		}
		return bookings.Save(ctx, &entity)
	})
	if err != nil {
		return nil, translate(err)
	}

	action := dto.BookingUpdated
	if entity.Cancelled && !existing.Cancelled {
		action = dto.BookingCancelled
	}
	log.Printf("[BOOKING] Booking %d updated", entity.ID)
	s.notifier.BookingChanged(dto.NewBookingEvent(action, &entity))
	if existing.CourtID != entity.CourtID {
		s.notifier.BookingChanged(dto.NewBookingEvent(dto.BookingDeleted, existing))
	}
	return s.Get(ctx, entity.ID)
}

// Cancel marks the booking cancelled, freeing its slot.
func (s *Service) Cancel(ctx context.Context, id uint) (*dto.Booking, error) {
	existing, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if existing.Cancelled {
		out := dto.NewBooking(existing)
		return &out, nil
	}
	if err := s.bookings.SetCancelled(ctx, id, true, s.now()); err != nil {
		return nil, translate(err)
	}
	existing.Cancelled = true

	log.Printf("[BOOKING] Booking %d cancelled", id)
	s.notifier.BookingChanged(dto.NewBookingEvent(dto.BookingCancelled, existing))
	return s.Get(ctx, id)
}

// Delete removes the booking and its players.
func (s *Service) Delete(ctx context.Context, id uint) error {
	existing, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return translate(err)
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return translate(err)
	}

	log.Printf("[BOOKING] Booking %d deleted", id)
	s.notifier.BookingChanged(dto.NewBookingEvent(dto.BookingDeleted, existing))
	return nil
}
