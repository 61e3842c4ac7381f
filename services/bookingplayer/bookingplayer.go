package bookingplayer

import (
	"context"
	"log"
	"time"

	"LoveForTennis/models/dto"
	models "LoveForTennis/models/postgres"
	"LoveForTennis/repository"
	"LoveForTennis/utils/apperror"
)

var (
	ErrNotFound        = apperror.NotFound("Booking player not found.")
	ErrBookingNotFound = apperror.NotFound("Booking not found.")
	ErrUserNotFound    = apperror.NotFound("User not found.")
	ErrDuplicate       = apperror.Duplicate("Player is already added to this booking.")
)

type Service struct {
	players  repository.BookingPlayerRepository
	bookings repository.BookingRepository
	users    repository.UserRepository
	now      func() time.Time
}

func NewService(players repository.BookingPlayerRepository, bookings repository.BookingRepository,
	users repository.UserRepository) *Service {
	return &Service{
		players:  players,
		bookings: bookings,
		users:    users,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func translate(err error) error {
	switch {
	case repository.IsNotFound(err):
		return ErrNotFound
	case repository.IsDuplicate(err):
		return ErrDuplicate
	case repository.IsForeignKeyViolation(err):
		return apperror.NotFound("Referenced booking or user not found.")
	}
	return apperror.Internal(err)
}

func toDtos(players []models.BookingPlayer) []dto.BookingPlayer {
	out := make([]dto.BookingPlayer, 0, len(players))
	for i := range players {
		out = append(out, dto.NewBookingPlayer(&players[i]))
	}
	return out
}

func (s *Service) List(ctx context.Context) ([]dto.BookingPlayer, error) {
	players, err := s.players.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toDtos(players), nil
}

func (s *Service) Get(ctx context.Context, id uint) (*dto.BookingPlayer, error) {
	p, err := s.players.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	out := dto.NewBookingPlayer(p)
	return &out, nil
}

func (s *Service) ListByBooking(ctx context.Context, bookingID uint) ([]dto.BookingPlayer, error) {
	players, err := s.players.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toDtos(players), nil
}

func (s *Service) ListByPlayer(ctx context.Context, playerUserID string) ([]dto.BookingPlayer, error) {
	players, err := s.players.ListByPlayer(ctx, playerUserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toDtos(players), nil
}

// checkRefs verifies the booking and user exist and that the pair is not
// taken by a row other than excludeID.
func (s *Service) checkRefs(ctx context.Context, in dto.BookingPlayer, excludeID uint) error {
	if _, err := s.bookings.GetByID(ctx, in.BookingID); err != nil {
		if repository.IsNotFound(err) {
			return ErrBookingNotFound
		}
		return apperror.Internal(err)
	}
	if _, err := s.users.GetByID(ctx, in.PlayerUserID); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return apperror.Internal(err)
	}
	taken, err := s.players.Exists(ctx, in.BookingID, in.PlayerUserID, excludeID)
	if err != nil {
		return apperror.Internal(err)
	}
	if taken {
		return ErrDuplicate
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in dto.BookingPlayer) (*dto.BookingPlayer, error) {
	if err := s.checkRefs(ctx, in, 0); err != nil {
		return nil, err
	}
	entity := models.BookingPlayer{
		BookingID:    in.BookingID,
		PlayerUserID: in.PlayerUserID,
		Created:      s.now(),
	}
	if err := s.players.Create(ctx, &entity); err != nil {
		return nil, translate(err)
	}
	log.Printf("[BOOKING] Player %s added to booking %d", entity.PlayerUserID, entity.BookingID)
	return s.Get(ctx, entity.ID)
}

func (s *Service) Update(ctx context.Context, in dto.BookingPlayer) (*dto.BookingPlayer, error) {
	existing, err := s.players.GetByID(ctx, in.ID)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.checkRefs(ctx, in, existing.ID); err != nil {
		return nil, err
	}
	now := s.now()
	entity := models.BookingPlayer{
		ID:           existing.ID,
		BookingID:    in.BookingID,
		PlayerUserID: in.PlayerUserID,
		Created:      existing.Created,
		LastUpdated:  &now,
	}
	if err := s.players.Save(ctx, &entity); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, entity.ID)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.players.Delete(ctx, id); err != nil {
		return translate(err)
	}
	return nil
}
