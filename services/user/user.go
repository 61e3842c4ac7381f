package user

import (
	"context"

	"LoveForTennis/models/dto"
	"LoveForTennis/repository"
	"LoveForTennis/utils/apperror"
)

var (
	ErrNotFound       = apperror.NotFound("User not found.")
	ErrHasBookings    = apperror.Conflict("User owns or plays in bookings and cannot be deleted.")
	ErrDeleteYourself = apperror.Conflict("You cannot delete your own account.")
)

type Service struct {
	users repository.UserRepository
}

func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) List(ctx context.Context) ([]dto.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out := make([]dto.User, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUser(&users[i]))
	}
	return out, nil
}

// Delete removes a user with no bookings. actingUserID may not delete itself.
func (s *Service) Delete(ctx context.Context, id, actingUserID string) error {
	if id == actingUserID {
		return ErrDeleteYourself
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return apperror.Internal(err)
	}
	refs, err := s.users.CountBookingReferences(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if refs > 0 {
		return ErrHasBookings
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return ErrHasBookings
		}
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return apperror.Internal(err)
	}
	return nil
}
