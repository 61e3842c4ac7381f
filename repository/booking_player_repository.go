package repository

import (
	"context"

	models "LoveForTennis/models/postgres"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingPlayerRepository interface {
	List(ctx context.Context) ([]models.BookingPlayer, error)
	GetByID(ctx context.Context, id uint) (*models.BookingPlayer, error)
	ListByBooking(ctx context.Context, bookingID uint) ([]models.BookingPlayer, error)
	ListByPlayer(ctx context.Context, playerUserID string) ([]models.BookingPlayer, error)
	// Exists reports whether the player is already on the booking,
	// ignoring the row excludeID when non-zero.
	Exists(ctx context.Context, bookingID uint, playerUserID string, excludeID uint) (bool, error)
	Create(ctx context.Context, player *models.BookingPlayer) error
	Save(ctx context.Context, player *models.BookingPlayer) error
	Delete(ctx context.Context, id uint) error
}

type GormBookingPlayerRepository struct {
	db *gorm.DB
}

func NewGormBookingPlayerRepository(db *gorm.DB) *GormBookingPlayerRepository {
	return &GormBookingPlayerRepository{db: db}
}

func (r *GormBookingPlayerRepository) withPlayer(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("PlayerUser")
}

func (r *GormBookingPlayerRepository) List(ctx context.Context) ([]models.BookingPlayer, error) {
	var players []models.BookingPlayer
	err := r.withPlayer(ctx).Order("id").Find(&players).Error
	return players, err
}

func (r *GormBookingPlayerRepository) GetByID(ctx context.Context, id uint) (*models.BookingPlayer, error) {
	var p models.BookingPlayer
	if err := r.withPlayer(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormBookingPlayerRepository) ListByBooking(ctx context.Context, bookingID uint) ([]models.BookingPlayer, error) {
	var players []models.BookingPlayer
	err := r.withPlayer(ctx).Where("booking_id = ?", bookingID).Order("id").Find(&players).Error
	return players, err
}

func (r *GormBookingPlayerRepository) ListByPlayer(ctx context.Context, playerUserID string) ([]models.BookingPlayer, error) {
	var players []models.BookingPlayer
	err := r.withPlayer(ctx).Where("player_user_id = ?", playerUserID).Order("id").Find(&players).Error
	return players, err
}

func (r *GormBookingPlayerRepository) Exists(ctx context.Context, bookingID uint, playerUserID string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.BookingPlayer{}).
		Where("booking_id = ? AND player_user_id = ?", bookingID, playerUserID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *GormBookingPlayerRepository) Create(ctx context.Context, player *models.BookingPlayer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(player).Error
}

func (r *GormBookingPlayerRepository) Save(ctx context.Context, player *models.BookingPlayer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(player).Error
}

func (r *GormBookingPlayerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.BookingPlayer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
