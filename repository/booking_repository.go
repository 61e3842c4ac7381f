package repository

import (
	"context"
	"time"

	models "LoveForTennis/models/postgres"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	WithTx(tx *gorm.DB) BookingRepository
	// Read methods return the full aggregate: booking user, court and players.
	List(ctx context.Context) ([]models.Booking, error)
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// ListByCourt returns bookings of a court starting inside [from, to).
	ListByCourt(ctx context.Context, courtID uint, from, to time.Time) ([]models.Booking, error)
	// FindOverlapping returns non-cancelled bookings of the court that
	// intersect [from, to), skipping excludeID when non-zero.
	FindOverlapping(ctx context.Context, courtID uint, from, to time.Time, excludeID uint) ([]models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	Save(ctx context.Context, booking *models.Booking) error
	SetCancelled(ctx context.Context, id uint, cancelled bool, at time.Time) error
	// Delete removes the booking together with its players.
	Delete(ctx context.Context, id uint) error
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) WithTx(tx *gorm.DB) BookingRepository {
	return &GormBookingRepository{db: tx}
}

func (r *GormBookingRepository) withAggregate(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("BookedByUser").
		Preload("Court").
		Preload("Players", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Players.PlayerUser")
}

func (r *GormBookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.withAggregate(ctx).Order("booking_from, id").Find(&bookings).Error
	return bookings, err
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.withAggregate(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.withAggregate(ctx).
		Where("booked_by_user_id = ?", userID).
		Order("booking_from, id").
		Find(&bookings).Error
	return bookings, err
}

func (r *GormBookingRepository) ListByCourt(ctx context.Context, courtID uint, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.withAggregate(ctx).
		Where("court_id = ? AND booking_from >= ? AND booking_from < ?", courtID, from, to).
		Order("booking_from, id").
		Find(&bookings).Error
	return bookings, err
}

func (r *GormBookingRepository) FindOverlapping(ctx context.Context, courtID uint, from, to time.Time, excludeID uint) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("court_id = ? AND cancelled = ?", courtID, false).
		Where("booking_from < ? AND booking_to > ?", to, from)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var bookings []models.Booking
	err := q.Order("booking_from").Find(&bookings).Error
	return bookings, err
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(booking).Error
}

func (r *GormBookingRepository) Save(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(booking).Error
}

func (r *GormBookingRepository) SetCancelled(ctx context.Context, id uint, cancelled bool, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{"cancelled": cancelled, "last_updated": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormBookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&models.BookingPlayer{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Booking{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
