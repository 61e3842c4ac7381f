package repository

import (
	"context"

	models "LoveForTennis/models/postgres"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourtRepository interface {
	WithTx(tx *gorm.DB) CourtRepository
	List(ctx context.Context) ([]models.Court, error)
	GetByID(ctx context.Context, id uint) (*models.Court, error)
	// LockByID reads the court holding a row lock until the transaction ends.
	LockByID(ctx context.Context, id uint) (*models.Court, error)
	Count(ctx context.Context) (int64, error)
	CountBookings(ctx context.Context, id uint) (int64, error)
	Create(ctx context.Context, court *models.Court) error
	Save(ctx context.Context, court *models.Court) error
	Delete(ctx context.Context, id uint) error
}

type GormCourtRepository struct {
	db *gorm.DB
}

func NewGormCourtRepository(db *gorm.DB) *GormCourtRepository {
	return &GormCourtRepository{db: db}
}

func (r *GormCourtRepository) WithTx(tx *gorm.DB) CourtRepository {
	return &GormCourtRepository{db: tx}
}

func (r *GormCourtRepository) List(ctx context.Context) ([]models.Court, error) {
	var courts []models.Court
	err := r.db.WithContext(ctx).Order("id").Find(&courts).Error
	return courts, err
}

func (r *GormCourtRepository) GetByID(ctx context.Context, id uint) (*models.Court, error) {
	var c models.Court
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCourtRepository) LockByID(ctx context.Context, id uint) (*models.Court, error) {
	var c models.Court
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCourtRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Court{}).Count(&count).Error
	return count, err
}

func (r *GormCourtRepository) CountBookings(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Where("court_id = ?", id).Count(&count).Error
	return count, err
}

func (r *GormCourtRepository) Create(ctx context.Context, court *models.Court) error {
	return r.db.WithContext(ctx).Create(court).Error
}

// Save writes every column of an existing court.
func (r *GormCourtRepository) Save(ctx context.Context, court *models.Court) error {
	return r.db.WithContext(ctx).Save(court).Error
}

func (r *GormCourtRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Court{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
