package repository

import (
	"context"
	"time"

	models "LoveForTennis/models/postgres"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// CreateWithClaims stores the user and its claims in one transaction.
	CreateWithClaims(ctx context.Context, user *models.User, claims []models.UserClaim) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Email lookups are case insensitive.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// List returns users with their claims loaded.
	List(ctx context.Context) ([]models.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	// CountBookingReferences counts bookings owned and player slots held.
	CountBookingReferences(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id string) error

	AddClaim(ctx context.Context, claim *models.UserClaim) error
	ListClaims(ctx context.Context, userID, claimType string) ([]models.UserClaim, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *GormUserRepository) CreateWithClaims(ctx context.Context, user *models.User, claims []models.UserClaim) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		for i := range claims {
			claims[i].UserID = user.ID
			if err := tx.Create(&claims[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", models.NormalizeEmail(email)).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", models.NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *GormUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Preload("Claims", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("email").
		Find(&users).Error
	return users, err
}

func (r *GormUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

func (r *GormUserRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormUserRepository) CountBookingReferences(ctx context.Context, id string) (int64, error) {
	var owned, playing int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Booking{}).Where("booked_by_user_id = ?", id).Count(&owned).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&models.BookingPlayer{}).Where("player_user_id = ?", id).Count(&playing).Error; err != nil {
		return 0, err
	}
	return owned + playing, nil
}

// Delete removes the user and, through the cascade, its claims.
func (r *GormUserRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormUserRepository) AddClaim(ctx context.Context, claim *models.UserClaim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *GormUserRepository) ListClaims(ctx context.Context, userID, claimType string) ([]models.UserClaim, error) {
	var claims []models.UserClaim
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND claim_type = ?", userID, claimType).
		Order("id").
		Find(&claims).Error
	return claims, err
}
