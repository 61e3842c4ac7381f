package repository

import (
	"context"

	models "LoveForTennis/models/postgres"

	"gorm.io/gorm"
)

type DummyRepository interface {
	List(ctx context.Context) ([]models.DummyEntity, error)
	GetByID(ctx context.Context, id uint) (*models.DummyEntity, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, entity *models.DummyEntity) error
	Save(ctx context.Context, entity *models.DummyEntity) error
	Delete(ctx context.Context, id uint) error
}

type GormDummyRepository struct {
	db *gorm.DB
}

func NewGormDummyRepository(db *gorm.DB) *GormDummyRepository {
	return &GormDummyRepository{db: db}
}

func (r *GormDummyRepository) List(ctx context.Context) ([]models.DummyEntity, error) {
	var entities []models.DummyEntity
	err := r.db.WithContext(ctx).Order("id").Find(&entities).Error
	return entities, err
}

func (r *GormDummyRepository) GetByID(ctx context.Context, id uint) (*models.DummyEntity, error) {
	var e models.DummyEntity
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *GormDummyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DummyEntity{}).Count(&count).Error
	return count, err
}

func (r *GormDummyRepository) Create(ctx context.Context, entity *models.DummyEntity) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *GormDummyRepository) Save(ctx context.Context, entity *models.DummyEntity) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *GormDummyRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.DummyEntity{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
