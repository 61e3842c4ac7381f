package dummy

import (
	"context"
	"strings"

	"LoveForTennis/models/dto"
	models "LoveForTennis/models/postgres"
	"LoveForTennis/repository"
	"LoveForTennis/utils/apperror"
)

var (
	ErrNotFound     = apperror.NotFound("Dummy entity not found.")
	ErrNameRequired = apperror.Validation("Name is required.")
	ErrNameTooLong  = apperror.Validation("Name must be at most 100 characters.")
	ErrDescTooLong  = apperror.Validation("Description must be at most 500 characters.")
)

type Service struct {
	dummies repository.DummyRepository
}

func NewService(dummies repository.DummyRepository) *Service {
	return &Service{dummies: dummies}
}

func validate(in *dto.DummyEntity) error {
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		return ErrNameRequired
	case len(in.Name) > 100:
		return ErrNameTooLong
	case len(in.Description) > 500:
		return ErrDescTooLong
	}
	return nil
}

func translate(err error) error {
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return apperror.Internal(err)
}

func (s *Service) List(ctx context.Context) ([]dto.DummyEntity, error) {
	entities, err := s.dummies.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out := make([]dto.DummyEntity, 0, len(entities))
	for i := range entities {
		out = append(out, dto.NewDummyEntity(&entities[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*dto.DummyEntity, error) {
	e, err := s.dummies.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	out := dto.NewDummyEntity(e)
	return &out, nil
}

// Create ignores any caller supplied id or creation time.
func (s *Service) Create(ctx context.Context, in dto.DummyEntity) (*dto.DummyEntity, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	entity := models.DummyEntity{Name: in.Name, Description: in.Description}
	if err := s.dummies.Create(ctx, &entity); err != nil {
		return nil, apperror.Internal(err)
	}
	out := dto.NewDummyEntity(&entity)
	return &out, nil
}

func (s *Service) Update(ctx context.Context, in dto.DummyEntity) (*dto.DummyEntity, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	entity, err := s.dummies.GetByID(ctx, in.ID)
	if err != nil {
		return nil, translate(err)
	}
	entity.Name = in.Name
	entity.Description = in.Description
	if err := s.dummies.Save(ctx, entity); err != nil {
		return nil, apperror.Internal(err)
	}
	out := dto.NewDummyEntity(entity)
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.dummies.Delete(ctx, id); err != nil {
		return translate(err)
	}
	return nil
}
