package repository

import (
	"context"
	"fmt"
	"studentportal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(database *gorm.DB) domain.RegistrationRepo {
	return &registrationRepository{
		db: database,
	}
}

func (rr *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.NewStorageError("create", fmt.Errorf("could not allocate id: %w", err))
	}
	reg.ID = id.String()

	if err := rr.db.WithContext(ctx).Create(reg).Error; err != nil {
		reg.ID = ""
		return domain.NewStorageError("create", err)
	}

	return nil
}

func (rr *registrationRepository) GetAll(ctx context.Context) ([]domain.Registration, error) {
	registrations := []domain.Registration{}
	err := rr.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, domain.NewStorageError("list", err)
	}

	return registrations, nil
}
