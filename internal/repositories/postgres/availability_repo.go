package postgres

import (
	"context"

	"github.com/FractalFish/recruitment-portal/internal/models"
	"gorm.io/gorm"
)

type AvailabilityRepository interface {
	ListByPersonID(ctx context.Context, personID uint) ([]models.Availability, error)
	DeleteByPersonID(ctx context.Context, personID uint) error
	Create(ctx context.Context, a *models.Availability) error
}

type availabilityRepo struct {
	db *gorm.DB
}

func NewAvailabilityRepo(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) ListByPersonID(ctx context.Context, personID uint) ([]models.Availability, error) {
	var as []models.Availability
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("from_date ASC").
		Find(&as).Error
	return as, err
}

func (r *availabilityRepo) DeleteByPersonID(ctx context.Context, personID uint) error {
	return r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Delete(&models.Availability{}).Error
}

func (r *availabilityRepo) Create(ctx context.Context, a *models.Availability) error {
	return r.db.WithContext(ctx).Create(a).Error
}
