package postgres

import (
	"context"

	"github.com/FractalFish/recruitment-portal/internal/models"
	"gorm.io/gorm"
)

type CompetenceProfileRepository interface {
	ListByPersonID(ctx context.Context, personID uint) ([]models.CompetenceProfile, error)
	DeleteByPersonID(ctx context.Context, personID uint) error
	Create(ctx context.Context, p *models.CompetenceProfile) error
}

type competenceProfileRepo struct {
	db *gorm.DB
}

func NewCompetenceProfileRepo(db *gorm.DB) CompetenceProfileRepository {
	return &competenceProfileRepo{db: db}
}

func (r *competenceProfileRepo) ListByPersonID(ctx context.Context, personID uint) ([]models.CompetenceProfile, error) {
	var ps []models.CompetenceProfile
	err := r.db.WithContext(ctx).
		Preload("Competence").
		Where("person_id = ?", personID).
		Order("competence_profile_id ASC").
		Find(&ps).Error
	return ps, err
}

func (r *competenceProfileRepo) DeleteByPersonID(ctx context.Context, personID uint) error {
	return r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Delete(&models.CompetenceProfile{}).Error
}

func (r *competenceProfileRepo) Create(ctx context.Context, p *models.CompetenceProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}
