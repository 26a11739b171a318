package postgres

import (
	"context"
	"errors"

	"github.com/FractalFish/recruitment-portal/internal/models"
	"github.com/FractalFish/recruitment-portal/internal/utils"
	"gorm.io/gorm"
)

type CompetenceRepository interface {
	All(ctx context.Context) ([]models.Competence, error)
	FindByID(ctx context.Context, competenceID uint) (*models.Competence, error)
}

type competenceRepo struct {
	db *gorm.DB
}

func NewCompetenceRepo(db *gorm.DB) CompetenceRepository {
	return &competenceRepo{db: db}
}

func (r *competenceRepo) All(ctx context.Context) ([]models.Competence, error) {
	var cs []models.Competence
	err := r.db.WithContext(ctx).
		Order("competence_id ASC").
		Find(&cs).Error
	return cs, err
}

func (r *competenceRepo) FindByID(ctx context.Context, competenceID uint) (*models.Competence, error) {
	var c models.Competence
	err := r.db.WithContext(ctx).
		Where("competence_id = ?", competenceID).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
