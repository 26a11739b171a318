package postgres

import (
	"context"
	"errors"

	"github.com/FractalFish/recruitment-portal/internal/models"
	"github.com/FractalFish/recruitment-portal/internal/utils"
	"gorm.io/gorm"
)

type PersonRepository interface {
	Create(ctx context.Context, p *models.Person) error
	FindByID(ctx context.Context, personID uint) (*models.Person, error)
	FindByUsername(ctx context.Context, username string) (*models.Person, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type personRepo struct {
	db *gorm.DB
}

func NewPersonRepo(db *gorm.DB) PersonRepository {
	return &personRepo{db: db}
}

func (r *personRepo) Create(ctx context.Context, p *models.Person) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *personRepo) FindByID(ctx context.Context, personID uint) (*models.Person, error) {
	var p models.Person
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("person_id = ?", personID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *personRepo) FindByUsername(ctx context.Context, username string) (*models.Person, error) {
	var p models.Person
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("username = ?", username).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *personRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Person{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

func (r *personRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Person{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}
