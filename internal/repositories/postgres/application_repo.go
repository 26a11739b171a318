package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/FractalFish/recruitment-portal/internal/models"
	"github.com/FractalFish/recruitment-portal/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VersionCheck selects between an unconditional status write and a
// compare-and-swap against the version the caller last observed.
type VersionCheck struct {
	expected int
	enforced bool
}

// Unconditional skips the version comparison. The write still increments
// the stored version atomically.
func Unconditional() VersionCheck { return VersionCheck{} }

// ExpectedVersion makes the write succeed only while the stored version
// still equals v.
func ExpectedVersion(v int) VersionCheck { return VersionCheck{expected: v, enforced: true} }

// Expected reports the expected version and whether the check is enforced.
func (c VersionCheck) Expected() (int, bool) { return c.expected, c.enforced }

type ApplicationRepository interface {
	FindByID(ctx context.Context, applicationID uint) (*models.Application, error)
	FindByPersonID(ctx context.Context, personID uint) (*models.Application, error)
	ExistsByPersonID(ctx context.Context, personID uint) (bool, error)
	FindOrCreateByPersonID(ctx context.Context, personID uint) (*models.Application, error)
	List(ctx context.Context, status *models.ApplicationStatus, page, size int) ([]models.Application, int64, error)
	UpdateStatus(ctx context.Context, applicationID uint, newStatus models.ApplicationStatus, check VersionCheck) (*models.Application, error)
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) FindByID(ctx context.Context, applicationID uint) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Preload("Person").
		Where("application_id = ?", applicationID).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepo) FindByPersonID(ctx context.Context, personID uint) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Preload("Person").
		Where("person_id = ?", personID).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepo) ExistsByPersonID(ctx context.Context, personID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("person_id = ?", personID).
		Count(&count).Error
	return count > 0, err
}

// FindOrCreateByPersonID returns the person's application, creating it at
// UNHANDLED when absent. An existing application keeps its status and id.
func (r *applicationRepo) FindOrCreateByPersonID(ctx context.Context, personID uint) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Take(&a).Error
	if err == nil {
		return &a, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	a = models.Application{
		PersonID:   personID,
		Status:     models.StatusUnhandled,
		CreatedAt:  now,
		UpdatedAt:  now,
		Version:    0,
		HistoryLog: datatypes.JSON("[]"),
	}
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepo) List(ctx context.Context, status *models.ApplicationStatus, page, size int) ([]models.Application, int64, error) {
	var total int64
	count := r.db.WithContext(ctx).Model(&models.Application{})
	if status != nil {
		count = count.Where("status = ?", *status)
	}
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).
		Preload("Person").
		Order("created_at DESC").
		Offset(page * size).
		Limit(size)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	apps := make([]models.Application, 0)
	if err := q.Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

type statusChange struct {
	From models.ApplicationStatus `json:"from"`
	To   models.ApplicationStatus `json:"to"`
	At   string                   `json:"at"`
}

// UpdateStatus performs the conditional single-row write behind the status
// transition protocol:
//
//	UPDATE application
//	SET status = ?, updated_at = now, version = version + 1,
//	    history_log = history_log || entry
//	WHERE application_id = ? [AND version = ?]
//	RETURNING *
//
// Zero affected rows under an enforced check means another writer advanced
// the version between the caller's read and this write.
func (r *applicationRepo) UpdateStatus(ctx context.Context, applicationID uint, newStatus models.ApplicationStatus, check VersionCheck) (*models.Application, error) {
	var current models.Application
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Take(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if expected, enforced := check.Expected(); enforced && expected != current.Version {
		return nil, utils.ErrVersionConflict
	}

	entry, err := json.Marshal([]statusChange{{
		From: current.Status,
		To:   newStatus,
		At:   time.Now().UTC().Format(time.RFC3339),
	}})
	if err != nil {
		return nil, err
	}

	var updated models.Application
	q := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("application_id = ?", applicationID)
	if expected, enforced := check.Expected(); enforced {
		q = q.Where("version = ?", expected)
	}
	res := q.Updates(map[string]any{
		"status":      newStatus,
		"updated_at":  time.Now().UTC(),
		"version":     gorm.Expr("version + 1"),
		"history_log": gorm.Expr("history_log || ?::jsonb", string(entry)),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, enforced := check.Expected(); enforced {
			// The row existed when we read it, so a concurrent writer won.
			return nil, utils.ErrVersionConflict
		}
		return nil, utils.ErrNotFound
	}
	return &updated, nil
}
