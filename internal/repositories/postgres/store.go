package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the per-entity repositories over one gorm.DB so multi-table
// writes can share a transaction.
type Store struct {
	db *gorm.DB

	Persons        PersonRepository
	Roles          RoleRepository
	Competences    CompetenceRepository
	Profiles       CompetenceProfileRepository
	Availabilities AvailabilityRepository
	Applications   ApplicationRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:             db,
		Persons:        NewPersonRepo(db),
		Roles:          NewRoleRepo(db),
		Competences:    NewCompetenceRepo(db),
		Profiles:       NewCompetenceProfileRepo(db),
		Availabilities: NewAvailabilityRepo(db),
		Applications:   NewApplicationRepo(db),
	}
}

// TxRunner runs a function against a transaction-bound Store. Commit on nil
// return, rollback on error.
type TxRunner interface {
	Transaction(ctx context.Context, fn func(*Store) error) error
}

func (s *Store) Transaction(ctx context.Context, fn func(*Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
