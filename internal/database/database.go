// Package database owns schema migration and reference-data seeding.
package database

import (
	"github.com/FractalFish/recruitment-portal/internal/models"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.Person{},
		&models.Competence{},
		&models.Application{},
		&models.CompetenceProfile{},
		&models.Availability{},
	)
}

// Seed inserts the static reference data: the two roles and the competence
// catalog. Idempotent, existing rows are left untouched.
func Seed(db *gorm.DB) error {
	for _, name := range []string{models.RoleApplicant, models.RoleRecruiter} {
		role := models.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}

	for _, name := range []string{"ticket sales", "lotteries", "roller coaster operation"} {
		c := models.Competence{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}
	return nil
}
