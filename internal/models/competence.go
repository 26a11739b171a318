package models

// Competence is a catalog entry naming a skill. The catalog is static
// reference data, seeded at startup.
type Competence struct {
	CompetenceID uint   `gorm:"column:competence_id;primaryKey;autoIncrement" json:"competence_id"`
	Name         string `gorm:"column:name;type:varchar(255);uniqueIndex;not null" json:"name"`
}

func (Competence) TableName() string { return "competence" }
