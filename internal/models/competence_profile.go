package models

// CompetenceProfile is a person's claimed skill plus years of experience.
// All of a person's profiles are replaced wholesale on each submission.
type CompetenceProfile struct {
	CompetenceProfileID uint `gorm:"column:competence_profile_id;primaryKey;autoIncrement" json:"competence_profile_id"`

	PersonID uint `gorm:"column:person_id;index;not null" json:"person_id"`

	CompetenceID uint       `gorm:"column:competence_id;not null" json:"competence_id"`
	Competence   Competence `gorm:"foreignKey:CompetenceID;references:CompetenceID" json:"competence"`

	YearsOfExperience float64 `gorm:"column:years_of_experience;type:numeric(4,2);not null" json:"years_of_experience"`
}

func (CompetenceProfile) TableName() string { return "competence_profile" }
