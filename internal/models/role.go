package models

const (
	RoleApplicant = "applicant"
	RoleRecruiter = "recruiter"
)

// Role is a static capability label looked up by name.
type Role struct {
	RoleID uint   `gorm:"column:role_id;primaryKey;autoIncrement" json:"role_id"`
	Name   string `gorm:"column:name;type:varchar(50);uniqueIndex;not null" json:"name"`
}

func (Role) TableName() string { return "role" }
