package models

// Person holds identity, credentials and role assignment.
// Identity is immutable after registration.
type Person struct {
	PersonID uint   `gorm:"column:person_id;primaryKey;autoIncrement" json:"person_id"`
	Name     string `gorm:"column:name;type:varchar(255)" json:"name"`
	Surname  string `gorm:"column:surname;type:varchar(255)" json:"surname"`

	// Pnr is the national identity number, "YYYYMMDD-NNNN" when present.
	Pnr   string `gorm:"column:pnr;type:varchar(13)" json:"pnr"`
	Email string `gorm:"column:email;type:varchar(255)" json:"email"`

	Username string `gorm:"column:username;type:varchar(50);uniqueIndex;not null" json:"username"`

	// Password is the bcrypt hash, never the plaintext.
	Password string `gorm:"column:password;type:varchar(255);not null" json:"-"`

	RoleID uint `gorm:"column:role_id;not null" json:"role_id"`
	Role   Role `gorm:"foreignKey:RoleID;references:RoleID" json:"role"`
}

func (Person) TableName() string { return "person" }

// FullName is the display name used by the recruiter views.
func (p Person) FullName() string { return p.Name + " " + p.Surname }
