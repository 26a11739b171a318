package models

import "time"

// Availability is a date interval during which a person can work.
// Invariant: ToDate >= FromDate. Replaced wholesale on each submission.
type Availability struct {
	AvailabilityID uint `gorm:"column:availability_id;primaryKey;autoIncrement" json:"availability_id"`

	PersonID uint `gorm:"column:person_id;index;not null" json:"person_id"`

	FromDate time.Time `gorm:"column:from_date;type:date;not null" json:"from_date"`
	ToDate   time.Time `gorm:"column:to_date;type:date;not null" json:"to_date"`
}

func (Availability) TableName() string { return "availability" }
