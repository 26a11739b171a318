package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ApplicationStatus values mirror the status column in PostgreSQL.
// Every status is reachable from every other; a transition is a plain
// assignment guarded only by the version check.
type ApplicationStatus string

const (
	StatusUnhandled ApplicationStatus = "UNHANDLED"
	StatusAccepted  ApplicationStatus = "ACCEPTED"
	StatusRejected  ApplicationStatus = "REJECTED"
)

// ParseApplicationStatus converts a raw string to an ApplicationStatus,
// returning an error for unknown values.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case StatusUnhandled, StatusAccepted, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// Application is the single job-application record owned by one person.
// Version starts at 0 and is incremented by the store on every successful
// write; it is the compare-and-swap register for concurrent status updates.
type Application struct {
	ApplicationID uint `gorm:"column:application_id;primaryKey;autoIncrement" json:"application_id"`

	PersonID uint   `gorm:"column:person_id;uniqueIndex;not null" json:"person_id"`
	Person   Person `gorm:"foreignKey:PersonID;references:PersonID" json:"-"`

	Status ApplicationStatus `gorm:"column:status;type:varchar(20);not null;default:UNHANDLED" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`

	Version int `gorm:"column:version;not null;default:0" json:"version"`

	// HistoryLog is a JSONB array of {from,to,at} entries appended on every
	// status transition.
	HistoryLog datatypes.JSON `gorm:"column:history_log;type:jsonb;default:'[]'" json:"history_log"`
}

func (Application) TableName() string { return "application" }
