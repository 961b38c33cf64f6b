package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type ScheduleStatus string

const (
	ScheduleStatusDraft     ScheduleStatus = "draft"
	ScheduleStatusPublished ScheduleStatus = "published"
	ScheduleStatusFull      ScheduleStatus = "full"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
	ScheduleStatusCompleted ScheduleStatus = "completed"
)

type Course struct {
	ID                         int64           `db:"id"`
	Name                       string          `db:"name"`
	Category                   string          `db:"category"`
	DurationHours              int             `db:"duration_hours"`
	Price                      decimal.Decimal `db:"price"`
	MaxCapacity                int             `db:"max_capacity"`
	CertificationValidityYears sql.NullInt32   `db:"certification_validity_years"`
	IsActive                   bool            `db:"is_active"`
	CreatedAt                  time.Time       `db:"created_at"`
	UpdatedAt                  sql.NullTime    `db:"updated_at"`
}

type Venue struct {
	ID         int64        `db:"id"`
	Name       string       `db:"name"`
	Address    string       `db:"address"`
	Capacity   int          `db:"capacity"`
	Facilities []byte       `db:"facilities"` // jsonb
	IsActive   bool         `db:"is_active"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  sql.NullTime `db:"updated_at"`
}

type Schedule struct {
	ID              int64          `db:"id"`
	CourseID        int64          `db:"course_id"`
	VenueID         int64          `db:"venue_id"`
	TrainerID       sql.NullInt64  `db:"trainer_id"`
	StartTime       time.Time      `db:"start_time"`
	EndTime         time.Time      `db:"end_time"`
	Status          ScheduleStatus `db:"status"`
	CurrentCapacity int            `db:"current_capacity"`
	CreatedBy       int64          `db:"created_by"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       sql.NullTime   `db:"updated_at"`
}
