package request

import "time"

type CreateSchedule struct {
	CourseID  int64     `json:"course_id" validate:"required"`
	VenueID   int64     `json:"venue_id" validate:"required"`
	TrainerID *int64    `json:"trainer_id"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	CreatedBy int64     `json:"-"`
}
