package entity

import (
	"fmt"
	"time"

	"training-booking-service/internal/pkg/errors"
)

// Capacity is the row-locked view of a schedule used to reserve and release
// seats. Current never exceeds Max().
type Capacity struct {
	ScheduleID    int64          `db:"id"`
	Status        ScheduleStatus `db:"status"`
	Current       int            `db:"current_capacity"`
	CourseMax     int            `db:"course_max_capacity"`
	VenueCapacity int            `db:"venue_capacity"`
	StartTime     time.Time      `db:"start_time"`
}

// Max is the course limit, further bounded by the venue when it is smaller.
func (c Capacity) Max() int {
	if c.VenueCapacity > 0 && c.VenueCapacity < c.CourseMax {
		return c.VenueCapacity
	}
	return c.CourseMax
}

func (c Capacity) Available() int {
	if c.Current >= c.Max() {
		return 0
	}
	return c.Max() - c.Current
}

// Reserve takes seats and flips a published schedule to full when it reaches
// its limit. Nothing can be reserved once the schedule has started.
func (c *Capacity) Reserve(seats int, now time.Time) error {
	if seats <= 0 {
		return errors.BadRequest("seats must be positive")
	}

	switch c.Status {
	case ScheduleStatusPublished:
	case ScheduleStatusFull:
		return errors.CapacityExceeded(fmt.Sprintf("schedule %d is full", c.ScheduleID))
	default:
		return errors.BadRequest(fmt.Sprintf("schedule %d is %s and not open for booking", c.ScheduleID, c.Status))
	}

	if !now.Before(c.StartTime) {
		return errors.BadRequest(fmt.Sprintf("schedule %d has already started", c.ScheduleID))
	}

	if c.Current+seats > c.Max() {
		return errors.CapacityExceeded(fmt.Sprintf("schedule %d has %d seat(s) left, %d requested", c.ScheduleID, c.Available(), seats))
	}

	c.Current += seats
	if c.Current >= c.Max() {
		c.Status = ScheduleStatusFull
	}
	return nil
}

// Release gives seats back, clamping at zero. A full schedule reopens only if
// it has not started yet.
func (c *Capacity) Release(seats int, now time.Time) {
	if seats < 0 {
		seats = 0
	}

	c.Current -= seats
	if c.Current < 0 {
		c.Current = 0
	}

	if c.Status == ScheduleStatusFull && c.Current < c.Max() && now.Before(c.StartTime) {
		c.Status = ScheduleStatusPublished
	}
}
