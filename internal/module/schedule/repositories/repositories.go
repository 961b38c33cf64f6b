package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"training-booking-service/internal/module/schedule/models/entity"
	"training-booking-service/internal/pkg/database"
	"training-booking-service/internal/pkg/errors"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type repositories struct {
	db  *sqlx.DB
	log *otelzap.Logger
}

type Repositories interface {
	FindCourseByID(ctx context.Context, courseID int64) (entity.Course, error)
	FindVenueByID(ctx context.Context, venueID int64) (entity.Venue, error)
	FindScheduleByID(ctx context.Context, scheduleID int64) (entity.Schedule, error)
	InsertSchedule(ctx context.Context, schedule entity.Schedule) (int64, error)
	// LockCapacity must run inside a transaction; the row stays locked until it ends.
	LockCapacity(ctx context.Context, scheduleID int64) (entity.Capacity, error)
	UpdateCapacity(ctx context.Context, capacity entity.Capacity) error
}

func New(db *sqlx.DB, log *otelzap.Logger) Repositories {
	return &repositories{
		db:  db,
		log: log,
	}
}

// FindCourseByID implements Repositories.
func (r *repositories) FindCourseByID(ctx context.Context, courseID int64) (entity.Course, error) {
	query := `
		SELECT id, name, category, duration_hours, price, max_capacity, certification_validity_years,
			is_active, created_at, updated_at
		FROM courses WHERE id = $1`

	var course entity.Course
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &course, query, courseID)
	if err == sql.ErrNoRows {
		return entity.Course{}, errors.NotFound(fmt.Sprintf("course %d not found", courseID))
	}
	if err != nil {
		r.log.Ctx(ctx).Error("error find course by id", zap.Int64("course_id", courseID), zap.Error(err))
		return entity.Course{}, errors.InternalServerError("error find course by id")
	}
	return course, nil
}

// FindVenueByID implements Repositories.
func (r *repositories) FindVenueByID(ctx context.Context, venueID int64) (entity.Venue, error) {
	query := `
		SELECT id, name, address, capacity, facilities, is_active, created_at, updated_at
		FROM venues WHERE id = $1`

	var venue entity.Venue
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &venue, query, venueID)
	if err == sql.ErrNoRows {
		return entity.Venue{}, errors.NotFound(fmt.Sprintf("venue %d not found", venueID))
	}
	if err != nil {
		r.log.Ctx(ctx).Error("error find venue by id", zap.Int64("venue_id", venueID), zap.Error(err))
		return entity.Venue{}, errors.InternalServerError("error find venue by id")
	}
	return venue, nil
}

// FindScheduleByID implements Repositories.
func (r *repositories) FindScheduleByID(ctx context.Context, scheduleID int64) (entity.Schedule, error) {
	query := `
		SELECT id, course_id, venue_id, trainer_id, start_time, end_time, status, current_capacity,
			created_by, created_at, updated_at
		FROM course_schedules WHERE id = $1`

	var schedule entity.Schedule
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &schedule, query, scheduleID)
	if err == sql.ErrNoRows {
		return entity.Schedule{}, errors.NotFound(fmt.Sprintf("schedule %d not found", scheduleID))
	}
	if err != nil {
		r.log.Ctx(ctx).Error("error find schedule by id", zap.Int64("schedule_id", scheduleID), zap.Error(err))
		return entity.Schedule{}, errors.InternalServerError("error find schedule by id")
	}
	return schedule, nil
}

// InsertSchedule implements Repositories.
func (r *repositories) InsertSchedule(ctx context.Context, schedule entity.Schedule) (int64, error) {
	query := `
		INSERT INTO course_schedules (course_id, venue_id, trainer_id, start_time, end_time, status,
			current_capacity, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
		RETURNING id`

	var id int64
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &id, query,
		schedule.CourseID, schedule.VenueID, schedule.TrainerID, schedule.StartTime, schedule.EndTime,
		schedule.Status, schedule.CreatedBy)
	if err != nil {
		r.log.Ctx(ctx).Error("error insert schedule", zap.Error(err))
		return 0, errors.InternalServerError("error insert schedule")
	}
	return id, nil
}

// LockCapacity implements Repositories.
func (r *repositories) LockCapacity(ctx context.Context, scheduleID int64) (entity.Capacity, error) {
	if !database.InTransaction(ctx) {
		return entity.Capacity{}, errors.InternalServerError("capacity lock requires a transaction")
	}

	query := `
		SELECT cs.id, cs.status, cs.current_capacity, cs.start_time,
			c.max_capacity AS course_max_capacity, v.capacity AS venue_capacity
		FROM course_schedules cs
		JOIN courses c ON c.id = cs.course_id
		JOIN venues v ON v.id = cs.venue_id
		WHERE cs.id = $1
		FOR UPDATE OF cs`

	var capacity entity.Capacity
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &capacity, query, scheduleID)
	if err == sql.ErrNoRows {
		return entity.Capacity{}, errors.NotFound(fmt.Sprintf("schedule %d not found", scheduleID))
	}
	if err != nil {
		if database.IsRetryable(err) {
			return entity.Capacity{}, err
		}
		r.log.Ctx(ctx).Error("error lock schedule capacity", zap.Int64("schedule_id", scheduleID), zap.Error(err))
		return entity.Capacity{}, errors.InternalServerError("error lock schedule capacity")
	}
	return capacity, nil
}

// UpdateCapacity implements Repositories.
func (r *repositories) UpdateCapacity(ctx context.Context, capacity entity.Capacity) error {
	query := `
		UPDATE course_schedules
		SET current_capacity = $1, status = $2, updated_at = NOW()
		WHERE id = $3`

	_, err := database.Conn(ctx, r.db).ExecContext(ctx, query, capacity.Current, capacity.Status, capacity.ScheduleID)
	if err != nil {
		if database.IsRetryable(err) {
			return err
		}
		r.log.Ctx(ctx).Error("error update schedule capacity", zap.Int64("schedule_id", capacity.ScheduleID), zap.Error(err))
		return errors.InternalServerError("error update schedule capacity")
	}
	return nil
}
