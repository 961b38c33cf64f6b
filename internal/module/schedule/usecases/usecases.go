package usecases

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"training-booking-service/internal/module/schedule/models/entity"
	"training-booking-service/internal/module/schedule/models/request"
	"training-booking-service/internal/module/schedule/models/response"
	"training-booking-service/internal/module/schedule/repositories"
	"training-booking-service/internal/pkg/audit"
	"training-booking-service/internal/pkg/cache"
	"training-booking-service/internal/pkg/database"
	"training-booking-service/internal/pkg/errors"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const timeLayout = "2006-01-02 15:04:05"

type usecase struct {
	repo    repositories.Repositories
	tx      database.Transactor
	audit   audit.Logger
	log     *otelzap.Logger
	courses *cache.Cache[int64, entity.Course]
	venues  *cache.Cache[int64, entity.Venue]
	now     func() time.Time
}

type Usecase interface {
	// http
	CreateSchedule(ctx context.Context, payload *request.CreateSchedule) (response.Schedule, error)
	GetSchedule(ctx context.Context, scheduleID int64) (response.Schedule, error)
	Publish(ctx context.Context, scheduleID, actorID int64) error
	Cancel(ctx context.Context, scheduleID, actorID int64) error
	// capacity tracker
	Reserve(ctx context.Context, scheduleID int64, seats int) (entity.Capacity, error)
	Release(ctx context.Context, scheduleID int64, seats int) (entity.Capacity, error)
	MarkCompleted(ctx context.Context, scheduleID int64) error
	// catalog
	GetCourse(ctx context.Context, courseID int64) (entity.Course, error)
	GetVenue(ctx context.Context, venueID int64) (entity.Venue, error)
}

type Options struct {
	CacheSize int
	CacheTTL  time.Duration
	Now       func() time.Time
}

func New(repo repositories.Repositories, tx database.Transactor, auditLog audit.Logger, log *otelzap.Logger, opts Options) Usecase {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &usecase{
		repo:    repo,
		tx:      tx,
		audit:   auditLog,
		log:     log,
		courses: cache.New[int64, entity.Course](opts.CacheSize, opts.CacheTTL),
		venues:  cache.New[int64, entity.Venue](opts.CacheSize, opts.CacheTTL),
		now:     now,
	}
}

func (u *usecase) GetCourse(ctx context.Context, courseID int64) (entity.Course, error) {
	return u.courses.GetOrLoad(ctx, courseID, func(ctx context.Context) (entity.Course, error) {
		return u.repo.FindCourseByID(ctx, courseID)
	})
}

func (u *usecase) GetVenue(ctx context.Context, venueID int64) (entity.Venue, error) {
	return u.venues.GetOrLoad(ctx, venueID, func(ctx context.Context) (entity.Venue, error) {
		return u.repo.FindVenueByID(ctx, venueID)
	})
}

func (u *usecase) CreateSchedule(ctx context.Context, payload *request.CreateSchedule) (response.Schedule, error) {
	course, err := u.GetCourse(ctx, payload.CourseID)
	if err != nil {
		return response.Schedule{}, err
	}
	venue, err := u.GetVenue(ctx, payload.VenueID)
	if err != nil {
		return response.Schedule{}, err
	}

	if !course.IsActive || !venue.IsActive {
		return response.Schedule{}, errors.BadRequest("course and venue must be active")
	}
	if course.MaxCapacity > venue.Capacity {
		return response.Schedule{}, errors.BadRequest(fmt.Sprintf("course capacity %d exceeds venue capacity %d", course.MaxCapacity, venue.Capacity))
	}
	if !payload.EndTime.After(payload.StartTime) {
		return response.Schedule{}, errors.BadRequest("end time must be after start time")
	}
	if !payload.StartTime.After(u.now()) {
		return response.Schedule{}, errors.BadRequest("start time must be in the future")
	}

	schedule := entity.Schedule{
		CourseID:  payload.CourseID,
		VenueID:   payload.VenueID,
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
		Status:    entity.ScheduleStatusDraft,
		CreatedBy: payload.CreatedBy,
	}
	if payload.TrainerID != nil {
		schedule.TrainerID = sql.NullInt64{Int64: *payload.TrainerID, Valid: true}
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		id, err := u.repo.InsertSchedule(ctx, schedule)
		if err != nil {
			return err
		}
		schedule.ID = id

		return u.audit.Admin(ctx, audit.AdminEntry{
			ActorID:    payload.CreatedBy,
			Action:     "schedule_created",
			EntityType: "course_schedule",
			EntityID:   strconv.FormatInt(id, 10),
			After:      schedule,
		})
	})
	if err != nil {
		return response.Schedule{}, err
	}

	return toResponse(schedule, course, venue), nil
}

func (u *usecase) GetSchedule(ctx context.Context, scheduleID int64) (response.Schedule, error) {
	schedule, err := u.repo.FindScheduleByID(ctx, scheduleID)
	if err != nil {
		return response.Schedule{}, err
	}
	course, err := u.GetCourse(ctx, schedule.CourseID)
	if err != nil {
		return response.Schedule{}, err
	}
	venue, err := u.GetVenue(ctx, schedule.VenueID)
	if err != nil {
		return response.Schedule{}, err
	}
	return toResponse(schedule, course, venue), nil
}

func (u *usecase) Publish(ctx context.Context, scheduleID, actorID int64) error {
	return u.changeStatus(ctx, scheduleID, actorID, "schedule_published", func(c *entity.Capacity) error {
		if c.Status != entity.ScheduleStatusDraft {
			return errors.InvalidTransition(fmt.Sprintf("schedule %d is %s, only draft schedules can be published", scheduleID, c.Status))
		}
		if !c.StartTime.After(u.now()) {
			return errors.BadRequest("schedule has already started")
		}
		c.Status = entity.ScheduleStatusPublished
		if c.Current >= c.Max() {
			c.Status = entity.ScheduleStatusFull
		}
		return nil
	})
}

func (u *usecase) Cancel(ctx context.Context, scheduleID, actorID int64) error {
	return u.changeStatus(ctx, scheduleID, actorID, "schedule_cancelled", func(c *entity.Capacity) error {
		switch c.Status {
		case entity.ScheduleStatusDraft, entity.ScheduleStatusPublished, entity.ScheduleStatusFull:
		default:
			return errors.InvalidTransition(fmt.Sprintf("schedule %d is %s and cannot be cancelled", scheduleID, c.Status))
		}
		if c.Current > 0 {
			return errors.BadRequest(fmt.Sprintf("schedule %d still holds %d active seat(s)", scheduleID, c.Current))
		}
		c.Status = entity.ScheduleStatusCancelled
		return nil
	})
}

// MarkCompleted closes a schedule once it has run. It joins the caller's
// transaction when there is one.
func (u *usecase) MarkCompleted(ctx context.Context, scheduleID int64) error {
	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := u.repo.LockCapacity(ctx, scheduleID)
		if err != nil {
			return err
		}

		switch c.Status {
		case entity.ScheduleStatusCompleted:
			return nil
		case entity.ScheduleStatusPublished, entity.ScheduleStatusFull:
		default:
			return errors.InvalidTransition(fmt.Sprintf("schedule %d is %s and cannot be completed", scheduleID, c.Status))
		}
		if u.now().Before(c.StartTime) {
			return errors.BadRequest(fmt.Sprintf("schedule %d has not started yet", scheduleID))
		}

		c.Status = entity.ScheduleStatusCompleted
		return u.repo.UpdateCapacity(ctx, c)
	})
}

// Reserve takes seats on a schedule. It joins the caller's transaction when
// there is one so the reservation commits or rolls back with the booking.
func (u *usecase) Reserve(ctx context.Context, scheduleID int64, seats int) (entity.Capacity, error) {
	var result entity.Capacity
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := u.repo.LockCapacity(ctx, scheduleID)
		if err != nil {
			return err
		}
		if err := c.Reserve(seats, u.now()); err != nil {
			return err
		}
		if err := u.repo.UpdateCapacity(ctx, c); err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return entity.Capacity{}, err
	}

	if result.Status == entity.ScheduleStatusFull {
		u.log.Ctx(ctx).Info("schedule is full", zap.Int64("schedule_id", scheduleID))
	}
	return result, nil
}

// Release gives seats back. Callers make it idempotent by only releasing for
// the booking transition they won.
func (u *usecase) Release(ctx context.Context, scheduleID int64, seats int) (entity.Capacity, error) {
	var result entity.Capacity
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := u.repo.LockCapacity(ctx, scheduleID)
		if err != nil {
			return err
		}
		c.Release(seats, u.now())
		if err := u.repo.UpdateCapacity(ctx, c); err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return entity.Capacity{}, err
	}
	return result, nil
}

func (u *usecase) changeStatus(ctx context.Context, scheduleID, actorID int64, action string, apply func(c *entity.Capacity) error) error {
	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := u.repo.LockCapacity(ctx, scheduleID)
		if err != nil {
			return err
		}

		before := c.Status
		if err := apply(&c); err != nil {
			return err
		}
		if err := u.repo.UpdateCapacity(ctx, c); err != nil {
			return err
		}

		return u.audit.Admin(ctx, audit.AdminEntry{
			ActorID:    actorID,
			Action:     action,
			EntityType: "course_schedule",
			EntityID:   strconv.FormatInt(scheduleID, 10),
			Before:     map[string]string{"status": string(before)},
			After:      map[string]string{"status": string(c.Status)},
		})
	})
}

func toResponse(schedule entity.Schedule, course entity.Course, venue entity.Venue) response.Schedule {
	c := entity.Capacity{
		Current:       schedule.CurrentCapacity,
		CourseMax:     course.MaxCapacity,
		VenueCapacity: venue.Capacity,
	}
	return response.Schedule{
		ID:              schedule.ID,
		CourseID:        course.ID,
		CourseName:      course.Name,
		VenueID:         venue.ID,
		VenueName:       venue.Name,
		StartTime:       schedule.StartTime.Format(timeLayout),
		EndTime:         schedule.EndTime.Format(timeLayout),
		Status:          string(schedule.Status),
		CurrentCapacity: schedule.CurrentCapacity,
		MaxCapacity:     c.Max(),
		SeatsAvailable:  c.Available(),
		Price:           course.Price.StringFixed(2),
	}
}
