package repositories_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"training-booking-service/internal/module/schedule/models/entity"
	"training-booking-service/internal/module/schedule/repositories"
	"training-booking-service/internal/pkg/database"
	"training-booking-service/internal/pkg/errors"
	log_internal "training-booking-service/internal/pkg/log"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	sqlxmock "github.com/zhashkevych/go-sqlxmock"
)

var (
	mock    sqlxmock.Sqlmock
	dbx     *sqlx.DB
	logMock *otelzap.Logger
)

func setup() {
	dbx, mock, _ = sqlxmock.Newx()
	logMock = log_internal.Nop()
}

func teardown() {
	dbx.Close()
}

func TestFindCourseByID(t *testing.T) {
	setup()
	defer teardown()
	repo := repositories.New(dbx, logMock)

	t.Run("found", func(t *testing.T) {
		rows := sqlxmock.NewRows([]string{
			"id", "name", "category", "duration_hours", "price", "max_capacity", "certification_validity_years",
			"is_active", "created_at", "updated_at",
		}).AddRow(int64(7), "First Aid at Work", "first_aid", 18, "450.00", 12, 3,
			true, time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC), nil)

		mock.ExpectQuery(regexp.QuoteMeta("FROM courses WHERE id = $1")).
			WithArgs(int64(7)).
			WillReturnRows(rows)

		course, err := repo.FindCourseByID(context.Background(), 7)

		assert.NoError(t, err)
		assert.Equal(t, "First Aid at Work", course.Name)
		assert.Equal(t, 12, course.MaxCapacity)
		assert.True(t, decimal.RequireFromString("450").Equal(course.Price))
		assert.Equal(t, int32(3), course.CertificationValidityYears.Int32)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM courses WHERE id = $1")).
			WithArgs(int64(8)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindCourseByID(context.Background(), 8)

		assert.True(t, errors.Is(err, errors.KindNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindVenueByID(t *testing.T) {
	setup()
	defer teardown()
	repo := repositories.New(dbx, logMock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM venues WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.FindVenueByID(context.Background(), 3)

	assert.True(t, errors.Is(err, errors.KindInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertSchedule(t *testing.T) {
	setup()
	defer teardown()
	repo := repositories.New(dbx, logMock)

	start := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	schedule := entity.Schedule{
		CourseID:  7,
		VenueID:   3,
		StartTime: start,
		EndTime:   start.Add(6 * time.Hour),
		Status:    entity.ScheduleStatusDraft,
		CreatedBy: 500,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO course_schedules")).
		WithArgs(int64(7), int64(3), schedule.TrainerID, start, start.Add(6*time.Hour), entity.ScheduleStatusDraft, int64(500)).
		WillReturnRows(sqlxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	id, err := repo.InsertSchedule(context.Background(), schedule)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockCapacity(t *testing.T) {
	setup()
	defer teardown()
	repo := repositories.New(dbx, logMock)
	tx := database.NewTransactor(dbx)

	t.Run("outside a transaction", func(t *testing.T) {
		_, err := repo.LockCapacity(context.Background(), 42)

		assert.True(t, errors.Is(err, errors.KindInternal))
	})

	t.Run("reserve inside a transaction", func(t *testing.T) {
		start := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
		rows := sqlxmock.NewRows([]string{
			"id", "status", "current_capacity", "start_time", "course_max_capacity", "venue_capacity",
		}).AddRow(int64(42), "published", 10, start, 12, 20)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF cs")).
			WithArgs(int64(42)).
			WillReturnRows(rows)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE course_schedules")).
			WithArgs(12, entity.ScheduleStatusFull, int64(42)).
			WillReturnResult(sqlxmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
			capacity, err := repo.LockCapacity(ctx, 42)
			if err != nil {
				return err
			}
			if err := capacity.Reserve(2, start.Add(-24*time.Hour)); err != nil {
				return err
			}
			return repo.UpdateCapacity(ctx, capacity)
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown schedule rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF cs")).
			WithArgs(int64(43)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
			_, err := repo.LockCapacity(ctx, 43)
			return err
		})

		assert.True(t, errors.Is(err, errors.KindNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateCapacityRetryable(t *testing.T) {
	setup()
	defer teardown()
	repo := repositories.New(dbx, logMock)

	serialization := &pq.Error{Code: "40001"}
	mock.ExpectExec(regexp.QuoteMeta("UPDATE course_schedules")).
		WillReturnError(serialization)

	err := repo.UpdateCapacity(context.Background(), entity.Capacity{ScheduleID: 42, Current: 1, Status: entity.ScheduleStatusPublished})

	assert.ErrorIs(t, err, serialization)
	assert.NoError(t, mock.ExpectationsWereMet())
}
