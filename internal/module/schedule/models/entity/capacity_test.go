package entity_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"training-booking-service/internal/module/schedule/models/entity"
	"training-booking-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

func TestReserve(t *testing.T) {
	t.Run("one seat left", func(t *testing.T) {
		c := entity.Capacity{ScheduleID: 1, Status: entity.ScheduleStatusPublished, Current: 11, CourseMax: 12, VenueCapacity: 20, StartTime: now.Add(24 * time.Hour)}

		err := c.Reserve(2, now)
		assert.True(t, errors.Is(err, errors.KindCapacityExceeded))
		assert.Equal(t, 11, c.Current)
		assert.Equal(t, entity.ScheduleStatusPublished, c.Status)

		err = c.Reserve(1, now)
		assert.NoError(t, err)
		assert.Equal(t, 12, c.Current)
		assert.Equal(t, entity.ScheduleStatusFull, c.Status)

		err = c.Reserve(1, now)
		assert.True(t, errors.Is(err, errors.KindCapacityExceeded))
	})

	t.Run("venue smaller than course", func(t *testing.T) {
		c := entity.Capacity{Status: entity.ScheduleStatusPublished, CourseMax: 12, VenueCapacity: 8, StartTime: now.Add(24 * time.Hour)}
		assert.Equal(t, 8, c.Max())
		assert.True(t, errors.Is(c.Reserve(9, now), errors.KindCapacityExceeded))
	})

	t.Run("not open for booking", func(t *testing.T) {
		for _, status := range []entity.ScheduleStatus{entity.ScheduleStatusDraft, entity.ScheduleStatusCancelled, entity.ScheduleStatusCompleted} {
			c := entity.Capacity{Status: status, CourseMax: 12, StartTime: now.Add(24 * time.Hour)}
			assert.True(t, errors.Is(c.Reserve(1, now), errors.KindValidation), status)
		}
	})

	t.Run("non positive seats", func(t *testing.T) {
		c := entity.Capacity{Status: entity.ScheduleStatusPublished, CourseMax: 12, StartTime: now.Add(24 * time.Hour)}
		assert.True(t, errors.Is(c.Reserve(0, now), errors.KindValidation))
	})

	t.Run("already started", func(t *testing.T) {
		for _, start := range []time.Time{now, now.Add(-48 * time.Hour)} {
			c := entity.Capacity{ScheduleID: 1, Status: entity.ScheduleStatusPublished, CourseMax: 12, StartTime: start}

			err := c.Reserve(1, now)

			assert.True(t, errors.Is(err, errors.KindValidation), start)
			assert.Equal(t, 0, c.Current)
			assert.Equal(t, entity.ScheduleStatusPublished, c.Status)
		}
	})
}

func TestRelease(t *testing.T) {
	t.Run("reopens full schedule before start", func(t *testing.T) {
		c := entity.Capacity{Status: entity.ScheduleStatusFull, Current: 12, CourseMax: 12, StartTime: now.Add(48 * time.Hour)}
		c.Release(2, now)
		assert.Equal(t, 10, c.Current)
		assert.Equal(t, entity.ScheduleStatusPublished, c.Status)
	})

	t.Run("stays full after start", func(t *testing.T) {
		c := entity.Capacity{Status: entity.ScheduleStatusFull, Current: 12, CourseMax: 12, StartTime: now.Add(-time.Hour)}
		c.Release(1, now)
		assert.Equal(t, 11, c.Current)
		assert.Equal(t, entity.ScheduleStatusFull, c.Status)
	})

	t.Run("clamps at zero", func(t *testing.T) {
		c := entity.Capacity{Status: entity.ScheduleStatusPublished, Current: 1, CourseMax: 12, StartTime: now.Add(time.Hour)}
		c.Release(5, now)
		assert.Equal(t, 0, c.Current)
	})
}

// Whatever the order of reservations and releases, the seats held never exceed
// the schedule's limit.
func TestCapacityNeverExceeded(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	c := entity.Capacity{Status: entity.ScheduleStatusPublished, CourseMax: 12, VenueCapacity: 15, StartTime: now.Add(24 * time.Hour)}

	var held []int
	for i := 0; i < 5000; i++ {
		if len(held) > 0 && r.IntN(3) == 0 {
			idx := r.IntN(len(held))
			c.Release(held[idx], now)
			held = append(held[:idx], held[idx+1:]...)
		} else {
			seats := 1 + r.IntN(4)
			if err := c.Reserve(seats, now); err == nil {
				held = append(held, seats)
			}
		}

		sum := 0
		for _, s := range held {
			sum += s
		}
		assert.Equal(t, sum, c.Current)
		assert.LessOrEqual(t, c.Current, c.Max())
	}
}
