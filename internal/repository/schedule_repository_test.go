package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleDayRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "complex_id", "sport_type_id", "day_of_week", "active", "created_at", "updated_at"})
}

func TestScheduleRepositoryFindDayLoadsTemplatesAndRates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM schedule_days WHERE day_of_week = .+ AND complex_id = .+ AND active = true").
		WithArgs(6, "cx-1").
		WillReturnRows(scheduleDayRows().AddRow("day-1", "cx-1", "sport-padel", 6, true, now, now))

	courtID := "court-1"
	mock.ExpectQuery("SELECT .+ FROM schedules WHERE schedule_day_id = .+ ORDER BY start_time ASC").
		WithArgs("day-1").
		WillReturnRows(scheduleRows().
			AddRow("sched-1", "day-1", "cx-1", "sport-padel", courtID, "18:00", "23:00", now, now).
			AddRow("sched-2", "day-1", "cx-1", "sport-padel", nil, "09:00", "12:00", now, now))

	mock.ExpectQuery("SELECT sr.schedule_id, rt.id, rt.name, rt.price FROM schedule_rates sr JOIN rates rt").
		WithArgs("sched-1", "sched-2").
		WillReturnRows(sqlmock.NewRows([]string{"schedule_id", "id", "name", "price"}).
			AddRow("sched-1", "rate-1", "Nocturna", 1500.0))

	day, err := repo.FindDay(context.Background(), 6, "cx-1", "")
	require.NoError(t, err)
	require.NotNil(t, day)
	require.Len(t, day.Schedules, 2)

	require.Len(t, day.Schedules[0].Rates, 1)
	assert.Equal(t, 1500.0, day.Schedules[0].Rates[0].Price)
	assert.Empty(t, day.Schedules[1].Rates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryFindDayAbsentIsNotAnError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectQuery("SELECT .+ FROM schedule_days WHERE day_of_week = .+").
		WithArgs(2, "cx-1", "sport-padel").
		WillReturnRows(scheduleDayRows())

	day, err := repo.FindDay(context.Background(), 2, "cx-1", "sport-padel")
	require.NoError(t, err)
	assert.Nil(t, day)
	assert.NoError(t, mock.ExpectationsWereMet())
}
