package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedReserveRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "court_id", "schedule_day_id", "rate_id",
		"start_time", "end_time", "active", "created_at", "updated_at",
		"user_full_name", "user_phone",
		"court_complex_id", "court_sport_type_id", "court_name",
		"rate_name", "rate_price",
	})
}

func TestFixedReserveRepositoryListActiveByWeekdayJoins(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFixedReserveRepository(db)

	now := time.Now()
	rows := fixedReserveRows().
		AddRow("fixed-1", "user-1", "court-1", "day-1", "rate-1",
			"18:00", "20:00", true, now, now,
			"Marta Suarez", "+54911555001",
			"cx-1", "sport-padel", "Cancha 1",
			"Nocturna", 1500.0)

	mock.ExpectQuery("SELECT .+ FROM fixed_reserves fr\\s+JOIN schedule_days sd ON sd.id = fr.schedule_day_id").
		WithArgs(5).
		WillReturnRows(rows)

	fixed, err := repo.ListActiveByWeekday(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, fixed, 1)

	fr := fixed[0]
	assert.Equal(t, "18:00", fr.StartTime)
	require.NotNil(t, fr.User)
	assert.Equal(t, "Marta Suarez", fr.User.FullName)
	require.NotNil(t, fr.Court)
	assert.Equal(t, "cx-1", fr.Court.ComplexID)
	require.NotNil(t, fr.Rate)
	assert.Equal(t, 1500.0, fr.Rate.Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFixedReserveRepositoryListActiveByDay(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFixedReserveRepository(db)

	mock.ExpectQuery("SELECT .+ FROM fixed_reserves fr\\s+JOIN users u ON u.id = fr.user_id").
		WithArgs("day-1").
		WillReturnRows(fixedReserveRows())

	fixed, err := repo.ListActiveByDay(context.Background(), "day-1")
	require.NoError(t, err)
	assert.Empty(t, fixed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
