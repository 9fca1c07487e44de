package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cancha-club/cancha-api/internal/models"
)

// FixedReserveRepository reads standing weekly reservations with their user,
// court and rate joined, as the expander and materializer consume them.
type FixedReserveRepository struct {
	db *sqlx.DB
}

// NewFixedReserveRepository creates a new fixed reserve repository.
func NewFixedReserveRepository(db *sqlx.DB) *FixedReserveRepository {
	return &FixedReserveRepository{db: db}
}

const fixedReserveColumns = `
	fr.id, fr.user_id, fr.court_id, fr.schedule_day_id, fr.rate_id,
	fr.start_time, fr.end_time, fr.active, fr.created_at, fr.updated_at,
	u.full_name AS user_full_name, u.phone AS user_phone,
	c.complex_id AS court_complex_id, c.sport_type_id AS court_sport_type_id, c.name AS court_name,
	rt.name AS rate_name, rt.price AS rate_price`

type fixedReserveRow struct {
	models.FixedReserve
	UserFullName     string  `db:"user_full_name"`
	UserPhone        string  `db:"user_phone"`
	CourtComplexID   string  `db:"court_complex_id"`
	CourtSportTypeID string  `db:"court_sport_type_id"`
	CourtName        string  `db:"court_name"`
	RateName         string  `db:"rate_name"`
	RatePrice        float64 `db:"rate_price"`
}

func (row fixedReserveRow) toModel() models.FixedReserve {
	fr := row.FixedReserve
	fr.User = &models.User{ID: fr.UserID, FullName: row.UserFullName, Phone: row.UserPhone}
	fr.Court = &models.Court{ID: fr.CourtID, ComplexID: row.CourtComplexID, SportTypeID: row.CourtSportTypeID, Name: row.CourtName}
	fr.Rate = &models.Rate{ID: fr.RateID, Name: row.RateName, Price: row.RatePrice}
	return fr
}

// ListActiveByDay returns the active fixed reserves attached to one schedule
// day.
func (r *FixedReserveRepository) ListActiveByDay(ctx context.Context, scheduleDayID string) ([]models.FixedReserve, error) {
	query := fmt.Sprintf(`SELECT %s FROM fixed_reserves fr
		JOIN users u ON u.id = fr.user_id
		JOIN courts c ON c.id = fr.court_id
		JOIN rates rt ON rt.id = fr.rate_id
		WHERE fr.schedule_day_id = $1 AND fr.active = true
		ORDER BY fr.start_time ASC`, fixedReserveColumns)

	var rows []fixedReserveRow
	if err := r.db.SelectContext(ctx, &rows, query, scheduleDayID); err != nil {
		return nil, fmt.Errorf("list fixed reserves by day: %w", err)
	}
	return toFixedReserves(rows), nil
}

// ListActiveByWeekday returns every active fixed reserve whose schedule day
// matches the weekday (0=Sunday..6), across complexes. The materializer runs
// over this list.
func (r *FixedReserveRepository) ListActiveByWeekday(ctx context.Context, dayOfWeek int) ([]models.FixedReserve, error) {
	query := fmt.Sprintf(`SELECT %s FROM fixed_reserves fr
		JOIN schedule_days sd ON sd.id = fr.schedule_day_id
		JOIN users u ON u.id = fr.user_id
		JOIN courts c ON c.id = fr.court_id
		JOIN rates rt ON rt.id = fr.rate_id
		WHERE sd.day_of_week = $1 AND sd.active = true AND fr.active = true
		ORDER BY fr.start_time ASC`, fixedReserveColumns)

	var rows []fixedReserveRow
	if err := r.db.SelectContext(ctx, &rows, query, dayOfWeek); err != nil {
		return nil, fmt.Errorf("list fixed reserves by weekday: %w", err)
	}
	return toFixedReserves(rows), nil
}

func toFixedReserves(rows []fixedReserveRow) []models.FixedReserve {
	out := make([]models.FixedReserve, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out
}
