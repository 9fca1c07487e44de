package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cancha-club/cancha-api/internal/models"
)

// ScheduleRepository reads weekly template configuration for the availability
// engine. Templates are admin-maintained and read-only here.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// FindDay loads the active schedule day for a weekday together with its
// weekly templates and their rates. A missing day is configuration absence,
// not an error: it returns (nil, nil) and callers render empty availability.
func (r *ScheduleRepository) FindDay(ctx context.Context, dayOfWeek int, complexID, sportTypeID string) (*models.ScheduleDay, error) {
	query := `SELECT id, complex_id, sport_type_id, day_of_week, active, created_at, updated_at FROM schedule_days WHERE day_of_week = $1 AND complex_id = $2 AND active = true`
	args := []interface{}{dayOfWeek, complexID}
	if sportTypeID != "" {
		query += fmt.Sprintf(" AND sport_type_id = $%d", len(args)+1)
		args = append(args, sportTypeID)
	}

	var day models.ScheduleDay
	if err := r.db.GetContext(ctx, &day, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find schedule day: %w", err)
	}

	schedules, err := r.listByDay(ctx, day.ID)
	if err != nil {
		return nil, err
	}
	day.Schedules = schedules

	return &day, nil
}

func (r *ScheduleRepository) listByDay(ctx context.Context, scheduleDayID string) ([]models.Schedule, error) {
	const query = `SELECT id, schedule_day_id, complex_id, sport_type_id, court_id, start_time, end_time, created_at, updated_at FROM schedules WHERE schedule_day_id = $1 ORDER BY start_time ASC`
	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, scheduleDayID); err != nil {
		return nil, fmt.Errorf("list schedules by day: %w", err)
	}
	if err := r.attachRates(ctx, schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// ListByCourts loads the operating-hour templates owned by the given courts,
// keyed by court id.
func (r *ScheduleRepository) ListByCourts(ctx context.Context, courtIDs []string) (map[string][]models.Schedule, error) {
	if len(courtIDs) == 0 {
		return map[string][]models.Schedule{}, nil
	}

	query, args, err := sqlx.In(`SELECT id, schedule_day_id, complex_id, sport_type_id, court_id, start_time, end_time, created_at, updated_at FROM schedules WHERE court_id IN (?) ORDER BY start_time ASC`, courtIDs)
	if err != nil {
		return nil, fmt.Errorf("build court schedules query: %w", err)
	}

	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list schedules by courts: %w", err)
	}

	byCourt := make(map[string][]models.Schedule, len(courtIDs))
	for _, s := range schedules {
		if s.CourtID == nil {
			continue
		}
		byCourt[*s.CourtID] = append(byCourt[*s.CourtID], s)
	}
	return byCourt, nil
}

type scheduleRateRow struct {
	ScheduleID string  `db:"schedule_id"`
	ID         string  `db:"id"`
	Name       string  `db:"name"`
	Price      float64 `db:"price"`
}

func (r *ScheduleRepository) attachRates(ctx context.Context, schedules []models.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}

	ids := make([]string, 0, len(schedules))
	for _, s := range schedules {
		ids = append(ids, s.ID)
	}

	query, args, err := sqlx.In(`SELECT sr.schedule_id, rt.id, rt.name, rt.price FROM schedule_rates sr JOIN rates rt ON rt.id = sr.rate_id WHERE sr.schedule_id IN (?)`, ids)
	if err != nil {
		return fmt.Errorf("build schedule rates query: %w", err)
	}

	var rows []scheduleRateRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("list schedule rates: %w", err)
	}

	bySchedule := make(map[string][]models.Rate, len(rows))
	for _, row := range rows {
		bySchedule[row.ScheduleID] = append(bySchedule[row.ScheduleID], models.Rate{ID: row.ID, Name: row.Name, Price: row.Price})
	}
	for i := range schedules {
		schedules[i].Rates = bySchedule[schedules[i].ID]
	}
	return nil
}
