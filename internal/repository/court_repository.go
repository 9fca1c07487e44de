package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/cancha-club/cancha-api/internal/models"
)

// CourtRepository reads court configuration, including each court's own
// operating-hour templates.
type CourtRepository struct {
	db        *sqlx.DB
	schedules *ScheduleRepository
}

// NewCourtRepository creates a new court repository.
func NewCourtRepository(db *sqlx.DB, schedules *ScheduleRepository) *CourtRepository {
	return &CourtRepository{db: db, schedules: schedules}
}

// ListActive returns courts matching the filter with their operating-hour
// templates attached. Active defaults to true unless the filter overrides it.
func (r *CourtRepository) ListActive(ctx context.Context, filter models.CourtFilter) ([]models.Court, error) {
	base := "SELECT id, complex_id, sport_type_id, name, active, created_at, updated_at FROM courts WHERE 1=1"
	var conditions []string
	var args []interface{}

	active := true
	if filter.Active != nil {
		active = *filter.Active
	}
	conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
	args = append(args, active)

	if filter.ComplexID != "" {
		conditions = append(conditions, fmt.Sprintf("complex_id = $%d", len(args)+1))
		args = append(args, filter.ComplexID)
	}
	if filter.SportTypeID != "" {
		conditions = append(conditions, fmt.Sprintf("sport_type_id = $%d", len(args)+1))
		args = append(args, filter.SportTypeID)
	}

	query := base + " AND " + strings.Join(conditions, " AND ") + " ORDER BY name ASC"

	var courts []models.Court
	if err := r.db.SelectContext(ctx, &courts, query, args...); err != nil {
		return nil, fmt.Errorf("list active courts: %w", err)
	}
	if len(courts) == 0 {
		return courts, nil
	}

	ids := make([]string, 0, len(courts))
	for _, c := range courts {
		ids = append(ids, c.ID)
	}
	byCourt, err := r.schedules.ListByCourts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range courts {
		courts[i].Schedules = byCourt[courts[i].ID]
	}

	return courts, nil
}
