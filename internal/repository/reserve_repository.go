package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cancha-club/cancha-api/internal/models"
)

// ReserveRepository provides persistence for concrete reservations.
type ReserveRepository struct {
	db *sqlx.DB
}

// NewReserveRepository creates a new reserve repository.
func NewReserveRepository(db *sqlx.DB) *ReserveRepository {
	return &ReserveRepository{db: db}
}

const reserveColumns = `id, complex_id, court_id, date, schedule, user_id, client_name, client_phone, price, reservation_amount, status, type, fixed_reserve_id, created_at, updated_at`

// ListByDate returns the reservations occupying courts of a complex on one
// calendar day. Cancelled and rejected reserves release their slots and are
// filtered out here so the expander never sees them.
func (r *ReserveRepository) ListByDate(ctx context.Context, complexID string, date time.Time, sportTypeID string) ([]models.Reserve, error) {
	query := fmt.Sprintf(`SELECT %s FROM reserves WHERE complex_id = $1 AND date = $2 AND status NOT IN ('CANCELADO', 'RECHAZADO')`, reserveColumns)
	args := []interface{}{complexID, models.DateOnly(date)}
	if sportTypeID != "" {
		query += fmt.Sprintf(" AND court_id IN (SELECT id FROM courts WHERE sport_type_id = $%d)", len(args)+1)
		args = append(args, sportTypeID)
	}
	query += " ORDER BY schedule ASC"

	var reserves []models.Reserve
	if err := r.db.SelectContext(ctx, &reserves, query, args...); err != nil {
		return nil, fmt.Errorf("list reserves by date: %w", err)
	}
	return reserves, nil
}

// List returns reserves with optional filtering and pagination.
func (r *ReserveRepository) List(ctx context.Context, filter models.ReserveFilter) ([]models.Reserve, int, error) {
	base := "FROM reserves WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.ComplexID != "" {
		conditions = append(conditions, fmt.Sprintf("complex_id = $%d", len(args)+1))
		args = append(args, filter.ComplexID)
	}
	if filter.CourtID != "" {
		conditions = append(conditions, fmt.Sprintf("court_id = $%d", len(args)+1))
		args = append(args, filter.CourtID)
	}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("date = $%d", len(args)+1))
		args = append(args, models.DateOnly(*filter.Date))
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, models.DateOnly(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, models.DateOnly(*filter.To))
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)+1))
		args = append(args, filter.Type)
	}
	if filter.FixedReserveID != "" {
		conditions = append(conditions, fmt.Sprintf("fixed_reserve_id = $%d", len(args)+1))
		args = append(args, filter.FixedReserveID)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"date":       true,
		"schedule":   true,
		"status":     true,
		"created_at": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "date"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s, schedule ASC LIMIT %d OFFSET %d", reserveColumns, base, sortBy, order, size, offset)
	var reserves []models.Reserve
	if err := r.db.SelectContext(ctx, &reserves, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list reserves: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count reserves: %w", err)
	}

	return reserves, total, nil
}

// FindByID loads a reserve by id.
func (r *ReserveRepository) FindByID(ctx context.Context, id string) (*models.Reserve, error) {
	query := fmt.Sprintf(`SELECT %s FROM reserves WHERE id = $1`, reserveColumns)
	var reserve models.Reserve
	if err := r.db.GetContext(ctx, &reserve, query, id); err != nil {
		return nil, err
	}
	return &reserve, nil
}

// Create stores a new reserve record.
func (r *ReserveRepository) Create(ctx context.Context, reserve *models.Reserve) error {
	prepareReserve(reserve)

	const query = `INSERT INTO reserves (id, complex_id, court_id, date, schedule, user_id, client_name, client_phone, price, reservation_amount, status, type, fixed_reserve_id, created_at, updated_at) VALUES (:id, :complex_id, :court_id, :date, :schedule, :user_id, :client_name, :client_phone, :price, :reservation_amount, :status, :type, :fixed_reserve_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reserve); err != nil {
		return fmt.Errorf("create reserve: %w", err)
	}
	return nil
}

// CreateFromFixedReserve inserts a materialized reserve, relying on the
// unique index over (date, court_id, schedule, fixed_reserve_id) to make
// concurrent materializer runs safe. It returns false when another run
// already inserted the row.
func (r *ReserveRepository) CreateFromFixedReserve(ctx context.Context, reserve *models.Reserve) (bool, error) {
	prepareReserve(reserve)

	const query = `INSERT INTO reserves (id, complex_id, court_id, date, schedule, user_id, client_name, client_phone, price, reservation_amount, status, type, fixed_reserve_id, created_at, updated_at) VALUES (:id, :complex_id, :court_id, :date, :schedule, :user_id, :client_name, :client_phone, :price, :reservation_amount, :status, :type, :fixed_reserve_id, :created_at, :updated_at) ON CONFLICT (date, court_id, schedule, fixed_reserve_id) DO NOTHING`
	result, err := r.db.NamedExecContext(ctx, query, reserve)
	if err != nil {
		return false, fmt.Errorf("materialize reserve: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("materialize reserve rows affected: %w", err)
	}
	return affected > 0, nil
}

// ExistsForFixedReserve reports whether a reserve referencing the fixed
// reserve already exists for the date.
func (r *ReserveRepository) ExistsForFixedReserve(ctx context.Context, fixedReserveID string, date time.Time) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM reserves WHERE fixed_reserve_id = $1 AND date = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, fixedReserveID, models.DateOnly(date)); err != nil {
		return false, fmt.Errorf("check materialized reserve: %w", err)
	}
	return exists, nil
}

// UpdateStatus transitions a reserve to a new lifecycle status.
func (r *ReserveRepository) UpdateStatus(ctx context.Context, id string, status models.ReserveStatus) error {
	const query = `UPDATE reserves SET status = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update reserve status: %w", err)
	}
	return nil
}

func prepareReserve(reserve *models.Reserve) {
	if reserve.ID == "" {
		reserve.ID = uuid.NewString()
	}
	reserve.Date = models.DateOnly(reserve.Date)
	now := time.Now().UTC()
	if reserve.CreatedAt.IsZero() {
		reserve.CreatedAt = now
	}
	reserve.UpdatedAt = now
}
