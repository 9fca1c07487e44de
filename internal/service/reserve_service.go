package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cancha-club/cancha-api/internal/availability"
	"github.com/cancha-club/cancha-api/internal/models"
	appErrors "github.com/cancha-club/cancha-api/pkg/errors"
)

type reserveStore interface {
	ListByDate(ctx context.Context, complexID string, date time.Time, sportTypeID string) ([]models.Reserve, error)
	List(ctx context.Context, filter models.ReserveFilter) ([]models.Reserve, int, error)
	FindByID(ctx context.Context, id string) (*models.Reserve, error)
	Create(ctx context.Context, reserve *models.Reserve) error
	UpdateStatus(ctx context.Context, id string, status models.ReserveStatus) error
}

// CreateReserveRequest carries the fields needed to book one court for one
// span on one date.
type CreateReserveRequest struct {
	ComplexID         string             `json:"complex_id" validate:"required"`
	CourtID           string             `json:"court_id" validate:"required"`
	Date              time.Time          `json:"date" validate:"required"`
	Schedule          string             `json:"schedule" validate:"required"`
	UserID            *string            `json:"user_id,omitempty"`
	ClientName        string             `json:"client_name" validate:"required"`
	ClientPhone       string             `json:"client_phone"`
	Price             float64            `json:"price" validate:"gte=0"`
	ReservationAmount float64            `json:"reservation_amount" validate:"gte=0"`
	Type              models.ReserveType `json:"type" validate:"required"`
}

// ReserveService manages the lifecycle of concrete reservations.
type ReserveService struct {
	reserves  reserveStore
	schedules scheduleDayFinder
	fixed     dayFixedReserveLister
	cache     *CacheService
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewReserveService constructs a ReserveService.
func NewReserveService(reserves reserveStore, schedules scheduleDayFinder, fixed dayFixedReserveLister, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ReserveService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReserveService{
		reserves:  reserves,
		schedules: schedules,
		fixed:     fixed,
		cache:     cache,
		validate:  validate,
		logger:    logger,
	}
}

// Create books a court after verifying the requested span is still free. A
// span colliding with an existing reserve or an active fixed reserve on the
// same court yields ErrScheduleTaken.
func (s *ReserveService) Create(ctx context.Context, req CreateReserveRequest) (*models.Reserve, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reserve payload")
	}
	if !availability.ValidSpanLabel(req.Schedule) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "schedule must be a 'HH:MM - HH:MM' span")
	}
	if !models.ValidReserveType(req.Type) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown reserve type")
	}

	if err := s.checkConflicts(ctx, req); err != nil {
		return nil, err
	}

	reserve := &models.Reserve{
		ComplexID:         req.ComplexID,
		CourtID:           req.CourtID,
		Date:              models.DateOnly(req.Date),
		Schedule:          req.Schedule,
		UserID:            req.UserID,
		ClientName:        req.ClientName,
		ClientPhone:       req.ClientPhone,
		Price:             req.Price,
		ReservationAmount: req.ReservationAmount,
		Status:            models.ReservePending,
		Type:              req.Type,
	}
	if err := s.reserves.Create(ctx, reserve); err != nil {
		return nil, err
	}

	s.cache.InvalidateAvailability(ctx, req.ComplexID)
	s.logger.Info("reserve created",
		zap.String("reserve_id", reserve.ID),
		zap.String("court_id", reserve.CourtID),
		zap.String("schedule", reserve.Schedule))
	return reserve, nil
}

func (s *ReserveService) checkConflicts(ctx context.Context, req CreateReserveRequest) error {
	start, end := availability.ParseSpan(req.Schedule)
	end = availability.NormalizeEnd(start, end)

	reserves, err := s.reserves.ListByDate(ctx, req.ComplexID, req.Date, "")
	if err != nil {
		return err
	}
	for _, r := range reserves {
		if r.CourtID != req.CourtID {
			continue
		}
		rs, re := availability.ParseSpan(r.Schedule)
		if availability.Overlaps(start, end, rs, availability.NormalizeEnd(rs, re)) {
			return appErrors.ErrScheduleTaken
		}
	}

	day, err := s.schedules.FindDay(ctx, int(models.DateOnly(req.Date).Weekday()), req.ComplexID, "")
	if err != nil {
		return err
	}
	if day == nil {
		return nil
	}

	fixed, err := s.fixed.ListActiveByDay(ctx, day.ID)
	if err != nil {
		return err
	}
	materialized := availability.MaterializedSet(reserves)
	for _, f := range fixed {
		if !f.Active || f.CourtID != req.CourtID {
			continue
		}
		if _, ok := materialized[f.ID]; ok {
			continue
		}
		fs := availability.MinuteOfDay(f.StartTime)
		fe := availability.NormalizeEnd(fs, availability.MinuteOfDay(f.EndTime))
		if availability.Overlaps(start, end, fs, fe) {
			return appErrors.ErrScheduleTaken
		}
	}
	return nil
}

// List returns reserves matching the filter with pagination metadata.
func (s *ReserveService) List(ctx context.Context, filter models.ReserveFilter) ([]models.Reserve, *models.Pagination, error) {
	if filter.ComplexID == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "complexId is required")
	}

	reserves, total, err := s.reserves.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return reserves, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get loads one reserve by id.
func (s *ReserveService) Get(ctx context.Context, id string) (*models.Reserve, error) {
	reserve, err := s.reserves.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "reserve not found")
		}
		return nil, err
	}
	return reserve, nil
}

// UpdateStatus transitions a reserve to a new lifecycle status and drops the
// affected availability cache entries.
func (s *ReserveService) UpdateStatus(ctx context.Context, id string, status models.ReserveStatus) (*models.Reserve, error) {
	if !models.ValidReserveStatus(status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown reserve status")
	}

	reserve, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.reserves.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	reserve.Status = status

	s.cache.InvalidateAvailability(ctx, reserve.ComplexID)
	return reserve, nil
}

// Cancel releases the reserve's slots by moving it to CANCELADO.
func (s *ReserveService) Cancel(ctx context.Context, id string) (*models.Reserve, error) {
	return s.UpdateStatus(ctx, id, models.ReserveCancelled)
}
