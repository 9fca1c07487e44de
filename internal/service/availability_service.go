package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cancha-club/cancha-api/internal/availability"
	"github.com/cancha-club/cancha-api/internal/models"
	"github.com/cancha-club/cancha-api/internal/repository"
	appErrors "github.com/cancha-club/cancha-api/pkg/errors"
)

type scheduleDayFinder interface {
	FindDay(ctx context.Context, dayOfWeek int, complexID, sportTypeID string) (*models.ScheduleDay, error)
}

type courtLister interface {
	ListActive(ctx context.Context, filter models.CourtFilter) ([]models.Court, error)
}

type dayReserveLister interface {
	ListByDate(ctx context.Context, complexID string, date time.Time, sportTypeID string) ([]models.Reserve, error)
}

type dayFixedReserveLister interface {
	ListActiveByDay(ctx context.Context, scheduleDayID string) ([]models.FixedReserve, error)
}

// DayQuery identifies one complex-day whose availability is requested.
type DayQuery struct {
	ComplexID   string
	Date        time.Time
	SportTypeID string
}

// SlotQuery narrows an availability request to one canonical slot.
type SlotQuery struct {
	ComplexID   string
	Date        time.Time
	Schedule    string
	SportTypeID string
}

// DayAvailability is the full-day availability payload: free courts per
// canonical slot, in venue-day order.
type DayAvailability struct {
	Date        string                          `json:"date"`
	ComplexID   string                          `json:"complex_id"`
	SportTypeID string                          `json:"sport_type_id,omitempty"`
	Slots       []availability.SlotAvailability `json:"slots"`
}

// DayReservations is the display-mode payload: who occupies each slot.
type DayReservations struct {
	Date      string                    `json:"date"`
	ComplexID string                    `json:"complex_id"`
	Slots     []availability.SlotDetail `json:"slots"`
}

// AvailabilityServiceConfig tunes caching of computed payloads.
type AvailabilityServiceConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// AvailabilityService composes repository reads with the availability engine.
type AvailabilityService struct {
	schedules scheduleDayFinder
	courts    courtLister
	reserves  dayReserveLister
	fixed     dayFixedReserveLister
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       AvailabilityServiceConfig
}

// AvailabilityServiceParams groups constructor dependencies.
type AvailabilityServiceParams struct {
	Schedules scheduleDayFinder
	Courts    courtLister
	Reserves  dayReserveLister
	Fixed     dayFixedReserveLister
	Cache     *CacheService
	Metrics   *MetricsService
	Logger    *zap.Logger
	Config    AvailabilityServiceConfig
}

// NewAvailabilityService constructs an AvailabilityService with sane defaults.
func NewAvailabilityService(params AvailabilityServiceParams) *AvailabilityService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		schedules: params.Schedules,
		courts:    params.Courts,
		reserves:  params.Reserves,
		fixed:     params.Fixed,
		cache:     params.Cache,
		metrics:   params.Metrics,
		logger:    logger,
		cfg:       cfg,
	}
}

// Day resolves the free courts for every canonical slot of one complex-day
// and indicates cache utilisation. A weekday without configuration yields an
// empty slot list, never an error.
func (s *AvailabilityService) Day(ctx context.Context, q DayQuery) (*DayAvailability, bool, error) {
	if err := validateDayQuery(q); err != nil {
		return nil, false, err
	}

	cacheKey := repository.AvailabilityKey(q.ComplexID, q.Date, q.SportTypeID)
	if s.cfg.CacheEnabled {
		var cached DayAvailability
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
			s.logger.Warn("availability cache read failed", zap.String("key", cacheKey), zap.Error(err))
		} else if hit {
			return &cached, true, nil
		}
	}

	start := time.Now()
	result, err := s.computeDay(ctx, q)
	if err != nil {
		return nil, false, err
	}
	s.metrics.ObserveAvailabilityCompute(time.Since(start))

	if s.cfg.CacheEnabled {
		s.cache.Set(ctx, cacheKey, result, s.cfg.CacheTTL)
	}
	return result, false, nil
}

func (s *AvailabilityService) computeDay(ctx context.Context, q DayQuery) (*DayAvailability, error) {
	out := &DayAvailability{
		Date:        q.Date.Format("2006-01-02"),
		ComplexID:   q.ComplexID,
		SportTypeID: q.SportTypeID,
		Slots:       []availability.SlotAvailability{},
	}

	day, err := s.schedules.FindDay(ctx, int(q.Date.Weekday()), q.ComplexID, q.SportTypeID)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return out, nil
	}

	courts, reserves, fixed, err := s.loadOccupancyInputs(ctx, q, day.ID)
	if err != nil {
		return nil, err
	}

	slots := availability.BuildSlots(day.Schedules)
	occupancy := availability.ExpandOccupancy(reserves, fixed)
	out.Slots = availability.Compute(slots, occupancy, courts)
	return out, nil
}

// Slot is the single-slot fast path: free courts for one requested schedule
// without materializing the full day.
func (s *AvailabilityService) Slot(ctx context.Context, q SlotQuery) ([]models.Court, error) {
	if err := validateDayQuery(DayQuery{ComplexID: q.ComplexID, Date: q.Date, SportTypeID: q.SportTypeID}); err != nil {
		return nil, err
	}
	if !availability.ValidSpanLabel(q.Schedule) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "schedule must be a 'HH:MM - HH:MM' span")
	}

	day, err := s.schedules.FindDay(ctx, int(q.Date.Weekday()), q.ComplexID, q.SportTypeID)
	if err != nil {
		return nil, err
	}

	dayID := ""
	if day != nil {
		dayID = day.ID
	}
	courts, reserves, fixed, err := s.loadOccupancyInputs(ctx, DayQuery{ComplexID: q.ComplexID, Date: q.Date, SportTypeID: q.SportTypeID}, dayID)
	if err != nil {
		return nil, err
	}

	return availability.ComputeSlot(q.Schedule, reserves, fixed, courts), nil
}

// Reservations renders the occupancy detail per canonical slot for one
// complex-day.
func (s *AvailabilityService) Reservations(ctx context.Context, q DayQuery) (*DayReservations, error) {
	if err := validateDayQuery(q); err != nil {
		return nil, err
	}

	out := &DayReservations{
		Date:      q.Date.Format("2006-01-02"),
		ComplexID: q.ComplexID,
		Slots:     []availability.SlotDetail{},
	}

	day, err := s.schedules.FindDay(ctx, int(q.Date.Weekday()), q.ComplexID, q.SportTypeID)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return out, nil
	}

	_, reserves, fixed, err := s.loadOccupancyInputs(ctx, q, day.ID)
	if err != nil {
		return nil, err
	}

	slots := availability.BuildSlots(day.Schedules)
	details := availability.ExpandDetails(reserves, fixed)
	out.Slots = availability.GroupDetails(slots, details)
	return out, nil
}

func (s *AvailabilityService) loadOccupancyInputs(ctx context.Context, q DayQuery, scheduleDayID string) ([]models.Court, []models.Reserve, []models.FixedReserve, error) {
	courts, err := s.courts.ListActive(ctx, models.CourtFilter{ComplexID: q.ComplexID, SportTypeID: q.SportTypeID})
	if err != nil {
		return nil, nil, nil, err
	}

	reserves, err := s.reserves.ListByDate(ctx, q.ComplexID, q.Date, q.SportTypeID)
	if err != nil {
		return nil, nil, nil, err
	}

	var fixed []models.FixedReserve
	if scheduleDayID != "" {
		fixed, err = s.fixed.ListActiveByDay(ctx, scheduleDayID)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return courts, reserves, fixed, nil
}

func validateDayQuery(q DayQuery) error {
	if q.ComplexID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "complexId is required")
	}
	if q.Date.IsZero() {
		return appErrors.Clone(appErrors.ErrValidation, "date is required")
	}
	return nil
}
