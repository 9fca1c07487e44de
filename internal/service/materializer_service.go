package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cancha-club/cancha-api/internal/availability"
	"github.com/cancha-club/cancha-api/internal/models"
	appErrors "github.com/cancha-club/cancha-api/pkg/errors"
	"github.com/cancha-club/cancha-api/pkg/jobs"
)

// JobTypeMaterializeRange identifies queued on-demand materialization work.
const JobTypeMaterializeRange = "materializer.range"

// maxMaterializeRangeDays bounds on-demand range requests.
const maxMaterializeRangeDays = 62

type weekdayFixedReserveLister interface {
	ListActiveByWeekday(ctx context.Context, dayOfWeek int) ([]models.FixedReserve, error)
}

type materializedReserveWriter interface {
	CreateFromFixedReserve(ctx context.Context, reserve *models.Reserve) (bool, error)
	ExistsForFixedReserve(ctx context.Context, fixedReserveID string, date time.Time) (bool, error)
}

// MaterializeJob is the payload for queued range materialization.
type MaterializeJob struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// MaterializeReport summarises one materializer pass over a single date.
type MaterializeReport struct {
	Date    string `json:"date"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

// MaterializerService turns active fixed reserves into concrete reserves for
// matching calendar dates. It runs daily from cron and on demand through the
// job queue.
type MaterializerService struct {
	fixed    weekdayFixedReserveLister
	reserves materializedReserveWriter
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
}

// NewMaterializerService constructs a MaterializerService.
func NewMaterializerService(fixed weekdayFixedReserveLister, reserves materializedReserveWriter, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *MaterializerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaterializerService{
		fixed:    fixed,
		reserves: reserves,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Run is the daily cron entrypoint: it materializes the current date.
func (s *MaterializerService) Run(ctx context.Context) {
	report, err := s.MaterializeDate(ctx, s.now())
	if err != nil {
		s.logger.Error("daily materializer run failed", zap.Error(err))
		return
	}
	s.logger.Info("daily materializer run finished",
		zap.String("date", report.Date),
		zap.Int("created", report.Created),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
}

// MaterializeDate materializes every active fixed reserve whose weekday
// matches the given date. One broken item never aborts the pass: failures are
// counted, logged and skipped.
func (s *MaterializerService) MaterializeDate(ctx context.Context, date time.Time) (*MaterializeReport, error) {
	day := models.DateOnly(date)
	report := &MaterializeReport{Date: day.Format("2006-01-02")}

	fixed, err := s.fixed.ListActiveByWeekday(ctx, int(day.Weekday()))
	if err != nil {
		return nil, err
	}

	touched := make(map[string]struct{})
	for _, f := range fixed {
		outcome, complexID := s.materializeOne(ctx, f, day)
		s.metrics.RecordMaterialization(outcome)
		switch outcome {
		case "created":
			report.Created++
			touched[complexID] = struct{}{}
		case "skipped":
			report.Skipped++
		case "failed":
			report.Failed++
		}
	}

	for complexID := range touched {
		s.cache.InvalidateAvailability(ctx, complexID)
	}
	return report, nil
}

func (s *MaterializerService) materializeOne(ctx context.Context, f models.FixedReserve, day time.Time) (outcome, complexID string) {
	if f.Court == nil || f.Rate == nil {
		s.logger.Error("fixed reserve misses court or rate reference",
			zap.String("fixed_reserve_id", f.ID))
		return "failed", ""
	}

	exists, err := s.reserves.ExistsForFixedReserve(ctx, f.ID, day)
	if err != nil {
		s.logger.Error("materialized reserve lookup failed",
			zap.String("fixed_reserve_id", f.ID), zap.Error(err))
		return "failed", ""
	}
	if exists {
		s.logger.Debug("fixed reserve already materialized",
			zap.String("fixed_reserve_id", f.ID),
			zap.String("date", day.Format("2006-01-02")))
		return "skipped", ""
	}

	reserve := s.buildReserve(f, day)
	inserted, err := s.reserves.CreateFromFixedReserve(ctx, reserve)
	if err != nil {
		s.logger.Error("materialize reserve failed",
			zap.String("fixed_reserve_id", f.ID), zap.Error(err))
		return "failed", ""
	}
	if !inserted {
		// Lost the insert race against a concurrent run.
		return "skipped", ""
	}
	return "created", f.Court.ComplexID
}

func (s *MaterializerService) buildReserve(f models.FixedReserve, day time.Time) *models.Reserve {
	fixedID := f.ID
	userID := f.UserID
	reserve := &models.Reserve{
		ComplexID:      f.Court.ComplexID,
		CourtID:        f.CourtID,
		Date:           day,
		Schedule:       f.StartTime + " - " + f.EndTime,
		UserID:         &userID,
		Price:          f.Rate.Price * float64(availability.SpanHours(f.StartTime, f.EndTime)),
		Status:         models.ReserveApproved,
		Type:           models.ReserveFixed,
		FixedReserveID: &fixedID,
	}
	if f.User != nil {
		reserve.ClientName = f.User.FullName
		reserve.ClientPhone = f.User.Phone
	}
	return reserve
}

// MaterializeRange materializes every date in [from, to] inclusive.
func (s *MaterializerService) MaterializeRange(ctx context.Context, from, to time.Time) ([]MaterializeReport, error) {
	from = models.DateOnly(from)
	to = models.DateOnly(to)
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "to must not precede from")
	}
	if int(to.Sub(from).Hours()/24) >= maxMaterializeRangeDays {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("range must cover fewer than %d days", maxMaterializeRangeDays))
	}

	var reports []MaterializeReport
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		report, err := s.MaterializeDate(ctx, day)
		if err != nil {
			return reports, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

// HandleJob processes a queued range materialization request.
func (s *MaterializerService) HandleJob(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(MaterializeJob)
	if !ok {
		return fmt.Errorf("materializer job %s has unexpected payload %T", job.ID, job.Payload)
	}

	reports, err := s.MaterializeRange(ctx, payload.From, payload.To)
	if err != nil {
		return err
	}

	var created, skipped, failed int
	for _, r := range reports {
		created += r.Created
		skipped += r.Skipped
		failed += r.Failed
	}
	s.logger.Info("queued materializer run finished",
		zap.String("job_id", job.ID),
		zap.Int("days", len(reports)),
		zap.Int("created", created),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed))
	return nil
}
