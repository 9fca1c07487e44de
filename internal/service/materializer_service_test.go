package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cancha-club/cancha-api/internal/models"
	appErrors "github.com/cancha-club/cancha-api/pkg/errors"
	"github.com/cancha-club/cancha-api/pkg/jobs"
)

type weekdayFixedStub struct {
	fixed map[int][]models.FixedReserve
	err   error
}

func (s weekdayFixedStub) ListActiveByWeekday(ctx context.Context, dayOfWeek int) ([]models.FixedReserve, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.fixed[dayOfWeek], nil
}

type materializedWriterStub struct {
	created   []models.Reserve
	existing  map[string]bool
	conflict  bool
	insertErr error
	existsErr error
}

func (s *materializedWriterStub) CreateFromFixedReserve(ctx context.Context, reserve *models.Reserve) (bool, error) {
	if s.insertErr != nil {
		return false, s.insertErr
	}
	if s.conflict {
		return false, nil
	}
	s.created = append(s.created, *reserve)
	return true, nil
}

func (s *materializedWriterStub) ExistsForFixedReserve(ctx context.Context, fixedReserveID string, date time.Time) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.existing[fixedReserveID], nil
}

func testFixedReserve(id string) models.FixedReserve {
	return models.FixedReserve{
		ID:        id,
		UserID:    "user-1",
		CourtID:   "court-1",
		RateID:    "rate-1",
		StartTime: "18:00",
		EndTime:   "20:00",
		Active:    true,
		User:      &models.User{ID: "user-1", FullName: "Marta Suarez", Phone: "+54911555001"},
		Court:     &models.Court{ID: "court-1", ComplexID: "cx-1"},
		Rate:      &models.Rate{ID: "rate-1", Price: 1500},
	}
}

func TestMaterializerServiceCreatesReserve(t *testing.T) {
	weekday := int(testDate.Weekday())
	fixed := weekdayFixedStub{fixed: map[int][]models.FixedReserve{weekday: {testFixedReserve("fixed-1")}}}
	writer := &materializedWriterStub{}
	svc := NewMaterializerService(fixed, writer, nil, nil, nil)

	report, err := svc.MaterializeDate(context.Background(), testDate.Add(9*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Zero(t, report.Skipped)
	assert.Zero(t, report.Failed)

	require.Len(t, writer.created, 1)
	reserve := writer.created[0]
	assert.Equal(t, "cx-1", reserve.ComplexID)
	assert.Equal(t, "court-1", reserve.CourtID)
	assert.Equal(t, testDate, reserve.Date)
	assert.Equal(t, "18:00 - 20:00", reserve.Schedule)
	assert.Equal(t, "Marta Suarez", reserve.ClientName)
	assert.Equal(t, "+54911555001", reserve.ClientPhone)
	assert.Equal(t, 3000.0, reserve.Price)
	assert.Equal(t, models.ReserveApproved, reserve.Status)
	assert.Equal(t, models.ReserveFixed, reserve.Type)
	require.NotNil(t, reserve.FixedReserveID)
	assert.Equal(t, "fixed-1", *reserve.FixedReserveID)
}

func TestMaterializerServicePricesMidnightCrossing(t *testing.T) {
	weekday := int(testDate.Weekday())
	fr := testFixedReserve("fixed-1")
	fr.StartTime = "23:00"
	fr.EndTime = "01:00"
	fixed := weekdayFixedStub{fixed: map[int][]models.FixedReserve{weekday: {fr}}}
	writer := &materializedWriterStub{}
	svc := NewMaterializerService(fixed, writer, nil, nil, nil)

	_, err := svc.MaterializeDate(context.Background(), testDate)
	require.NoError(t, err)
	require.Len(t, writer.created, 1)
	assert.Equal(t, "23:00 - 01:00", writer.created[0].Schedule)
	assert.Equal(t, 3000.0, writer.created[0].Price)
}

func TestMaterializerServiceSkipsAlreadyMaterialized(t *testing.T) {
	weekday := int(testDate.Weekday())
	fixed := weekdayFixedStub{fixed: map[int][]models.FixedReserve{weekday: {testFixedReserve("fixed-1")}}}
	writer := &materializedWriterStub{existing: map[string]bool{"fixed-1": true}}
	svc := NewMaterializerService(fixed, writer, nil, nil, nil)

	report, err := svc.MaterializeDate(context.Background(), testDate)
	require.NoError(t, err)
	assert.Zero(t, report.Created)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, writer.created)
}

func TestMaterializerServiceSkipsOnInsertRace(t *testing.T) {
	weekday := int(testDate.Weekday())
	fixed := weekdayFixedStub{fixed: map[int][]models.FixedReserve{weekday: {testFixedReserve("fixed-1")}}}
	writer := &materializedWriterStub{conflict: true}
	svc := NewMaterializerService(fixed, writer, nil, nil, nil)

	report, err := svc.MaterializeDate(context.Background(), testDate)
	require.NoError(t, err)
	assert.Zero(t, report.Created)
	assert.Equal(t, 1, report.Skipped)
}

func TestMaterializerServiceContinuesAfterItemFailure(t *testing.T) {
	weekday := int(testDate.Weekday())
	broken := testFixedReserve("fixed-broken")
	broken.Court = nil
	fixed := weekdayFixedStub{fixed: map[int][]models.FixedReserve{
		weekday: {broken, testFixedReserve("fixed-ok")},
	}}
	writer := &materializedWriterStub{}
	svc := NewMaterializerService(fixed, writer, nil, nil, nil)

	report, err := svc.MaterializeDate(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Created)
	require.Len(t, writer.created, 1)
	assert.Equal(t, "fixed-ok", *writer.created[0].FixedReserveID)
}

func TestMaterializerServiceListFailureAborts(t *testing.T) {
	fixed := weekdayFixedStub{err: errors.New("db down")}
	svc := NewMaterializerService(fixed, &materializedWriterStub{}, nil, nil, nil)

	_, err := svc.MaterializeDate(context.Background(), testDate)
	require.Error(t, err)
}

func TestMaterializerServiceRangeReportsPerDay(t *testing.T) {
	fixed := weekdayFixedStub{fixed: map[int][]models.FixedReserve{
		int(testDate.Weekday()): {testFixedReserve("fixed-1")},
	}}
	writer := &materializedWriterStub{}
	svc := NewMaterializerService(fixed, writer, nil, nil, nil)

	reports, err := svc.MaterializeRange(context.Background(), testDate, testDate.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, 1, reports[0].Created)
	assert.Zero(t, reports[1].Created)
	assert.Zero(t, reports[2].Created)
}

func TestMaterializerServiceRangeValidation(t *testing.T) {
	svc := NewMaterializerService(weekdayFixedStub{}, &materializedWriterStub{}, nil, nil, nil)

	_, err := svc.MaterializeRange(context.Background(), testDate, testDate.AddDate(0, 0, -1))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.MaterializeRange(context.Background(), testDate, testDate.AddDate(0, 3, 0))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMaterializerServiceHandleJobRejectsUnknownPayload(t *testing.T) {
	svc := NewMaterializerService(weekdayFixedStub{}, &materializedWriterStub{}, nil, nil, nil)

	err := svc.HandleJob(context.Background(), jobs.Job{ID: "job-1", Type: JobTypeMaterializeRange, Payload: "nope"})
	require.Error(t, err)
}

func TestMaterializerServiceHandleJobRunsRange(t *testing.T) {
	fixed := weekdayFixedStub{fixed: map[int][]models.FixedReserve{
		int(testDate.Weekday()): {testFixedReserve("fixed-1")},
	}}
	writer := &materializedWriterStub{}
	svc := NewMaterializerService(fixed, writer, nil, nil, nil)

	job := jobs.Job{ID: "job-1", Type: JobTypeMaterializeRange, Payload: MaterializeJob{From: testDate, To: testDate}}
	require.NoError(t, svc.HandleJob(context.Background(), job))
	assert.Len(t, writer.created, 1)
}
