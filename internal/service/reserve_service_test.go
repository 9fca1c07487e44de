package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cancha-club/cancha-api/internal/models"
	appErrors "github.com/cancha-club/cancha-api/pkg/errors"
)

type reserveStoreStub struct {
	reserves []models.Reserve
	statuses map[string]models.ReserveStatus
	listErr  error
}

func (s *reserveStoreStub) ListByDate(ctx context.Context, complexID string, date time.Time, sportTypeID string) ([]models.Reserve, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.reserves, nil
}

func (s *reserveStoreStub) List(ctx context.Context, filter models.ReserveFilter) ([]models.Reserve, int, error) {
	return s.reserves, len(s.reserves), nil
}

func (s *reserveStoreStub) FindByID(ctx context.Context, id string) (*models.Reserve, error) {
	for _, r := range s.reserves {
		if r.ID == id {
			reserve := r
			return &reserve, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *reserveStoreStub) Create(ctx context.Context, reserve *models.Reserve) error {
	if reserve.ID == "" {
		reserve.ID = "res-new"
	}
	s.reserves = append(s.reserves, *reserve)
	return nil
}

func (s *reserveStoreStub) UpdateStatus(ctx context.Context, id string, status models.ReserveStatus) error {
	if s.statuses == nil {
		s.statuses = make(map[string]models.ReserveStatus)
	}
	s.statuses[id] = status
	return nil
}

func newTestReserveService(store *reserveStoreStub, day *models.ScheduleDay, fixed []models.FixedReserve) *ReserveService {
	return NewReserveService(store, scheduleDayStub{day: day}, fixedListerStub{fixed: fixed}, nil, nil, nil)
}

func validCreateRequest() CreateReserveRequest {
	return CreateReserveRequest{
		ComplexID:  "cx-1",
		CourtID:    "court-1",
		Date:       testDate,
		Schedule:   "10:00 - 11:00",
		ClientName: "Julio Paz",
		Price:      1200,
		Type:       models.ReserveManual,
	}
}

func TestReserveServiceCreate(t *testing.T) {
	store := &reserveStoreStub{}
	svc := newTestReserveService(store, nil, nil)

	reserve, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "res-new", reserve.ID)
	assert.Equal(t, models.ReservePending, reserve.Status)
	assert.Equal(t, testDate, reserve.Date)
	assert.Len(t, store.reserves, 1)
}

func TestReserveServiceCreateRejectsOverlappingReserve(t *testing.T) {
	store := &reserveStoreStub{reserves: []models.Reserve{
		{ID: "res-1", CourtID: "court-1", Schedule: "10:00 - 12:00", Status: models.ReserveApproved},
	}}
	svc := newTestReserveService(store, nil, nil)

	req := validCreateRequest()
	req.Schedule = "11:00 - 12:00"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrScheduleTaken.Code, appErrors.FromError(err).Code)
}

func TestReserveServiceCreateAllowsOtherCourt(t *testing.T) {
	store := &reserveStoreStub{reserves: []models.Reserve{
		{ID: "res-1", CourtID: "court-2", Schedule: "10:00 - 12:00", Status: models.ReserveApproved},
	}}
	svc := newTestReserveService(store, nil, nil)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
}

func TestReserveServiceCreateRejectsFixedReserveCollision(t *testing.T) {
	day := testScheduleDay()
	fixed := []models.FixedReserve{
		{ID: "fixed-1", CourtID: "court-1", StartTime: "09:00", EndTime: "11:00", Active: true},
	}
	svc := newTestReserveService(&reserveStoreStub{}, day, fixed)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrScheduleTaken.Code, appErrors.FromError(err).Code)
}

func TestReserveServiceCreateIgnoresMaterializedFixedTemplate(t *testing.T) {
	day := testScheduleDay()
	fixedID := "fixed-1"
	// the materialized instance was moved to 14:00, so only the concrete
	// reserve counts and the template's original span is free again
	store := &reserveStoreStub{}
	fixed := []models.FixedReserve{
		{ID: fixedID, CourtID: "court-1", StartTime: "09:00", EndTime: "11:00", Active: true},
	}
	moved := models.Reserve{ID: "res-1", CourtID: "court-1", Schedule: "14:00 - 15:00", Status: models.ReserveApproved, FixedReserveID: &fixedID}
	store.reserves = append(store.reserves, moved)
	svc := newTestReserveService(store, day, fixed)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
}

func TestReserveServiceCreateRejectsMalformedSchedule(t *testing.T) {
	svc := newTestReserveService(&reserveStoreStub{}, nil, nil)

	req := validCreateRequest()
	req.Schedule = "ten to eleven"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReserveServiceCreateRejectsUnknownType(t *testing.T) {
	svc := newTestReserveService(&reserveStoreStub{}, nil, nil)

	req := validCreateRequest()
	req.Type = models.ReserveType("PASE_LIBRE")
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReserveServiceGetNotFound(t *testing.T) {
	svc := newTestReserveService(&reserveStoreStub{}, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestReserveServiceListRequiresComplex(t *testing.T) {
	svc := newTestReserveService(&reserveStoreStub{}, nil, nil)

	_, _, err := svc.List(context.Background(), models.ReserveFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReserveServiceListReturnsPagination(t *testing.T) {
	store := &reserveStoreStub{reserves: []models.Reserve{{ID: "res-1", ComplexID: "cx-1"}}}
	svc := newTestReserveService(store, nil, nil)

	reserves, pagination, err := svc.List(context.Background(), models.ReserveFilter{ComplexID: "cx-1"})
	require.NoError(t, err)
	assert.Len(t, reserves, 1)
	require.NotNil(t, pagination)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestReserveServiceCancel(t *testing.T) {
	store := &reserveStoreStub{reserves: []models.Reserve{
		{ID: "res-1", ComplexID: "cx-1", CourtID: "court-1", Status: models.ReserveApproved},
	}}
	svc := newTestReserveService(store, nil, nil)

	reserve, err := svc.Cancel(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, models.ReserveCancelled, reserve.Status)
	assert.Equal(t, models.ReserveCancelled, store.statuses["res-1"])
}

func TestReserveServiceUpdateStatusRejectsUnknown(t *testing.T) {
	svc := newTestReserveService(&reserveStoreStub{}, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), "res-1", models.ReserveStatus("EN_DUDA"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
