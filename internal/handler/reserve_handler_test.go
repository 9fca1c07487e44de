package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cancha-club/cancha-api/internal/middleware"
	"github.com/cancha-club/cancha-api/internal/models"
	"github.com/cancha-club/cancha-api/internal/service"
	appErrors "github.com/cancha-club/cancha-api/pkg/errors"
)

type fakeReserveSrv struct {
	created    *models.Reserve
	createErr  error
	lastCreate service.CreateReserveRequest
	lastFilter models.ReserveFilter
	lastStatus models.ReserveStatus
}

func (f *fakeReserveSrv) Create(_ context.Context, req service.CreateReserveRequest) (*models.Reserve, error) {
	f.lastCreate = req
	return f.created, f.createErr
}

func (f *fakeReserveSrv) List(_ context.Context, filter models.ReserveFilter) ([]models.Reserve, *models.Pagination, error) {
	f.lastFilter = filter
	return []models.Reserve{}, &models.Pagination{Page: 1, PageSize: 20}, nil
}

func (f *fakeReserveSrv) Get(_ context.Context, id string) (*models.Reserve, error) {
	return &models.Reserve{ID: id}, nil
}

func (f *fakeReserveSrv) UpdateStatus(_ context.Context, id string, status models.ReserveStatus) (*models.Reserve, error) {
	f.lastStatus = status
	return &models.Reserve{ID: id, Status: status}, nil
}

func (f *fakeReserveSrv) Cancel(_ context.Context, id string) (*models.Reserve, error) {
	return &models.Reserve{ID: id, Status: models.ReserveCancelled}, nil
}

func postJSON(t *testing.T, target, body string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return rec, c
}

func TestReserveHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeReserveSrv{created: &models.Reserve{ID: "res-1"}}
	handler := NewReserveHandler(srv)

	rec, c := postJSON(t, "/reserves", `{
		"complex_id": "cx-1",
		"court_id": "court-1",
		"date": "2026-03-14",
		"schedule": "10:00 - 11:00",
		"client_name": "Julio Paz",
		"price": 1200,
		"type": "MANUAL"
	}`)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1"})

	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "cx-1", srv.lastCreate.ComplexID)
	assert.Equal(t, "10:00 - 11:00", srv.lastCreate.Schedule)
	assert.Equal(t, models.ReserveManual, srv.lastCreate.Type)
	require.NotNil(t, srv.lastCreate.UserID)
	assert.Equal(t, "user-1", *srv.lastCreate.UserID)
}

func TestReserveHandlerCreateConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeReserveSrv{createErr: appErrors.ErrScheduleTaken}
	handler := NewReserveHandler(srv)

	rec, c := postJSON(t, "/reserves", `{
		"complex_id": "cx-1",
		"court_id": "court-1",
		"date": "2026-03-14",
		"schedule": "10:00 - 11:00",
		"client_name": "Julio Paz",
		"type": "MANUAL"
	}`)

	handler.Create(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestReserveHandlerCreateRejectsMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReserveHandler(&fakeReserveSrv{})

	rec, c := postJSON(t, "/reserves", `{"complex_id": "cx-1"}`)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReserveHandlerListParsesFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeReserveSrv{}
	handler := NewReserveHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/reserves?complexId=cx-1&status=APROBADO&date=2026-03-14&page=2&pageSize=10", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cx-1", srv.lastFilter.ComplexID)
	assert.Equal(t, models.ReserveApproved, srv.lastFilter.Status)
	require.NotNil(t, srv.lastFilter.Date)
	assert.Equal(t, "2026-03-14", srv.lastFilter.Date.Format("2006-01-02"))
	assert.Equal(t, 2, srv.lastFilter.Page)
	assert.Equal(t, 10, srv.lastFilter.PageSize)
}

func TestReserveHandlerUpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeReserveSrv{}
	handler := NewReserveHandler(srv)

	rec, c := postJSON(t, "/reserves/res-1/status", `{"status":"APROBADO"}`)
	c.Params = gin.Params{{Key: "id", Value: "res-1"}}

	handler.UpdateStatus(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ReserveApproved, srv.lastStatus)
}
