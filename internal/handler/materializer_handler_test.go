package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cancha-club/cancha-api/internal/service"
	"github.com/cancha-club/cancha-api/pkg/jobs"
)

type fakeQueue struct {
	enqueued []jobs.Job
	err      error
}

func (f *fakeQueue) Enqueue(job jobs.Job) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, job)
	return nil
}

func postMaterializer(t *testing.T, handler *MaterializerHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodPost, "/admin/materializer/run", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	handler.Run(c)
	return rec
}

func TestMaterializerHandlerAcceptsSingleDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	queue := &fakeQueue{}
	handler := NewMaterializerHandler(queue)

	rec := postMaterializer(t, handler, `{"date":"2026-03-14"}`)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, queue.enqueued, 1)

	job := queue.enqueued[0]
	assert.Equal(t, service.JobTypeMaterializeRange, job.Type)
	payload, ok := job.Payload.(service.MaterializeJob)
	require.True(t, ok)
	assert.Equal(t, "2026-03-14", payload.From.Format("2006-01-02"))
	assert.Equal(t, payload.From, payload.To)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data["job_id"])
}

func TestMaterializerHandlerAcceptsRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	queue := &fakeQueue{}
	handler := NewMaterializerHandler(queue)

	rec := postMaterializer(t, handler, `{"from":"2026-03-01","to":"2026-03-07"}`)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, queue.enqueued, 1)
	payload := queue.enqueued[0].Payload.(service.MaterializeJob)
	assert.Equal(t, "2026-03-01", payload.From.Format("2006-01-02"))
	assert.Equal(t, "2026-03-07", payload.To.Format("2006-01-02"))
}

func TestMaterializerHandlerDefaultsToToday(t *testing.T) {
	gin.SetMode(gin.TestMode)
	queue := &fakeQueue{}
	handler := NewMaterializerHandler(queue)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/materializer/run", nil)
	handler.Run(c)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, queue.enqueued, 1)
	payload := queue.enqueued[0].Payload.(service.MaterializeJob)
	assert.Equal(t, payload.From, payload.To)
}

func TestMaterializerHandlerRejectsInvertedRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMaterializerHandler(&fakeQueue{})

	rec := postMaterializer(t, handler, `{"from":"2026-03-07","to":"2026-03-01"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMaterializerHandlerRejectsHalfRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMaterializerHandler(&fakeQueue{})

	rec := postMaterializer(t, handler, `{"from":"2026-03-07"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMaterializerHandlerQueueFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMaterializerHandler(&fakeQueue{err: errors.New("queue not started")})

	rec := postMaterializer(t, handler, `{"date":"2026-03-14"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
