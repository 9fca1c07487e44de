package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cancha-club/cancha-api/internal/service"
	appErrors "github.com/cancha-club/cancha-api/pkg/errors"
	"github.com/cancha-club/cancha-api/pkg/jobs"
	"github.com/cancha-club/cancha-api/pkg/response"
)

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// MaterializerHandler exposes the on-demand materializer trigger. The work
// itself runs on the background queue; the endpoint only accepts it.
type MaterializerHandler struct {
	queue jobEnqueuer
}

// NewMaterializerHandler constructs the handler.
func NewMaterializerHandler(queue jobEnqueuer) *MaterializerHandler {
	return &MaterializerHandler{queue: queue}
}

type materializeBody struct {
	Date string `json:"date"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Run godoc
// @Summary Trigger fixed-reserve materialization
// @Tags Materializer
// @Accept json
// @Produce json
// @Param request body materializeBody false "Date or range; defaults to today"
// @Success 202 {object} response.Envelope
// @Router /admin/materializer/run [post]
func (h *MaterializerHandler) Run(c *gin.Context) {
	var body materializeBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid materializer payload"))
			return
		}
	}

	from, to, err := resolveRange(body)
	if err != nil {
		response.Error(c, err)
		return
	}

	job := jobs.Job{
		ID:      uuid.NewString(),
		Type:    service.JobTypeMaterializeRange,
		Payload: service.MaterializeJob{From: from, To: to},
	}
	if err := h.queue.Enqueue(job); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "materializer queue unavailable"))
		return
	}

	response.JSON(c, http.StatusAccepted, gin.H{
		"job_id": job.ID,
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
	}, nil)
}

func resolveRange(body materializeBody) (time.Time, time.Time, error) {
	parse := func(raw string) (time.Time, error) {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
		if err != nil {
			return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD")
		}
		return parsed, nil
	}

	switch {
	case body.Date != "":
		day, err := parse(body.Date)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return day, day, nil
	case body.From != "" || body.To != "":
		if body.From == "" || body.To == "" {
			return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "from and to must be provided together")
		}
		from, err := parse(body.From)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to, err := parse(body.To)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "to must not precede from")
		}
		return from, to, nil
	default:
		today := time.Now().UTC()
		day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		return day, day, nil
	}
}
