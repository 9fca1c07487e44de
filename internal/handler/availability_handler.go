package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cancha-club/cancha-api/internal/models"
	"github.com/cancha-club/cancha-api/internal/service"
	appErrors "github.com/cancha-club/cancha-api/pkg/errors"
	"github.com/cancha-club/cancha-api/pkg/response"
)

type availabilityService interface {
	Day(ctx context.Context, q service.DayQuery) (*service.DayAvailability, bool, error)
	Slot(ctx context.Context, q service.SlotQuery) ([]models.Court, error)
	Reservations(ctx context.Context, q service.DayQuery) (*service.DayReservations, error)
}

// AvailabilityHandler wires the availability service to HTTP endpoints.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// Day godoc
// @Summary Free courts per slot for one day
// @Tags Availability
// @Produce json
// @Param complexId query string true "Complex ID"
// @Param date query string false "Date (YYYY-MM-DD). Defaults to today"
// @Param sportTypeId query string false "Sport type ID"
// @Success 200 {object} response.Envelope
// @Router /availability [get]
func (h *AvailabilityHandler) Day(c *gin.Context) {
	query, err := h.dayQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	start := time.Now()
	result, cacheHit, err := h.service.Day(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := map[string]interface{}{
		"cache_hit":          cacheHit,
		"processing_time_ms": time.Since(start).Milliseconds(),
	}
	response.JSON(c, http.StatusOK, result, nil, meta)
}

// Slot godoc
// @Summary Free courts for one slot
// @Tags Availability
// @Produce json
// @Param complexId query string true "Complex ID"
// @Param schedule query string true "Slot span (HH:MM - HH:MM)"
// @Param date query string false "Date (YYYY-MM-DD). Defaults to today"
// @Param sportTypeId query string false "Sport type ID"
// @Success 200 {object} response.Envelope
// @Router /availability/slot [get]
func (h *AvailabilityHandler) Slot(c *gin.Context) {
	query, err := h.dayQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	schedule := strings.TrimSpace(c.Query("schedule"))
	if schedule == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "schedule is required"))
		return
	}

	courts, err := h.service.Slot(c.Request.Context(), service.SlotQuery{
		ComplexID:   query.ComplexID,
		Date:        query.Date,
		Schedule:    schedule,
		SportTypeID: query.SportTypeID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"schedule": schedule, "courts": courts}, nil)
}

// Reservations godoc
// @Summary Reservation detail per slot for one day
// @Tags Availability
// @Produce json
// @Param complexId query string true "Complex ID"
// @Param date query string false "Date (YYYY-MM-DD). Defaults to today"
// @Param sportTypeId query string false "Sport type ID"
// @Success 200 {object} response.Envelope
// @Router /reservations/day [get]
func (h *AvailabilityHandler) Reservations(c *gin.Context) {
	query, err := h.dayQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.Reservations(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

func (h *AvailabilityHandler) dayQuery(c *gin.Context) (service.DayQuery, error) {
	complexID := strings.TrimSpace(c.Query("complexId"))
	if complexID == "" {
		return service.DayQuery{}, appErrors.Clone(appErrors.ErrValidation, "complexId is required")
	}

	date, err := dateQuery(c, "date")
	if err != nil {
		return service.DayQuery{}, err
	}

	return service.DayQuery{
		ComplexID:   complexID,
		Date:        date,
		SportTypeID: strings.TrimSpace(c.Query("sportTypeId")),
	}, nil
}
