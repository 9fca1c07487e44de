package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cancha-club/cancha-api/internal/models"
	"github.com/cancha-club/cancha-api/internal/service"
	appErrors "github.com/cancha-club/cancha-api/pkg/errors"
	"github.com/cancha-club/cancha-api/pkg/response"
)

type reserveService interface {
	Create(ctx context.Context, req service.CreateReserveRequest) (*models.Reserve, error)
	List(ctx context.Context, filter models.ReserveFilter) ([]models.Reserve, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Reserve, error)
	UpdateStatus(ctx context.Context, id string, status models.ReserveStatus) (*models.Reserve, error)
	Cancel(ctx context.Context, id string) (*models.Reserve, error)
}

// ReserveHandler wires reserve lifecycle operations to HTTP endpoints.
type ReserveHandler struct {
	service reserveService
}

// NewReserveHandler constructs the handler.
func NewReserveHandler(service reserveService) *ReserveHandler {
	return &ReserveHandler{service: service}
}

type createReserveBody struct {
	ComplexID         string  `json:"complex_id" binding:"required"`
	CourtID           string  `json:"court_id" binding:"required"`
	Date              string  `json:"date" binding:"required"`
	Schedule          string  `json:"schedule" binding:"required"`
	ClientName        string  `json:"client_name" binding:"required"`
	ClientPhone       string  `json:"client_phone"`
	Price             float64 `json:"price"`
	ReservationAmount float64 `json:"reservation_amount"`
	Type              string  `json:"type" binding:"required"`
}

type updateStatusBody struct {
	Status string `json:"status" binding:"required"`
}

// Create godoc
// @Summary Book a court
// @Tags Reserves
// @Accept json
// @Produce json
// @Param request body createReserveBody true "Reserve payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /reserves [post]
func (h *ReserveHandler) Create(c *gin.Context) {
	var body createReserveBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reserve payload"))
		return
	}

	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD"))
		return
	}

	req := service.CreateReserveRequest{
		ComplexID:         body.ComplexID,
		CourtID:           body.CourtID,
		Date:              date,
		Schedule:          body.Schedule,
		ClientName:        body.ClientName,
		ClientPhone:       body.ClientPhone,
		Price:             body.Price,
		ReservationAmount: body.ReservationAmount,
		Type:              models.ReserveType(body.Type),
	}
	if claims := claimsFromContext(c); claims != nil {
		req.UserID = &claims.UserID
	}

	reserve, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reserve)
}

// List godoc
// @Summary List reserves
// @Tags Reserves
// @Produce json
// @Param complexId query string true "Complex ID"
// @Param courtId query string false "Court ID"
// @Param date query string false "Exact date (YYYY-MM-DD)"
// @Param status query string false "Lifecycle status"
// @Param type query string false "Origin type"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /reserves [get]
func (h *ReserveHandler) List(c *gin.Context) {
	filter := models.ReserveFilter{
		ComplexID: strings.TrimSpace(c.Query("complexId")),
		CourtID:   strings.TrimSpace(c.Query("courtId")),
		Status:    models.ReserveStatus(strings.TrimSpace(c.Query("status"))),
		Type:      models.ReserveType(strings.TrimSpace(c.Query("type"))),
		SortBy:    strings.TrimSpace(c.Query("sortBy")),
		SortOrder: strings.TrimSpace(c.Query("sortOrder")),
	}

	for name, target := range map[string]**time.Time{"date": &filter.Date, "from": &filter.From, "to": &filter.To} {
		raw := strings.TrimSpace(c.Query(name))
		if raw == "" {
			continue
		}
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+name+" format, expected YYYY-MM-DD"))
			return
		}
		*target = &parsed
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	reserves, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reserves, pagination)
}

// Get godoc
// @Summary Get one reserve
// @Tags Reserves
// @Produce json
// @Param id path string true "Reserve ID"
// @Success 200 {object} response.Envelope
// @Router /reserves/{id} [get]
func (h *ReserveHandler) Get(c *gin.Context) {
	reserve, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reserve, nil)
}

// UpdateStatus godoc
// @Summary Transition a reserve's lifecycle status
// @Tags Reserves
// @Accept json
// @Produce json
// @Param id path string true "Reserve ID"
// @Param request body updateStatusBody true "New status"
// @Success 200 {object} response.Envelope
// @Router /reserves/{id}/status [patch]
func (h *ReserveHandler) UpdateStatus(c *gin.Context) {
	var body updateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "status is required"))
		return
	}

	reserve, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), models.ReserveStatus(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reserve, nil)
}

// Cancel godoc
// @Summary Cancel a reserve
// @Tags Reserves
// @Produce json
// @Param id path string true "Reserve ID"
// @Success 200 {object} response.Envelope
// @Router /reserves/{id} [delete]
func (h *ReserveHandler) Cancel(c *gin.Context) {
	reserve, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reserve, nil)
}
