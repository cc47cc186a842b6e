package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lectio/backend/internal/dto"
	"lectio/backend/internal/service"
	"lectio/backend/pkg/response"
)

// AvailabilityHandler trainer availability HTTP handler.
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

// NewAvailabilityHandler creates an AvailabilityHandler.
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

// CreateAvailability registers an availability window for a trainer.
// POST /api/v1/availability
func (h *AvailabilityHandler) CreateAvailability(c *gin.Context) {
	var req dto.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	slot, err := h.availabilitySvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.Created(c, slot)
}

// ListByTrainer lists a trainer's availability windows.
// GET /api/v1/availability/by-trainer/:trainer_id
func (h *AvailabilityHandler) ListByTrainer(c *gin.Context) {
	id, ok := mustParseUint(c, c.Param("trainer_id"))
	if !ok {
		return
	}

	slots, err := h.availabilitySvc.ListByTrainer(c.Request.Context(), id)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, gin.H{"list": slots})
}

// UpdateAvailability patches an availability window.
// PUT /api/v1/availability/:id
func (h *AvailabilityHandler) UpdateAvailability(c *gin.Context) {
	id, ok := MustGetIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	slot, err := h.availabilitySvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, slot)
}

// DeleteAvailability removes an availability window.
// DELETE /api/v1/availability/:id
func (h *AvailabilityHandler) DeleteAvailability(c *gin.Context) {
	id, ok := MustGetIDParam(c)
	if !ok {
		return
	}

	if err := h.availabilitySvc.Delete(c.Request.Context(), id); err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *AvailabilityHandler) handleAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAvailabilityNotFound):
		response.NotFound(c, 16001, "availability slot not found")
	case errors.Is(err, service.ErrTrainerNotFound):
		response.NotFound(c, 16002, "trainer not found")
	case errors.Is(err, service.ErrAvailabilityNoAnchor):
		response.BadRequest(c, 16003, "either day_of_week or specific_date is required")
	case errors.Is(err, service.ErrInvalidInterval):
		response.BadRequest(c, 15003, "end time must be after start time")
	default:
		response.InternalError(c)
	}
}
