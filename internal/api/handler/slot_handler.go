package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"slotboard/backend/internal/dto"
	"slotboard/backend/internal/service"
	"slotboard/backend/pkg/response"
	"slotboard/backend/pkg/timeutil"
)

// SlotHandler slot endpoints.
type SlotHandler struct {
	slotSvc     service.SlotService
	scheduleSvc service.ScheduleService
}

// NewSlotHandler creates a SlotHandler.
func NewSlotHandler(slotSvc service.SlotService, scheduleSvc service.ScheduleService) *SlotHandler {
	return &SlotHandler{slotSvc: slotSvc, scheduleSvc: scheduleSvc}
}

// Create creates one slot per selected weekday.
// POST /api/v1/slots
func (h *SlotHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.slotSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, result)
}

// Get returns one slot.
// GET /api/v1/slots/:id
func (h *SlotHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.slotSvc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Save applies one slot edit session save.
// PUT /api/v1/slots/:id
func (h *SlotHandler) Save(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SaveSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.slotSvc.Save(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete removes a slot with its overrides and assignments.
// DELETE /api/v1/slots/:id
func (h *SlotHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.slotSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// AvailableClasses lists the classes still addable to a slot that week.
// GET /api/v1/slots/:id/available-classes?date=YYYY-MM-DD
func (h *SlotHandler) AvailableClasses(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date query parameter is required")
		return
	}

	result, err := h.scheduleSvc.GetAvailableClasses(c.Request.Context(), c.Param("id"), date, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *SlotHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSlotNotFound):
		response.NotFound(c, 13001, "slot not found")
	case errors.Is(err, service.ErrTimetableNotFound):
		response.NotFound(c, 12001, "timetable not found")
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, 10003, "access denied")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, "invalid date, expected YYYY-MM-DD")
	case errors.Is(err, service.ErrInvalidDayName):
		response.BadRequest(c, 12002, "invalid weekday name")
	case errors.Is(err, service.ErrDayNotInTimetable):
		response.BadRequest(c, 13002, "day is not part of the timetable")
	case errors.Is(err, service.ErrInvalidSlotTimes):
		response.BadRequest(c, 13003, "slot start must be before slot end")
	case errors.Is(err, timeutil.ErrInvalidTimeFormat):
		response.BadRequest(c, 13004, "invalid time format, expected HH:MM")
	case errors.Is(err, service.ErrConflictingFlags):
		response.BadRequest(c, 13005, "conflicting save flags")
	case errors.Is(err, service.ErrSlotAlreadyDisabled):
		response.Conflict(c, 13006, "slot is permanently disabled")
	default:
		response.InternalError(c)
	}
}
