package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"slotboard/backend/internal/dto"
	"slotboard/backend/internal/service"
	"slotboard/backend/pkg/response"
)

// TimetableHandler timetable endpoints, including the resolved-week view.
type TimetableHandler struct {
	timetableSvc service.TimetableService
	scheduleSvc  service.ScheduleService
}

// NewTimetableHandler creates a TimetableHandler.
func NewTimetableHandler(timetableSvc service.TimetableService, scheduleSvc service.ScheduleService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc, scheduleSvc: scheduleSvc}
}

// Create creates a timetable.
// POST /api/v1/timetables
func (h *TimetableHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.timetableSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, result)
}

// List lists the caller's timetables.
// GET /api/v1/timetables
func (h *TimetableHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.timetableSvc.List(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Get returns one timetable.
// GET /api/v1/timetables/:id
func (h *TimetableHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.timetableSvc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Update patches a timetable.
// PUT /api/v1/timetables/:id
func (h *TimetableHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.timetableSvc.Update(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete removes a timetable and everything under it.
// DELETE /api/v1/timetables/:id
func (h *TimetableHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.timetableSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetSchedule returns the resolved week containing the given date.
// GET /api/v1/timetables/:id/schedule?date=YYYY-MM-DD
func (h *TimetableHandler) GetSchedule(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date query parameter is required")
		return
	}

	result, err := h.scheduleSvc.GetWeekSchedule(c.Request.Context(), c.Param("id"), date, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// GetDaySchedule returns the resolved single day for the given date.
// GET /api/v1/timetables/:id/schedule/day?date=YYYY-MM-DD
func (h *TimetableHandler) GetDaySchedule(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date query parameter is required")
		return
	}

	result, err := h.scheduleSvc.GetDaySchedule(c.Request.Context(), c.Param("id"), date, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *TimetableHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimetableNotFound):
		response.NotFound(c, 12001, "timetable not found")
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, 10003, "access denied")
	case errors.Is(err, service.ErrInvalidDayName):
		response.BadRequest(c, 12002, "invalid weekday name")
	case errors.Is(err, service.ErrInvalidTimeWindow):
		response.BadRequest(c, 12003, "day start must be before day end")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, "invalid date, expected YYYY-MM-DD")
	case errors.Is(err, service.ErrDayNotInTimetable):
		response.BadRequest(c, 12004, "date falls outside the timetable's days")
	default:
		response.InternalError(c)
	}
}
