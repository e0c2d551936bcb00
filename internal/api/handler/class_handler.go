package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"slotboard/backend/internal/dto"
	"slotboard/backend/internal/service"
	"slotboard/backend/pkg/response"
)

// ClassHandler class endpoints.
type ClassHandler struct {
	classSvc service.ClassService
}

// NewClassHandler creates a ClassHandler.
func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// Create creates a class.
// POST /api/v1/classes
func (h *ClassHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.classSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, result)
}

// List lists a timetable's classes.
// GET /api/v1/classes?timetable_id=xxx
func (h *ClassHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	timetableID := c.Query("timetable_id")
	if timetableID == "" {
		response.BadRequest(c, 10001, "timetable_id query parameter is required")
		return
	}

	result, err := h.classSvc.ListByTimetable(c.Request.Context(), timetableID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Get returns one class.
// GET /api/v1/classes/:id
func (h *ClassHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.classSvc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Update patches a class.
// PUT /api/v1/classes/:id
func (h *ClassHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.classSvc.Update(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete removes a class and its assignments.
// DELETE /api/v1/classes/:id
func (h *ClassHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.classSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ClassHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 14001, "class not found")
	case errors.Is(err, service.ErrTimetableNotFound):
		response.NotFound(c, 12001, "timetable not found")
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, 10003, "access denied")
	case errors.Is(err, service.ErrIncompleteRestriction):
		response.BadRequest(c, 14002, "week restriction needs both year and week number")
	default:
		response.InternalError(c)
	}
}
