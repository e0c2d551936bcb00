package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"slotboard/backend/internal/dto"
	"slotboard/backend/internal/service"
	"slotboard/backend/pkg/response"
)

// AssignmentHandler slot-class assignment endpoints.
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler creates an AssignmentHandler.
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// Assign binds a class to a slot for one week.
// POST /api/v1/slot-classes
func (h *AssignmentHandler) Assign(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AssignClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.assignmentSvc.Assign(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, result)
}

// Update patches an assignment's week state.
// PUT /api/v1/slot-classes/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.assignmentSvc.Update(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete removes an assignment.
// DELETE /api/v1/slot-classes/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.assignmentSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *AssignmentHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 15001, "assignment not found")
	case errors.Is(err, service.ErrSlotNotFound):
		response.NotFound(c, 13001, "slot not found")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 14001, "class not found")
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, 10003, "access denied")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, "invalid date, expected YYYY-MM-DD")
	case errors.Is(err, service.ErrClassAlreadyAssigned):
		response.Conflict(c, 15002, "class already assigned to this slot for this week")
	case errors.Is(err, service.ErrClassWrongWeek):
		response.BadRequest(c, 15003, "class is restricted to a different week")
	case errors.Is(err, service.ErrClassTimetableMismatch):
		response.BadRequest(c, 15004, "class and slot belong to different timetables")
	default:
		response.InternalError(c)
	}
}
