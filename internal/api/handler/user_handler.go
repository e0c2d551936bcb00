package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"slotboard/backend/internal/service"
	"slotboard/backend/pkg/response"
)

// UserHandler user endpoints.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Get returns one user by ID. Users can only look up themselves.
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	if c.Param("id") != userID {
		response.Forbidden(c, 10003, "access denied")
		return
	}

	result, err := h.userSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11004, "user not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
