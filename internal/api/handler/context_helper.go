package handler

import (
	"github.com/gin-gonic/gin"

	"slotboard/backend/pkg/response"
)

// MustGetUserID extracts the user_id the JWT middleware injected. On a
// missing or malformed value it writes a 401 and returns false; the
// caller should return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}
