package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"lectio/backend/pkg/response"
)

// MustGetIDParam parses the :id path parameter. On failure it writes a 400
// response and returns false; the caller should return immediately.
func MustGetIDParam(c *gin.Context) (uint, bool) {
	return mustParseUint(c, c.Param("id"))
}

func mustParseUint(c *gin.Context, raw string) (uint, bool) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		response.BadRequest(c, 10001, "invalid id")
		return 0, false
	}
	return uint(v), true
}

// MustGetUserID extracts the authenticated user id injected by the JWT
// middleware. Returns false (with a 401 written) when missing.
func MustGetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		response.Unauthorized(c, 10002, "not authenticated")
		return 0, false
	}
	return id, true
}

// MustGetRole extracts the caller's role from the context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
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
