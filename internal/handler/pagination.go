package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Limits carries the configured pagination bounds.
type Limits struct {
	Default int
	Max     int
}

// pagination reads limit/offset query params, applying the configured default
// and clamping to [1, Max] and offset >= 0.
func (l Limits) pagination(c *gin.Context) (limit, offset int) {
	limit = l.Default
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > l.Max {
		limit = l.Max
	}

	if raw := c.Query("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
