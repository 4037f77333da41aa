package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLimits_Pagination(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	limits := Limits{Default: 100, Max: 500}

	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 100, 0},
		{"?limit=25&offset=50", 25, 50},
		{"?limit=0", 1, 0},
		{"?limit=-5", 1, 0},
		{"?limit=9999", 500, 0},
		{"?offset=-3", 100, 0},
		{"?limit=abc&offset=xyz", 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/tasks"+tt.query, nil)

			limit, offset := limits.pagination(c)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
