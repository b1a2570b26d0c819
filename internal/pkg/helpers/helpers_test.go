package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  Page
	}{
		{"", Page{Number: 1, Size: DefaultPageSize}},
		{"?page=3&size=5", Page{Number: 3, Size: 5}},
		{"?page=-1&size=1000", Page{Number: 1, Size: DefaultPageSize}},
		{"?page=x&size=y", Page{Number: 1, Size: DefaultPageSize}},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/groups"+tt.query, nil)
		assert.Equal(t, tt.want, ParsePaginationParams(c), tt.query)
	}
}

func TestPageOffsetLimit(t *testing.T) {
	p := Page{Number: 3, Size: 10}
	assert.Equal(t, uint64(20), p.Offset())
	assert.Equal(t, 10, p.Limit())

	assert.Equal(t, uint64(0), Page{}.Offset())
	assert.Equal(t, DefaultPageSize, Page{}.Limit())
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, Page{Number: 2, Size: 20})
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, int64(45), info.TotalItems)

	empty := NewPaginationInfo(0, Page{Number: 1, Size: 20})
	assert.Equal(t, 1, empty.TotalPages)

	clamped := NewPaginationInfo(5, Page{Number: 9, Size: 20})
	assert.Equal(t, 1, clamped.CurrentPage)
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, NullIfEmpty("   "))
	assert.Equal(t, "Lab 2", *NullIfEmpty(" Lab 2 "))
	assert.Nil(t, NullIfZero(0))
	assert.Equal(t, int64(4), *NullIfZero(4))
	assert.Equal(t, "", Deref(nil))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("90m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("later", time.Hour))
}

func TestParseMeetingTime(t *testing.T) {
	got, err := ParseMeetingTime("2025-03-04T10:30")
	assert.NoError(t, err)
	assert.Equal(t, 10, got.Hour())
	assert.Equal(t, 30, got.Minute())

	got, err = ParseMeetingTime("2025-03-04T10:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())

	_, err = ParseMeetingTime("next tuesday")
	assert.Error(t, err)
}
