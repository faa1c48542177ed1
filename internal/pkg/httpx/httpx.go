// Package httpx holds small gin helpers shared by the module handlers.
package httpx

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func UserID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}

func Role(c *gin.Context) string {
	return c.GetString("role")
}

func IsAdmin(c *gin.Context) bool {
	return Role(c) == "admin"
}

func ParseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err == nil && id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, err
}

func ParseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func ParseInt64Default(v string, def int64) int64 {
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// Pagination reads ?page= and ?limit=.
func Pagination(c *gin.Context) (page, limit int) {
	return ParseIntDefault(c.Query("page"), 1), ParseIntDefault(c.Query("limit"), 20)
}

// OptionalFloat parses a float query parameter; ok is false when absent.
func OptionalFloat(c *gin.Context, name string) (v *float64, ok bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}

// OptionalDate parses YYYY-MM-DD or RFC3339 query parameters as UTC.
func OptionalDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
