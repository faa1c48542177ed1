package httpx

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestPagination(t *testing.T) {
	page, limit := Pagination(testContext("/x?page=3&limit=50"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)

	page, limit = Pagination(testContext("/x?page=-1&limit=abc"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}

func TestOptionalFloat(t *testing.T) {
	v, ok := OptionalFloat(testContext("/x?max_price=25.5"), "max_price")
	assert.True(t, ok)
	assert.Equal(t, 25.5, *v)

	v, ok = OptionalFloat(testContext("/x"), "max_price")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = OptionalFloat(testContext("/x?max_price=cheap"), "max_price")
	assert.False(t, ok)
}

func TestOptionalDate(t *testing.T) {
	d, ok := OptionalDate(testContext("/x?from=2026-05-01"), "from")
	assert.True(t, ok)
	assert.Equal(t, "2026-05-01T00:00:00Z", d.Format("2006-01-02T15:04:05Z07:00"))

	_, ok = OptionalDate(testContext("/x?from=yesterday"), "from")
	assert.False(t, ok)
}

func TestParseIDParam(t *testing.T) {
	c := testContext("/x")
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, err := ParseIDParam(c, "id")
	assert.NoError(t, err)
	assert.Equal(t, int64(12), id)

	c.Params = gin.Params{{Key: "id", Value: "0"}}
	_, err = ParseIDParam(c, "id")
	assert.Error(t, err)
}
