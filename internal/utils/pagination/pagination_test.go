package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func parse(t *testing.T, query string) Pagination {
	t.Helper()
	var got Pagination
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParseFromRequest(c)
		return nil
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
	assert.NoError(t, err)
	resp.Body.Close()
	return got
}

func TestParseFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 1, 10, 0},
		{"explicit page and limit", "?page=3&limit=25", 3, 25, 50},
		{"zero page clamps to first", "?page=0", 1, 10, 0},
		{"negative limit falls back to default", "?limit=-5", 1, 10, 0},
		{"limit capped at maximum", "?limit=5000", 1, 100, 0},
		{"garbage values fall back", "?page=abc&limit=xyz", 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parse(t, tt.query)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), Pagination{Limit: 10, Total: 0}.TotalPages())
	assert.Equal(t, int64(1), Pagination{Limit: 10, Total: 10}.TotalPages())
	assert.Equal(t, int64(2), Pagination{Limit: 10, Total: 11}.TotalPages())
	assert.Equal(t, int64(5), Pagination{Limit: 20, Total: 100}.TotalPages())
	assert.Equal(t, int64(0), Pagination{Limit: 0, Total: 100}.TotalPages())
}
