package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(key string) *fiber.App {
	app := fiber.New()
	app.Use(New(Config{ApiKey: key}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		headers map[string]string
		want    int
	}{
		{"Disabled", "", nil, fiber.StatusOK},
		{"MissingKey", "secret", nil, fiber.StatusUnauthorized},
		{"WrongKey", "secret", map[string]string{Header: "nope"}, fiber.StatusUnauthorized},
		{"HeaderKey", "secret", map[string]string{Header: "secret"}, fiber.StatusOK},
		{"BearerKey", "secret", map[string]string{"Authorization": "Bearer secret"}, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			resp, err := setupApp(tt.apiKey).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
