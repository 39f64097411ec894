package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/region-map-service/internal/domain"
)

func TestSendError_MapsDomainErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/nomatch", func(c *fiber.Ctx) error {
		return SendError(c, fmt.Errorf("find: %w", domain.ErrNoMatch))
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return SendError(c, fmt.Errorf("disk on fire"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/nomatch", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var payload map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "NO_MATCH", payload["error"]["code"])

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestSendSuccess_Envelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return SendSuccess(c, []string{"Odisha"}, &Meta{Total: 1})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"data":["Odisha"],"meta":{"total":1}}`, string(body))
}
