package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func postInitializeAdmin(t *testing.T, token string, body []byte) int {
	t.Helper()
	app := fiber.New()
	app.Post("/api/v1/auth/initialize-admin", HandleInitializeAdmin)

	req := httptest.NewRequest("POST", "/api/v1/auth/initialize-admin", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Init-Token", token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	return resp.StatusCode
}

func TestInitializeAdmin_TokenNotConfigured(t *testing.T) {
	t.Setenv("INIT_TOKEN", "")

	status := postInitializeAdmin(t, "anything", []byte(`{}`))
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestInitializeAdmin_InvalidToken(t *testing.T) {
	t.Setenv("INIT_TOKEN", "bootstrap-secret")

	status := postInitializeAdmin(t, "wrong-token", []byte(`{}`))
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status = postInitializeAdmin(t, "", []byte(`{}`))
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestInitializeAdmin_MissingFields(t *testing.T) {
	t.Setenv("INIT_TOKEN", "bootstrap-secret")

	payload, _ := json.Marshal(map[string]string{"name": "Ops", "email": ""})
	status := postInitializeAdmin(t, "bootstrap-secret", payload)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
