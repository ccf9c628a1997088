package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func postComplianceCheck(t *testing.T, content string) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Post("/api/v1/brand/compliance/check", HandleComplianceCheck)

	payload, _ := json.Marshal(map[string]string{"content": content})
	req := httptest.NewRequest("POST", "/api/v1/brand/compliance/check", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	var parsed map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, parsed
}

func TestComplianceCheck_CleanCopy(t *testing.T) {
	status, parsed := postComplianceCheck(t, "Hand-trimmed flower, grown in Humboldt County.")
	assert.Equal(t, 200, status)

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, true, data["compliant"])
}

func TestComplianceCheck_FlaggedCopy(t *testing.T) {
	status, parsed := postComplianceCheck(t, "This gummy cures anxiety!")
	assert.Equal(t, 200, status)

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, false, data["compliant"])
	violations := data["violations"].([]interface{})
	assert.Len(t, violations, 1)
}

func TestComplianceCheck_MissingContent(t *testing.T) {
	status, parsed := postComplianceCheck(t, "")
	assert.Equal(t, 400, status)
	assert.Equal(t, false, parsed["success"])
}
