package handlers

import (
	"log"

	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleComplianceCheck scans marketing copy against the restricted-term list.
// POST /api/v1/brand/compliance/check
func HandleComplianceCheck(c *fiber.Ctx) error {
	var req models.ComplianceCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "content is required"})
	}

	violations := utils.ScanContent(req.Content)
	if len(violations) > 0 {
		log.Printf("⚖️  [COMPLIANCE] Flagged %d term(s) in submitted copy", len(violations))
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"compliant":  len(violations) == 0,
		"violations": violations,
	}})
}
