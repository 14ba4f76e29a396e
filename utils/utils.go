package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse creates a standardized error response
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// Pointer returns a pointer to the given value
func Pointer[T any](v T) *T {
	return &v
}

// Truncate shortens s to at most max bytes; used to bound prompt previews.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
