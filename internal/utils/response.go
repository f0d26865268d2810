package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mkidawa/smAIcznego/internal/types"
)

// ErrorResponse sends the standard error envelope for an ApiError.
func ErrorResponse(c *fiber.Ctx, apiErr *types.ApiError) error {
	body := fiber.Map{
		"status":    apiErr.Status,
		"error":     apiErr.Code,
		"message":   apiErr.Message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	}
	if apiErr.Details != nil {
		body["details"] = apiErr.Details
	}
	return c.Status(apiErr.Status).JSON(body)
}

// SuccessResponse sends data with the given status code.
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int         `json:"status"`
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Ok        bool        `json:"ok"`
	Timestamp string      `json:"timestamp"`
	URL       string      `json:"url"`
	Details   interface{} `json:"details,omitempty"`
}
