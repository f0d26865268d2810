package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mkidawa/smAIcznego/internal/types"
	"github.com/mkidawa/smAIcznego/internal/utils"
	"go.uber.org/zap"
)

// getUserID extracts the verified user ID from context (set by auth middleware)
func getUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user not found in context")
	}
	return userID, nil
}

// parseIDParam parses a positive numeric path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, types.NewValidationError(fmt.Sprintf("%s must be a positive integer", name), nil)
	}
	return id, nil
}

// respondError translates a service error to its wire shape. Unclassified
// errors are logged and returned as opaque 500s.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	if apiErr, ok := types.AsApiError(err); ok {
		return utils.ErrorResponse(c, apiErr)
	}
	log.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))
	return utils.ErrorResponse(c, types.NewServerError("Internal server error"))
}
