package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/mkidawa/smAIcznego/internal/config"
	"github.com/mkidawa/smAIcznego/internal/services"
	"github.com/mkidawa/smAIcznego/internal/types"
	"github.com/mkidawa/smAIcznego/internal/utils"
	"go.uber.org/zap"
)

// AuthUser validates the session cookie and stores the verified user ID in
// request locals. A missing cookie or invalid session is a 401; an
// unreachable identity provider is a 503. Every failure fails closed.
//
// The Authorizer client is initialized on the first request, using the
// request's protocol and host as the redirect URL.
func AuthUser(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !services.IsAuthorizerInitialized() {
			if err := services.InitAuthorizer(cfg, log, c.Protocol(), c.Hostname()); err != nil {
				log.Error("authorizer initialization failed", zap.Error(err))
				return utils.ErrorResponse(c, types.NewServiceUnavailableError("Identity provider unavailable"))
			}
		}

		session := c.Cookies("cookie_session")
		if session == "" {
			return utils.ErrorResponse(c, types.NewUnauthorizedError("Authorizer cookie \"cookie_session\" not found"))
		}

		userID, err := services.ValidateSession(session)
		if err != nil {
			return utils.ErrorResponse(c, types.NewUnauthorizedError(fmt.Sprintf("Invalid session: %v", err)))
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}
