package services

import (
	"fmt"
	"sync"

	"github.com/authorizerdev/authorizer-go"
	"github.com/mkidawa/smAIcznego/internal/config"
	"github.com/mkidawa/smAIcznego/internal/utils"
	"go.uber.org/zap"
)

var (
	authClient *authorizer.AuthorizerClient
	authOnce   sync.Once
)

// IsAuthorizerInitialized returns true if the Authorizer client is initialized.
func IsAuthorizerInitialized() bool {
	return authClient != nil
}

// InitAuthorizer initializes the Authorizer client (singleton pattern).
func InitAuthorizer(cfg *config.Config, log *zap.Logger, requestProtocol, requestHost string) error {
	var initErr error

	authOnce.Do(func() {
		if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
			initErr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}

		redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
		log.Info("initializing authorizer client",
			zap.String("authorizer_url", cfg.AuthzURL),
			zap.String("client_id", cfg.AuthzClientID),
			zap.String("redirect_url", redirectURL))

		var err error
		authClient, err = authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, redirectURL, nil)
		if err != nil {
			initErr = fmt.Errorf("failed to create authorizer client: %w", err)
			return
		}
	})

	return initErr
}

// ValidateSession validates a session cookie and returns the verified user
// ID. Any failure collapses to an error so callers can fail closed.
func ValidateSession(cookie string) (string, error) {
	if authClient == nil {
		return "", fmt.Errorf("authorizer client not initialized")
	}

	res, err := authClient.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
	})
	if err != nil {
		return "", fmt.Errorf("session validation failed: %w", err)
	}
	if res == nil || !res.IsValid {
		return "", fmt.Errorf("session is not valid")
	}
	if res.User.ID == "" {
		return "", fmt.Errorf("session has no user")
	}
	return res.User.ID, nil
}
