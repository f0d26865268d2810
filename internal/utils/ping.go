package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

const probeTimeout = 1500 * time.Millisecond

// PingOpenRouter checks that the model endpoint accepts TCP connections.
func PingOpenRouter(openRouterURL string) error {
	return dialService(openRouterURL)
}

// PingAuthorizer checks that the Authorizer service accepts TCP connections.
func PingAuthorizer(authzURL string) error {
	return dialService(authzURL)
}

func dialService(serviceURL string) error {
	parsed, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	port := parsed.Port()
	if port == "" {
		if parsed.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	address := net.JoinHostPort(parsed.Hostname(), port)
	conn, err := net.DialTimeout("tcp", address, probeTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return conn.Close()
}
