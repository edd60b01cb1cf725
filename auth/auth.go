package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"logingate/submission"
)

// ErrLoginRequired is returned when the login is blank
var ErrLoginRequired = errors.New("login is required")

// AuthProvider interface for authentication implementations
type AuthProvider interface {
	SignIn(ctx context.Context, login string) (string, error)
}

// ConfigWriter interface for remembering the last confirmed login
type ConfigWriter interface {
	UpdateLastLogin(login string) error
}

// AuthService handles authentication business logic
type AuthService struct {
	authProvider AuthProvider
	configWriter ConfigWriter
}

// NewAuthService creates a new authentication service. configWriter may be
// nil, in which case confirmed logins are not remembered.
func NewAuthService(authProvider AuthProvider, configWriter ConfigWriter) *AuthService {
	return &AuthService{
		authProvider: authProvider,
		configWriter: configWriter,
	}
}

// AttemptLogin performs the complete login flow
func (s *AuthService) AttemptLogin(ctx context.Context, login string) LoginResult {
	if err := s.ValidateLogin(login); err != nil {
		return LoginResult{
			Success: false,
			Error:   err.Error(),
		}
	}

	payload, err := s.authProvider.SignIn(ctx, login)
	if err != nil {
		return LoginResult{
			Success: false,
			Error:   fmt.Sprintf("Login failed: %v", err),
		}
	}

	result := LoginResult{
		Success: true,
		Payload: payload,
	}
	if s.configWriter != nil {
		if err := s.configWriter.UpdateLastLogin(login); err != nil {
			result.Warning = fmt.Sprintf("Failed to save config: %v", err)
		}
	}
	return result
}

// ValidateLogin performs basic validation on a login
func (s *AuthService) ValidateLogin(login string) error {
	if strings.TrimSpace(login) == "" {
		return ErrLoginRequired
	}
	return nil
}

// Attempt adapts the service to the submission controller. A failed login
// is reported as submission.ErrAttemptFailed.
func (s *AuthService) Attempt(ctx context.Context, req submission.Request) (string, error) {
	result := s.AttemptLogin(ctx, req.Login)
	if !result.Success {
		return "", fmt.Errorf("%w: %s", submission.ErrAttemptFailed, result.Error)
	}
	return result.Payload, nil
}
