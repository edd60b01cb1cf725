package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"logingate/submission"
)

// MockAuthProvider implements AuthProvider for testing
type MockAuthProvider struct {
	signInFunc func(ctx context.Context, login string) (string, error)
	calls      []string
}

func (m *MockAuthProvider) SignIn(ctx context.Context, login string) (string, error) {
	m.calls = append(m.calls, login)
	if m.signInFunc != nil {
		return m.signInFunc(ctx, login)
	}
	return "mock-payload", nil
}

// MockConfigWriter implements ConfigWriter for testing
type MockConfigWriter struct {
	updateLastLoginFunc func(login string) error
	saved               []string
}

func (m *MockConfigWriter) UpdateLastLogin(login string) error {
	m.saved = append(m.saved, login)
	if m.updateLastLoginFunc != nil {
		return m.updateLastLoginFunc(login)
	}
	return nil
}

func TestAuthService_AttemptLogin_Success(t *testing.T) {
	// Arrange
	mockAuth := &MockAuthProvider{
		signInFunc: func(ctx context.Context, login string) (string, error) {
			return "Ada Lovelace", nil
		},
	}
	mockConfig := &MockConfigWriter{}
	service := NewAuthService(mockAuth, mockConfig)

	// Act
	result := service.AttemptLogin(context.Background(), "alice")

	// Assert
	if !result.Success {
		t.Errorf("Expected login to succeed, but got error: %s", result.Error)
	}
	if result.Payload != "Ada Lovelace" {
		t.Errorf("Expected payload 'Ada Lovelace', got '%s'", result.Payload)
	}
	if len(mockConfig.saved) != 1 || mockConfig.saved[0] != "alice" {
		t.Errorf("Expected 'alice' to be remembered, got %v", mockConfig.saved)
	}
}

func TestAuthService_AttemptLogin_ProviderError(t *testing.T) {
	// Arrange
	mockAuth := &MockAuthProvider{
		signInFunc: func(ctx context.Context, login string) (string, error) {
			return "", errors.New("server returned 503 Service Unavailable")
		},
	}
	mockConfig := &MockConfigWriter{}
	service := NewAuthService(mockAuth, mockConfig)

	// Act
	result := service.AttemptLogin(context.Background(), "bob")

	// Assert
	if result.Success {
		t.Error("Expected login to fail, but it succeeded")
	}
	expectedError := "Login failed: server returned 503 Service Unavailable"
	if result.Error != expectedError {
		t.Errorf("Expected error '%s', but got '%s'", expectedError, result.Error)
	}
	if len(mockConfig.saved) != 0 {
		t.Errorf("Expected nothing remembered on failure, got %v", mockConfig.saved)
	}
}

func TestAuthService_AttemptLogin_BlankLogin(t *testing.T) {
	tests := []struct {
		name  string
		login string
	}{
		{name: "empty", login: ""},
		{name: "whitespace", login: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mockAuth := &MockAuthProvider{}
			service := NewAuthService(mockAuth, &MockConfigWriter{})

			// Act
			result := service.AttemptLogin(context.Background(), tt.login)

			// Assert
			if result.Success {
				t.Error("Expected login to fail with a blank login")
			}
			if result.Error != ErrLoginRequired.Error() {
				t.Errorf("Expected error '%s', but got '%s'", ErrLoginRequired, result.Error)
			}
			if len(mockAuth.calls) != 0 {
				t.Error("Expected provider not to be called")
			}
		})
	}
}

func TestAuthService_AttemptLogin_ConfigSaveErrorIsWarning(t *testing.T) {
	// Arrange
	mockAuth := &MockAuthProvider{}
	mockConfig := &MockConfigWriter{
		updateLastLoginFunc: func(login string) error {
			return errors.New("disk full")
		},
	}
	service := NewAuthService(mockAuth, mockConfig)

	// Act
	result := service.AttemptLogin(context.Background(), "alice")

	// Assert
	if !result.Success {
		t.Error("Expected login to succeed even when the config cannot be saved")
	}
	expectedWarning := "Failed to save config: disk full"
	if result.Warning != expectedWarning {
		t.Errorf("Expected warning '%s', but got '%s'", expectedWarning, result.Warning)
	}
}

func TestAuthService_AttemptLogin_NilConfigWriter(t *testing.T) {
	// Arrange
	service := NewAuthService(&MockAuthProvider{}, nil)

	// Act
	result := service.AttemptLogin(context.Background(), "alice")

	// Assert
	if !result.Success || result.Warning != "" {
		t.Errorf("Expected clean success, got %+v", result)
	}
}

func TestAuthService_Attempt(t *testing.T) {
	// Arrange
	mockAuth := &MockAuthProvider{
		signInFunc: func(ctx context.Context, login string) (string, error) {
			if login == "mallory" {
				return "", errors.New("denied")
			}
			return "welcome " + login, nil
		},
	}
	service := NewAuthService(mockAuth, nil)

	// Act
	payload, okErr := service.Attempt(context.Background(), submission.Request{Login: "alice", Attempt: 1})
	_, failErr := service.Attempt(context.Background(), submission.Request{Login: "mallory", Attempt: 2})

	// Assert
	if okErr != nil || payload != "welcome alice" {
		t.Errorf("Expected success payload, got %q, %v", payload, okErr)
	}
	if !errors.Is(failErr, submission.ErrAttemptFailed) {
		t.Errorf("Expected ErrAttemptFailed, got %v", failErr)
	}
	if failErr != nil && !strings.Contains(failErr.Error(), "denied") {
		t.Errorf("Expected provider message in error, got %v", failErr)
	}
}

func TestNewAuthService(t *testing.T) {
	// Arrange
	mockAuth := &MockAuthProvider{}
	mockConfig := &MockConfigWriter{}

	// Act
	service := NewAuthService(mockAuth, mockConfig)

	// Assert
	if service == nil {
		t.Fatal("Expected service to be created")
	}
	if service.authProvider != mockAuth {
		t.Error("Expected auth provider to be set correctly")
	}
	if service.configWriter != mockConfig {
		t.Error("Expected config writer to be set correctly")
	}
}
