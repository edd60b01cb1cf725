package login

import (
	"errors"
	"strings"
)

// ErrRequired is shown when an empty login is submitted
var ErrRequired = errors.New("login is required")

// validateLogin is the form's only rule: the value must not be blank
func validateLogin(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrRequired
	}
	return nil
}
