package auth

// LoginResult represents the result of a login attempt
type LoginResult struct {
	Success bool
	Payload string
	Error   string

	// Warning is set when the login succeeded but could not be remembered
	Warning string
}
