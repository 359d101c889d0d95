package wiki

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies errors for programmatic handling
type ErrorCode string

const (
	// Authentication error codes
	AuthCodeInvalidCredentials ErrorCode = "AUTH_INVALID_CREDENTIALS"
	AuthCodeMissingCredentials ErrorCode = "AUTH_MISSING_CREDENTIALS"
	AuthCodeTokenMissing       ErrorCode = "AUTH_TOKEN_MISSING"

	// Validation error codes
	ValidationCodeInvalid ErrorCode = "VALIDATION_INVALID"
)

// APIError is an error object returned by the MediaWiki API itself
// (for example "permissiondenied" or "missingtitle").
type APIError struct {
	Code string
	Info string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error [%s]: %s", e.Code, e.Info)
}

// AuthenticationError indicates a login or token failure with recovery steps
type AuthenticationError struct {
	Code      ErrorCode
	Operation string
	Reason    string
}

func (e *AuthenticationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] authentication failed during %s", e.Code, e.Operation))
	if e.Reason != "" {
		sb.WriteString(": " + e.Reason)
	}

	switch e.Code {
	case AuthCodeInvalidCredentials:
		sb.WriteString(`

Check your credentials:
1. Bot passwords use the format "YourUser@BotName"
2. The password is the bot password, not your user password
3. Bot passwords are created at Special:BotPasswords on your wiki`)
	case AuthCodeMissingCredentials:
		sb.WriteString("\n\nProvide a username and password.")
	}
	return sb.String()
}

// ValidationError represents an input validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// IsAPIError reports whether err wraps an APIError with the given code.
// An empty code matches any APIError.
func IsAPIError(err error, code string) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return code == "" || apiErr.Code == code
}

// IsAuthError reports whether err wraps an AuthenticationError
func IsAuthError(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}
