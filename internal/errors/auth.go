package errors

import (
	"fmt"
	"time"
)

// InvalidCredentials creates an error for a rejected login.
func InvalidCredentials(email string) *AppError {
	return &AppError{
		Kind:    ErrAuth,
		Message: "invalid email or password",
		Details: map[string]string{
			"email": email,
		},
		Suggestion: "Check your credentials, or create an account from the login dialog.",
	}
}

// SessionExpired creates an error for a token whose expiry has passed.
func SessionExpired(expiredAt time.Time) *AppError {
	return &AppError{
		Kind:       ErrAuth,
		Message:    fmt.Sprintf("session expired at %s", expiredAt.Format(time.RFC3339)),
		Suggestion: "Log in again with ctrl+l.",
	}
}

// ProviderUnknown creates an error for a social sign-in provider that is not configured.
func ProviderUnknown(name string) *AppError {
	return &AppError{
		Kind:    ErrAuth,
		Message: fmt.Sprintf("sign-in provider %q is not configured", name),
		Details: map[string]string{
			"provider": name,
		},
		Suggestion: "Add the provider under auth.providers in .autolist/config.yaml.",
	}
}
