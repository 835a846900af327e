// Package errors provides error types for autolist.
// This file contains network and timeout-related errors.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// NetworkUnavailable creates an error for network connectivity issues.
func NetworkUnavailable(host string, cause error) *AppError {
	err := &AppError{
		Kind:    ErrNetwork,
		Message: "network unavailable",
		Cause:   cause,
		Suggestion: `Check that the autolist API is reachable:

  1. Verify the URL in .autolist/config.yaml
  2. Start a local server with: autolist serve
  3. Check if VPN or firewall is blocking access`,
	}
	if host != "" {
		err.Details = map[string]string{"host": host}
	}
	return err
}

// UnexpectedStatus creates an error for a non-success HTTP response.
func UnexpectedStatus(endpoint string, status int, body string) *AppError {
	err := &AppError{
		Kind:    ErrNetwork,
		Message: fmt.Sprintf("%s returned %d %s", endpoint, status, http.StatusText(status)),
		Details: map[string]string{
			"endpoint": endpoint,
			"status":   fmt.Sprintf("%d", status),
		},
	}
	if body != "" {
		err.Details["body"] = body
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		err.Kind = ErrAuth
		err.Suggestion = "Log in again with ctrl+l; your session may have expired."
	case status == http.StatusNotFound:
		err.Kind = ErrNotFound
		err.Suggestion = "Check the endpoint URL in .autolist/config.yaml."
	case status >= 500:
		err.Suggestion = "The server failed to handle the request. Try again later."
	}
	return err
}

// OperationTimeout creates a generic timeout error.
func OperationTimeout(operation string, elapsed time.Duration) *AppError {
	return &AppError{
		Kind:    ErrTimeout,
		Message: fmt.Sprintf("%s timed out after %v", operation, elapsed.Round(time.Millisecond)),
		Details: map[string]string{
			"operation": operation,
			"elapsed":   elapsed.Round(time.Millisecond).String(),
		},
		Suggestion: "The request took too long. Raise the timeout in .autolist/config.yaml or try again later.",
	}
}

// ContextCancelled creates an error for cancelled operations.
func ContextCancelled(operation string) *AppError {
	return &AppError{
		Kind:    ErrTimeout,
		Message: fmt.Sprintf("%s was cancelled", operation),
		Details: map[string]string{
			"operation": operation,
		},
	}
}

// IsRetryable returns true if the error is likely transient and retrying may succeed.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var ae *AppError
	if errors.As(err, &ae) {
		switch ae.Kind {
		case ErrNetwork, ErrTimeout:
			return true
		default:
			return false
		}
	}

	return false
}

// IsUserError returns true if the error is due to user input or misconfiguration.
func IsUserError(err error) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		switch ae.Kind {
		case ErrConfig, ErrAuth, ErrValidation:
			return true
		default:
			return false
		}
	}
	return false
}
