// Package errors provides error types with actionable suggestions for
// autolist. Errors carry contextual details so a failed fetch, login or
// submission can be explained in the terminal instead of a bare message.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Common sentinel errors for use with errors.Is().
var (
	// ErrAuth indicates an authentication failure.
	ErrAuth = errors.New("authentication error")
	// ErrConfig indicates a configuration error.
	ErrConfig = errors.New("configuration error")
	// ErrCatalog indicates reference data could not be loaded.
	ErrCatalog = errors.New("catalog error")
	// ErrValidation indicates a listing draft failed validation.
	ErrValidation = errors.New("validation error")
	// ErrSubmit indicates a listing could not be submitted.
	ErrSubmit = errors.New("submit error")
	// ErrNetwork indicates a network-related error.
	ErrNetwork = errors.New("network error")
	// ErrTimeout indicates a timeout occurred.
	ErrTimeout = errors.New("timeout error")
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")
)

// kindNames are the short names used in logs for each sentinel.
var kindNames = []struct {
	kind error
	name string
}{
	{ErrAuth, "auth"},
	{ErrConfig, "config"},
	{ErrCatalog, "catalog"},
	{ErrValidation, "validation"},
	{ErrSubmit, "submit"},
	{ErrNetwork, "network"},
	{ErrTimeout, "timeout"},
	{ErrNotFound, "not_found"},
}

// KindName returns the short name of the first sentinel err matches, or
// "unknown".
func KindName(err error) string {
	for _, k := range kindNames {
		if errors.Is(err, k.kind) {
			return k.name
		}
	}
	return "unknown"
}

// AppError is an error with a kind, a user-facing message and optional
// advice for fixing it.
type AppError struct {
	// Kind is one of the sentinels above.
	Kind error
	// Message is shown to the user.
	Message string
	// Suggestion tells the user what to do next.
	Suggestion string
	// Cause is the underlying error, if any.
	Cause error
	// Details holds context such as the endpoint or the failing fields.
	Details map[string]string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the cause, or the kind when there is none.
func (e *AppError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Kind
}

// Is reports whether the error kind matches target.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// LogValue groups the error's fields when it is logged with slog.
func (e *AppError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", KindName(e.Kind)),
		slog.String("message", e.Message),
	}
	if e.Cause != nil {
		attrs = append(attrs, slog.String("cause", e.Cause.Error()))
	}
	for _, k := range e.detailKeys() {
		attrs = append(attrs, slog.String(k, e.Details[k]))
	}
	return slog.GroupValue(attrs...)
}

func (e *AppError) detailKeys() []string {
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Format renders the error for the terminal: the message, the details in
// key order and the suggestion.
func (e *AppError) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %s\n", e.Error())

	if keys := e.detailKeys(); len(keys) > 0 {
		sb.WriteString("\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %s\n", k, e.Details[k])
		}
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&sb, "\n💡 %s\n", e.Suggestion)
	}
	return sb.String()
}

// WithDetails adds a detail and returns e.
func (e *AppError) WithDetails(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the cause and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates an AppError of kind.
func New(kind error, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap creates an AppError of kind caused by err.
func Wrap(err error, kind error, message string) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: err}
}

// WithSuggestion creates an AppError of kind with advice attached.
func WithSuggestion(kind error, message, suggestion string) *AppError {
	return &AppError{Kind: kind, Message: message, Suggestion: suggestion}
}
