package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ListingInvalid creates an error summarizing field-level validation failures.
func ListingInvalid(fields map[string]string) *AppError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	err := &AppError{
		Kind:       ErrValidation,
		Message:    fmt.Sprintf("listing has %d invalid field(s): %s", len(fields), strings.Join(names, ", ")),
		Details:    make(map[string]string, len(fields)),
		Suggestion: "Correct the highlighted fields and submit again.",
	}
	for name, msg := range fields {
		err.Details[name] = msg
	}
	return err
}

// ModelBrandMismatch creates an error for a model that does not belong to the selected brand.
func ModelBrandMismatch(modelID int64, brandID string) *AppError {
	return &AppError{
		Kind:    ErrValidation,
		Message: fmt.Sprintf("model %d does not belong to brand %q", modelID, brandID),
		Details: map[string]string{
			"model": fmt.Sprintf("%d", modelID),
			"brand": brandID,
		},
		Suggestion: "Pick the model again after choosing the brand.",
	}
}

// SubmitFailed creates an error for a rejected or failed submission.
func SubmitFailed(cause error) *AppError {
	return &AppError{
		Kind:       ErrSubmit,
		Message:    "failed to create listing",
		Cause:      cause,
		Suggestion: "Your draft is kept. Fix the problem and press ctrl+s to submit again.",
	}
}
