package errors

import "fmt"

// CatalogFetchFailed creates an error for a reference list that could not be fetched.
func CatalogFetchFailed(kind string, cause error) *AppError {
	return &AppError{
		Kind:    ErrCatalog,
		Message: fmt.Sprintf("failed to load %s", kind),
		Cause:   cause,
		Details: map[string]string{
			"list": kind,
		},
		Suggestion: "The field stays empty until the form is reopened. Check the catalog source in .autolist/config.yaml.",
	}
}

// CatalogSourceUnknown creates an error for an unsupported catalog source.
func CatalogSourceUnknown(source string) *AppError {
	return ConfigValidationError("catalog.source",
		fmt.Sprintf("unknown catalog source %q", source),
		[]string{"http", "sql", "mongo", "file"})
}
