// Package apierror provides the error response envelopes used by every
// 4xx/5xx HTTP response. All client-facing errors go through this package so
// that internal details (stack traces, SQL errors) never leak.
package apierror

// APIError is the canonical error envelope: {"error": "...", "details": "..."}.
type APIError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Error: msg}
}

func WithDetails(msg, details string) *APIError {
	return &APIError{Error: msg, Details: details}
}

// FieldError describes one failed validation rule on one request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError wraps per-field failures: {"errors": [...]}.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func NewValidation(fields []FieldError) *ValidationError {
	return &ValidationError{Errors: fields}
}
