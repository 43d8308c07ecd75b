// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ConflictError carries the onboarding wizard step the operator must return
// to when a uniqueness pre-check fails (1 = nombre de condominio, 2 = email
// del administrador). The persisted draft is never cleared on conflict.
type ConflictError struct {
	Detail     string `json:"detail"`
	RewindStep int    `json:"rewind_step"`
}

func NewConflict(msg string, rewindStep int) *ConflictError {
	return &ConflictError{Detail: msg, RewindStep: rewindStep}
}
