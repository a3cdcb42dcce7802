package dto

import "net/http"

// Error codes carried in meta.error_code. Domain errors reuse their DomainError code.
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeEmptyUpdate     = "EMPTY_UPDATE"
	ErrCodeInvalidState    = "INVALID_STATE"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeUnavailable     = "SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeEmptyUpdate:     http.StatusBadRequest,
	ErrCodeInvalidState:    http.StatusUnprocessableEntity,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeUnavailable:     http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
