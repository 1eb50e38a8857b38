package dto

import "net/http"

// Error codes surfaced by the API. Domain errors carry these codes
// directly; the HTTP layer only translates them to status codes.
const (
	ErrCodeInternal     = "INTERNAL"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Input validation -> 400 Bad Request
	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_SKU":      http.StatusBadRequest,
	"INVALID_NAME":     http.StatusBadRequest,
	"INVALID_PRICE":    http.StatusBadRequest,
	"INVALID_PRODUCT":  http.StatusBadRequest,
	"INVALID_QUANTITY": http.StatusBadRequest,

	// Auth -> 401
	ErrCodeUnauthorized: http.StatusUnauthorized,
	"TOKEN_EXPIRED":     http.StatusUnauthorized,
	"INVALID_TOKEN":     http.StatusUnauthorized,

	// Resources
	ErrCodeNotFound:        http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rules -> 422 Unprocessable Entity
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"EMPTY_SALE":         http.StatusUnprocessableEntity,
	"OUT_OF_STOCK":       http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,

	// The stored data contradicts a committed transaction. This is a
	// server-side fault, not a client error.
	"CONSISTENCY_VIOLATION": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes are treated as internal errors.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
