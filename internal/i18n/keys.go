// Package i18n provides internationalization support for the cargo service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyServiceUnavailable indicates the store is unreachable.
	ErrKeyServiceUnavailable = "error.service_unavailable"
	// ErrKeyFileRequired indicates a missing multipart file.
	ErrKeyFileRequired = "error.file_required"
	// ErrKeyUnsupportedFormat indicates a file that is neither CSV nor XLSX.
	ErrKeyUnsupportedFormat = "error.unsupported_format"
	// ErrKeyInvalidDate indicates a date that is not YYYY-MM-DD.
	ErrKeyInvalidDate = "error.invalid_date"
)
