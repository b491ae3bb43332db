package errors

import "fmt"

// Error values for metawrap operations
var (
	// ErrFormat is returned when a metadata line has no ':' separator
	ErrFormat = &MetaError{Code: "FORMAT_ERROR", Message: "metadata line missing ':' separator"}

	// ErrTruncatedMetadata is returned when the stream ends before the blank line terminating the metadata block
	ErrTruncatedMetadata = &MetaError{Code: "TRUNCATED_METADATA", Message: "stream ended inside metadata block"}

	// ErrObjectNotFound is returned when a requested object does not exist in the store
	ErrObjectNotFound = &MetaError{Code: "OBJECT_NOT_FOUND", Message: "object not found"}

	// ErrChecksumMismatch is returned when the payload does not match the checksum carried in its metadata
	ErrChecksumMismatch = &MetaError{Code: "CHECKSUM_MISMATCH", Message: "payload checksum mismatch"}

	// ErrPayloadOpen is returned when a payload cannot be opened for reading
	ErrPayloadOpen = &MetaError{Code: "PAYLOAD_OPEN_FAILED", Message: "failed to open payload"}
)

// MetaError represents a structured error in metawrap operations
type MetaError struct {
	Code    string                 // Error code for programmatic handling
	Message string                 // Human-readable error message
	Cause   error                  // Underlying error, if any
	Details map[string]interface{} // Additional context
}

// Error implements the error interface
func (e *MetaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("[%s] %s (details: %v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *MetaError) Unwrap() error {
	return e.Cause
}

// Is matches MetaErrors by code, so errors.Is works across WithCause and
// WithDetail copies
func (e *MetaError) Is(target error) bool {
	t, ok := target.(*MetaError)
	return ok && t.Code == e.Code
}

// WithCause adds a cause to the error
func (e *MetaError) WithCause(cause error) *MetaError {
	return &MetaError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   cause,
		Details: e.Details,
	}
}

// WithDetail adds a detail key-value pair to the error
func (e *MetaError) WithDetail(key string, value interface{}) *MetaError {
	details := make(map[string]interface{})
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &MetaError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Details: details,
	}
}

// WithMessage overrides the error message
func (e *MetaError) WithMessage(message string) *MetaError {
	return &MetaError{
		Code:    e.Code,
		Message: message,
		Cause:   e.Cause,
		Details: e.Details,
	}
}

// IsMetaError checks if an error is a MetaError
func IsMetaError(err error) bool {
	_, ok := err.(*MetaError)
	return ok
}

// GetErrorCode extracts the error code from a MetaError
func GetErrorCode(err error) string {
	if metaErr, ok := err.(*MetaError); ok {
		return metaErr.Code
	}
	return ""
}
