package extraction

import "fmt"

// ErrorCode represents specific extraction error types.
type ErrorCode string

const (
	ErrOCRUnavailable  ErrorCode = "OCR_UNAVAILABLE"
	ErrOCRTimeout      ErrorCode = "OCR_TIMEOUT"
	ErrOCRRateLimited  ErrorCode = "OCR_RATE_LIMITED"
	ErrInvalidDocument ErrorCode = "INVALID_DOCUMENT"
	ErrNoRecordsFound  ErrorCode = "NO_RECORDS_FOUND"
	ErrAllMethodsFail  ErrorCode = "ALL_METHODS_FAILED"
)

// Error is a structured error for extraction failures.
type Error struct {
	Code      ErrorCode
	Message   string
	Method    string // e.g. "vision" or "tesseract"
	Retryable bool
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether this error is retryable.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}
