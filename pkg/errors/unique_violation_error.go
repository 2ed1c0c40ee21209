package custom_error

import "fmt"

type CustomError interface {
	Error() string
}

type UniqueViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23505")
}

type ForeignKeyViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23503")
}

func (f *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", f.message, f.code)
}

func (f *ForeignKeyViolationError) PublicMessage() string {
	return f.message
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

// PublicMessage is Error without the PostgreSQL code.
func (e *UniqueViolationError) PublicMessage() string {
	return e.message
}

// WrapDBError converts a PostgreSQL error code into one of the typed errors
// understood by StatusCode.
func WrapDBError(message, code string) CustomError {
	switch code {
	case "23505":
		return &UniqueViolationError{
			message: message,
			code:    code,
		}
	case "23503":
		return &ForeignKeyViolationError{
			message: "Referenced resource does not exist: " + message,
			code:    code,
		}
	case "23514":
		return &ValidationError{
			Message: message + " violates a stock or status constraint",
		}
	default:
		return fmt.Errorf("uncategorized error occurred with code %s: %s", code, message)
	}
}
