package readable

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// Each code identifies one failure kind of the reading pipeline. The HTTP
// layer maps codes to status codes and page titles.
const (
	EINVALID  = "invalid"  // target URL could not be parsed
	EFETCH    = "fetch"    // request to the target failed
	EDECODE   = "decode"   // response body could not be read as text
	EEXTRACT  = "extract"  // no article content could be extracted
	EINTERNAL = "internal" // defect; should not happen
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the code and message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("readable error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return the error text.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
