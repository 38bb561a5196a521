package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrEnvironment  ErrorCode = "ENVIRONMENT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Path errors
	ErrInvalidPath ErrorCode = "INVALID_PATH"
	ErrOutsideHome ErrorCode = "OUTSIDE_HOME"
	ErrNotTracked  ErrorCode = "NOT_TRACKED"

	// Index and history errors
	ErrIndexWrite ErrorCode = "INDEX_WRITE"
	ErrCommit     ErrorCode = "COMMIT"

	// Remote errors
	ErrAuth    ErrorCode = "AUTH"
	ErrNetwork ErrorCode = "NETWORK"

	// Repository lifecycle errors
	ErrRepositoryState  ErrorCode = "REPOSITORY_STATE"
	ErrRepositoryCreate ErrorCode = "REPOSITORY_CREATE"
)

// Process exit codes, following sysexits(3).
var exitCodes = map[ErrorCode]int{
	ErrInvalidInput:     64,
	ErrOutsideHome:      65,
	ErrInvalidPath:      66,
	ErrNotTracked:       66,
	ErrNetwork:          69,
	ErrCommit:           70,
	ErrRepositoryCreate: 73,
	ErrIndexWrite:       74,
	ErrRepositoryState:  74,
	ErrAuth:             77,
	ErrConfigLoad:       78,
	ErrConfigParse:      78,
	ErrEnvironment:      78,
}

// DetailVCSCategory is the detail key holding the category of an
// underlying version control failure.
const DetailVCSCategory = "vcs_category"

// DottlerError represents a structured error with code, hint and details
type DottlerError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DottlerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DottlerError) Unwrap() error {
	return e.Wrapped
}

// Is matches any DottlerError carrying the same code
func (e *DottlerError) Is(target error) bool {
	var targetErr *DottlerError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DottlerError with the given code and message
func New(code ErrorCode, message string) *DottlerError {
	return &DottlerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DottlerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DottlerError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *DottlerError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DottlerError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *DottlerError) WithDetail(key string, value interface{}) *DottlerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithHint sets the remediation hint shown to the user
func (e *DottlerError) WithHint(hint string) *DottlerError {
	e.Hint = hint
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dErr *DottlerError
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DottlerError
func GetErrorCode(err error) ErrorCode {
	var dErr *DottlerError
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrUnknown
}

// AsDottlerError returns the first DottlerError in err's chain.
func AsDottlerError(err error) (*DottlerError, bool) {
	var dErr *DottlerError
	if errors.As(err, &dErr) {
		return dErr, true
	}
	return nil, false
}

// GetErrorDetails returns the details from an error, or nil if not a DottlerError
func GetErrorDetails(err error) map[string]interface{} {
	var dErr *DottlerError
	if errors.As(err, &dErr) {
		return dErr.Details
	}
	return nil
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := exitCodes[GetErrorCode(err)]; ok {
		return code
	}
	return 1
}

// Format renders an error for the user: message, cause, details and hint.
// It is meant to be called once, where the error leaves the program.
func Format(err error) string {
	if err == nil {
		return ""
	}
	var dErr *DottlerError
	if !errors.As(err, &dErr) {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString(dErr.Message)
	if dErr.Wrapped != nil {
		fmt.Fprintf(&b, "\n  cause: %v", dErr.Wrapped)
	}

	keys := make([]string, 0, len(dErr.Details))
	for k := range dErr.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n  %s: %v", k, dErr.Details[k])
	}

	if dErr.Hint != "" {
		fmt.Fprintf(&b, "\n  hint: %s", dErr.Hint)
	}
	return b.String()
}
