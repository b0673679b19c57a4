package util

import (
	"fmt"

	"github.com/pkg/errors"
)

// PageID represents a page number within one file
type PageID uint64

// FileID identifies the file a cached page belongs to
type FileID uint32

// FrameID is the index of a frame in the buffer pool
type FrameID int

const (
	// PageSize represents the standard page size (4KB)
	PageSize = 4096

	// InvalidFileID marks a frame that has no owner
	InvalidFileID FileID = 0
	// InvalidPageID marks a frame that holds no page
	InvalidPageID PageID = ^PageID(0)
	// InvalidFrameID is returned together with an error when no frame is available
	InvalidFrameID FrameID = -1
)

// ErrorType represents different types of buffer manager errors
type ErrorType int

const (
	ErrTypeNotFound ErrorType = iota
	ErrTypeResourceExhausted
	ErrTypePreconditionViolation
	ErrTypeResourceBusy
	ErrTypeInconsistent
	ErrTypeStoreFailure
)

var errorTypeNames = [...]string{
	ErrTypeNotFound:              "not found",
	ErrTypeResourceExhausted:     "resource exhausted",
	ErrTypePreconditionViolation: "precondition violation",
	ErrTypeResourceBusy:          "resource busy",
	ErrTypeInconsistent:          "inconsistent",
	ErrTypeStoreFailure:          "store failure",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return fmt.Sprintf("ErrorType(%d)", int(t))
	}
	return errorTypeNames[t]
}

// DatabaseError represents a buffer-manager-specific error
type DatabaseError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *DatabaseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pagecache error [%s]: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("pagecache error [%s]: %s", e.Type, e.Message)
}

// Unwrap exposes the cause so errors.Is can reach store errors
func (e *DatabaseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DatabaseError of the same type.
// This lets callers compare against the exported sentinels.
func (e *DatabaseError) Is(target error) bool {
	t, ok := target.(*DatabaseError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// With attaches a key/value pair to the error context
func (e *DatabaseError) With(key string, value interface{}) *DatabaseError {
	e.Context[key] = value
	return e
}

// NewDatabaseError creates a new database error
func NewDatabaseError(errType ErrorType, message string, cause error) *DatabaseError {
	return &DatabaseError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// TypeOf returns the type of the first DatabaseError in err's chain
func TypeOf(err error) (ErrorType, bool) {
	var de *DatabaseError
	if errors.As(err, &de) {
		return de.Type, true
	}
	return 0, false
}
