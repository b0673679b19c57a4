package util

import "errors"

// Sentinels of the buffer pool error taxonomy. Match with errors.Is; any
// DatabaseError of the same type compares equal.
var (
	ErrPageNotFound      = NewDatabaseError(ErrTypeNotFound, "page not in buffer pool", nil)
	ErrNoFreeFrame       = NewDatabaseError(ErrTypeResourceExhausted, "no evictable frame", nil)
	ErrPageNotPinned     = NewDatabaseError(ErrTypePreconditionViolation, "page is not pinned", nil)
	ErrPoolClosed        = NewDatabaseError(ErrTypePreconditionViolation, "buffer pool is closed", nil)
	ErrPagePinned        = NewDatabaseError(ErrTypeResourceBusy, "page is pinned", nil)
	ErrInconsistentFrame = NewDatabaseError(ErrTypeInconsistent, "inconsistent frame state", nil)
	ErrStoreFailure      = NewDatabaseError(ErrTypeStoreFailure, "page store failure", nil)
)

// Plain errors for construction, configuration and the page stores
var (
	ErrInvalidPageSize     = errors.New("invalid page size")
	ErrInvalidPoolSize     = errors.New("invalid pool size")
	ErrInvalidInitialPages = errors.New("initial pages must not be negative")
	ErrInvalidFileID       = errors.New("invalid file id")
	ErrDuplicateFileID     = errors.New("file id used by another store")
	ErrPageOutOfBounds     = errors.New("page out of bounds")
	ErrPageDisposed        = errors.New("page is disposed")
	ErrPageSizeMismatch    = errors.New("page size does not match store")
	ErrFileManagerNil      = errors.New("file manager is nil")
	ErrIndexDuplicate      = errors.New("page already indexed")
	ErrIndexNotFound       = errors.New("page not indexed")
)
