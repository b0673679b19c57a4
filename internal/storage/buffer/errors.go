package buffer

import (
	"fmt"

	util "github.com/bietkhonhungvandi212/pagecache/internal/utils"
)

func notFound(file util.FileID, pageNo util.PageID) error {
	return util.NewDatabaseError(util.ErrTypeNotFound,
		fmt.Sprintf("page %d of file %d is not in buffer pool", pageNo, file), nil).
		With("file", file).With("page", pageNo)
}

func storeFailure(cause error, format string, args ...interface{}) error {
	return util.NewDatabaseError(util.ErrTypeStoreFailure, fmt.Sprintf(format, args...), cause)
}

func exhausted(size int) error {
	return util.NewDatabaseError(util.ErrTypeResourceExhausted,
		fmt.Sprintf("all %d frames are pinned", size), util.ErrNoFreeFrame)
}

// inconsistent reports a bookkeeping defect. It is always logged because the
// caller cannot recover from it.
func (bp *BufferPool) inconsistent(frame util.FrameID, cause error, format string, args ...interface{}) error {
	err := util.NewDatabaseError(util.ErrTypeInconsistent, fmt.Sprintf(format, args...), cause).
		With("frame", frame)
	bp.log.Error("buffer pool inconsistency", "frame", int(frame), "err", err)
	return err
}
