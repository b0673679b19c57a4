package buffer

import (
	"github.com/puzpuzpuz/xsync/v3"

	util "github.com/bietkhonhungvandi212/pagecache/internal/utils"
)

// frameKey is the durable identity of a cached page
type frameKey struct {
	file   util.FileID
	pageNo util.PageID
}

// PageIndex maps (file, page number) to the frame caching that page.
type PageIndex interface {
	// Lookup returns the frame of the page, or ok == false
	Lookup(file util.FileID, pageNo util.PageID) (util.FrameID, bool)
	// Insert fails with util.ErrIndexDuplicate if the page is already indexed
	Insert(file util.FileID, pageNo util.PageID, frame util.FrameID) error
	// Remove fails with util.ErrIndexNotFound if the page is not indexed
	Remove(file util.FileID, pageNo util.PageID) error
}

// pageIndex is the default PageIndex, a concurrent hash map
type pageIndex struct {
	table *xsync.MapOf[frameKey, util.FrameID]
}

var _ PageIndex = (*pageIndex)(nil)

func NewPageIndex(size int) PageIndex {
	return &pageIndex{
		table: xsync.NewMapOf[frameKey, util.FrameID](xsync.WithPresize(size)),
	}
}

func (pi *pageIndex) Lookup(file util.FileID, pageNo util.PageID) (util.FrameID, bool) {
	return pi.table.Load(frameKey{file: file, pageNo: pageNo})
}

func (pi *pageIndex) Insert(file util.FileID, pageNo util.PageID, frame util.FrameID) error {
	if _, loaded := pi.table.LoadOrStore(frameKey{file: file, pageNo: pageNo}, frame); loaded {
		return util.ErrIndexDuplicate
	}
	return nil
}

func (pi *pageIndex) Remove(file util.FileID, pageNo util.PageID) error {
	if _, loaded := pi.table.LoadAndDelete(frameKey{file: file, pageNo: pageNo}); !loaded {
		return util.ErrIndexNotFound
	}
	return nil
}

// Len returns the number of indexed pages
func (pi *pageIndex) Len() int {
	return pi.table.Size()
}

// Range calls f for every entry until f returns false
func (pi *pageIndex) Range(f func(key frameKey, frame util.FrameID) bool) {
	pi.table.Range(f)
}
