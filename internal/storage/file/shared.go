package file

import (
	"fmt"

	"github.com/bietkhonhungvandi212/pagecache/internal/storage/page"
	util "github.com/bietkhonhungvandi212/pagecache/internal/utils"
)

// PageStore is persistent paged storage for one file.
// Page numbers are dense; disposed numbers are recycled by AllocatePage.
type PageStore interface {
	// ID identifies the file. It must be unique among the stores used with one buffer pool.
	ID() util.FileID
	ReadPage(pageNo util.PageID, dst *page.Page) error
	WritePage(pageNo util.PageID, src *page.Page) error
	AllocatePage() (util.PageID, error)
	DisposePage(pageNo util.PageID) error
}

// pageTable tracks which page numbers of a store are live.
// Shared by FileManager and MemStore; callers hold their own lock.
type pageTable struct {
	numPages util.PageID
	free     []util.PageID // disposed pages, reused LIFO
	disposed map[util.PageID]struct{}
}

func newPageTable(numPages util.PageID) pageTable {
	return pageTable{
		numPages: numPages,
		disposed: make(map[util.PageID]struct{}),
	}
}

// check fails unless pageNo is allocated and not disposed
func (pt *pageTable) check(pageNo util.PageID) error {
	if pageNo >= pt.numPages {
		return fmt.Errorf("page %d of %d: %w", pageNo, pt.numPages, util.ErrPageOutOfBounds)
	}
	if _, ok := pt.disposed[pageNo]; ok {
		return fmt.Errorf("page %d: %w", pageNo, util.ErrPageDisposed)
	}
	return nil
}

// allocate pops a recycled page number, or reports that the store has to grow
func (pt *pageTable) allocate() (pageNo util.PageID, recycled bool) {
	if n := len(pt.free); n > 0 {
		pageNo = pt.free[n-1]
		pt.free = pt.free[:n-1]
		delete(pt.disposed, pageNo)
		return pageNo, true
	}
	pageNo = pt.numPages
	pt.numPages++
	return pageNo, false
}

// undoGrow rolls back an allocate that could not extend the store
func (pt *pageTable) undoGrow() {
	pt.numPages--
}

func (pt *pageTable) dispose(pageNo util.PageID) error {
	if err := pt.check(pageNo); err != nil {
		return err
	}
	pt.disposed[pageNo] = struct{}{}
	pt.free = append(pt.free, pageNo)
	return nil
}

func checkPageSize(p *page.Page, pageSize int) error {
	if p.Size() != pageSize {
		return fmt.Errorf("page of %d bytes, store uses %d: %w", p.Size(), pageSize, util.ErrPageSizeMismatch)
	}
	return nil
}
