package file

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/bietkhonhungvandi212/pagecache/internal/storage/page"
	util "github.com/bietkhonhungvandi212/pagecache/internal/utils"
)

/**
* FileManager stores the pages of one file on disk.
* Page n lives at offset n*pageSize. Disposed page numbers are kept in
* memory and handed out again by AllocatePage.
**/
type FileManager struct {
	File     *os.File
	Size     int64
	id       util.FileID
	pageSize int
	sync     bool
	pages    pageTable

	mu sync.Mutex
}

var _ PageStore = (*FileManager)(nil)

// NewFileManager opens (or creates) path and grows it to opts.InitialPages pages
func NewFileManager(path string, id util.FileID, opts util.Options) (*FileManager, error) {
	if id == util.InvalidFileID {
		return nil, util.ErrInvalidFileID
	}
	if opts.PageSize <= 0 {
		return nil, util.ErrInvalidPageSize
	}
	if opts.InitialPages < 0 {
		return nil, util.ErrInvalidInitialPages
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if stat.Size()%int64(opts.PageSize) != 0 {
		f.Close()
		return nil, fmt.Errorf("file size %d is not a multiple of page size %d: %w", stat.Size(), opts.PageSize, util.ErrInvalidPageSize)
	}

	size := max(stat.Size(), int64(opts.InitialPages)*int64(opts.PageSize))
	if size > stat.Size() {
		if err := f.Truncate(size); err != nil {
			f.Close()
			return nil, fmt.Errorf("truncate to %d: %w", size, err)
		}
	}

	return &FileManager{
		File:     f,
		Size:     size,
		id:       id,
		pageSize: opts.PageSize,
		sync:     opts.SyncWrites,
		pages:    newPageTable(util.PageID(size / int64(opts.PageSize))),
	}, nil
}

func (fm *FileManager) ID() util.FileID {
	return fm.id
}

// NumPages returns the number of page slots in the file, disposed ones included
func (fm *FileManager) NumPages() util.PageID {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return fm.pages.numPages
}

/* READ FILE */
func (fm *FileManager) ReadPage(pageNo util.PageID, dst *page.Page) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	if fm.File == nil {
		return util.ErrFileManagerNil
	}
	if err := checkPageSize(dst, fm.pageSize); err != nil {
		return err
	}
	if err := fm.pages.check(pageNo); err != nil {
		return err
	}

	if _, err := fm.File.ReadAt(dst.Data(), fm.offset(pageNo)); err != nil {
		return fmt.Errorf("[ReadPage] read page %d: %w", pageNo, err)
	}
	return nil
}

/* WRITE FILE */
func (fm *FileManager) WritePage(pageNo util.PageID, src *page.Page) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	if fm.File == nil {
		return util.ErrFileManagerNil
	}
	if err := checkPageSize(src, fm.pageSize); err != nil {
		return err
	}
	if err := fm.pages.check(pageNo); err != nil {
		return err
	}

	return fm.writeAt(pageNo, src.Data())
}

// AllocatePage recycles a disposed page (zeroing it) or appends a zeroed page
func (fm *FileManager) AllocatePage() (util.PageID, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	if fm.File == nil {
		return util.InvalidPageID, util.ErrFileManagerNil
	}

	pageNo, recycled := fm.pages.allocate()
	if recycled {
		if err := fm.writeAt(pageNo, make([]byte, fm.pageSize)); err != nil {
			// keep it disposed so it is not handed out half-written
			fm.pages.disposed[pageNo] = struct{}{}
			fm.pages.free = append(fm.pages.free, pageNo)
			return util.InvalidPageID, fmt.Errorf("[AllocatePage] zero page %d: %w", pageNo, err)
		}
		return pageNo, nil
	}

	newSize := fm.offset(pageNo) + int64(fm.pageSize)
	if err := fm.File.Truncate(newSize); err != nil {
		fm.pages.undoGrow()
		return util.InvalidPageID, fmt.Errorf("[AllocatePage] truncate to %d: %w", newSize, err)
	}
	fm.Size = newSize
	return pageNo, nil
}

// DisposePage marks the page free for reuse. The file does not shrink.
func (fm *FileManager) DisposePage(pageNo util.PageID) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	if fm.File == nil {
		return util.ErrFileManagerNil
	}
	return fm.pages.dispose(pageNo)
}

func (fm *FileManager) offset(pageNo util.PageID) int64 {
	return int64(pageNo) * int64(fm.pageSize)
}

func (fm *FileManager) writeAt(pageNo util.PageID, buf []byte) error {
	if _, err := fm.File.WriteAt(buf, fm.offset(pageNo)); err != nil {
		return fmt.Errorf("write page %d: %w", pageNo, err)
	}
	if fm.sync {
		if err := fm.File.Sync(); err != nil {
			return fmt.Errorf("sync page %d: %w", pageNo, err)
		}
	}
	return nil
}

/**
* CLOSE FUNCTION
**/
func (fm *FileManager) Close() error {
	if fm == nil {
		return nil // Idempotent
	}
	fm.mu.Lock()
	defer fm.mu.Unlock()

	var err error
	if fm.File != nil {
		if e := fm.File.Sync(); e != nil {
			err = errors.Join(err, fmt.Errorf("sync file: %w", e))
		}
		if e := fm.File.Close(); e != nil {
			err = errors.Join(err, fmt.Errorf("close file: %w", e))
		}
		fm.File = nil
	}
	return err
}
