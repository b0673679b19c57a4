package buffer

import (
	"cmp"
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	"github.com/bietkhonhungvandi212/pagecache/internal/storage/file"
	"github.com/bietkhonhungvandi212/pagecache/internal/storage/page"
	util "github.com/bietkhonhungvandi212/pagecache/internal/utils"
)

/*
BufferPool caches fixed-size pages of any number of PageStores in a fixed
number of frames.

Every public method holds mu for its whole run, so operations never
interleave. Callers get a *page.Page pointing into the frame table; it stays
valid while the caller holds a pin. Each PinPage and AllocatePage must be
matched by one UnpinPage.

Frames are replaced with the clock (see ClockReplacer). A dirty frame is
written back to its owning store before the frame is reused, on FlushFile
and on Close.
*/
type BufferPool struct {
	frames   []*page.Page // views into one arena, indexed by frame
	descs    []frameDesc
	index    PageIndex
	replacer Replacer
	stores   map[util.FileID]file.PageStore
	pageSize int
	stats    Stats
	closed   bool
	log      *slog.Logger

	mu sync.Mutex
}

// NewBufferPool builds a pool of opts.BufferPoolSize frames of opts.PageSize bytes
func NewBufferPool(opts util.Options) (*BufferPool, error) {
	if opts.BufferPoolSize <= 0 {
		return nil, util.ErrInvalidPoolSize
	}
	return NewBufferPoolWithIndex(opts, NewPageIndex(opts.BufferPoolSize))
}

// NewBufferPoolWithIndex is NewBufferPool with a caller supplied, empty PageIndex
func NewBufferPoolWithIndex(opts util.Options, index PageIndex) (*BufferPool, error) {
	size := opts.BufferPoolSize
	if size <= 0 {
		return nil, util.ErrInvalidPoolSize
	}
	if opts.PageSize <= 0 {
		return nil, util.ErrInvalidPageSize
	}

	arena := make([]byte, size*opts.PageSize)
	frames := make([]*page.Page, size)
	for i := range size {
		lo, hi := i*opts.PageSize, (i+1)*opts.PageSize
		frames[i] = page.Wrap(arena[lo:hi:hi])
	}

	return &BufferPool{
		frames:   frames,
		descs:    newFrameDescs(size),
		index:    index,
		replacer: NewClockReplacer(size),
		stores:   make(map[util.FileID]file.PageStore),
		pageSize: opts.PageSize,
		log:      opts.NewLogger().With("component", "bufferpool"),
	}, nil
}

// Size returns the number of frames
func (bp *BufferPool) Size() int {
	return len(bp.descs)
}

func (bp *BufferPool) PageSize() int {
	return bp.pageSize
}

/*
PinPage returns the cached page pageNo of store, reading it on a miss.
The page is pinned once more; release it with UnpinPage.

On a miss a frame is obtained with the clock. If the read fails the frame
stays free and nothing is indexed.
*/
func (bp *BufferPool) PinPage(store file.PageStore, pageNo util.PageID) (*page.Page, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	fileID, err := bp.register(store)
	if err != nil {
		return nil, err
	}
	bp.stats.Accesses++

	if frame, ok := bp.index.Lookup(fileID, pageNo); ok {
		desc := &bp.descs[frame]
		desc.pinCount++
		desc.referenced = true
		bp.stats.Hits++
		return bp.frames[frame], nil
	}

	frame, err := bp.allocFrame()
	if err != nil {
		return nil, errors.Wrapf(err, "pin page %d of file %d", pageNo, fileID)
	}
	if err := store.ReadPage(pageNo, bp.frames[frame]); err != nil {
		return nil, storeFailure(err, "read page %d of file %d", pageNo, fileID)
	}
	bp.stats.DiskReads++

	if err := bp.index.Insert(fileID, pageNo, frame); err != nil {
		return nil, bp.inconsistent(frame, err, "index page %d of file %d", pageNo, fileID)
	}
	bp.descs[frame].set(fileID, pageNo)

	return bp.frames[frame], nil
}

// UnpinPage drops one pin. markDirty sets the dirty flag; it is never cleared here.
func (bp *BufferPool) UnpinPage(store file.PageStore, pageNo util.PageID, markDirty bool) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	fileID, err := bp.register(store)
	if err != nil {
		return err
	}

	frame, ok := bp.index.Lookup(fileID, pageNo)
	if !ok {
		return notFound(fileID, pageNo)
	}

	desc := &bp.descs[frame]
	if desc.pinCount <= 0 {
		return util.NewDatabaseError(util.ErrTypePreconditionViolation, "unpin without pin", util.ErrPageNotPinned).
			With("file", fileID).With("page", pageNo)
	}
	desc.pinCount--
	if markDirty {
		desc.dirty = true
	}
	return nil
}

/*
AllocatePage asks store for a new page and caches it zeroed and pinned once.

If no frame can be obtained the new page number is disposed again, so a
failed call does not leak pages in the store.
*/
func (bp *BufferPool) AllocatePage(store file.PageStore) (util.PageID, *page.Page, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	fileID, err := bp.register(store)
	if err != nil {
		return util.InvalidPageID, nil, err
	}

	pageNo, err := store.AllocatePage()
	if err != nil {
		return util.InvalidPageID, nil, storeFailure(err, "allocate page in file %d", fileID)
	}
	bp.stats.Accesses++

	frame, err := bp.allocFrame()
	if err != nil {
		bp.giveBack(store, pageNo)
		return util.InvalidPageID, nil, errors.Wrapf(err, "allocate page %d of file %d", pageNo, fileID)
	}
	if err := bp.index.Insert(fileID, pageNo, frame); err != nil {
		bp.giveBack(store, pageNo)
		return util.InvalidPageID, nil, bp.inconsistent(frame, err, "index new page %d of file %d", pageNo, fileID)
	}
	bp.descs[frame].set(fileID, pageNo)
	bp.frames[frame].Zero()

	return pageNo, bp.frames[frame], nil
}

/*
DisposePage drops the page from the pool without writing it back, then
disposes it in the store and returns the store's result.

A pinned page is dropped as well; holders of its *page.Page must not use it
afterwards. Flush, in contrast, refuses pinned pages.
*/
func (bp *BufferPool) DisposePage(store file.PageStore, pageNo util.PageID) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	fileID, err := bp.register(store)
	if err != nil {
		return err
	}

	frame, cached := bp.index.Lookup(fileID, pageNo)
	// not indexed is the normal case for an uncached page
	if err := bp.index.Remove(fileID, pageNo); err != nil && !errors.Is(err, util.ErrIndexNotFound) {
		return errors.Wrapf(err, "unindex page %d of file %d", pageNo, fileID)
	}
	if cached {
		desc := &bp.descs[frame]
		if desc.pinCount > 0 {
			bp.log.Warn("dispose pinned page", "file", fileID, "page", pageNo, "pins", desc.pinCount)
		}
		desc.clear()
	}

	if err := store.DisposePage(pageNo); err != nil {
		return storeFailure(err, "dispose page %d of file %d", pageNo, fileID)
	}
	return nil
}

/*
FlushFile writes back the dirty pages of store and drops all of its pages
from the pool.

It stops at the first pinned page with a ResourceBusy error; pages flushed
before that stay flushed and dropped.
*/
func (bp *BufferPool) FlushFile(store file.PageStore) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	fileID, err := bp.register(store)
	if err != nil {
		return err
	}

	for i := range bp.descs {
		frame := util.FrameID(i)
		desc := &bp.descs[i]
		if desc.owner != fileID {
			continue
		}
		if !desc.valid {
			return bp.inconsistent(frame, nil, "invalid frame still owned by file %d", fileID)
		}

		if desc.pinCount > 0 {
			return util.NewDatabaseError(util.ErrTypeResourceBusy,
				"flush file with pinned page", util.ErrPagePinned).
				With("file", fileID).With("page", desc.pageNo).With("frame", frame)
		}
		if desc.dirty {
			if err := bp.writeBack(frame, store); err != nil {
				return errors.Wrapf(err, "flush file %d", fileID)
			}
		}
		if err := bp.index.Remove(fileID, desc.pageNo); err != nil {
			return bp.inconsistent(frame, err, "unindex page %d of file %d", desc.pageNo, fileID)
		}
		desc.clear()
	}
	return nil
}

/*
Close writes back every dirty frame and releases the frame table.
Write-back continues past failures; the first one is returned.
*/
func (bp *BufferPool) Close() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.closed {
		return nil
	}

	var first error
	for i := range bp.descs {
		desc := &bp.descs[i]
		if !desc.valid || !desc.dirty {
			continue
		}
		store, ok := bp.stores[desc.owner]
		if !ok {
			err := bp.inconsistent(util.FrameID(i), nil, "no store for file %d", desc.owner)
			first = cmp.Or(first, err)
			continue
		}
		if err := bp.writeBack(util.FrameID(i), store); err != nil {
			bp.log.Error("write back on close", "frame", i, "file", desc.owner, "page", desc.pageNo, "err", err)
			first = cmp.Or(first, err)
		}
	}

	bp.closed = true
	bp.frames = nil
	return first
}

/*
register checks the pool is open and store has a usable id, then remembers
store so frames it owns can be written back later.

Another store may take over an id only once no frame is cached for it;
until then the cached pages belong to the store already registered.
*/
func (bp *BufferPool) register(store file.PageStore) (util.FileID, error) {
	if bp.closed {
		return util.InvalidFileID, util.ErrPoolClosed
	}
	fileID := store.ID()
	if fileID == util.InvalidFileID {
		return fileID, util.NewDatabaseError(util.ErrTypePreconditionViolation, "reserved file id", util.ErrInvalidFileID)
	}
	if known, ok := bp.stores[fileID]; ok && known != store && bp.caches(fileID) {
		return fileID, util.NewDatabaseError(util.ErrTypePreconditionViolation,
			"file id is taken by another store", util.ErrDuplicateFileID).With("file", fileID)
	}
	bp.stores[fileID] = store
	return fileID, nil
}

// caches reports whether any valid frame holds a page of fileID
func (bp *BufferPool) caches(fileID util.FileID) bool {
	for i := range bp.descs {
		if bp.descs[i].valid && bp.descs[i].owner == fileID {
			return true
		}
	}
	return false
}

// giveBack returns a page number whose caching failed to the store
func (bp *BufferPool) giveBack(store file.PageStore, pageNo util.PageID) {
	if err := store.DisposePage(pageNo); err != nil {
		bp.log.Warn("return unused page", "file", store.ID(), "page", pageNo, "err", err)
	}
}
