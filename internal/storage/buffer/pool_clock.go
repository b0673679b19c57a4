package buffer

import (
	"github.com/pkg/errors"

	"github.com/bietkhonhungvandi212/pagecache/internal/storage/file"
	util "github.com/bietkhonhungvandi212/pagecache/internal/utils"
)

/*
allocFrame returns a free frame for a page about to be loaded.

The replacer picks the victim. A valid victim is written back if dirty,
unindexed and reset. If the write-back fails the victim keeps its page,
its index entry and its dirty flag.
*/
func (bp *BufferPool) allocFrame() (util.FrameID, error) {
	frame, err := bp.replacer.RequestFree(bp.descs)
	if err != nil {
		if errors.Is(err, util.ErrNoFreeFrame) {
			return util.InvalidFrameID, exhausted(bp.Size())
		}
		return util.InvalidFrameID, err
	}

	desc := &bp.descs[frame]
	if !desc.valid {
		return frame, nil
	}

	if desc.dirty {
		store, ok := bp.stores[desc.owner]
		if !ok {
			return util.InvalidFrameID, bp.inconsistent(frame, nil, "no store for file %d", desc.owner)
		}
		if err := bp.writeBack(frame, store); err != nil {
			return util.InvalidFrameID, errors.Wrapf(err, "evict frame %d", frame)
		}
	}

	if err := bp.index.Remove(desc.owner, desc.pageNo); err != nil {
		return util.InvalidFrameID, bp.inconsistent(frame, err, "unindex page %d of file %d", desc.pageNo, desc.owner)
	}
	bp.log.Debug("evict", "frame", int(frame), "file", desc.owner, "page", desc.pageNo)
	bp.stats.Evictions++
	desc.clear()

	return frame, nil
}

// writeBack writes a dirty frame to store and marks it clean
func (bp *BufferPool) writeBack(frame util.FrameID, store file.PageStore) error {
	desc := &bp.descs[frame]
	if err := store.WritePage(desc.pageNo, bp.frames[frame]); err != nil {
		return storeFailure(err, "write page %d of file %d", desc.pageNo, desc.owner)
	}
	bp.stats.DiskWrites++
	desc.dirty = false
	bp.log.Debug("write back", "frame", int(frame), "file", desc.owner, "page", desc.pageNo)
	return nil
}
