package buffer

import (
	util "github.com/bietkhonhungvandi212/pagecache/internal/utils"
)

// frameDesc is the metadata of one frame.
//
// When valid is false the frame holds nothing: pinCount is 0 and dirty and
// referenced are false. owner and pageNo are reset to the invalid ids too,
// so an invalid frame still naming a file means the bookkeeping went wrong.
type frameDesc struct {
	owner      util.FileID
	pageNo     util.PageID
	pinCount   int32
	dirty      bool
	referenced bool // clock bit
	valid      bool
}

func newFrameDescs(size int) []frameDesc {
	descs := make([]frameDesc, size)
	for i := range descs {
		descs[i].clear()
	}
	return descs
}

// set loads a freshly read or allocated page: pinned once, clean, referenced
func (d *frameDesc) set(owner util.FileID, pageNo util.PageID) {
	d.owner = owner
	d.pageNo = pageNo
	d.pinCount = 1
	d.dirty = false
	d.referenced = true
	d.valid = true
}

// clear resets the frame to the all-invalid state
func (d *frameDesc) clear() {
	*d = frameDesc{
		owner:  util.InvalidFileID,
		pageNo: util.InvalidPageID,
	}
}

func (d *frameDesc) key() frameKey {
	return frameKey{file: d.owner, pageNo: d.pageNo}
}
