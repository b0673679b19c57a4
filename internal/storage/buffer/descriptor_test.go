package buffer

import (
	"testing"

	util "github.com/bietkhonhungvandi212/pagecache/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestFrameDesc(t *testing.T) {
	descs := newFrameDescs(2)
	for i, desc := range descs {
		assert.False(t, desc.valid, "frame %d", i)
		assert.Equal(t, util.InvalidFileID, desc.owner, "frame %d", i)
		assert.Equal(t, util.InvalidPageID, desc.pageNo, "frame %d", i)
	}

	d := &descs[0]
	d.dirty = true
	d.pinCount = 3
	d.set(7, 11)
	assert.Equal(t, frameDesc{owner: 7, pageNo: 11, pinCount: 1, referenced: true, valid: true}, *d)
	assert.Equal(t, frameKey{file: 7, pageNo: 11}, d.key())

	d.clear()
	assert.Equal(t, descs[1], *d)
}
