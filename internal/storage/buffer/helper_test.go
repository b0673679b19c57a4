package buffer

import (
	"fmt"
	"testing"

	"github.com/bietkhonhungvandi212/pagecache/internal/storage/file"
	"github.com/bietkhonhungvandi212/pagecache/internal/storage/page"
	util "github.com/bietkhonhungvandi212/pagecache/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPageSize = 64

func newTestPool(t *testing.T, size int) *BufferPool {
	t.Helper()
	bp, err := NewBufferPool(util.TestingOptions(size, testPageSize))
	require.NoError(t, err, "create BufferPool")
	return bp
}

// newTestStore returns a store holding numPages pages, page i starting with "page i".
// Counters are reset afterwards.
func newTestStore(t *testing.T, id util.FileID, numPages int) *file.MemStore {
	t.Helper()
	store, err := file.NewMemStore(id, testPageSize)
	require.NoError(t, err, "create MemStore")
	for i := 0; i < numPages; i++ {
		pageNo, err := store.AllocatePage()
		require.NoError(t, err)
		require.NoError(t, store.WritePage(pageNo, page.CreateTestPage(testPageSize, []byte(pageContent(id, pageNo)))))
	}
	store.ResetCounts()
	return store
}

func pageContent(id util.FileID, pageNo util.PageID) string {
	return fmt.Sprintf("file %d page %d", id, pageNo)
}

func assertContent(t *testing.T, p *page.Page, id util.FileID, pageNo util.PageID) {
	t.Helper()
	want := pageContent(id, pageNo)
	assert.Equal(t, want, string(p.Data()[:len(want)]), "content of page %d", pageNo)
}

func frameOf(t *testing.T, bp *BufferPool, store file.PageStore, pageNo util.PageID) (util.FrameID, *frameDesc) {
	t.Helper()
	frame, ok := bp.index.Lookup(store.ID(), pageNo)
	require.True(t, ok, "page %d should be indexed", pageNo)
	return frame, &bp.descs[frame]
}

func clock(bp *BufferPool) *ClockReplacer {
	return bp.replacer.(*ClockReplacer)
}

// checkInvariants verifies the descriptor invariants and that the index holds
// exactly the valid frames, one entry per frame.
func checkInvariants(t *testing.T, bp *BufferPool) {
	t.Helper()
	idx := bp.index.(*pageIndex)

	valid := 0
	for i, desc := range bp.descs {
		assert.GreaterOrEqual(t, desc.pinCount, int32(0), "pinCount of frame %d", i)
		if !desc.valid {
			assert.Zero(t, desc.pinCount, "invalid frame %d is pinned", i)
			assert.False(t, desc.dirty, "invalid frame %d is dirty", i)
			assert.False(t, desc.referenced, "invalid frame %d is referenced", i)
			assert.Equal(t, util.InvalidFileID, desc.owner, "invalid frame %d has an owner", i)
			continue
		}
		valid++
		frame, ok := idx.Lookup(desc.owner, desc.pageNo)
		assert.True(t, ok, "valid frame %d is not indexed", i)
		assert.Equal(t, util.FrameID(i), frame, "index entry of frame %d", i)
	}
	assert.Equal(t, valid, idx.Len(), "index size equals valid frames")

	idx.Range(func(key frameKey, frame util.FrameID) bool {
		desc := bp.descs[frame]
		assert.True(t, desc.valid, "index points at invalid frame %d", frame)
		assert.Equal(t, key, desc.key(), "index key of frame %d", frame)
		return true
	})
}
