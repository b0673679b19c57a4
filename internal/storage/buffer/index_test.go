package buffer

import (
	"testing"

	util "github.com/bietkhonhungvandi212/pagecache/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageIndex(t *testing.T) {
	idx := NewPageIndex(4)

	_, ok := idx.Lookup(1, 0)
	assert.False(t, ok, "empty index")

	require.NoError(t, idx.Insert(1, 0, 2))
	require.NoError(t, idx.Insert(2, 0, 3), "same page number in another file")

	frame, ok := idx.Lookup(1, 0)
	assert.True(t, ok)
	assert.Equal(t, util.FrameID(2), frame)
	frame, ok = idx.Lookup(2, 0)
	assert.True(t, ok)
	assert.Equal(t, util.FrameID(3), frame)

	t.Run("Duplicate", func(t *testing.T) {
		assert.ErrorIs(t, idx.Insert(1, 0, 1), util.ErrIndexDuplicate)
		frame, _ := idx.Lookup(1, 0)
		assert.Equal(t, util.FrameID(2), frame, "first entry kept")
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, idx.Remove(1, 0))
		_, ok := idx.Lookup(1, 0)
		assert.False(t, ok)
		assert.ErrorIs(t, idx.Remove(1, 0), util.ErrIndexNotFound)
		assert.Equal(t, 1, idx.(*pageIndex).Len())
	})

	t.Run("Range", func(t *testing.T) {
		seen := map[frameKey]util.FrameID{}
		idx.(*pageIndex).Range(func(key frameKey, frame util.FrameID) bool {
			seen[key] = frame
			return true
		})
		assert.Equal(t, map[frameKey]util.FrameID{{file: 2, pageNo: 0}: 3}, seen)
	})
}
