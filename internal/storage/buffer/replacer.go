package buffer

import (
	util "github.com/bietkhonhungvandi212/pagecache/internal/utils"
)

// Replacer defines the contract for page replacement policies.
type Replacer interface {
	// RequestFree returns an evictable frame index, or util.ErrNoFreeFrame if none.
	// It may update replacement state in descs but leaves the returned frame as is;
	// write-back and reset of the victim belong to the caller.
	RequestFree(descs []frameDesc) (util.FrameID, error)
}

// ClockReplacer is the second-chance clock. A frame is a victim when it is
// unpinned and its reference bit is already clear; passing an unpinned
// referenced frame clears the bit.
type ClockReplacer struct {
	hand    util.FrameID
	size    int
	maxLoop int    // full sweeps before giving up
	probes  uint64 // frames inspected over the replacer lifetime
}

var _ Replacer = (*ClockReplacer)(nil)

// NewClockReplacer starts the hand on the last frame so the first probe is frame 0.
// Two sweeps are enough: the first clears every reference bit it passes,
// so the second meets an unpinned frame with a clear bit if one exists.
func NewClockReplacer(size int) *ClockReplacer {
	if size <= 0 {
		panic(util.ErrInvalidPoolSize)
	}
	return &ClockReplacer{
		hand:    util.FrameID(size - 1),
		size:    size,
		maxLoop: 2,
	}
}

func (c *ClockReplacer) RequestFree(descs []frameDesc) (util.FrameID, error) {
	for range c.size * c.maxLoop {
		victim := c.tick()
		desc := &descs[victim]

		if desc.pinCount > 0 {
			continue
		}
		if desc.referenced {
			desc.referenced = false
			continue
		}
		return victim, nil
	}
	return util.InvalidFrameID, util.ErrNoFreeFrame
}

// Hand returns the frame the clock inspected last
func (c *ClockReplacer) Hand() util.FrameID {
	return c.hand
}

// Probes returns how many frames the clock has inspected so far
func (c *ClockReplacer) Probes() uint64 {
	return c.probes
}

func (c *ClockReplacer) tick() util.FrameID {
	c.hand = (c.hand + 1) % util.FrameID(c.size)
	c.probes++
	return c.hand
}
