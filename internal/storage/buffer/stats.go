package buffer

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Stats counts pool activity. It does not affect replacement.
type Stats struct {
	Accesses   uint64 // PinPage and AllocatePage calls that reached the pool
	Hits       uint64 // PinPage calls served without I/O
	DiskReads  uint64 // pages read on a PinPage miss
	DiskWrites uint64 // dirty pages written back
	Evictions  uint64 // valid frames reused for another page
}

// HitRate is Hits over Accesses, 0 when nothing was accessed
func (s Stats) HitRate() float64 {
	if s.Accesses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Accesses)
}

func (bp *BufferPool) Stats() Stats {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.stats
}

// Dump writes one line per frame. Diagnostic only.
func (bp *BufferPool) Dump(w io.Writer) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintln(tw, "frame\tfile\tpage\tpins\tdirty\tref\tvalid")
	for i, desc := range bp.descs {
		if !desc.valid {
			fmt.Fprintf(tw, "%d\t-\t-\t%d\t%t\t%t\t%t\n", i, desc.pinCount, desc.dirty, desc.referenced, desc.valid)
			continue
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%t\t%t\t%t\n",
			i, desc.owner, desc.pageNo, desc.pinCount, desc.dirty, desc.referenced, desc.valid)
	}
	return tw.Flush()
}
