package page

import (
	"bytes"

	util "github.com/bietkhonhungvandi212/pagecache/internal/utils"
)

// Page is block that read/write from disk.
// The buffer pool never interprets its bytes.
type Page struct {
	data []byte
}

// New allocates a zeroed page of the given size
func New(size int) (*Page, error) {
	if size <= 0 {
		return nil, util.ErrInvalidPageSize
	}
	return &Page{data: make([]byte, size)}, nil
}

// Wrap makes a page backed by buf without copying it
func Wrap(buf []byte) *Page {
	return &Page{data: buf}
}

// Data returns the page content. Writes go straight into the page.
func (p *Page) Data() []byte {
	return p.data
}

// Size returns the page size in bytes
func (p *Page) Size() int {
	return len(p.data)
}

// Zero clears the page content
func (p *Page) Zero() {
	clear(p.data)
}

// CopyFrom overwrites the page with src, which must have the same size
func (p *Page) CopyFrom(src []byte) error {
	if len(src) != len(p.data) {
		return util.ErrPageSizeMismatch
	}
	copy(p.data, src)
	return nil
}

// Equal reports whether both pages hold the same bytes
func (p *Page) Equal(other *Page) bool {
	return bytes.Equal(p.data, other.data)
}
