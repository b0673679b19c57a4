package file

import (
	"sync"

	"github.com/bietkhonhungvandi212/pagecache/internal/storage/page"
	util "github.com/bietkhonhungvandi212/pagecache/internal/utils"
)

// Op names a PageStore operation for counters and fault injection
type Op int

const (
	OpRead Op = iota
	OpWrite
	OpAllocate
	OpDispose
	numOps
)

// FaultFunc decides whether op on pageNo fails. For OpAllocate pageNo is util.InvalidPageID.
type FaultFunc func(op Op, pageNo util.PageID) error

// MemStore keeps pages in memory. It counts every operation that reaches it,
// failed ones included, and can fail operations on demand.
type MemStore struct {
	id       util.FileID
	pageSize int
	data     [][]byte
	pages    pageTable
	counts   [numOps]int
	fault    FaultFunc

	mu sync.Mutex
}

var _ PageStore = (*MemStore)(nil)

func NewMemStore(id util.FileID, pageSize int) (*MemStore, error) {
	if id == util.InvalidFileID {
		return nil, util.ErrInvalidFileID
	}
	if pageSize <= 0 {
		return nil, util.ErrInvalidPageSize
	}
	return &MemStore{
		id:       id,
		pageSize: pageSize,
		pages:    newPageTable(0),
	}, nil
}

func (m *MemStore) ID() util.FileID {
	return m.id
}

// SetFault installs f; nil removes it
func (m *MemStore) SetFault(f FaultFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fault = f
}

// Count returns how many times op was invoked
func (m *MemStore) Count(op Op) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[op]
}

func (m *MemStore) ResetCounts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts = [numOps]int{}
}

// Contents returns a copy of a stored page without counting a read
func (m *MemStore) Contents(pageNo util.PageID) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.pages.check(pageNo); err != nil {
		return nil, err
	}
	return append([]byte(nil), m.data[pageNo]...), nil
}

func (m *MemStore) ReadPage(pageNo util.PageID, dst *page.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpRead, pageNo); err != nil {
		return err
	}
	if err := checkPageSize(dst, m.pageSize); err != nil {
		return err
	}
	if err := m.pages.check(pageNo); err != nil {
		return err
	}
	copy(dst.Data(), m.data[pageNo])
	return nil
}

func (m *MemStore) WritePage(pageNo util.PageID, src *page.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpWrite, pageNo); err != nil {
		return err
	}
	if err := checkPageSize(src, m.pageSize); err != nil {
		return err
	}
	if err := m.pages.check(pageNo); err != nil {
		return err
	}
	copy(m.data[pageNo], src.Data())
	return nil
}

func (m *MemStore) AllocatePage() (util.PageID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpAllocate, util.InvalidPageID); err != nil {
		return util.InvalidPageID, err
	}
	pageNo, recycled := m.pages.allocate()
	if recycled {
		clear(m.data[pageNo])
	} else {
		m.data = append(m.data, make([]byte, m.pageSize))
	}
	return pageNo, nil
}

func (m *MemStore) DisposePage(pageNo util.PageID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(OpDispose, pageNo); err != nil {
		return err
	}
	return m.pages.dispose(pageNo)
}

// begin counts op and applies the fault hook; the caller holds mu
func (m *MemStore) begin(op Op, pageNo util.PageID) error {
	m.counts[op]++
	if m.fault != nil {
		return m.fault(op, pageNo)
	}
	return nil
}
