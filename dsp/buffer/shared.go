package buffer

import (
	"errors"
	"sync/atomic"
	"unsafe"
)

// CacheLine is the alignment of the first cell of every allocation.
const CacheLine = 64

// MaxCells bounds a single allocation.
const MaxCells = 1 << 28

const cellSize = 4

// ErrInvalidSize is returned by Allocate for negative or oversized requests.
var ErrInvalidSize = errors.New("buffer: invalid size")

// Shared is a fixed-size region of 32-bit cells viewable as float32 or int32.
//
// The zero value is an empty region ready for Allocate.
type Shared struct {
	backing []uint32
	cells   []uint32
}

// NewShared returns a Shared region holding n zeroed cells.
func NewShared(n int) (*Shared, error) {
	s := &Shared{}
	if err := s.Allocate(n); err != nil {
		return nil, err
	}
	return s, nil
}

// Allocate resizes the region to n cells. It is a no-op when n equals the
// current size. Otherwise the old storage is dropped and a new zeroed,
// cache-aligned block is installed. On error the region is unchanged.
func (s *Shared) Allocate(n int) error {
	if n < 0 || n > MaxCells {
		return ErrInvalidSize
	}
	if n == len(s.cells) && s.cells != nil {
		return nil
	}
	if n == 0 {
		s.Release()
		return nil
	}

	pad := CacheLine / cellSize
	backing := make([]uint32, n+pad)
	addr := uintptr(unsafe.Pointer(&backing[0]))
	skip := 0
	if rem := addr % CacheLine; rem != 0 {
		skip = int((CacheLine - rem) / cellSize)
	}

	s.backing = backing
	s.cells = backing[skip : skip+n : skip+n]
	return nil
}

// Release drops the backing storage. Size becomes 0 and previously returned
// views must not be used afterwards.
func (s *Shared) Release() {
	s.backing = nil
	s.cells = nil
}

// Size returns the number of cells.
func (s *Shared) Size() int {
	return len(s.cells)
}

// Clear zeroes every cell.
func (s *Shared) Clear() {
	clear(s.cells)
}

// AsFloat returns the cells from off to the end as float32 values.
// It returns nil when off is outside [0, Size()).
func (s *Shared) AsFloat(off int) []float32 {
	if off < 0 || off >= len(s.cells) {
		return nil
	}
	v := s.cells[off:]
	return unsafe.Slice((*float32)(unsafe.Pointer(&v[0])), len(v))
}

// AsInt returns the cells from off to the end as int32 values.
// It returns nil when off is outside [0, Size()).
func (s *Shared) AsInt(off int) []int32 {
	if off < 0 || off >= len(s.cells) {
		return nil
	}
	v := s.cells[off:]
	return unsafe.Slice((*int32)(unsafe.Pointer(&v[0])), len(v))
}

// AtomicSetInt stores v at cell off with release semantics. Writes made by
// the caller before the store are visible to a reader whose AtomicGetInt
// observes v. It reports false and writes nothing when off is out of range.
func (s *Shared) AtomicSetInt(off int, v int32) bool {
	if off < 0 || off >= len(s.cells) {
		return false
	}
	atomic.StoreInt32((*int32)(unsafe.Pointer(&s.cells[off])), v)
	return true
}

// AtomicGetInt loads cell off with acquire semantics.
// The second result is false when off is out of range.
func (s *Shared) AtomicGetInt(off int) (int32, bool) {
	if off < 0 || off >= len(s.cells) {
		return 0, false
	}
	return atomic.LoadInt32((*int32)(unsafe.Pointer(&s.cells[off]))), true
}
