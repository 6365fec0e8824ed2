package alloc

import "sync"

// Allocator hands out file space by appending at the end of the file.
type Allocator struct {
	mu    sync.Mutex
	eof   uint64
	stats Stats
}

// Stats summarizes the allocations made through an Allocator.
type Stats struct {
	Allocations uint64 // number of non-empty allocations
	Bytes       uint64 // total bytes handed out
	Largest     uint64 // size of the largest allocation
}

// New returns an Allocator whose first allocation starts at eof.
func New(eof uint64) *Allocator {
	return &Allocator{eof: eof}
}

// Alloc reserves size bytes and returns their address. A zero-size request
// returns the current end of file without reserving anything.
func (a *Allocator) Alloc(size uint64) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	addr := a.eof
	if size == 0 {
		return addr
	}
	a.eof += size
	a.stats.Allocations++
	a.stats.Bytes += size
	if size > a.stats.Largest {
		a.stats.Largest = size
	}
	return addr
}

// EOFAddr returns the address the next allocation will start at.
func (a *Allocator) EOFAddr() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.eof
}

// Stats returns a snapshot of the allocation statistics.
func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}
