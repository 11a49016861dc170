package grid

import "container/heap"

// heapItem is one entry in the priority-flood min-heap: a cell plus the DEM
// elevation it was seeded with, and a monotonically increasing sequence
// number that breaks ties in FIFO (insertion) order as spec.md section 4.A
// and section 9 require for reproducible results on flats.
//
// Adapted from structures/priorityqueue.go's swim/sink PQueue: that
// implementation stored an interface{} value plus int64 priority behind a
// sync.RWMutex for concurrent tool use. The priority-flood engine here runs
// single-threaded (spec.md section 5), so the lock is dropped, the payload
// is a typed Cell instead of interface{}, and container/heap.Interface
// replaces the hand-rolled swim/sink methods.
type heapItem struct {
	cell     Cell
	priority float64
	seq      uint64
}

type cellHeap []heapItem

func (h cellHeap) Len() int { return len(h) }

func (h cellHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h cellHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *cellHeap) Push(x interface{}) {
	*h = append(*h, x.(heapItem))
}

func (h *cellHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// MinHeap is a min-ordered priority queue of grid cells, ordered ascending
// by priority with a stable FIFO tie-break.
type MinHeap struct {
	items cellHeap
	seq   uint64
}

// NewMinHeap returns an empty heap pre-sized to hold capacity items without
// reallocating, mirroring the teacher's practice of pre-sizing the priority
// queue to rows*columns.
func NewMinHeap(capacity int) *MinHeap {
	h := &MinHeap{items: make(cellHeap, 0, capacity)}
	heap.Init(&h.items)
	return h
}

// Push inserts cell with the given priority.
func (m *MinHeap) Push(cell Cell, priority float64) {
	heap.Push(&m.items, heapItem{cell: cell, priority: priority, seq: m.seq})
	m.seq++
}

// Pop removes and returns the lowest-priority cell. It panics if the heap is
// empty; callers must check Len first.
func (m *MinHeap) Pop() (Cell, float64) {
	item := heap.Pop(&m.items).(heapItem)
	return item.cell, item.priority
}

// Len returns the number of items currently queued.
func (m *MinHeap) Len() int { return len(m.items) }
