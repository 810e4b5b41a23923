package graph

// heapItem is one entry in the ready-queue the priority topological sort in
// sort.go draws from: the lowest-priority ready node goes first, with the
// hash itself breaking ties so that equal-priority nodes still come out in
// a fixed, repeatable order.
type heapItem struct {
	hash     uint64
	priority int
}

// readyHeap is a container/heap.Interface over heapItem, min-ordered by
// (priority, hash).
type readyHeap []heapItem

func (h readyHeap) Len() int { return len(h) }

func (h readyHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].hash < h[j].hash
}

func (h readyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *readyHeap) Push(x interface{}) {
	*h = append(*h, x.(heapItem))
}

func (h *readyHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
