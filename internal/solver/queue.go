package solver

import (
	"container/heap"

	"github.com/fathom-framework/fathom/pkg/fathom"
)

// boundQueue is a double-ended priority queue of nodes ordered by
// bound. Every entry sits in two heaps over the same backing entries,
// one per extreme, each tracking its own index so removal from either
// end stays O(log n); both peeks are O(1). Keys are sense-normalized
// (key = sense * bound) so the best end is always the minimum key, and
// key ties break by node id: the best end pops the oldest id first,
// the worst end the youngest, keeping pop order deterministic.
type boundQueue struct {
	sense fathom.Sense
	best  bestHeap
	worst worstHeap
}

func newBoundQueue(sense fathom.Sense) *boundQueue {
	return &boundQueue{sense: sense}
}

func (q *boundQueue) Len() int {
	return len(q.best)
}

// Push admits a node under the bound currently stored in its metadata.
// Bounds of queued nodes must not change while queued; the engine only
// rebounds a node after popping it.
func (q *boundQueue) Push(n fathom.Node) {
	m := n.Meta()
	e := &entry{node: n, key: float64(q.sense) * m.Bound, id: m.ID}
	heap.Push(&q.best, e)
	heap.Push(&q.worst, e)
}

// PopBest removes and returns the node at the most optimistic end.
func (q *boundQueue) PopBest() fathom.Node {
	e := heap.Pop(&q.best).(*entry)
	heap.Remove(&q.worst, e.worst)
	return e.node
}

// PopWorst removes and returns the node at the least optimistic end.
func (q *boundQueue) PopWorst() fathom.Node {
	e := heap.Pop(&q.worst).(*entry)
	heap.Remove(&q.best, e.best)
	return e.node
}

// PeekBest returns the node at the most optimistic end without
// removing it. The queue must be non-empty.
func (q *boundQueue) PeekBest() fathom.Node {
	return q.best[0].node
}

// PeekWorst returns the node at the least optimistic end without
// removing it. The queue must be non-empty.
func (q *boundQueue) PeekWorst() fathom.Node {
	return q.worst[0].node
}

type entry struct {
	node fathom.Node
	key  float64
	id   uint64

	// positions of this entry inside each heap
	best  int
	worst int
}

type bestHeap []*entry

func (h bestHeap) Len() int { return len(h) }

func (h bestHeap) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key < h[j].key
	}
	return h[i].id < h[j].id
}

func (h bestHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].best = i
	h[j].best = j
}

func (h *bestHeap) Push(x any) {
	e := x.(*entry)
	e.best = len(*h)
	*h = append(*h, e)
}

func (h *bestHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

type worstHeap []*entry

func (h worstHeap) Len() int { return len(h) }

func (h worstHeap) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key > h[j].key
	}
	return h[i].id > h[j].id
}

func (h worstHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].worst = i
	h[j].worst = j
}

func (h *worstHeap) Push(x any) {
	e := x.(*entry)
	e.worst = len(*h)
	*h = append(*h, e)
}

func (h *worstHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}
