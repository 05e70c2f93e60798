package taskpool

import (
	"container/heap"
	"math"
)

const (
	// DefaultPriority places a task behind every task submitted with an
	// explicit priority. Tasks submitted with it run in FIFO order.
	DefaultPriority Priority = math.MaxUint64

	initialQueueCap = 256
)

// Priority orders queued tasks. Smaller values run first.
type Priority uint64

// Task is a unit of work executed by a pool worker.
type Task func()

// item is a queued task together with its ordering key.
//
// seq is assigned at insertion and breaks ties between equal priorities,
// so the order of equal-priority tasks is their submission order.
type item struct {
	task  Task
	prio  Priority
	seq   uint64
	index int
}

// itemHeap is a min-heap over (prio, seq).
type itemHeap []*item

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	if h[i].prio != h[j].prio {
		return h[i].prio < h[j].prio
	}
	return h[i].seq < h[j].seq
}
func (h itemHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *itemHeap) Push(x any) {
	it := x.(*item)
	it.index = len(*h)
	*h = append(*h, it)
}

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}

// taskQueue holds pending tasks ordered by priority.
//
// It is not safe for concurrent use; the pool guards it with its mutex.
type taskQueue struct {
	h   itemHeap
	seq uint64
}

func newTaskQueue() *taskQueue {
	q := &taskQueue{h: make(itemHeap, 0, initialQueueCap)}
	heap.Init(&q.h)
	return q
}

// push inserts a task. It never fails and never blocks.
func (q *taskQueue) push(task Task, prio Priority) {
	q.seq++
	heap.Push(&q.h, &item{task: task, prio: prio, seq: q.seq})
}

// pop removes the task with the smallest priority value, the earliest
// submitted one among equals. It reports false when the queue is empty.
func (q *taskQueue) pop() (Task, bool) {
	if q.h.Len() == 0 {
		return nil, false
	}
	it := heap.Pop(&q.h).(*item)
	return it.task, true
}

func (q *taskQueue) len() int { return q.h.Len() }
