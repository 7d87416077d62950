package voronoi

import "container/heap"

// circleEvent is a pending beachline arc collapse. The coordinates are the
// circumcircle center and its rightmost point; lowerX is the sweep position
// at which the event fires. An event stays in the queue after its arc
// triple is broken and is simply skipped once deactivated.
type circleEvent struct {
	x, y   float64
	lowerX float64

	active bool
	node   *rbtNode
	index  int
}

func (c *circleEvent) set(x, y, lowerX float64) {
	c.x = x
	c.y = y
	c.lowerX = lowerX
}

func (c *circleEvent) setX(x float64)           { c.x = x }
func (c *circleEvent) setY(y float64)           { c.y = y }
func (c *circleEvent) setLowerX(lowerX float64) { c.lowerX = lowerX }

func (c *circleEvent) deactivate() { c.active = false }

func circleEventLess(lhs, rhs *circleEvent) bool {
	if lhs.lowerX != rhs.lowerX {
		return lhs.lowerX < rhs.lowerX
	}
	return lhs.y < rhs.y
}

type circleHeap []*circleEvent

func (h circleHeap) Len() int            { return len(h) }
func (h circleHeap) Less(i, j int) bool  { return circleEventLess(h[i], h[j]) }
func (h circleHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *circleHeap) Push(x interface{}) { e := x.(*circleEvent); e.index = len(*h); *h = append(*h, e) }
func (h *circleHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// circleQueue is a min-heap of circle events with lazy deactivation.
type circleQueue struct {
	events circleHeap
}

func (q *circleQueue) push(e *circleEvent) {
	e.active = true
	heap.Push(&q.events, e)
}

// top returns the earliest still-active event, discarding deactivated ones.
func (q *circleQueue) top() *circleEvent {
	for len(q.events) > 0 && !q.events[0].active {
		heap.Pop(&q.events)
	}
	if len(q.events) == 0 {
		return nil
	}
	return q.events[0]
}

func (q *circleQueue) pop() *circleEvent {
	top := q.top()
	if top != nil {
		heap.Pop(&q.events)
	}
	return top
}

func (q *circleQueue) empty() bool { return q.top() == nil }

// endPoint marks a temporary beachline node that must be dropped once the
// sweep passes the end of its segment.
type endPoint struct {
	point Point
	node  *rbtNode
}

type endPointQueue []endPoint

func (h endPointQueue) Len() int           { return len(h) }
func (h endPointQueue) Less(i, j int) bool { return pointLess(h[i].point, h[j].point) }
func (h endPointQueue) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *endPointQueue) Push(x interface{}) {
	*h = append(*h, x.(endPoint))
}
func (h *endPointQueue) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
