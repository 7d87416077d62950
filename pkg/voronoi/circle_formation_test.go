package voronoi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexedPoint(x, y int32, idx int) siteEvent {
	s := newPointSite(Point{x, y})
	s.sortedIndex = idx
	return s
}

func TestCircleFormationPPP(t *testing.T) {
	// Clockwise triple on the circle centered at (2,2) with radius 2*sqrt(2).
	site1 := indexedPoint(4, 0, 0)
	site2 := indexedPoint(0, 0, 1)
	site3 := indexedPoint(0, 4, 2)

	c := &circleEvent{}
	require.True(t, circleFormationPredicate(site1, site2, site3, c))
	assert.InDelta(t, 2.0, c.x, 1e-9)
	assert.InDelta(t, 2.0, c.y, 1e-9)
	assert.InDelta(t, 2.0+2.0*math.Sqrt2, c.lowerX, 1e-9)
}

func TestCircleFormationPPPRejectsLeftTurn(t *testing.T) {
	// The same three points in counterclockwise arc order never collapse.
	site1 := indexedPoint(0, 4, 0)
	site2 := indexedPoint(0, 0, 1)
	site3 := indexedPoint(4, 0, 2)

	c := &circleEvent{}
	assert.False(t, circleFormationPredicate(site1, site2, site3, c))
}

func TestCircleFormationPPPCollinear(t *testing.T) {
	site1 := indexedPoint(0, 0, 0)
	site2 := indexedPoint(1, 1, 1)
	site3 := indexedPoint(2, 2, 2)

	c := &circleEvent{}
	assert.False(t, circleFormationPredicate(site1, site2, site3, c))
}

func TestCircleFormationPPS(t *testing.T) {
	// Two points above a horizontal segment. The produced event must be the
	// center of a circle through both points, tangent to the segment's line,
	// with lowerX at its right extreme.
	segment := newSegmentSite(Point{0, 0}, Point{8, 0})
	segment.sortedIndex = 0
	p1 := Point{0, 2}
	p2 := Point{2, 4}
	site1 := indexedPoint(p1.X, p1.Y, 1)
	site2 := indexedPoint(p2.X, p2.Y, 2)

	c := &circleEvent{}
	require.True(t, circleFormationPredicate(site1, site2, segment, c))

	r := c.lowerX - c.x
	require.Positive(t, r)
	assert.InDelta(t, r, c.y, 1e-9)
	assert.InDelta(t, r, math.Hypot(c.x-float64(p1.X), c.y-float64(p1.Y)), 1e-9)
	assert.InDelta(t, r, math.Hypot(c.x-float64(p2.X), c.y-float64(p2.Y)), 1e-9)
}

func TestCircleEventQueueOrdering(t *testing.T) {
	q := &circleQueue{}

	e1 := &circleEvent{}
	e1.set(3, 1, 5)
	e2 := &circleEvent{}
	e2.set(1, 2, 2)
	e3 := &circleEvent{}
	e3.set(2, 0, 2)

	q.push(e1)
	q.push(e2)
	q.push(e3)

	// Ordered by lowerX, then y.
	require.Same(t, e3, q.pop())
	require.Same(t, e2, q.pop())
	require.Same(t, e1, q.pop())
	assert.True(t, q.empty())
}

func TestCircleEventQueueLazyDeactivation(t *testing.T) {
	q := &circleQueue{}

	e1 := &circleEvent{}
	e1.set(1, 1, 1)
	e2 := &circleEvent{}
	e2.set(2, 2, 2)

	q.push(e1)
	q.push(e2)
	e1.deactivate()

	require.Same(t, e2, q.top())
	require.Same(t, e2, q.pop())
	assert.True(t, q.empty())
}
