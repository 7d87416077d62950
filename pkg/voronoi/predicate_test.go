package voronoi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUlpCompare(t *testing.T) {
	tests := []struct {
		name    string
		a, b    float64
		maxUlps uint64
		want    int
	}{
		{"equal", 1.0, 1.0, 1, 0},
		{"one ulp apart", 1.0, math.Nextafter(1.0, 2.0), 1, 0},
		{"two ulps over budget", 1.0, math.Nextafter(math.Nextafter(1.0, 2.0), 2.0), 1, -1},
		{"far greater", 2.0, 1.0, 128, 1},
		{"far smaller", 1.0, 2.0, 128, -1},
		{"across zero", -1e-300, 1e-300, 4, -1},
		{"zero vs zero", 0.0, 0.0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ulpCompare(tt.a, tt.b, tt.maxUlps))
		})
	}
}

func TestRobustCrossProduct(t *testing.T) {
	tests := []struct {
		name           string
		a1, b1, a2, b2 int64
		want           float64
	}{
		{"unit positive", 1, 0, 0, 1, 1},
		{"unit negative", 0, 1, 1, 0, -1},
		{"collinear", 2, 3, 4, 6, 0},
		{"mixed signs", -2, 3, 4, -6, 0},
		{"plain", 3, 7, 2, 5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, robustCrossProduct(tt.a1, tt.b1, tt.a2, tt.b2))
		})
	}

	t.Run("full width stays exact in sign", func(t *testing.T) {
		// Differences of int32 coordinates span up to 2^32-1; their products
		// need the uint64 path to keep the sign exact.
		const span = int64(1)<<32 - 1
		assert.Positive(t, robustCrossProduct(span, 1, 1, span))
		assert.Negative(t, robustCrossProduct(1, span, span, 1))
	})
}

func TestOrientPoints(t *testing.T) {
	tests := []struct {
		name       string
		p1, p2, p3 Point
		want       orientation
	}{
		{"left turn", Point{0, 0}, Point{2, 0}, Point{2, 2}, orientLeft},
		{"right turn", Point{0, 0}, Point{2, 0}, Point{2, -2}, orientRight},
		{"collinear", Point{0, 0}, Point{1, 1}, Point{3, 3}, orientCollinear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orientPoints(tt.p1, tt.p2, tt.p3))
		})
	}
}

func TestSiteEventLess(t *testing.T) {
	point := func(x, y int32) siteEvent { return newPointSite(Point{x, y}) }
	segment := func(x0, y0, x1, y1 int32) siteEvent {
		return newSegmentSite(Point{x0, y0}, Point{x1, y1})
	}

	tests := []struct {
		name     string
		lhs, rhs siteEvent
		want     bool
	}{
		{"points by x", point(0, 5), point(1, 0), true},
		{"points by y", point(0, 0), point(0, 5), true},
		{"point before its segment", point(0, 0), segment(0, 0, 2, 2), true},
		{"segment after its point", segment(0, 0, 2, 2), point(0, 0), false},
		{"point before vertical segment at same start", point(0, 0), segment(0, 0, 0, 2), true},
		{"vertical segment after its start point", segment(0, 0, 0, 2), point(0, 0), false},
		{"point above vertical segment start", point(0, 5), segment(0, 0, 0, 2), false},
		{"vertical before non-vertical", segment(0, 0, 0, 2), segment(0, 0, 2, 0), true},
		{"non-vertical after vertical", segment(0, 0, 2, 0), segment(0, 0, 0, 2), false},
		{"segments sharing start by turn", segment(0, 0, 1, 2), segment(0, 0, 2, 1), true},
		{"segments sharing start by turn reversed", segment(0, 0, 2, 1), segment(0, 0, 1, 2), false},
		{"segments by start y", segment(0, 0, 2, 1), segment(0, 3, 2, 4), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, siteEventLess(tt.lhs, tt.rhs))
		})
	}
}

func TestCircleIsBefore(t *testing.T) {
	site := newPointSite(Point{10, 0})

	before := &circleEvent{}
	before.set(9, 0, 9)
	assert.True(t, circleIsBefore(before, site))

	// The site wins on equal sweep coordinate.
	tied := &circleEvent{}
	tied.set(10, 0, 10)
	assert.False(t, circleIsBefore(tied, site))

	after := &circleEvent{}
	after.set(11, 0, 11)
	assert.False(t, circleIsBefore(after, site))
}

// Ordering of beachline nodes is checked through nodeLess on a small
// point configuration: two sites at (0,0) and (0,4) share the bisector
// y=2, so a later site falls under the lower arc iff its y is below 2.
func TestNodeLessPointBisector(t *testing.T) {
	lower := newPointSite(Point{0, 0})
	lower.sortedIndex = 0
	upper := newPointSite(Point{0, 4})
	upper.sortedIndex = 1

	node := &beachNodeKey{leftSite: lower, rightSite: upper}

	below := newPointSite(Point{2, 1})
	below.sortedIndex = 2
	belowKey := newBeachNodeKey(below)
	require.False(t, nodeLess(node, &belowKey))

	above := newPointSite(Point{2, 3})
	above.sortedIndex = 2
	aboveKey := newBeachNodeKey(above)
	require.True(t, nodeLess(node, &aboveKey))
}

func TestNodeLessSegmentSides(t *testing.T) {
	// The two orientations of one segment order by which side of the
	// segment the new site lies on.
	seg := newSegmentSite(Point{0, 0}, Point{4, 0})
	seg.sortedIndex = 0
	node := &beachNodeKey{leftSite: seg, rightSite: seg.inverse()}

	above := newPointSite(Point{2, 1})
	above.sortedIndex = 1
	aboveKey := newBeachNodeKey(above)
	assert.True(t, nodeLess(node, &aboveKey))

	below := newPointSite(Point{2, -1})
	below.sortedIndex = 1
	belowKey := newBeachNodeKey(below)
	assert.False(t, nodeLess(node, &belowKey))
}

func TestDistanceToPointArc(t *testing.T) {
	// Horizontal distance from the point (3,4) to the arc of the site
	// (0,0) at its own sweep position: (dx^2+dy^2)/(2dx).
	site := newPointSite(Point{0, 0})
	assert.InDelta(t, 25.0/6.0, -distanceToPointArc(site, Point{3, 4}), 1e-12)
}
