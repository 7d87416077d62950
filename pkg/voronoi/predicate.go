package voronoi

import "math"

// ulps is the error band, in float64 ULPs, inside which lazily computed
// event coordinates are treated as equal.
const ulps = 128

// ulpScale maps a float64 onto a monotonically increasing unsigned scale,
// so that the distance between two values on the scale is their distance
// in ULPs.
func ulpScale(d float64) uint64 {
	bits := math.Float64bits(d)
	if bits&(1<<63) != 0 {
		return ^bits + 1
	}
	return bits | (1 << 63)
}

// ulpCompare orders a and b treating values within maxUlps representable
// doubles of each other as equal. Returns -1, 0 or +1.
func ulpCompare(a, b float64, maxUlps uint64) int {
	ua, ub := ulpScale(a), ulpScale(b)
	if ua > ub {
		if ua-ub <= maxUlps {
			return 0
		}
		return 1
	}
	if ub-ua <= maxUlps {
		return 0
	}
	return -1
}

// robustCrossProduct computes a1*b2 - b1*a2 with relative error at most one
// epsilon. Inputs are differences of int32 coordinates, so every magnitude
// product fits uint64 exactly; only the final widening to float64 rounds.
func robustCrossProduct(a1, b1, a2, b2 int64) float64 {
	absU := func(v int64) uint64 {
		if v < 0 {
			return uint64(-v)
		}
		return uint64(v)
	}
	l := absU(a1) * absU(b2)
	r := absU(b1) * absU(a2)
	lNeg := (a1 < 0) != (b2 < 0)
	rNeg := (a2 < 0) != (b1 < 0)
	switch {
	case lNeg && rNeg:
		if l > r {
			return -float64(l - r)
		}
		return float64(r - l)
	case lNeg:
		return -(float64(l) + float64(r))
	case rNeg:
		return float64(l) + float64(r)
	default:
		if l < r {
			return -float64(r - l)
		}
		return float64(l - r)
	}
}

type orientation int

const (
	orientRight     orientation = -1
	orientCollinear orientation = 0
	orientLeft      orientation = 1
)

func orientationOf(det float64) orientation {
	if det == 0 {
		return orientCollinear
	}
	if det < 0 {
		return orientRight
	}
	return orientLeft
}

// orientPoints is the orientation test over three input points,
// exact for int32 coordinates.
func orientPoints(p1, p2, p3 Point) orientation {
	return orientationOf(robustCrossProduct(
		int64(p1.X)-int64(p2.X),
		int64(p1.Y)-int64(p2.Y),
		int64(p2.X)-int64(p3.X),
		int64(p2.Y)-int64(p3.Y),
	))
}

// siteEventLess is the strict ordering of the site event queue. Points come
// before segments starting at the same point; segments sharing a start
// point order by slope (vertical first).
func siteEventLess(lhs, rhs siteEvent) bool {
	if lhs.x0() != rhs.x0() {
		return lhs.x0() < rhs.x0()
	}
	if !lhs.isSegment() {
		if !rhs.isSegment() {
			return lhs.y0() < rhs.y0()
		}
		if rhs.isVertical() {
			return lhs.y0() <= rhs.y0()
		}
		return true
	}
	if rhs.isVertical() {
		if lhs.isVertical() {
			return lhs.y0() < rhs.y0()
		}
		return false
	}
	if lhs.isVertical() {
		return true
	}
	if lhs.y0() != rhs.y0() {
		return lhs.y0() < rhs.y0()
	}
	return orientPoints(lhs.point1, lhs.point0, rhs.point1) == orientLeft
}

// circleIsBefore reports whether a pending circle event fires strictly
// before a site event. Ties inside the ULP band go to the site event, which
// keeps topology consistent when a site lies exactly on a vertex circle.
func circleIsBefore(circle *circleEvent, site siteEvent) bool {
	return ulpCompare(circle.lowerX, float64(site.x0()), ulps) < 0
}

// distancePredicate reports whether a horizontal line through newPoint
// intersects the right arc of the (leftSite, rightSite) bisector first.
func distancePredicate(leftSite, rightSite siteEvent, newPoint Point) bool {
	if !leftSite.isSegment() {
		if !rightSite.isSegment() {
			return distancePP(leftSite, rightSite, newPoint)
		}
		return distancePS(leftSite, rightSite, newPoint, false)
	}
	if !rightSite.isSegment() {
		return distancePS(rightSite, leftSite, newPoint, true)
	}
	return distanceSS(leftSite, rightSite, newPoint)
}

// distancePP handles two point arcs without any high-precision fallback:
// the comparisons short-circuit every case where rounding could matter.
func distancePP(leftSite, rightSite siteEvent, newPoint Point) bool {
	leftPoint := leftSite.point0
	rightPoint := rightSite.point0
	switch {
	case leftPoint.X > rightPoint.X:
		if newPoint.Y <= leftPoint.Y {
			return false
		}
	case leftPoint.X < rightPoint.X:
		if newPoint.Y >= rightPoint.Y {
			return true
		}
	default:
		return int64(leftPoint.Y)+int64(rightPoint.Y) < 2*int64(newPoint.Y)
	}
	dist1 := distanceToPointArc(leftSite, newPoint)
	dist2 := distanceToPointArc(rightSite, newPoint)
	// The undefined ULP range is 3EPS + 3EPS <= 6ULP.
	return dist1 < dist2
}

func distancePS(leftSite, rightSite siteEvent, newPoint Point, reverseOrder bool) bool {
	fast := fastPS(leftSite, rightSite, newPoint, reverseOrder)
	if fast != predicateUndefined {
		return fast == predicateLess
	}
	dist1 := distanceToPointArc(leftSite, newPoint)
	dist2 := distanceToSegmentArc(rightSite, newPoint)
	// The undefined ULP range is 3EPS + 7EPS <= 10ULP.
	return reverseOrder != (dist1 < dist2)
}

func distanceSS(leftSite, rightSite siteEvent, newPoint Point) bool {
	// The two halves of one segment order by which side of it the new
	// site falls on.
	if leftSite.sortedIndex == rightSite.sortedIndex {
		return orientPoints(leftSite.point0, leftSite.point1, newPoint) == orientLeft
	}
	dist1 := distanceToSegmentArc(leftSite, newPoint)
	dist2 := distanceToSegmentArc(rightSite, newPoint)
	// The undefined ULP range is 7EPS + 7EPS <= 14ULP.
	return dist1 < dist2
}

func distanceToPointArc(site siteEvent, point Point) float64 {
	dx := float64(site.x()) - float64(point.X)
	dy := float64(site.y()) - float64(point.Y)
	// The relative error is at most 3EPS.
	return (dx*dx + dy*dy) / (2 * dx)
}

func distanceToSegmentArc(site siteEvent, point Point) float64 {
	if site.isVertical() {
		return (float64(site.x()) - float64(point.X)) * 0.5
	}
	segment0 := site.point0
	segment1 := site.point1
	a1 := float64(segment1.X) - float64(segment0.X)
	b1 := float64(segment1.Y) - float64(segment0.Y)
	k := math.Sqrt(a1*a1 + b1*b1)
	// Avoid subtraction while computing k.
	if b1 >= 0 {
		k = 1 / (b1 + k)
	} else {
		k = (k - b1) / (a1 * a1)
	}
	// The relative error is at most 7EPS.
	return k * robustCrossProduct(
		int64(segment1.X)-int64(segment0.X),
		int64(segment1.Y)-int64(segment0.Y),
		int64(point.X)-int64(segment0.X),
		int64(point.Y)-int64(segment0.Y),
	)
}

type predicateResult int

const (
	predicateLess      predicateResult = -1
	predicateUndefined predicateResult = 0
	predicateMore      predicateResult = 1
)

// fastPS is the cheap filter for the point-arc vs segment-arc ordering: it
// answers only when the sign is provably outside the rounding error and
// reports undefined otherwise.
func fastPS(leftSite, rightSite siteEvent, newPoint Point, reverseOrder bool) predicateResult {
	sitePoint := leftSite.point0
	segmentStart := rightSite.point0
	segmentEnd := rightSite.point1

	if orientPoints(segmentStart, segmentEnd, newPoint) != orientRight {
		if !rightSite.isInverse {
			return predicateLess
		}
		return predicateMore
	}

	difX := float64(newPoint.X) - float64(sitePoint.X)
	difY := float64(newPoint.Y) - float64(sitePoint.Y)
	a := float64(segmentEnd.X) - float64(segmentStart.X)
	b := float64(segmentEnd.Y) - float64(segmentStart.Y)

	if rightSite.isVertical() {
		if newPoint.Y < sitePoint.Y && !reverseOrder {
			return predicateMore
		}
		if newPoint.Y > sitePoint.Y && reverseOrder {
			return predicateLess
		}
		return predicateUndefined
	}

	orient := orientationOf(robustCrossProduct(
		int64(segmentEnd.X)-int64(segmentStart.X),
		int64(segmentEnd.Y)-int64(segmentStart.Y),
		int64(newPoint.X)-int64(sitePoint.X),
		int64(newPoint.Y)-int64(sitePoint.Y),
	))
	if orient == orientLeft {
		if !rightSite.isInverse {
			if reverseOrder {
				return predicateLess
			}
			return predicateUndefined
		}
		if reverseOrder {
			return predicateUndefined
		}
		return predicateMore
	}

	fastLeftExpr := a * (difY + difX) * (difY - difX)
	fastRightExpr := 2 * b * difX * difY
	if cmp := ulpCompare(fastLeftExpr, fastRightExpr, 4); cmp != 0 {
		if (cmp > 0) != reverseOrder {
			if reverseOrder {
				return predicateLess
			}
			return predicateMore
		}
	}
	return predicateUndefined
}

// nodeLess orders beachline bisector nodes by the y coordinate of their arc
// intersection at the current sweep position. One of the two nodes always
// carries the site lying on the sweep line, which is what makes the
// comparison decidable without knowing the sweep coordinate explicitly.
func nodeLess(node1, node2 *beachNodeKey) bool {
	site1 := node1.comparisonSite()
	site2 := node2.comparisonSite()
	point1 := site1.comparisonPoint()
	point2 := site2.comparisonPoint()

	switch {
	case point1.X < point2.X:
		// The second node contains the newer site.
		return distancePredicate(node1.leftSite, node1.rightSite, point2)
	case point1.X > point2.X:
		// The first node contains the newer site.
		return !distancePredicate(node2.leftSite, node2.rightSite, point1)
	default:
		switch {
		case site1.sortedIndex == site2.sortedIndex:
			// Both nodes were inserted during the same site event.
			y1, dir1 := node1.comparisonY(true)
			y2, dir2 := node2.comparisonY(true)
			if y1 != y2 {
				return y1 < y2
			}
			return dir1 < dir2
		case site1.sortedIndex < site2.sortedIndex:
			y1, dir1 := node1.comparisonY(false)
			y2, _ := node2.comparisonY(true)
			if y1 != y2 {
				return y1 < y2
			}
			if !site1.isSegment() {
				return dir1 < 0
			}
			return false
		default:
			y1, _ := node1.comparisonY(true)
			y2, dir2 := node2.comparisonY(false)
			if y1 != y2 {
				return y1 < y2
			}
			if !site2.isSegment() {
				return dir2 > 0
			}
			return true
		}
	}
}
