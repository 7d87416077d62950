package voronoi

// SourceCategory tells which part of the original input a cell (or the site
// behind it) came from.
type SourceCategory uint8

const (
	// SourceSinglePoint is a cell of a stand-alone input point.
	SourceSinglePoint SourceCategory = iota
	// SourceSegmentStartPoint is a cell of the first endpoint of a segment.
	SourceSegmentStartPoint
	// SourceSegmentEndPoint is a cell of the second endpoint of a segment.
	SourceSegmentEndPoint
	// SourceInitialSegment is a cell of a segment in input orientation.
	SourceInitialSegment
	// SourceReverseSegment is a cell of a segment in reversed orientation.
	SourceReverseSegment
)

// IsPoint reports whether the category describes a point source.
func (c SourceCategory) IsPoint() bool { return c <= SourceSegmentEndPoint }

// IsSegment reports whether the category describes a segment source.
func (c SourceCategory) IsSegment() bool { return !c.IsPoint() }

// siteEvent is a point site, a segment endpoint or a segment body entering
// the sweep. Segment sites flip orientation (inverse) once the sweep passes
// their start point so that the back side of the segment competes with arcs
// on the right; the inverse flag is part of every predicate involving the
// site.
type siteEvent struct {
	point0, point1 Point

	// initialIndex is the index the caller inserted the site under.
	initialIndex int
	// sortedIndex is assigned after the event queue is sorted and is the
	// cell index of the site in the output diagram.
	sortedIndex int

	category  SourceCategory
	isInverse bool
}

func newPointSite(p Point) siteEvent {
	return siteEvent{point0: p, point1: p}
}

func newSegmentSite(p0, p1 Point) siteEvent {
	return siteEvent{point0: p0, point1: p1}
}

func (s siteEvent) isSegment() bool { return s.point0 != s.point1 }

// x and y are the sweep-entry coordinates of the site.
func (s siteEvent) x() int32 { return s.point0.X }
func (s siteEvent) y() int32 { return s.point0.Y }

func (s siteEvent) x0() int32 { return s.point0.X }
func (s siteEvent) y0() int32 { return s.point0.Y }
func (s siteEvent) x1() int32 { return s.point1.X }
func (s siteEvent) y1() int32 { return s.point1.Y }

// inverse flips the stored orientation of a segment site.
func (s siteEvent) inverse() siteEvent {
	s.point0, s.point1 = s.point1, s.point0
	s.isInverse = !s.isInverse
	return s
}

// sourceCategory reports the category adjusted for the current orientation.
func (s siteEvent) sourceCategory() SourceCategory {
	if s.category == SourceInitialSegment && s.isInverse {
		return SourceReverseSegment
	}
	return s.category
}

func (s siteEvent) isVertical() bool {
	return s.point0.X == s.point1.X
}

// comparisonPoint is the lexicographically smaller endpoint; the node
// comparison predicate keys off the newest such point on each bisector.
func (s siteEvent) comparisonPoint() Point {
	if pointLess(s.point0, s.point1) {
		return s.point0
	}
	return s.point1
}
