package voronoi

import (
	"container/heap"
	"errors"
	"fmt"
	"sort"

	"github.com/0x0FACED/go-sweepline/pkg/logger"
	"go.uber.org/zap"
)

var (
	// ErrZeroLengthSegment is returned by AddSegment for a segment whose
	// endpoints coincide. Degenerate input has to be filtered by the caller.
	ErrZeroLengthSegment = errors.New("voronoi: zero-length segment")

	// ErrConstructed is returned when a builder is used after Construct.
	// A builder runs a single sweep and cannot be reused.
	ErrConstructed = errors.New("voronoi: diagram already constructed")
)

type builderState int

const (
	stateIdle builderState = iota
	stateSweeping
	stateFinalizing
	stateDone
)

// Builder collects point and segment sites and constructs their Voronoi
// diagram with a single left-to-right sweep. The zero value is not usable;
// call NewBuilder.
type Builder struct {
	siteEvents []siteEvent
	// siteIndex is the sweep cursor into the sorted event slice.
	siteIndex int
	// index numbers the inserted input sites; it becomes Cell.SourceIndex.
	index int

	beachLine    rbt
	circleEvents circleQueue
	endPoints    endPointQueue

	diagram *Diagram
	state   builderState
	log     *logger.ZapLogger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger attaches a construction logger. Event processing is reported
// at debug level, phase transitions at info level.
func WithLogger(l *logger.ZapLogger) Option {
	return func(b *Builder) { b.log = l }
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddPoint inserts a point site and returns its source index.
func (b *Builder) AddPoint(x, y int32) (int, error) {
	if b.state != stateIdle {
		return 0, ErrConstructed
	}
	site := newPointSite(Point{X: x, Y: y})
	site.initialIndex = b.index
	site.category = SourceSinglePoint
	b.siteEvents = append(b.siteEvents, site)
	b.index++
	return site.initialIndex, nil
}

// AddSegment inserts a segment site and returns its source index. Both
// endpoints become point sites of their own, sharing the segment's index,
// so that the diagram stays fine around the segment's ends.
func (b *Builder) AddSegment(x1, y1, x2, y2 int32) (int, error) {
	if b.state != stateIdle {
		return 0, ErrConstructed
	}
	p1 := Point{X: x1, Y: y1}
	p2 := Point{X: x2, Y: y2}
	if p1 == p2 {
		return 0, ErrZeroLengthSegment
	}

	start := newPointSite(p1)
	start.initialIndex = b.index
	start.category = SourceSegmentStartPoint
	end := newPointSite(p2)
	end.initialIndex = b.index
	end.category = SourceSegmentEndPoint

	var segment siteEvent
	if pointLess(p1, p2) {
		segment = newSegmentSite(p1, p2)
	} else {
		segment = newSegmentSite(p2, p1)
	}
	segment.initialIndex = b.index
	segment.category = SourceInitialSegment

	b.siteEvents = append(b.siteEvents, start, end, segment)
	b.index++
	return segment.initialIndex, nil
}

// Construct runs the sweep and returns the finished diagram. The builder
// cannot be reused afterwards.
func (b *Builder) Construct() (d *Diagram, err error) {
	if b.state != stateIdle {
		return nil, ErrConstructed
	}
	b.state = stateSweeping

	// A broken event ordering or an impossible predicate result panics deep
	// in the sweep; surface it as a construction failure instead of killing
	// the caller.
	defer func() {
		if r := recover(); r != nil {
			b.state = stateDone
			d = nil
			err = fmt.Errorf("voronoi: construction failed: %v", r)
		}
	}()

	b.initSitesQueue()
	b.diagram = &Diagram{}
	b.diagram.reserve(len(b.siteEvents))

	if b.log != nil {
		b.log.Info("[sweep] construction started",
			zap.Int("sites", len(b.siteEvents)))
	}

	b.initBeachLine()
	for b.siteIndex < len(b.siteEvents) || !b.circleEvents.empty() {
		if b.siteIndex >= len(b.siteEvents) {
			b.processCircleEvent()
		} else if top := b.circleEvents.top(); top != nil &&
			circleIsBefore(top, b.siteEvents[b.siteIndex]) {
			b.processCircleEvent()
		} else {
			b.processSiteEvent()
		}
	}
	b.beachLine = rbt{}
	b.endPoints = nil

	b.state = stateFinalizing
	b.diagram.build()
	b.state = stateDone

	if b.log != nil {
		b.log.Info("[sweep] construction finished",
			zap.Int("cells", b.diagram.NumCells()),
			zap.Int("vertices", b.diagram.NumVertices()),
			zap.Int("edges", b.diagram.NumEdges()))
	}
	return b.diagram, nil
}

// initSitesQueue sorts the inserted sites into sweep order, drops exact
// duplicates and assigns each survivor its cell index.
func (b *Builder) initSitesQueue() {
	sort.SliceStable(b.siteEvents, func(i, j int) bool {
		return siteEventLess(b.siteEvents[i], b.siteEvents[j])
	})
	unique := b.siteEvents[:0]
	for _, site := range b.siteEvents {
		if len(unique) == 0 ||
			site.point0 != unique[len(unique)-1].point0 ||
			site.point1 != unique[len(unique)-1].point1 {
			unique = append(unique, site)
		}
	}
	b.siteEvents = unique
	for i := range b.siteEvents {
		b.siteEvents[i].sortedIndex = i
	}
}

// initBeachLine seeds the beachline from the leftmost sites. A run of sites
// sharing the smallest x with no horizontal extent (points and vertical
// segments) has no arcs between its members yet, so it is chained into the
// beachline directly instead of going through arc splitting.
func (b *Builder) initBeachLine() {
	if len(b.siteEvents) == 0 {
		return
	}
	if len(b.siteEvents) == 1 {
		// Degenerate: a single cell, no edges.
		b.diagram.processSingleSite(b.siteEvents[0])
		b.siteIndex++
		return
	}

	skip := 0
	for b.siteIndex < len(b.siteEvents) &&
		b.siteEvents[b.siteIndex].x() == b.siteEvents[0].x() &&
		b.siteEvents[b.siteIndex].isVertical() {
		b.siteIndex++
		skip++
	}
	if skip == 1 {
		b.initBeachLineDefault()
	} else {
		b.initBeachLineCollinear()
	}
}

// initBeachLineDefault seeds the beachline with the first two sites.
func (b *Builder) initBeachLineDefault() {
	b.insertNewArc(b.siteEvents[0], b.siteEvents[0], b.siteEvents[1], nil)
	b.siteIndex++
}

// initBeachLineCollinear seeds the beachline with the leading run of
// vertically collinear sites: one bisector node per neighboring pair.
func (b *Builder) initBeachLineCollinear() {
	for i := 1; i < b.siteIndex; i++ {
		first := b.siteEvents[i-1]
		second := b.siteEvents[i]

		edge, _ := b.diagram.insertNewEdge(first, second)
		b.beachLine.insertBefore(nil, &beachNode{
			key:  beachNodeKey{leftSite: first, rightSite: second},
			data: beachNodeData{edge: edge},
		})
	}
}

// processSiteEvent splits the arc lying above the new site. Segment sites
// sharing a start point are processed as one batch against the same arc;
// a point site that is the second endpoint of earlier segments first drops
// their temporary bisector nodes.
func (b *Builder) processSiteEvent() {
	site := b.siteEvents[b.siteIndex]
	last := b.siteIndex + 1

	if !site.isSegment() {
		for len(b.endPoints) > 0 && b.endPoints[0].point == site.point0 {
			ep := heap.Pop(&b.endPoints).(endPoint)
			ep.node.value.deactivateCircle()
			b.beachLine.removeNode(ep.node)
		}
	} else {
		for last < len(b.siteEvents) && b.siteEvents[last].isSegment() &&
			b.siteEvents[last].point0 == site.point0 {
			last++
		}
	}

	if b.log != nil {
		b.log.Debug("[sweep] site event",
			zap.Int32("x", site.x()), zap.Int32("y", site.y()),
			zap.Bool("segment", site.isSegment()),
			zap.Int("batch", last-b.siteIndex))
	}

	newKey := newBeachNodeKey(site)
	rightNode := b.beachLine.lowerBound(&newKey)

	for ; b.siteIndex < last; b.siteIndex++ {
		site = b.siteEvents[b.siteIndex]

		switch {
		case rightNode == nil:
			// The new site falls under the last arc of the beachline.
			siteArc := b.beachLine.last().value.key.rightSite
			newNode := b.insertNewArc(siteArc, siteArc, site, nil)

			left := newNode.previous
			b.activateCircleEvent(
				left.value.key.leftSite, left.value.key.rightSite, site, newNode)
			rightNode = newNode

		case rightNode == b.beachLine.first():
			// The new site falls under the first arc of the beachline.
			siteArc := rightNode.value.key.leftSite
			newNode := b.insertNewArc(siteArc, siteArc, site, rightNode)

			if site.isSegment() {
				site = site.inverse()
			}
			b.activateCircleEvent(
				site, siteArc, rightNode.value.key.rightSite, rightNode)
			rightNode = newNode

		default:
			// The new site falls under an interior arc. Both bounding nodes
			// reference the split arc's site; the references may differ in
			// segment orientation.
			left := rightNode.previous
			siteArc1 := left.value.key.rightSite
			siteArc2 := rightNode.value.key.leftSite

			// The arc being split cannot collapse anymore.
			rightNode.value.deactivateCircle()

			newNode := b.insertNewArc(siteArc1, siteArc2, site, rightNode)

			b.activateCircleEvent(
				left.value.key.leftSite, siteArc1, site, newNode)
			if site.isSegment() {
				site = site.inverse()
			}
			b.activateCircleEvent(
				site, siteArc2, rightNode.value.key.rightSite, rightNode)
			rightNode = newNode
		}
	}
}

// processCircleEvent removes the collapsed arc, merges its two bounding
// bisector nodes into one and starts the bisector of the two outer sites
// at the new diagram vertex.
func (b *Builder) processCircleEvent() {
	e := b.circleEvents.pop()

	if b.log != nil {
		b.log.Debug("[sweep] circle event",
			zap.Float64("x", e.x), zap.Float64("y", e.y))
	}

	node := e.node // the (B, C) bisector; the arc of B collapses
	site3 := node.value.key.rightSite
	bisector2 := node.value.data.edge
	left := node.previous // the (A, B) bisector
	bisector1 := left.value.data.edge
	site1 := left.value.key.leftSite

	// A segment ending exactly at the point site A keeps competing with
	// arcs below the collapse, so it enters the merged node back side up.
	if !site1.isSegment() && site3.isSegment() && site3.point1 == site1.point0 {
		site3 = site3.inverse()
	}

	// Rekey (A, B) to (A, C) and route its edge through the new vertex.
	left.value.key.rightSite = site3
	edge, _ := b.diagram.insertNewEdgeWithVertex(site1, site3, e, bisector1, bisector2)
	left.value.data.edge = edge

	b.beachLine.removeNode(node)

	// The neighboring arcs got new neighbors; their pending collapses are
	// stale either way.
	if prev := left.previous; prev != nil {
		left.value.deactivateCircle()
		b.activateCircleEvent(prev.value.key.leftSite, site1, site3, left)
	}
	if next := left.next; next != nil {
		next.value.deactivateCircle()
		b.activateCircleEvent(site1, site3, next.value.key.rightSite, next)
	}
}

// insertNewArc splits the arc above site between siteArc1 and siteArc2
// (the same site, possibly in different orientations) and inserts the new
// bisector nodes in front of position (nil meaning the beachline end). For
// a segment site a temporary (segment, reversed segment) node separates
// the two bisectors until the sweep passes the segment's second endpoint.
// Returns the leftmost inserted node.
func (b *Builder) insertNewArc(siteArc1, siteArc2, site siteEvent, position *rbtNode) *rbtNode {
	newLeftKey := beachNodeKey{leftSite: siteArc1, rightSite: site}
	newRightKey := beachNodeKey{leftSite: site, rightSite: siteArc2}
	if site.isSegment() {
		newRightKey.leftSite = site.inverse()
	}

	edge1, edge2 := b.diagram.insertNewEdge(siteArc2, site)

	position = b.beachLine.insertBefore(position, &beachNode{
		key:  newRightKey,
		data: beachNodeData{edge: edge2},
	})

	if site.isSegment() {
		position = b.beachLine.insertBefore(position, &beachNode{
			key: beachNodeKey{leftSite: site, rightSite: site.inverse()},
		})
		heap.Push(&b.endPoints, endPoint{point: site.point1, node: position})
	}

	return b.beachLine.insertBefore(position, &beachNode{
		key:  newLeftKey,
		data: beachNodeData{edge: edge1},
	})
}

// activateCircleEvent schedules the collapse of the arc of site2 squeezed
// between site1 and site3, attaching the event to the (site2, site3) node.
func (b *Builder) activateCircleEvent(site1, site2, site3 siteEvent, node *rbtNode) {
	e := &circleEvent{}
	if !circleFormationPredicate(site1, site2, site3, e) {
		return
	}
	e.node = node
	node.value.data.circle = e
	b.circleEvents.push(e)
}
