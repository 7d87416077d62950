package voronoi

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func construct(t *testing.T, points []Point, segments [][2]Point) *Diagram {
	t.Helper()

	b := NewBuilder()
	for _, p := range points {
		_, err := b.AddPoint(p.X, p.Y)
		require.NoError(t, err)
	}
	for _, s := range segments {
		_, err := b.AddSegment(s[0].X, s[0].Y, s[1].X, s[1].Y)
		require.NoError(t, err)
	}
	d, err := b.Construct()
	require.NoError(t, err)
	require.NoError(t, CheckDiagram(d))
	return d
}

// eulerCharacteristic is V - E + C counting edge pairs once. For every
// valid diagram of at least one site it equals 1: unbounded faces close
// through infinity.
func eulerCharacteristic(d *Diagram) int {
	return d.NumVertices() - d.NumEdges() + d.NumCells()
}

func TestConstructEmpty(t *testing.T) {
	d := construct(t, nil, nil)
	assert.Zero(t, d.NumCells())
	assert.Zero(t, d.NumEdges())
	assert.Zero(t, d.NumVertices())
}

func TestConstructSinglePoint(t *testing.T) {
	d := construct(t, []Point{{3, 7}}, nil)

	require.Equal(t, 1, d.NumCells())
	assert.Zero(t, d.NumEdges())
	assert.Zero(t, d.NumVertices())

	cell := d.Cells()[0]
	assert.True(t, cell.IsDegenerate())
	assert.True(t, cell.ContainsPoint())
	assert.Equal(t, 0, cell.SourceIndex())
}

func TestConstructTwoPoints(t *testing.T) {
	d := construct(t, []Point{{0, 0}, {4, 4}}, nil)

	assert.Equal(t, 2, d.NumCells())
	assert.Equal(t, 1, d.NumEdges())
	assert.Equal(t, 0, d.NumVertices())

	for _, edge := range d.Edges() {
		assert.True(t, edge.IsInfinite())
		assert.True(t, edge.IsLinear())
		assert.True(t, edge.IsPrimary())
	}
	assert.Equal(t, 1, eulerCharacteristic(d))
}

func TestConstructTriangle(t *testing.T) {
	// Circumcenter of (0,0), (4,0), (0,4) is (2,2).
	d := construct(t, []Point{{0, 0}, {4, 0}, {0, 4}}, nil)

	assert.Equal(t, 3, d.NumCells())
	assert.Equal(t, 3, d.NumEdges())
	require.Equal(t, 1, d.NumVertices())

	v := d.Vertices()[0]
	assert.InDelta(t, 2.0, v.X, 1e-9)
	assert.InDelta(t, 2.0, v.Y, 1e-9)
	assert.Equal(t, 1, eulerCharacteristic(d))

	// Three rays rotate around the single vertex.
	count := 0
	edge := v.IncidentEdge()
	for {
		count++
		assert.Same(t, v, edge.Vertex0())
		edge = edge.RotNext()
		if edge == v.IncidentEdge() {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestConstructCollinearPoints(t *testing.T) {
	d := construct(t, []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, nil)

	assert.Equal(t, 4, d.NumCells())
	assert.Equal(t, 3, d.NumEdges())
	assert.Equal(t, 0, d.NumVertices())
	assert.Equal(t, 1, eulerCharacteristic(d))
}

func TestConstructVerticalCollinearPoints(t *testing.T) {
	// Leading vertical run exercises the collinear beachline seeding.
	d := construct(t, []Point{{0, 0}, {0, 2}, {0, 4}}, nil)

	assert.Equal(t, 3, d.NumCells())
	assert.Equal(t, 2, d.NumEdges())
	assert.Equal(t, 0, d.NumVertices())
}

func TestConstructSquare(t *testing.T) {
	// Cocircular sites: the two coincident sweep vertices collapse into one.
	d := construct(t, []Point{{0, 0}, {4, 0}, {0, 4}, {4, 4}}, nil)

	assert.Equal(t, 4, d.NumCells())
	assert.Equal(t, 4, d.NumEdges())
	require.Equal(t, 1, d.NumVertices())
	assert.InDelta(t, 2.0, d.Vertices()[0].X, 1e-9)
	assert.InDelta(t, 2.0, d.Vertices()[0].Y, 1e-9)
	assert.Equal(t, 1, eulerCharacteristic(d))
}

func TestConstructDuplicatePoints(t *testing.T) {
	d := construct(t, []Point{{1, 1}, {5, 5}, {1, 1}}, nil)

	// Coincident sites share one cell.
	assert.Equal(t, 2, d.NumCells())
	assert.Equal(t, 1, d.NumEdges())
}

func TestConstructGrid(t *testing.T) {
	var points []Point
	for i := int32(0); i < 3; i++ {
		for j := int32(0); j < 3; j++ {
			points = append(points, Point{2 * i, 2 * j})
		}
	}
	d := construct(t, points, nil)

	assert.Equal(t, 9, d.NumCells())
	assert.Equal(t, 4, d.NumVertices())
	assert.Equal(t, 12, d.NumEdges())
	assert.Equal(t, 1, eulerCharacteristic(d))
}

func TestConstructRandomPoints(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	seen := make(map[Point]bool)
	var points []Point
	for len(points) < 40 {
		p := Point{int32(rnd.Intn(1000)), int32(rnd.Intn(1000))}
		if !seen[p] {
			seen[p] = true
			points = append(points, p)
		}
	}
	d := construct(t, points, nil)

	assert.Equal(t, 40, d.NumCells())
	assert.Equal(t, 1, eulerCharacteristic(d))
}

func TestConstructSingleSegment(t *testing.T) {
	d := construct(t, nil, [][2]Point{{{0, 0}, {4, 0}}})

	// Two endpoint cells, one body cell, split by the two perpendiculars.
	require.Equal(t, 3, d.NumCells())
	assert.Equal(t, 2, d.NumEdges())
	assert.Equal(t, 0, d.NumVertices())
	assert.Equal(t, 1, eulerCharacteristic(d))

	for _, edge := range d.Edges() {
		assert.True(t, edge.IsSecondary())
		assert.True(t, edge.IsLinear())
	}

	categories := make(map[SourceCategory]int)
	for _, cell := range d.Cells() {
		categories[cell.SourceCategory()]++
		assert.Equal(t, 0, cell.SourceIndex())
	}
	assert.Equal(t, 1, categories[SourceSegmentStartPoint])
	assert.Equal(t, 1, categories[SourceSegmentEndPoint])
	assert.Equal(t, 1, categories[SourceInitialSegment])
}

func TestConstructSegmentAndPoint(t *testing.T) {
	d := construct(t, []Point{{2, 2}}, [][2]Point{{{0, 0}, {4, 0}}})

	require.Equal(t, 4, d.NumCells())
	assert.Equal(t, 2, d.NumVertices())
	assert.Equal(t, 5, d.NumEdges())
	assert.Equal(t, 1, eulerCharacteristic(d))

	// The point/body bisector is the only parabolic arc.
	curved := 0
	for _, edge := range d.Edges() {
		if edge.IsCurved() {
			curved++
			assert.True(t, edge.IsPrimary())
			assert.True(t, edge.IsFinite())
		}
	}
	assert.Equal(t, 2, curved)

	// Parabola ends: equidistant from endpoint, body and the point site.
	var xs []float64
	for _, v := range d.Vertices() {
		assert.InDelta(t, 2.0, v.Y, 1e-9)
		xs = append(xs, v.X)
	}
	assert.InDelta(t, 4.0, xs[0]+xs[1], 1e-9)
}

func TestConstructParallelSegments(t *testing.T) {
	d := construct(t, nil, [][2]Point{
		{{0, 0}, {4, 0}},
		{{0, 4}, {4, 4}},
	})

	assert.Equal(t, 6, d.NumCells())
	assert.Equal(t, 2, d.NumVertices())
	assert.Equal(t, 7, d.NumEdges())
	assert.Equal(t, 1, eulerCharacteristic(d))

	for _, v := range d.Vertices() {
		assert.InDelta(t, 2.0, v.Y, 1e-9)
	}
}

func TestConstructSegmentsSharingEndpoint(t *testing.T) {
	d := construct(t, nil, [][2]Point{
		{{0, 0}, {4, 0}},
		{{0, 0}, {0, 4}},
	})

	// The shared endpoint deduplicates into one cell: two bodies, three
	// endpoint cells.
	assert.Equal(t, 5, d.NumCells())
	assert.Equal(t, 1, eulerCharacteristic(d))
}

func TestAddSegmentZeroLength(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddSegment(1, 1, 1, 1)
	assert.ErrorIs(t, err, ErrZeroLengthSegment)
}

func TestBuilderSingleUse(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddPoint(0, 0)
	require.NoError(t, err)
	_, err = b.Construct()
	require.NoError(t, err)

	_, err = b.AddPoint(1, 1)
	assert.ErrorIs(t, err, ErrConstructed)
	_, err = b.AddSegment(0, 0, 1, 1)
	assert.ErrorIs(t, err, ErrConstructed)
	_, err = b.Construct()
	assert.ErrorIs(t, err, ErrConstructed)
}

func TestCellChainsAreClosed(t *testing.T) {
	d := construct(t, []Point{{0, 0}, {6, 1}, {3, 5}, {8, 8}}, nil)

	for _, cell := range d.Cells() {
		require.False(t, cell.IsDegenerate())
		start := cell.IncidentEdge()
		edge := start
		for {
			assert.Same(t, cell, edge.Cell())
			assert.Same(t, edge, edge.Twin().Twin())
			edge = edge.Next()
			if edge == start {
				break
			}
		}
	}
}

func TestBeachLineStaysConsistent(t *testing.T) {
	b := NewBuilder()
	points := []Point{{0, 0}, {4, 0}, {0, 4}, {4, 4}, {2, 6}, {7, 3}}
	for _, p := range points {
		_, err := b.AddPoint(p.X, p.Y)
		require.NoError(t, err)
	}

	b.initSitesQueue()
	b.diagram = &Diagram{}
	b.diagram.reserve(len(b.siteEvents))
	b.initBeachLine()
	require.NoError(t, b.checkBeachLine())

	for b.siteIndex < len(b.siteEvents) || !b.circleEvents.empty() {
		if b.siteIndex >= len(b.siteEvents) {
			b.processCircleEvent()
		} else if top := b.circleEvents.top(); top != nil &&
			circleIsBefore(top, b.siteEvents[b.siteIndex]) {
			b.processCircleEvent()
		} else {
			b.processSiteEvent()
		}
		require.NoError(t, b.checkBeachLine())
	}

	b.diagram.build()
	require.NoError(t, CheckDiagram(b.diagram))
	assert.Equal(t, len(points), b.diagram.NumCells())
}

func TestConstructIsDeterministic(t *testing.T) {
	points := []Point{{1, 7}, {8, 2}, {5, 9}, {3, 3}, {9, 9}}
	segments := [][2]Point{{{0, 0}, {10, 0}}, {{0, 10}, {10, 10}}}

	d1 := construct(t, points, segments)
	d2 := construct(t, points, segments)

	require.Equal(t, d1.NumCells(), d2.NumCells())
	require.Equal(t, d1.NumVertices(), d2.NumVertices())
	require.Equal(t, d1.NumEdges(), d2.NumEdges())

	for i, v := range d1.Vertices() {
		assert.Equal(t, v.X, d2.Vertices()[i].X)
		assert.Equal(t, v.Y, d2.Vertices()[i].Y)
	}
	for i, cell := range d1.Cells() {
		other := d2.Cells()[i]
		assert.Equal(t, cell.SourceIndex(), other.SourceIndex())
		assert.Equal(t, cell.SourceCategory(), other.SourceCategory())
	}
	for i, edge := range d1.Edges() {
		other := d2.Edges()[i]
		assert.Equal(t, edge.IsPrimary(), other.IsPrimary())
		assert.Equal(t, edge.IsLinear(), other.IsLinear())
		assert.Equal(t, edge.IsFinite(), other.IsFinite())
	}
}

func TestVertexCoordinatesAreFinite(t *testing.T) {
	d := construct(t,
		[]Point{{1, 7}, {8, 2}, {5, 9}},
		[][2]Point{{{0, 0}, {10, 0}}},
	)

	for _, v := range d.Vertices() {
		assert.False(t, math.IsNaN(v.X) || math.IsInf(v.X, 0))
		assert.False(t, math.IsNaN(v.Y) || math.IsInf(v.Y, 0))
	}
	assert.Equal(t, 1, eulerCharacteristic(d))
}
