package voronoi

// Point is an input coordinate pair. Coordinates are 32-bit so that every
// intermediate predicate value fits the widened types used by the exact
// arithmetic (int64 products, float64 filters, big.Int fallback).
type Point struct {
	X, Y int32
}

// pointLess is the canonical input-point ordering: by x, then by y.
func pointLess(lhs, rhs Point) bool {
	if lhs.X == rhs.X {
		return lhs.Y < rhs.Y
	}
	return lhs.X < rhs.X
}

// Vertex is a finalized diagram point. Output coordinates are floating
// point: circle centers are generally irrational even for integer sites.
type Vertex struct {
	X, Y float64

	incidentEdge *Edge
}

// IncidentEdge returns one of the edges rotating around the vertex, or nil
// for a vertex that lost all its edges to degenerate-edge collapsing.
func (v *Vertex) IncidentEdge() *Edge { return v.incidentEdge }
