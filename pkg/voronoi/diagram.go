package voronoi

// Cell is one Voronoi region. It remembers which input site produced it:
// sourceIndex is the index the site had in the input sequence, and the
// category tells whether the cell grew from a point, a segment, or a
// segment endpoint.
type Cell struct {
	sourceIndex  int
	category     SourceCategory
	incidentEdge *Edge
}

func (c *Cell) SourceIndex() int                { return c.sourceIndex }
func (c *Cell) SourceCategory() SourceCategory  { return c.category }
func (c *Cell) IncidentEdge() *Edge             { return c.incidentEdge }
func (c *Cell) ContainsPoint() bool             { return c.category.IsPoint() }
func (c *Cell) ContainsSegment() bool           { return c.category.IsSegment() }
func (c *Cell) IsDegenerate() bool              { return c.incidentEdge == nil }

// Edge is one half-edge of the diagram. Edges come in twin pairs; next and
// prev walk the boundary of the owning cell counterclockwise. vertex0 is
// the start point, nil for an infinite edge.
type Edge struct {
	twin    *Edge
	next    *Edge
	prev    *Edge
	cell    *Cell
	vertex0 *Vertex

	isLinear  bool
	isPrimary bool
}

func (e *Edge) Twin() *Edge { return e.twin }
func (e *Edge) Next() *Edge { return e.next }
func (e *Edge) Prev() *Edge { return e.prev }
func (e *Edge) Cell() *Cell { return e.cell }

func (e *Edge) Vertex0() *Vertex { return e.vertex0 }
func (e *Edge) Vertex1() *Vertex { return e.twin.vertex0 }

// RotNext returns the next edge around the start vertex, counterclockwise.
func (e *Edge) RotNext() *Edge { return e.prev.twin }

// RotPrev returns the previous edge around the start vertex.
func (e *Edge) RotPrev() *Edge { return e.twin.next }

// IsPrimary reports whether the edge separates two distinct input sites
// rather than a segment from one of its own endpoints.
func (e *Edge) IsPrimary() bool   { return e.isPrimary }
func (e *Edge) IsSecondary() bool { return !e.isPrimary }

// IsLinear reports whether the edge is a straight bisector; the bisector of
// a point and a segment interior is a parabolic arc.
func (e *Edge) IsLinear() bool { return e.isLinear }
func (e *Edge) IsCurved() bool { return !e.isLinear }

func (e *Edge) IsFinite() bool   { return e.vertex0 != nil && e.twin.vertex0 != nil }
func (e *Edge) IsInfinite() bool { return !e.IsFinite() }

// Diagram is the output graph: cells in site processing order, plus the
// vertices and half-edges connecting them. It is read-only once built.
type Diagram struct {
	cells    []*Cell
	vertices []*Vertex
	edges    []*Edge
}

func (d *Diagram) Cells() []*Cell       { return d.cells }
func (d *Diagram) Vertices() []*Vertex  { return d.vertices }
func (d *Diagram) Edges() []*Edge       { return d.edges }
func (d *Diagram) NumCells() int        { return len(d.cells) }
func (d *Diagram) NumVertices() int     { return len(d.vertices) }
func (d *Diagram) NumEdges() int        { return len(d.edges) / 2 }

func (d *Diagram) reserve(numSites int) {
	edgeCap := 0
	if numSites > 0 {
		edgeCap = 2 * (2*numSites - 1)
	}
	d.cells = make([]*Cell, 0, numSites)
	d.vertices = make([]*Vertex, 0, numSites)
	d.edges = make([]*Edge, 0, edgeCap)
}

func isPrimaryEdge(site1, site2 siteEvent) bool {
	flag1 := site1.isSegment()
	flag2 := site2.isSegment()
	if flag1 && !flag2 {
		return site1.point0 != site2.point0 && site1.point1 != site2.point0
	}
	if flag2 && !flag1 {
		return site2.point0 != site1.point0 && site2.point1 != site1.point0
	}
	return true
}

func isLinearEdge(site1, site2 siteEvent) bool {
	if !isPrimaryEdge(site1, site2) {
		return true
	}
	return site1.isSegment() == site2.isSegment()
}

// processSingleSite handles the degenerate one-site input: a single cell
// with no edges.
func (d *Diagram) processSingleSite(site siteEvent) {
	d.cells = append(d.cells, &Cell{
		sourceIndex: site.initialIndex,
		category:    site.sourceCategory(),
	})
}

// insertNewEdge creates the twin pair tracing the bisector between site1
// and site2. site2 is the site being processed, so its cell is appended
// here; the very first insertion also appends site1's cell. Cells end up
// indexed by sorted site order.
func (d *Diagram) insertNewEdge(site1, site2 siteEvent) (*Edge, *Edge) {
	isLinear := isLinearEdge(site1, site2)
	isPrimary := isPrimaryEdge(site1, site2)
	edge1 := &Edge{isLinear: isLinear, isPrimary: isPrimary}
	edge2 := &Edge{isLinear: isLinear, isPrimary: isPrimary}
	d.edges = append(d.edges, edge1, edge2)

	if len(d.cells) == 0 {
		d.cells = append(d.cells, &Cell{
			sourceIndex: site1.initialIndex,
			category:    site1.sourceCategory(),
		})
	}
	d.cells = append(d.cells, &Cell{
		sourceIndex: site2.initialIndex,
		category:    site2.sourceCategory(),
	})

	edge1.cell = d.cells[site1.sortedIndex]
	edge2.cell = d.cells[site2.sortedIndex]
	edge1.twin = edge2
	edge2.twin = edge1
	return edge1, edge2
}

// insertNewEdgeWithVertex adds the diagram vertex born from a circle event
// and the new twin pair between the two outer sites, splicing it into the
// half-edge rings of the two collapsing bisectors.
func (d *Diagram) insertNewEdgeWithVertex(site1, site3 siteEvent, c *circleEvent, edge12, edge23 *Edge) (*Edge, *Edge) {
	vertex := &Vertex{X: c.x, Y: c.y}
	d.vertices = append(d.vertices, vertex)

	edge12.vertex0 = vertex
	edge23.vertex0 = vertex

	isLinear := isLinearEdge(site1, site3)
	isPrimary := isPrimaryEdge(site1, site3)
	newEdge1 := &Edge{isLinear: isLinear, isPrimary: isPrimary, cell: d.cells[site1.sortedIndex]}
	newEdge2 := &Edge{isLinear: isLinear, isPrimary: isPrimary, cell: d.cells[site3.sortedIndex]}
	d.edges = append(d.edges, newEdge1, newEdge2)

	newEdge1.twin = newEdge2
	newEdge2.twin = newEdge1
	newEdge2.vertex0 = vertex

	edge12.prev = newEdge1
	newEdge1.next = edge12
	edge12.twin.next = edge23
	edge23.prev = edge12.twin
	edge23.twin.next = newEdge2
	newEdge2.prev = edge23.twin

	return newEdge1, newEdge2
}

func vertexEqual(v1, v2 *Vertex) bool {
	return ulpCompare(v1.X, v2.X, ulps) == 0 && ulpCompare(v1.Y, v2.Y, ulps) == 0
}

// removeEdge splices a zero-length edge pair out of the graph, rerouting
// every edge incident to its end vertex onto its start vertex.
func (d *Diagram) removeEdge(edge *Edge) {
	vertex := edge.vertex0
	for updated := edge.twin.RotNext(); updated != edge.twin; updated = updated.RotNext() {
		updated.vertex0 = vertex
	}
	edge1 := edge
	edge2 := edge.twin
	edge1RotPrev := edge1.RotPrev()
	edge1RotNext := edge1.RotNext()
	edge2RotPrev := edge2.RotPrev()
	edge2RotNext := edge2.RotNext()

	edge1RotNext.twin.next = edge2RotPrev
	edge2RotPrev.prev = edge1RotNext.twin
	edge1RotPrev.prev = edge2RotNext.twin
	edge2RotNext.twin.next = edge1RotPrev
}

// build finalizes the graph once the sweep is done: degenerate edges and
// vertices are removed, incident pointers are set, and the boundary chains
// of unbounded cells are closed through their infinite edges.
func (d *Diagram) build() {
	// Remove degenerate edges.
	kept := d.edges[:0]
	for i := 0; i < len(d.edges); i += 2 {
		edge := d.edges[i]
		v1 := edge.Vertex0()
		v2 := edge.Vertex1()
		if v1 != nil && v2 != nil && vertexEqual(v1, v2) {
			d.removeEdge(edge)
		} else {
			kept = append(kept, edge, edge.twin)
		}
	}
	for i := len(kept); i < len(d.edges); i++ {
		d.edges[i] = nil
	}
	d.edges = kept

	// Set up incident pointers for cells and vertices.
	for _, edge := range d.edges {
		edge.cell.incidentEdge = edge
		if edge.vertex0 != nil {
			edge.vertex0.incidentEdge = edge
		}
	}

	// Drop vertices every incident edge of which was degenerate.
	keptVertices := d.vertices[:0]
	for _, vertex := range d.vertices {
		if vertex.incidentEdge != nil {
			keptVertices = append(keptVertices, vertex)
		}
	}
	for i := len(keptVertices); i < len(d.vertices); i++ {
		d.vertices[i] = nil
	}
	d.vertices = keptVertices

	if len(d.vertices) == 0 {
		// Without a single vertex every edge is a full line: close each
		// pair onto itself or its collinear neighbor.
		if len(d.edges) > 0 {
			edge1 := d.edges[0]
			edge1.next = edge1
			edge1.prev = edge1
			for i := 1; i+2 < len(d.edges); i += 2 {
				edge1 = d.edges[i]
				edge2 := d.edges[i+1]
				edge1.next = edge2
				edge1.prev = edge2
				edge2.next = edge1
				edge2.prev = edge1
			}
			last := d.edges[len(d.edges)-1]
			last.next = last
			last.prev = last
		}
		return
	}

	// Close the boundary chain of every unbounded cell through its two
	// infinite edges.
	for _, cell := range d.cells {
		if cell.IsDegenerate() {
			continue
		}
		leftEdge := cell.incidentEdge
		for leftEdge.prev != nil {
			leftEdge = leftEdge.prev
			if leftEdge == cell.incidentEdge {
				break
			}
		}
		if leftEdge.prev != nil {
			continue
		}
		rightEdge := cell.incidentEdge
		for rightEdge.next != nil {
			rightEdge = rightEdge.next
		}
		leftEdge.prev = rightEdge
		rightEdge.next = leftEdge
	}
}
