package voronoi

import (
	"errors"
	"fmt"
)

// ErrInconsistent wraps every violation reported by CheckDiagram and the
// internal beachline checker.
var ErrInconsistent = errors.New("voronoi: inconsistent structure")

// checkBeachLine verifies the live beachline during a sweep: neighbor link
// symmetry, agreement of neighboring node keys and circle event
// back-pointers. Used by tests; the sweep itself never calls it.
func (b *Builder) checkBeachLine() error {
	var prev *rbtNode
	for node := b.beachLine.first(); node != nil; node = node.next {
		if node.previous != prev {
			return fmt.Errorf("%w: beachline previous link broken", ErrInconsistent)
		}
		if prev != nil && prev.next != node {
			return fmt.Errorf("%w: beachline next link broken", ErrInconsistent)
		}
		if prev != nil {
			// Neighboring bisectors share the site of the arc between them.
			left := prev.value.key.rightSite
			right := node.value.key.leftSite
			if left.sortedIndex != right.sortedIndex {
				return fmt.Errorf("%w: neighboring nodes disagree on the shared arc (%d vs %d)",
					ErrInconsistent, left.sortedIndex, right.sortedIndex)
			}
		}
		if c := node.value.data.circle; c != nil && c.active && c.node != node {
			return fmt.Errorf("%w: circle event points at a foreign node", ErrInconsistent)
		}
		prev = node
	}
	return nil
}

// CheckDiagram walks a finished diagram and returns the first structural
// violation found, or nil. It verifies half-edge twin symmetry, next/prev
// ring closure, cell membership along the rings and vertex incidence.
func CheckDiagram(d *Diagram) error {
	for i, edge := range d.edges {
		if edge.twin == nil || edge.twin.twin != edge {
			return fmt.Errorf("%w: edge %d has broken twin", ErrInconsistent, i)
		}
		if edge.twin == edge {
			return fmt.Errorf("%w: edge %d is its own twin", ErrInconsistent, i)
		}
		if edge.cell == nil {
			return fmt.Errorf("%w: edge %d has no cell", ErrInconsistent, i)
		}
		if edge.next == nil || edge.prev == nil {
			return fmt.Errorf("%w: edge %d has open next/prev links", ErrInconsistent, i)
		}
		if edge.next.prev != edge || edge.prev.next != edge {
			return fmt.Errorf("%w: edge %d has asymmetric next/prev links", ErrInconsistent, i)
		}
		if edge.next.cell != edge.cell {
			return fmt.Errorf("%w: edge %d leaves its cell along next", ErrInconsistent, i)
		}
		if v0 := edge.vertex0; v0 != nil && edge.prev.twin.vertex0 != v0 {
			return fmt.Errorf("%w: edge %d disagrees with rot ring on vertex0", ErrInconsistent, i)
		}
	}

	for i, cell := range d.cells {
		start := cell.incidentEdge
		if start == nil {
			// Degenerate cell of a deduplicated site.
			continue
		}
		edge := start
		for steps := 0; ; steps++ {
			if edge.cell != cell {
				return fmt.Errorf("%w: cell %d chain visits a foreign edge", ErrInconsistent, i)
			}
			edge = edge.next
			if edge == start {
				break
			}
			if steps > len(d.edges) {
				return fmt.Errorf("%w: cell %d chain does not close", ErrInconsistent, i)
			}
		}
	}

	for i, vertex := range d.vertices {
		start := vertex.incidentEdge
		if start == nil {
			return fmt.Errorf("%w: vertex %d has no incident edge", ErrInconsistent, i)
		}
		edge := start
		for steps := 0; ; steps++ {
			if edge.vertex0 != vertex {
				return fmt.Errorf("%w: vertex %d rot ring visits a foreign edge", ErrInconsistent, i)
			}
			edge = edge.RotNext()
			if edge == start {
				break
			}
			if steps > len(d.edges) {
				return fmt.Errorf("%w: vertex %d rot ring does not close", ErrInconsistent, i)
			}
		}
	}
	return nil
}
