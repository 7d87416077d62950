package voronoi

// beachNodeKey identifies one bisector of the beachline by the pair of
// sites bounding it: leftSite owns the arc above, rightSite the arc below.
// A node inserted for a single new arc carries the same site twice.
type beachNodeKey struct {
	leftSite  siteEvent
	rightSite siteEvent
}

func newBeachNodeKey(site siteEvent) beachNodeKey {
	return beachNodeKey{leftSite: site, rightSite: site}
}

// comparisonSite returns the newer of the two sites: the one that was still
// on the sweep line when the node was created.
func (k *beachNodeKey) comparisonSite() siteEvent {
	if k.leftSite.sortedIndex > k.rightSite.sortedIndex {
		return k.leftSite
	}
	return k.rightSite
}

// comparisonY returns the y coordinate the node compares at, paired with a
// direction that breaks ties between nodes sharing the coordinate.
func (k *beachNodeKey) comparisonY(isNewNode bool) (int32, int) {
	if k.leftSite.sortedIndex == k.rightSite.sortedIndex {
		return k.leftSite.y0(), 0
	}
	if k.leftSite.sortedIndex > k.rightSite.sortedIndex {
		if !isNewNode && k.leftSite.isSegment() && k.leftSite.isVertical() {
			return k.leftSite.y0(), 1
		}
		return k.leftSite.y1(), 1
	}
	return k.rightSite.y0(), -1
}

// beachNodeData is the mutable payload of a beachline node: the diagram
// edge traced by this bisector and the pending collapse event of the arc to
// its right, if any.
type beachNodeData struct {
	edge   *Edge
	circle *circleEvent
}

type beachNode struct {
	key  beachNodeKey
	data beachNodeData
}

// deactivateCircle cancels the pending circle event attached to the node.
func (n *beachNode) deactivateCircle() {
	if n.data.circle != nil {
		n.data.circle.deactivate()
		n.data.circle = nil
	}
}
