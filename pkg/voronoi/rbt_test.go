package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collinearNodes(t *testing.T) (*rbt, []*rbtNode) {
	t.Helper()

	tree := &rbt{}
	sites := make([]siteEvent, 4)
	for i := range sites {
		sites[i] = newPointSite(Point{0, int32(i * 2)})
		sites[i].sortedIndex = i
	}

	var nodes []*rbtNode
	for i := 1; i < len(sites); i++ {
		node := tree.insertBefore(nil, &beachNode{
			key: beachNodeKey{leftSite: sites[i-1], rightSite: sites[i]},
		})
		nodes = append(nodes, node)
	}
	return tree, nodes
}

func TestRbtThreading(t *testing.T) {
	tree, nodes := collinearNodes(t)

	require.Equal(t, 3, tree.len())
	require.Same(t, nodes[0], tree.first())
	require.Same(t, nodes[2], tree.last())

	var walked []*rbtNode
	for node := tree.first(); node != nil; node = node.next {
		walked = append(walked, node)
	}
	require.Equal(t, nodes, walked)

	for i, node := range nodes {
		if i == 0 {
			assert.Nil(t, node.previous)
		} else {
			assert.Same(t, nodes[i-1], node.previous)
		}
	}
}

func TestRbtInsertBefore(t *testing.T) {
	tree, nodes := collinearNodes(t)

	extra := newPointSite(Point{0, 1})
	extra.sortedIndex = 4
	inserted := tree.insertBefore(nodes[1], &beachNode{key: newBeachNodeKey(extra)})

	assert.Equal(t, 4, tree.len())
	assert.Same(t, nodes[0], inserted.previous)
	assert.Same(t, nodes[1], inserted.next)
	assert.Same(t, inserted, nodes[0].next)
	assert.Same(t, inserted, nodes[1].previous)
}

func TestRbtRemoveKeepsLinks(t *testing.T) {
	tree, nodes := collinearNodes(t)

	tree.removeNode(nodes[1])

	assert.Equal(t, 2, tree.len())
	assert.Same(t, nodes[2], nodes[0].next)
	assert.Same(t, nodes[0], nodes[2].previous)
	assert.Same(t, nodes[0], tree.first())
	assert.Same(t, nodes[2], tree.last())
}

func TestRbtLowerBound(t *testing.T) {
	tree, nodes := collinearNodes(t)

	// Sites at y = 0, 2, 4, 6; bisector nodes at y = 1, 3, 5. A probe
	// point picks the first node at or above its own y.
	tests := []struct {
		name string
		y    int32
		want *rbtNode
	}{
		{"below everything", 0, nodes[0]},
		{"between first and second", 2, nodes[1]},
		{"between second and third", 4, nodes[2]},
		{"above everything", 7, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := newPointSite(Point{3, tt.y})
			probe.sortedIndex = 10
			key := newBeachNodeKey(probe)
			got := tree.lowerBound(&key)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				assert.Same(t, tt.want, got)
			}
		})
	}
}
