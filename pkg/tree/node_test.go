package tree

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func values[I comparable, V any](nodes []*Node[I, V]) []V {
	ret := []V{}
	for _, n := range nodes {
		ret = append(ret, n.Value())
	}
	return ret
}

func checkCount[I comparable, V any](t *testing.T, n *Node[I, V]) {
	t.Helper()
	sum := 1
	for _, child := range n.Children() {
		checkCount(t, child)
		sum += child.Count()
	}
	assert.Equal(t, sum, n.Count())
	assert.GreaterOrEqual(t, n.Count(), 1)
	assert.GreaterOrEqual(t, n.Depth(), 1)
	if n.IsLeaf() {
		assert.Equal(t, 1, n.Depth())
	}
}

func TestNodeCountDepth(t *testing.T) {
	cases := map[string]struct {
		node          *Node[string, int]
		expectedCount int
		expectedDepth int
	}{
		"Leaf": {
			node:          NewNode("a", 0),
			expectedCount: 1,
			expectedDepth: 1,
		},
		"Flat": {
			node:          Build("a", 0, NewNode("b", 1), NewNode("c", 2)),
			expectedCount: 3,
			expectedDepth: 2,
		},
		"Unbalanced": {
			node: Build("a", 0,
				NewNode("b", 1),
				Build("c", 2,
					Build("d", 3,
						NewNode("e", 4),
					),
				),
				NewNode("f", 5),
			),
			expectedCount: 6,
			expectedDepth: 4,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expectedCount, tc.node.Count())
			assert.Equal(t, tc.expectedDepth, tc.node.Depth())
			checkCount(t, tc.node)
		})
	}
}

func TestNodeWithChildren(t *testing.T) {
	n := NewNode("a", "a").
		WithChild(NewNode("old", "old")).
		WithChildren(NewNode("a1", "a1"), NewNode("a2", "a2"))

	assert.NotNil(t, n.Query("a"))
	assert.NotNil(t, n.Query("a1"))
	assert.NotNil(t, n.Query("a2"))
	assert.Nil(t, n.Query("old"))
	assert.Equal(t, []string{"a1", "a2"}, childIDs(n))

	n.AddChild(nil)
	assert.Equal(t, 2, n.Len())
}

func TestNodeRemoveChild(t *testing.T) {
	n := Build("a", 0,
		NewNode("x", 1),
		Build("b", 2, NewNode("x", 3)),
		NewNode("x", 4),
		NewNode("c", 5),
	)

	n.RemoveChild("x")
	assert.Equal(t, []string{"b", "c"}, childIDs(n))
	// not recursive
	assert.NotNil(t, n.Query("x"))
	assert.Equal(t, 3, n.Query("x").Value())

	n.RemoveChild("never-added")
	assert.Equal(t, []string{"b", "c"}, childIDs(n))
}

func TestNodeDuplicateIDs(t *testing.T) {
	n := Build("root", 0,
		Build("a", 1,
			NewNode("dup", 2),
		),
		NewNode("dup", 3),
	)

	assert.Equal(t, 2, n.Query("dup").Value())
	route, ok := n.RouteByNode("dup")
	assert.True(t, ok)
	assert.Equal(t, Route{0, 0}, route)
	assert.Equal(t, "a", n.Parent("dup").ID())
}

func TestNodeTruncate(t *testing.T) {
	cases := map[string]struct {
		depth         int
		expectedCount int
		expectedDepth int
	}{
		"Zero": {
			depth:         0,
			expectedCount: 1,
			expectedDepth: 1,
		},
		"One": {
			depth:         1,
			expectedCount: 3,
			expectedDepth: 2,
		},
		"Two": {
			depth:         2,
			expectedCount: 6,
			expectedDepth: 3,
		},
		"NoopAtDepthMinusOne": {
			depth:         3,
			expectedCount: 8,
			expectedDepth: 4,
		},
		"NoopBeyond": {
			depth:         10,
			expectedCount: 8,
			expectedDepth: 4,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			tr := newFsTree()
			before := tr.String()

			tr.Root().Truncate(tc.depth)
			assert.Equal(t, tc.expectedCount, tr.Count())
			assert.Equal(t, tc.expectedDepth, tr.Depth())
			if tc.depth == 0 {
				assert.True(t, tr.Root().IsLeaf())
			}
			if tc.depth >= 3 {
				assert.Equal(t, before, tr.String())
			}
		})
	}

	tr := newFsTree()
	tr.Root().Truncate(1)
	assert.Equal(t, []string{"/bin", "/home"}, childIDs(tr.Root()))
	assert.True(t, tr.Root().Child(0).IsLeaf())
	assert.True(t, tr.Root().Child(1).IsLeaf())
}

func TestNodeSort(t *testing.T) {
	n := Build("/", 0,
		NewNode("8", 8),
		NewNode("7", 7),
		NewNode("3", 3),
		NewNode("1", 1),
		NewNode("2", 2),
		NewNode("9", 9),
		NewNode("5", 5),
		NewNode("4", 4),
		NewNode("6", 6),
	)

	n.Sort(func(a, b *Node[string, int]) int { return a.Value() - b.Value() })
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6, 7, 8, 9}, values(n.Children())); diff != "" {
		t.Errorf("sort: -want, +got:\n%s", diff)
	}
	// routes follow the new order
	route, _ := n.RouteByNode("1")
	assert.Equal(t, Route{0}, route)
}

func TestNodeSortNotRecursive(t *testing.T) {
	n := Build("r", 0,
		Build("b", 2, NewNode("z", 9), NewNode("y", 8)),
		NewNode("a", 1),
	)
	n.Sort(func(a, b *Node[string, int]) int { return a.Value() - b.Value() })
	assert.Equal(t, []string{"a", "b"}, childIDs(n))
	assert.Equal(t, []string{"z", "y"}, childIDs(n.Query("b")))
}

func TestNodeFind(t *testing.T) {
	n := Build("a", 0,
		Build("b", 2,
			NewNode("c", 7),
			NewNode("d", 13),
		),
		Build("e", 16,
			Build("f", 75,
				NewNode("g", 68),
			),
			NewNode("h", 12),
		),
		Build("i", 9,
			NewNode("j", 4),
		),
	)

	all := n.Find(func(*Node[string, int]) bool { return true })
	assert.Equal(t, []int{0, 2, 7, 13, 16, 75, 68, 12, 9, 4}, values(all))

	even := n.Find(func(n *Node[string, int]) bool { return n.Value()%2 == 0 })
	assert.Equal(t, []int{0, 2, 16, 68, 12, 4}, values(even))

	none := n.Find(func(n *Node[string, int]) bool { return n.Value() > 100 })
	assert.Empty(t, none)
}

func TestNodeWalk(t *testing.T) {
	n := Build("a", 0,
		Build("b", 1, NewNode("c", 2)),
		NewNode("d", 3),
	)

	got := map[string]Route{}
	n.Walk(func(n *Node[string, int], route Route) bool {
		got[n.ID()] = route.Copy()
		return true
	})
	want := map[string]Route{
		"a": {},
		"b": {0},
		"c": {0, 0},
		"d": {1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("walk: -want, +got:\n%s", diff)
	}

	visited := []string{}
	n.Walk(func(n *Node[string, int], _ Route) bool {
		visited = append(visited, n.ID())
		return n.ID() != "c"
	})
	assert.Equal(t, []string{"a", "b", "c"}, visited)
}

func TestNodeIterateSubtree(t *testing.T) {
	tr := newFsTree()
	home := tr.Query("/home")

	ids := []string{}
	depths := []int{}
	iter := home.Iterate()
	for iter.Next() {
		ids = append(ids, iter.Node().ID())
		depths = append(depths, iter.Depth())
	}
	assert.Equal(t, []string{"/home", "/home/omar", "/home/omar/readme.md", "/home/omar/changelog.md"}, ids)
	assert.Equal(t, []int{0, 1, 2, 2}, depths)

	iter = NewNode("x", "x").Iterate()
	assert.True(t, iter.Next())
	assert.Equal(t, Route{}, iter.Route())
	assert.False(t, iter.Next())
	assert.Nil(t, iter.Node())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestNodeRender(t *testing.T) {
	n := Build("a", 1, NewNode("b", 2))

	var buf bytes.Buffer
	err := n.Render(&buf, func(n *Node[string, int]) string { return n.ID() })
	assert.NoError(t, err)
	assert.Equal(t, "a\n└─ b\n", buf.String())

	err = n.Render(failingWriter{}, nil)
	assert.Error(t, err)
}
