package tree

import "slices"

// Node is an element of the tree. It holds an identifier, a value and an
// ordered list of children it exclusively owns.
// In order to use the query methods the id should be unique in the tree,
// on duplicates the first node found in pre-order is returned.
type Node[I comparable, V any] struct {
	id       I
	value    V
	children []*Node[I, V]
}

// NewNode returns a leaf node.
func NewNode[I comparable, V any](id I, value V) *Node[I, V] {
	return &Node[I, V]{
		id:    id,
		value: value,
	}
}

// Build returns a node with the given children attached in order, so a
// whole tree can be written as one nested expression:
//
//	Build("/", "/",
//		Build("/bin", "bin/",
//			NewNode("/bin/ls", "ls"),
//		),
//	)
func Build[I comparable, V any](id I, value V, children ...*Node[I, V]) *Node[I, V] {
	n := NewNode(id, value)
	for _, child := range children {
		n.AddChild(child)
	}
	return n
}

func (r *Node[I, V]) ID() I { return r.id }

func (r *Node[I, V]) Value() V { return r.value }

// SetValue replaces the node value; the structure is untouched.
func (r *Node[I, V]) SetValue(value V) { r.value = value }

// Children returns the ordered children of the node. The slice is owned by
// the node and must not be appended to or reordered by the caller.
func (r *Node[I, V]) Children() []*Node[I, V] { return r.children }

// Len returns the number of direct children.
func (r *Node[I, V]) Len() int { return len(r.children) }

// Child returns the child at index i or nil if i is out of range.
func (r *Node[I, V]) Child(i int) *Node[I, V] {
	if i < 0 || i >= len(r.children) {
		return nil
	}
	return r.children[i]
}

// WithChildren replaces the children of the node and returns the node.
func (r *Node[I, V]) WithChildren(children ...*Node[I, V]) *Node[I, V] {
	r.children = make([]*Node[I, V], 0, len(children))
	for _, child := range children {
		r.AddChild(child)
	}
	return r
}

// WithChild appends a child and returns the node for chaining.
func (r *Node[I, V]) WithChild(child *Node[I, V]) *Node[I, V] {
	r.AddChild(child)
	return r
}

// AddChild appends a child to the node. No check is done on the id.
func (r *Node[I, V]) AddChild(child *Node[I, V]) {
	if child == nil {
		return
	}
	r.children = append(r.children, child)
}

// RemoveChild removes every direct child with the given id.
func (r *Node[I, V]) RemoveChild(id I) {
	r.children = slices.DeleteFunc(r.children, func(n *Node[I, V]) bool {
		return n.id == id
	})
}

// Clear drops all children of the node.
func (r *Node[I, V]) Clear() {
	clear(r.children)
	r.children = r.children[:0]
}

// Truncate keeps at most depth levels below the node.
// If depth is 0 the children of the node are cleared.
func (r *Node[I, V]) Truncate(depth int) {
	if depth <= 0 {
		r.Clear()
		return
	}
	for _, child := range r.children {
		child.Truncate(depth - 1)
	}
}

// Sort reorders the direct children with the compare function, which
// returns a negative number when a < b, zero when equal and a positive
// number when a > b. The sort is not stable.
func (r *Node[I, V]) Sort(cmp func(a, b *Node[I, V]) int) {
	slices.SortFunc(r.children, cmp)
}

// IsLeaf returns whether the node has no children.
func (r *Node[I, V]) IsLeaf() bool { return len(r.children) == 0 }

// Count returns the number of nodes in the subtree, the node included.
func (r *Node[I, V]) Count() int {
	count := 1
	for _, child := range r.children {
		count += child.Count()
	}
	return count
}

// Depth returns the number of levels of the subtree; a leaf has depth 1.
func (r *Node[I, V]) Depth() int {
	depth := 0
	for _, child := range r.children {
		depth = max(depth, child.Depth())
	}
	return depth + 1
}

// Clone creates an identical copy of the subtree
// - Note: the values in the tree are not deep copied
func (r *Node[I, V]) Clone() *Node[I, V] {
	n := &Node[I, V]{
		id:    r.id,
		value: r.value,
	}
	if len(r.children) > 0 {
		n.children = make([]*Node[I, V], 0, len(r.children))
		for _, child := range r.children {
			n.children = append(n.children, child.Clone())
		}
	}
	return n
}
