package tree

// Tree owns exactly one root node and forwards its operations to it.
// Routes at the tree level start with 0, the position of the root.
//
// A Tree is not safe for concurrent use; callers sharing one between
// goroutines must lock around it.
type Tree[I comparable, V any] struct {
	root *Node[I, V]
}

// NewTree returns a tree rooted at root. A nil root is replaced by a
// node holding the zero id and value, so a tree always has a root.
func NewTree[I comparable, V any](root *Node[I, V]) *Tree[I, V] {
	if root == nil {
		var id I
		var value V
		root = NewNode(id, value)
	}
	return &Tree[I, V]{
		root: root,
	}
}

// Clone creates an identical copy of the tree
// - Note: the values in the tree are not deep copied
func (r *Tree[I, V]) Clone() *Tree[I, V] {
	return &Tree[I, V]{
		root: r.root.Clone(),
	}
}

// Root returns the root node, through which the whole tree can be read
// and changed.
func (r *Tree[I, V]) Root() *Node[I, V] { return r.root }

func (r *Tree[I, V]) Query(id I) *Node[I, V] { return r.root.Query(id) }

func (r *Tree[I, V]) QueryMut(id I, fn func(n *Node[I, V])) bool {
	return r.root.QueryMut(id, fn)
}

func (r *Tree[I, V]) Parent(id I) *Node[I, V] { return r.root.Parent(id) }

func (r *Tree[I, V]) Siblings(id I) ([]I, bool) { return r.root.Siblings(id) }

func (r *Tree[I, V]) Find(pred func(n *Node[I, V]) bool) []*Node[I, V] {
	return r.root.Find(pred)
}

func (r *Tree[I, V]) Count() int { return r.root.Count() }

func (r *Tree[I, V]) Depth() int { return r.root.Depth() }

// NodeByRoute resolves a tree level route. The first element stands for
// the root and is skipped; an empty route addresses nothing and returns nil.
func (r *Tree[I, V]) NodeByRoute(route Route) *Node[I, V] {
	if len(route) == 0 {
		return nil
	}
	return r.root.NodeByRoute(route[1:])
}

// RouteByNode returns the tree level route of id, which always starts
// with 0.
func (r *Tree[I, V]) RouteByNode(id I) (Route, bool) {
	route, ok := r.root.routeByNode(id, Route{0})
	if !ok {
		return nil, false
	}
	return route.Copy(), true
}

// Iterate returns a pre-order iterator over the whole tree, with routes
// at the tree level.
func (r *Tree[I, V]) Iterate() *Iterator[I, V] {
	return newIterator(r.root, Route{0})
}
