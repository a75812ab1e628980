package tree

// Query searches the subtree for id, the node itself included.
// The search is depth first and pre-order, the first match wins.
// It returns nil when no node matches.
func (r *Node[I, V]) Query(id I) *Node[I, V] {
	if r.id == id {
		return r
	}
	for _, child := range r.children {
		if n := child.Query(id); n != nil {
			return n
		}
	}
	return nil
}

// QueryMut looks up id like Query and calls fn with the node found. fn is
// the only place the caller is expected to mutate the node and its subtree.
// It returns false when no node matches, in which case fn is not called.
func (r *Node[I, V]) QueryMut(id I, fn func(n *Node[I, V])) bool {
	n := r.Query(id)
	if n == nil {
		return false
	}
	fn(n)
	return true
}

// Parent returns the parent of the node with the given id. It returns nil
// when id is not found or when id belongs to the node itself.
func (r *Node[I, V]) Parent(id I) *Node[I, V] {
	route, ok := r.RouteByNode(id)
	if !ok || len(route) == 0 {
		return nil
	}
	return r.NodeByRoute(route[:len(route)-1])
}

// Siblings returns the ids of the other children of the parent of id,
// in order. The bool is false when id has no parent within this subtree.
func (r *Node[I, V]) Siblings(id I) ([]I, bool) {
	parent := r.Parent(id)
	if parent == nil {
		return nil, false
	}
	ids := make([]I, 0, len(parent.children))
	for _, child := range parent.children {
		if child.id != id {
			ids = append(ids, child.id)
		}
	}
	return ids, true
}

// Find returns every node of the subtree for which pred is true, in
// pre-order.
func (r *Node[I, V]) Find(pred func(n *Node[I, V]) bool) []*Node[I, V] {
	return r.find(nil, pred)
}

func (r *Node[I, V]) find(ret []*Node[I, V], pred func(n *Node[I, V]) bool) []*Node[I, V] {
	if pred(r) {
		ret = append(ret, r)
	}
	for _, child := range r.children {
		ret = child.find(ret, pred)
	}
	return ret
}

// Walk visits the subtree in pre-order, passing each node with its route
// relative to r. The route is reused between calls; copy it to keep it.
// Returning false from fn stops the walk.
func (r *Node[I, V]) Walk(fn func(n *Node[I, V], route Route) bool) {
	r.walk(make(Route, 0, 8), fn)
}

func (r *Node[I, V]) walk(route Route, fn func(n *Node[I, V], route Route) bool) bool {
	if !fn(r, route) {
		return false
	}
	for i, child := range r.children {
		if !child.walk(append(route, i), fn) {
			return false
		}
	}
	return true
}
