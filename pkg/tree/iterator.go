package tree

// iterFrame is a node on the iterator path with the index of the next
// child to visit.
type iterFrame[I comparable, V any] struct {
	node *Node[I, V]
	next int
}

// Iterator is a stateful pre-order iterator over a subtree.
type Iterator[I comparable, V any] struct {
	root        *Node[I, V]
	node        *Node[I, V]
	nodeHistory []iterFrame[I, V]
	base        int // length of the route prefix that addresses root
	route       Route
}

// Iterate returns an iterator to find all nodes from the subtree, the node
// itself first. It is important for the tree to not be modified while
// using the iterator.
func (r *Node[I, V]) Iterate() *Iterator[I, V] {
	return newIterator(r, nil)
}

func newIterator[I comparable, V any](root *Node[I, V], prefix Route) *Iterator[I, V] {
	return &Iterator[I, V]{
		root:  root,
		base:  len(prefix),
		route: append(make(Route, 0, len(prefix)+8), prefix...),
	}
}

// Next jumps to the next node of the subtree. It returns false if there
// is none.
func (iter *Iterator[I, V]) Next() bool {
	if iter.node == nil {
		if iter.root == nil || iter.nodeHistory != nil {
			return false
		}
		iter.node = iter.root
		iter.nodeHistory = []iterFrame[I, V]{{node: iter.root}}
		return true
	}
	for len(iter.nodeHistory) > 0 {
		top := &iter.nodeHistory[len(iter.nodeHistory)-1]
		if top.next < len(top.node.children) {
			// descend into the next child
			idx := top.next
			top.next++
			iter.node = top.node.children[idx]
			iter.route = append(iter.route, idx)
			iter.nodeHistory = append(iter.nodeHistory, iterFrame[I, V]{node: iter.node})
			return true
		}
		// We need to backtrack
		iter.nodeHistory = iter.nodeHistory[:len(iter.nodeHistory)-1]
		if len(iter.route) > iter.base {
			iter.route = iter.route[:len(iter.route)-1]
		}
	}
	iter.node = nil
	return false
}

// Node returns the current node.
func (iter *Iterator[I, V]) Node() *Node[I, V] { return iter.node }

// Route returns a copy of the route of the current node.
func (iter *Iterator[I, V]) Route() Route { return iter.route.Copy() }

// Depth returns the level of the current node below the start of the
// iteration, starting at 0.
func (iter *Iterator[I, V]) Depth() int { return len(iter.route) - iter.base }
