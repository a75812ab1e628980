package tree

import (
	"strconv"
	"strings"
)

// Route is a sequence of child indexes leading from a node to one of its
// descendants. Routes are only valid until the next structural change.
type Route []int

func (r Route) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, idx := range r {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(idx))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Copy returns a route that does not share memory with r.
func (r Route) Copy() Route {
	if r == nil {
		return nil
	}
	return append(make(Route, 0, len(r)), r...)
}

// NodeByRoute follows route from the node. An empty route returns the node
// itself; an index out of range at any step returns nil.
func (r *Node[I, V]) NodeByRoute(route Route) *Node[I, V] {
	n := r
	for _, idx := range route {
		if n = n.Child(idx); n == nil {
			return nil
		}
	}
	return n
}

// RouteByNode returns the route from the node to the node with the given
// id, using the same search order as Query. An empty route means id is
// the node itself. The bool is false when id is not in the subtree.
func (r *Node[I, V]) RouteByNode(id I) (Route, bool) {
	route, ok := r.routeByNode(id, make(Route, 0, 8))
	if !ok {
		return nil, false
	}
	return route.Copy(), true
}

// routeByNode appends the indexes leading to id to route. On a miss the
// route is returned at the length it was given, so no index of a sibling
// that was tried is left behind.
func (r *Node[I, V]) routeByNode(id I, route Route) (Route, bool) {
	if r.id == id {
		return route, true
	}
	for i, child := range r.children {
		if found, ok := child.routeByNode(id, append(route, i)); ok {
			return found, true
		}
	}
	return route, false
}
