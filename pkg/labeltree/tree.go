package labeltree

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/henderiw/idtree/pkg/tree"
	"k8s.io/apimachinery/pkg/labels"
)

type node = tree.Node[string, Entry]

// LabelTree is a tree of uniquely identified entries carrying labels.
// It is safe for concurrent use.
type LabelTree struct {
	m    *sync.RWMutex
	tree *tree.Tree[string, Entry]
	log  logr.Logger
}

type Option func(*LabelTree)

// WithLogger sets the logger mutations are reported to at V(1).
func WithLogger(l logr.Logger) Option {
	return func(r *LabelTree) {
		r.log = l
	}
}

type LabelTreeIterator struct {
	iter *tree.Iterator[string, Entry]
}

func New(rootID string, l labels.Set, opts ...Option) *LabelTree {
	r := &LabelTree{
		m:    new(sync.RWMutex),
		tree: tree.NewTree(tree.NewNode(rootID, NewEntry(rootID, l))),
		log:  logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Clone creates an identical copy of the tree; entries are immutable so
// they are shared between both trees.
func (r *LabelTree) Clone() *LabelTree {
	r.m.RLock()
	defer r.m.RUnlock()

	return &LabelTree{
		m:    new(sync.RWMutex),
		tree: r.tree.Clone(),
		log:  r.log,
	}
}

func (r *LabelTree) RootID() string {
	return r.tree.Root().ID()
}

func (r *LabelTree) Get(id string) (Entry, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	n := r.tree.Query(id)
	if n == nil {
		return nil, fmt.Errorf("entry %s not found", id)
	}
	return n.Value(), nil
}

func (r *LabelTree) Has(id string) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.tree.Query(id) != nil
}

// Add creates the entry id as the last child of parentID.
func (r *LabelTree) Add(parentID, id string, l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	if r.tree.Query(id) != nil {
		return fmt.Errorf("entry %s already exists", id)
	}
	ok := r.tree.QueryMut(parentID, func(parent *node) {
		parent.AddChild(tree.NewNode(id, NewEntry(id, l)))
	})
	if !ok {
		return fmt.Errorf("parent %s not found for entry %s", parentID, id)
	}
	r.log.V(1).Info("add", "parent", parentID, "id", id, "labels", l.String())
	return nil
}

// Update replaces the labels of the entry id.
func (r *LabelTree) Update(id string, l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	ok := r.tree.QueryMut(id, func(n *node) {
		n.SetValue(NewEntry(id, l))
	})
	if !ok {
		return fmt.Errorf("entry %s not found", id)
	}
	r.log.V(1).Info("update", "id", id, "labels", l.String())
	return nil
}

// Delete removes the entry id together with its descendants.
func (r *LabelTree) Delete(id string) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.delete(id)
}

// delete expects the write lock to be held.
func (r *LabelTree) delete(id string) error {
	if id == r.tree.Root().ID() {
		return fmt.Errorf("cannot delete root entry %s", id)
	}
	parent := r.tree.Parent(id)
	if parent == nil {
		return fmt.Errorf("entry %s not found", id)
	}
	count := parent.Query(id).Count()
	parent.RemoveChild(id)
	r.log.V(1).Info("delete", "id", id, "parent", parent.ID(), "removed", count)
	return nil
}

// DeleteByLabel removes every entry matching the selector, together with
// its descendants. The root is never removed.
func (r *LabelTree) DeleteByLabel(selector labels.Selector) error {
	r.m.Lock()
	defer r.m.Unlock()

	root := r.tree.Root().ID()
	for _, n := range r.tree.Find(func(n *node) bool {
		return n.ID() != root && selector.Matches(n.Value().Labels())
	}) {
		if r.tree.Query(n.ID()) == nil {
			// already gone with an ancestor
			continue
		}
		if err := r.delete(n.ID()); err != nil {
			return err
		}
	}
	return nil
}

// Children returns the direct children of id in order.
func (r *LabelTree) Children(id string) (Entries, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	n := r.tree.Query(id)
	if n == nil {
		return nil, fmt.Errorf("entry %s not found", id)
	}
	entries := Entries{}
	for _, child := range n.Children() {
		entries = append(entries, child.Value())
	}
	return entries, nil
}

// Parents returns the ancestors of id, nearest first. The root has none.
func (r *LabelTree) Parents(id string) (Entries, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	route, ok := r.tree.Root().RouteByNode(id)
	if !ok {
		return nil, fmt.Errorf("entry %s not found", id)
	}
	entries := Entries{}
	for i := len(route) - 1; i >= 0; i-- {
		entries = append(entries, r.tree.Root().NodeByRoute(route[:i]).Value())
	}
	return entries, nil
}

// Siblings returns the other children of the parent of id, in order.
func (r *LabelTree) Siblings(id string) (Entries, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	ids, ok := r.tree.Siblings(id)
	if !ok {
		if r.tree.Query(id) == nil {
			return nil, fmt.Errorf("entry %s not found", id)
		}
		return nil, fmt.Errorf("entry %s has no parent", id)
	}
	parent := r.tree.Parent(id)
	entries := Entries{}
	for _, sibling := range ids {
		for _, child := range parent.Children() {
			if child.ID() == sibling {
				entries = append(entries, child.Value())
				break
			}
		}
	}
	return entries, nil
}

// Route returns the tree level route of id, starting with 0.
func (r *LabelTree) Route(id string) (tree.Route, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	route, ok := r.tree.RouteByNode(id)
	if !ok {
		return nil, fmt.Errorf("entry %s not found", id)
	}
	return route, nil
}

func (r *LabelTree) GetByRoute(route tree.Route) (Entry, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	n := r.tree.NodeByRoute(route)
	if n == nil {
		return nil, fmt.Errorf("no entry at route %s", route)
	}
	return n.Value(), nil
}

func (r *LabelTree) GetByLabel(selector labels.Selector) Entries {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := Entries{}
	for _, n := range r.tree.Find(func(n *node) bool {
		return selector.Matches(n.Value().Labels())
	}) {
		entries = append(entries, n.Value())
	}
	return entries
}

// GetAll returns every entry in pre-order.
func (r *LabelTree) GetAll() Entries {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := Entries{}
	iter := r.tree.Iterate()
	for iter.Next() {
		entries = append(entries, iter.Node().Value())
	}
	return entries
}

// Truncate keeps at most depth levels below the root.
func (r *LabelTree) Truncate(depth int) {
	r.m.Lock()
	defer r.m.Unlock()

	before := r.tree.Count()
	r.tree.Root().Truncate(depth)
	r.log.V(1).Info("truncate", "depth", depth, "removed", before-r.tree.Count())
}

// SortChildren orders the direct children of id by id.
func (r *LabelTree) SortChildren(id string) error {
	r.m.Lock()
	defer r.m.Unlock()

	ok := r.tree.QueryMut(id, func(n *node) {
		n.Sort(func(a, b *node) int {
			return strings.Compare(a.ID(), b.ID())
		})
	})
	if !ok {
		return fmt.Errorf("entry %s not found", id)
	}
	return nil
}

func (r *LabelTree) Size() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.tree.Count()
}

func (r *LabelTree) Depth() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.tree.Depth()
}

// Iterate returns an iterator over the entries in pre-order. The read
// lock is only held while the iterator is created, so the iterator walks
// the live tree unguarded: callers must not modify the tree, from this or
// any other goroutine, until they are done iterating. Use Clone or GetAll
// for a snapshot that is safe against concurrent writers.
func (r *LabelTree) Iterate() *LabelTreeIterator {
	r.m.RLock()
	defer r.m.RUnlock()

	return &LabelTreeIterator{
		iter: r.tree.Iterate(),
	}
}

func (r *LabelTree) String() string {
	r.m.RLock()
	defer r.m.RUnlock()

	var sb strings.Builder
	_ = r.tree.Root().Render(&sb, func(n *node) string {
		if len(n.Value().Labels()) == 0 {
			return n.ID()
		}
		return fmt.Sprintf("%s %s", n.ID(), n.Value().Labels().String())
	})
	return sb.String()
}

func (i *LabelTreeIterator) Next() bool {
	return i.iter.Next()
}

func (i *LabelTreeIterator) Entry() Entry {
	return i.iter.Node().Value()
}

func (i *LabelTreeIterator) Route() tree.Route {
	return i.iter.Route()
}
