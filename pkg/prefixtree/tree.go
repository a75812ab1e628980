package prefixtree

import (
	"cmp"
	"fmt"
	"net/netip"
	"slices"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/idtree/pkg/tree"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

type node = tree.Node[netip.Prefix, table.Route]

// PrefixTree nests prefixes by containment below a root prefix: the parent
// of every prefix is the most specific prefix in the tree containing it.
// Children are kept sorted by address. It is safe for concurrent use.
type PrefixTree struct {
	m    *sync.RWMutex
	tree *tree.Tree[netip.Prefix, table.Route]
	log  logr.Logger
}

type Option func(*PrefixTree)

// WithLogger sets the logger mutations are reported to at V(1).
func WithLogger(l logr.Logger) Option {
	return func(r *PrefixTree) {
		r.log = l
	}
}

func New(root netip.Prefix, opts ...Option) (*PrefixTree, error) {
	if !root.IsValid() {
		return nil, fmt.Errorf("invalid root prefix %s", root)
	}
	root = root.Masked()
	r := &PrefixTree{
		m:    new(sync.RWMutex),
		tree: tree.NewTree(tree.NewNode(root, table.NewRoute(root, nil, nil))),
		log:  logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ParseAndNew is New with the root given as a string.
func ParseAndNew(s string, opts ...Option) (*PrefixTree, error) {
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return nil, err
	}
	return New(p, opts...)
}

func (r *PrefixTree) Root() netip.Prefix {
	return r.tree.Root().ID()
}

// Insert adds p below the most specific prefix containing it. Prefixes
// already in the tree that p contains become children of p.
func (r *PrefixTree) Insert(p netip.Prefix, l labels.Set) error {
	if !p.IsValid() {
		return fmt.Errorf("invalid prefix %s", p)
	}
	p = p.Masked()

	r.m.Lock()
	defer r.m.Unlock()

	if !contains(r.Root(), p) {
		return fmt.Errorf("prefix %s outside of %s", p, r.Root())
	}
	if r.tree.Query(p) != nil {
		return fmt.Errorf("prefix %s already exists", p)
	}

	parent := r.closest(func(n *node) bool { return contains(n.ID(), p) })
	r.tree.QueryMut(parent.ID(), func(parent *node) {
		n := tree.NewNode(p, table.NewRoute(p, labels.Merge(labels.Set{}, l), nil))
		moved := []*node{}
		for _, child := range parent.Children() {
			if contains(p, child.ID()) {
				moved = append(moved, child)
			}
		}
		for _, child := range moved {
			parent.RemoveChild(child.ID())
			n.AddChild(child)
		}
		parent.AddChild(n)
		parent.Sort(compareNodes)
		n.Sort(compareNodes)
	})
	r.log.V(1).Info("insert", "prefix", p.String(), "parent", parent.ID().String(), "labels", l.String())
	return nil
}

// Delete removes p; its children move up to the parent of p.
func (r *PrefixTree) Delete(p netip.Prefix) error {
	p = p.Masked()

	r.m.Lock()
	defer r.m.Unlock()

	if p == r.Root() {
		return fmt.Errorf("cannot delete root prefix %s", p)
	}
	parent := r.tree.Parent(p)
	if parent == nil {
		return fmt.Errorf("prefix %s not found", p)
	}
	r.tree.QueryMut(parent.ID(), func(parent *node) {
		children := slices.Clone(parent.Query(p).Children())
		parent.RemoveChild(p)
		for _, child := range children {
			parent.AddChild(child)
		}
		parent.Sort(compareNodes)
	})
	r.log.V(1).Info("delete", "prefix", p.String(), "parent", parent.ID().String())
	return nil
}

func (r *PrefixTree) Get(p netip.Prefix) (table.Route, error) {
	p = p.Masked()

	r.m.RLock()
	defer r.m.RUnlock()

	n := r.tree.Query(p)
	if n == nil {
		return table.Route{}, fmt.Errorf("prefix %s not found", p)
	}
	return n.Value(), nil
}

// Parent returns the most specific prefix containing p.
func (r *PrefixTree) Parent(p netip.Prefix) (table.Route, error) {
	p = p.Masked()

	r.m.RLock()
	defer r.m.RUnlock()

	if parent := r.tree.Parent(p); parent != nil {
		return parent.Value(), nil
	}
	if p == r.Root() {
		return table.Route{}, fmt.Errorf("root prefix %s has no parent", p)
	}
	return table.Route{}, fmt.Errorf("prefix %s not found", p)
}

func (r *PrefixTree) Children(p netip.Prefix) (table.Routes, error) {
	p = p.Masked()

	r.m.RLock()
	defer r.m.RUnlock()

	n := r.tree.Query(p)
	if n == nil {
		return nil, fmt.Errorf("prefix %s not found", p)
	}
	routes := table.Routes{}
	for _, child := range n.Children() {
		routes = append(routes, child.Value())
	}
	return routes, nil
}

// Lookup returns the most specific prefix containing addr.
func (r *PrefixTree) Lookup(addr netip.Addr) (table.Route, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	if !netipx.RangeOfPrefix(r.Root()).Contains(addr) {
		return table.Route{}, fmt.Errorf("address %s outside of %s", addr, r.Root())
	}
	n := r.closest(func(n *node) bool {
		return netipx.RangeOfPrefix(n.ID()).Contains(addr)
	})
	return n.Value(), nil
}

// Range returns the address range covered by the stored prefix p.
func (r *PrefixTree) Range(p netip.Prefix) (netipx.IPRange, error) {
	if _, err := r.Get(p); err != nil {
		return netipx.IPRange{}, err
	}
	return netipx.RangeOfPrefix(p), nil
}

func (r *PrefixTree) GetByLabel(selector labels.Selector) table.Routes {
	r.m.RLock()
	defer r.m.RUnlock()

	routes := table.Routes{}
	for _, n := range r.tree.Find(func(n *node) bool {
		return selector.Matches(n.Value().Labels())
	}) {
		routes = append(routes, n.Value())
	}
	return routes
}

// GetAll returns every prefix in pre-order, which for a prefix tree is
// address order with containing prefixes first.
func (r *PrefixTree) GetAll() table.Routes {
	r.m.RLock()
	defer r.m.RUnlock()

	routes := table.Routes{}
	iter := r.tree.Iterate()
	for iter.Next() {
		routes = append(routes, iter.Node().Value())
	}
	return routes
}

func (r *PrefixTree) Size() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.tree.Count()
}

func (r *PrefixTree) Depth() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.tree.Depth()
}

func (r *PrefixTree) String() string {
	r.m.RLock()
	defer r.m.RUnlock()

	var sb strings.Builder
	_ = r.tree.Root().Render(&sb, func(n *node) string {
		if len(n.Value().Labels()) == 0 {
			return n.ID().String()
		}
		return fmt.Sprintf("%s %s", n.ID(), n.Value().Labels().String())
	})
	return sb.String()
}

// closest descends from the root as long as a child matches and returns
// the last node that did. Siblings never overlap, so at most one child
// matches at each level.
func (r *PrefixTree) closest(match func(n *node) bool) *node {
	n := r.tree.Root()
	for {
		i := slices.IndexFunc(n.Children(), match)
		if i < 0 {
			return n
		}
		n = n.Child(i)
	}
}

// contains reports whether child lies within parent.
func contains(parent, child netip.Prefix) bool {
	if parent.Addr().Is4() != child.Addr().Is4() || parent.Bits() > child.Bits() {
		return false
	}
	rng := netipx.RangeOfPrefix(parent)
	return rng.Contains(child.Addr()) && rng.Contains(netipx.PrefixLastIP(child))
}

func compareNodes(a, b *node) int {
	if c := a.ID().Addr().Compare(b.ID().Addr()); c != 0 {
		return c
	}
	return cmp.Compare(a.ID().Bits(), b.ID().Bits())
}
