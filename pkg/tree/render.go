package tree

import (
	"fmt"
	"io"
	"strings"
)

const (
	branchMiddle = "├─ "
	branchLast   = "└─ "
	indentOpen   = "│  "
	indentClosed = "   "
)

// Render writes the subtree as an indented treeview, one node per line.
// label renders a single node; when nil the id and value are printed.
func (r *Node[I, V]) Render(w io.Writer, label func(n *Node[I, V]) string) error {
	if label == nil {
		label = defaultLabel[I, V]
	}
	if _, err := fmt.Fprintln(w, label(r)); err != nil {
		return err
	}
	return r.renderChildren(w, "", label)
}

func (r *Node[I, V]) renderChildren(w io.Writer, indent string, label func(n *Node[I, V]) string) error {
	for i, child := range r.children {
		branch, next := branchMiddle, indentOpen
		if i == len(r.children)-1 {
			branch, next = branchLast, indentClosed
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", indent, branch, label(child)); err != nil {
			return err
		}
		if err := child.renderChildren(w, indent+next, label); err != nil {
			return err
		}
	}
	return nil
}

func (r *Node[I, V]) String() string {
	var sb strings.Builder
	// a strings.Builder never fails to write
	_ = r.Render(&sb, nil)
	return sb.String()
}

func (r *Tree[I, V]) String() string { return r.root.String() }

func defaultLabel[I comparable, V any](n *Node[I, V]) string {
	return fmt.Sprintf("%v: %v", n.id, n.value)
}
