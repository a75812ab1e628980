package labeltree

import (
	"fmt"

	"k8s.io/apimachinery/pkg/labels"
)

type Entry interface {
	ID() string
	Labels() labels.Set
	String() string
	Equal(e2 Entry) bool
}

type entry struct {
	id     string
	labels labels.Set
}
type Entries []Entry

func (r entry) ID() string         { return r.id }
func (r entry) Labels() labels.Set { return r.labels }
func (r entry) String() string     { return fmt.Sprintf("id: %s, labels: %s", r.id, r.labels.String()) }
func (r entry) Equal(e2 Entry) bool {
	return r.ID() == e2.ID() && labels.Equals(r.labels, e2.Labels())
}

func NewEntry(id string, l labels.Set) Entry {
	if l == nil {
		l = labels.Set{}
	}
	return entry{
		id:     id,
		labels: labels.Merge(labels.Set{}, l),
	}
}

// IDs returns the ids of the entries in order.
func (r Entries) IDs() []string {
	ids := make([]string, 0, len(r))
	for _, e := range r {
		ids = append(ids, e.ID())
	}
	return ids
}
