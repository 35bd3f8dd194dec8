package extract

import (
	"maps"
	"slices"
	"strings"
)

// Registry collects the instantiations of one run, keyed by canonical type.
type Registry map[string]*Instantiation

func NewRegistry() Registry {
	return make(Registry)
}

// Add records inst. A later instantiation of the same type replaces the
// earlier one.
func (r Registry) Add(inst *Instantiation) {
	r[inst.Type] = inst
}

// Merge adds every entry of other to r, with other winning on collisions.
func (r Registry) Merge(other Registry) {
	maps.Copy(r, other)
}

// Sorted returns the entries in ascending order of their canonical type.
func (r Registry) Sorted() []*Instantiation {
	insts := slices.Collect(maps.Values(r))
	slices.SortFunc(insts, func(a, b *Instantiation) int {
		return strings.Compare(a.Type, b.Type)
	})
	return insts
}

// Headers returns the distinct sources of the entries in ascending order.
func (r Registry) Headers() []string {
	seen := make(map[string]struct{}, len(r))
	for _, inst := range r {
		seen[inst.Source] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}
