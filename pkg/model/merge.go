package model

import (
	"maps"
	"slices"
	"strings"
)

// MergeStructures adds all associations of src to dst. Lists of existing
// keys are extended, never replaced. Merging is associative and commutative
// with respect to the set of associations per key, the order inside the
// lists depends on the merge order.
func MergeStructures(dst, src Structures) {
	for k, v := range src {
		dst[k] = append(dst[k], v...)
	}
}

// Sorted returns a copy of the structures with every list sorted, which
// makes mappings merged in different orders comparable.
func (s Structures) Sorted() Structures {
	res := make(Structures, len(s))
	for k, v := range s {
		refs := slices.Clone(v)
		slices.SortFunc(refs, func(a, b StructureRef) int {
			if c := strings.Compare(a.PDBID, b.PDBID); c != 0 {
				return c
			}
			return strings.Compare(a.Accession, b.Accession)
		})
		res[k] = refs
	}
	return res
}

// Keys returns sorted keys of the mapping.
func (s Structures) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// AddSpecies appends a species name to an EC number unless the name is
// already present for it.
func (s Species) AddSpecies(ecNumber, name string) {
	if slices.Contains(s[ecNumber], name) {
		return
	}
	s[ecNumber] = append(s[ecNumber], name)
}

// Remove deletes entries from the mapping and returns the number of
// removed keys.
func (e Enzymes) Remove(ecNumbers ...string) int {
	var count int
	for _, v := range ecNumbers {
		if _, ok := e[v]; ok {
			delete(e, v)
			count++
		}
	}
	return count
}

// Keys returns sorted keys of the mapping.
func (e Enzymes) Keys() []string {
	return slices.Sorted(maps.Keys(e))
}

// Keys returns sorted keys of the mapping.
func (u UniProt) Keys() []string {
	return slices.Sorted(maps.Keys(u))
}

// Keys returns sorted keys of the mapping.
func (s Species) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Keys returns sorted keys of the mapping.
func (p Pathways) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// Keys returns sorted keys of the mapping.
func (n Nomenclatures) Keys() []string {
	return slices.Sorted(maps.Keys(n))
}
