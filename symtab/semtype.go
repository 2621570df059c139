package symtab

import "golang.org/x/exp/slices"

// SortedSemanticTypes returns every semantic type in tag-collation
// order, materializing the cache on first call. Unlike
// Store.SortedSymbols, which builds its cache by feeding every symbol
// through a treeset, the semantic-type table is usually tiny (one entry per
// %type/%destructor/%printer target) so a single sort-on-demand over
// a slice is the simpler fit.
func (s *Store) SortedSemanticTypes() []*SemanticType {
	if s.semSorted != nil {
		return s.semSorted
	}
	out := make([]*SemanticType, 0, len(s.semanticTypes))
	for _, t := range s.semanticTypes {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *SemanticType) bool {
		return a.Tag.String() < b.Tag.String()
	})
	s.semSorted = out
	return out
}
