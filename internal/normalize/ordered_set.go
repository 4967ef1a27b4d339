package normalize

// orderedSet keeps values in insertion order and rejects keys it has
// already seen.
type orderedSet[K comparable, V any] struct {
	index map[K]struct{}
	items []V
}

func newOrderedSet[K comparable, V any]() *orderedSet[K, V] {
	return &orderedSet[K, V]{index: make(map[K]struct{})}
}

// add appends v unless key is already present. It reports whether v was added.
func (s *orderedSet[K, V]) add(key K, v V) bool {
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet[K, V]) len() int {
	return len(s.items)
}

// values returns a copy of the items in insertion order.
func (s *orderedSet[K, V]) values() []V {
	out := make([]V, len(s.items))
	copy(out, s.items)
	return out
}
