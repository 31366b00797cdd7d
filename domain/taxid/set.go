package taxid

// Set is a hash set of identifiers. Not safe for concurrent use; each
// generator worker owns its own.
type Set map[ID]struct{}

// NewSet creates a set sized for n identifiers.
func NewSet(n int) Set {
	if n < 0 {
		n = 0
	}
	return make(Set, n)
}

// Add inserts id and reports whether it was not already present.
func (s Set) Add(id ID) bool {
	if _, exists := s[id]; exists {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Contains reports whether id is in the set.
func (s Set) Contains(id ID) bool {
	_, exists := s[id]
	return exists
}

// Len returns the number of identifiers in the set.
func (s Set) Len() int {
	return len(s)
}
