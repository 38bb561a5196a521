package types

// PathSet is an insertion-ordered set of TrackedPath values.
// The zero value is ready to use.
type PathSet struct {
	order []TrackedPath
	seen  map[TrackedPath]struct{}
}

// NewPathSet builds a set from paths, dropping duplicates.
func NewPathSet(paths ...TrackedPath) *PathSet {
	s := &PathSet{}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add appends p unless it is already present. It reports whether p was new.
func (s *PathSet) Add(p TrackedPath) bool {
	if s.seen == nil {
		s.seen = make(map[TrackedPath]struct{})
	}
	if _, ok := s.seen[p]; ok {
		return false
	}
	s.seen[p] = struct{}{}
	s.order = append(s.order, p)
	return true
}

// Contains reports whether p is in the set.
func (s *PathSet) Contains(p TrackedPath) bool {
	_, ok := s.seen[p]
	return ok
}

// Len returns the number of paths.
func (s *PathSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Paths returns the paths in insertion order. The slice is a copy.
func (s *PathSet) Paths() []TrackedPath {
	if s == nil {
		return nil
	}
	out := make([]TrackedPath, len(s.order))
	copy(out, s.order)
	return out
}

// Strings returns the paths as plain strings, in insertion order.
func (s *PathSet) Strings() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	for i, p := range s.order {
		out[i] = string(p)
	}
	return out
}
