package audit

// refSet collects references once each, keeping first-seen order.
type refSet struct {
	items []string
	seen  map[string]bool
}

func newRefSet() *refSet {
	return &refSet{seen: make(map[string]bool)}
}

// Add records ref if it hasn't been seen before.
func (s *refSet) Add(ref string) {
	if ref == "" || s.seen[ref] {
		return
	}
	s.seen[ref] = true
	s.items = append(s.items, ref)
}

// All returns the references in insertion order.
func (s *refSet) All() []string {
	return s.items
}
