package utils

// IDTracker remembers client ids already seen in a run
type IDTracker struct {
	seen map[int]struct{}
}

// NewIDTracker creates a new tracker
func NewIDTracker() *IDTracker {
	return &IDTracker{seen: make(map[int]struct{})}
}

// Add returns true if the id is new (not seen before), false if duplicate
func (t *IDTracker) Add(id int) bool {
	if _, exists := t.seen[id]; exists {
		return false
	}
	t.seen[id] = struct{}{}
	return true
}

// Count returns the number of distinct ids tracked
func (t *IDTracker) Count() int {
	return len(t.seen)
}
