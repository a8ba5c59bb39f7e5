package feed

// Store is the ordered, deduplicated item collection plus pagination state.
//
// Items accumulate for the life of the feed; there is no eviction. The store
// is written only by the feed controller and read from the same event loop,
// so it carries no locking. NOT safe for concurrent use from other
// goroutines.
type Store struct {
	items   []Item
	index   map[string]int // id -> position in items
	cursor  string
	hasMore bool
}

// NewStore creates an empty store positioned at the first page.
func NewStore() *Store {
	return &Store{
		index:   make(map[string]int),
		hasMore: true,
	}
}

// Append filters out items whose ID is already present, appends the
// survivors in their given order, and returns the count actually appended.
// A zero return for a non-empty input means the page carried no new content.
func (s *Store) Append(items []Item) int {
	appended := 0
	for _, item := range items {
		if _, dup := s.index[item.ID]; dup {
			continue
		}
		s.index[item.ID] = len(s.items)
		s.items = append(s.items, item)
		appended++
	}
	return appended
}

// Snapshot returns a copy of the items in first-seen order.
func (s *Store) Snapshot() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items held.
func (s *Store) Len() int { return len(s.items) }

// Get returns the item with the given id.
func (s *Store) Get(id string) (Item, bool) {
	i, ok := s.index[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i], true
}

// At returns the item at position i.
func (s *Store) At(i int) (Item, bool) {
	if i < 0 || i >= len(s.items) {
		return Item{}, false
	}
	return s.items[i], true
}

// IndexOf returns the position of id, or -1 if absent.
func (s *Store) IndexOf(id string) int {
	i, ok := s.index[id]
	if !ok {
		return -1
	}
	return i
}

// Neighbor returns the item delta positions away from id, clamped to the
// ends of the feed. Returns false when id is unknown or the clamp lands
// back on id itself (already at an end).
func (s *Store) Neighbor(id string, delta int) (Item, bool) {
	i, ok := s.index[id]
	if !ok {
		return Item{}, false
	}
	n := i + delta
	if n < 0 {
		n = 0
	}
	if n > len(s.items)-1 {
		n = len(s.items) - 1
	}
	if n == i {
		return Item{}, false
	}
	return s.items[n], true
}

// Cursor returns the pagination cursor for the next fetch.
func (s *Store) Cursor() string { return s.cursor }

// AdvanceCursor moves the cursor after a successful fetch.
func (s *Store) AdvanceCursor(next string) { s.cursor = next }

// HasMore reports whether further pages may exist.
func (s *Store) HasMore() bool { return s.hasMore }

// Exhaust marks the feed as fully fetched. Terminal: there is no way back.
func (s *Store) Exhaust() { s.hasMore = false }
