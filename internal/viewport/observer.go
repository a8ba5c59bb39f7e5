// Package viewport tracks which feed-item regions currently satisfy a
// visibility threshold, reporting threshold crossings as the document
// scrolls. It is the terminal-rendering analogue of an intersection
// observer: regions live in document row coordinates and the viewport is a
// window onto them.
package viewport

// Region is an item's rendered extent in document rows.
type Region struct {
	Top    int
	Height int
}

// Crossing reports that one item's visibility state changed.
type Crossing struct {
	ID      string
	Visible bool
}

type tracked struct {
	id        string
	region    Region
	threshold float64
	visible   bool
}

// Observer watches registered regions against the current viewport. Owned
// by the UI event loop; not safe for concurrent use.
//
// Crossings for distinct items carry no ordering guarantee beyond
// registration order; successive crossings for the same item are always
// delivered in the order they occurred.
type Observer struct {
	items map[string]*tracked
	seq   []*tracked // registration order
}

// NewObserver creates an observer with no tracked regions.
func NewObserver() *Observer {
	return &Observer{items: make(map[string]*tracked)}
}

// Register begins tracking a region. Idempotent per id: re-registering
// updates the geometry and threshold but keeps the visibility state, so a
// relayout does not fabricate crossings. The region is evaluated on the
// next SetViewport call.
func (o *Observer) Register(id string, r Region, threshold float64) {
	if t, ok := o.items[id]; ok {
		t.region = r
		t.threshold = threshold
		return
	}
	t := &tracked{id: id, region: r, threshold: threshold}
	o.items[id] = t
	o.seq = append(o.seq, t)
}

// Unregister stops tracking id. Must be called when an item is unmounted;
// otherwise the region leaks and keeps producing crossings.
func (o *Observer) Unregister(id string) {
	if _, ok := o.items[id]; !ok {
		return
	}
	delete(o.items, id)
	for i, t := range o.seq {
		if t.id == id {
			o.seq = append(o.seq[:i], o.seq[i+1:]...)
			break
		}
	}
}

// Registered reports whether id is currently tracked.
func (o *Observer) Registered(id string) bool {
	_, ok := o.items[id]
	return ok
}

// Visible reports the last computed visibility state for id.
func (o *Observer) Visible(id string) bool {
	t, ok := o.items[id]
	return ok && t.visible
}

// SetViewport recomputes every tracked region against the viewport rows
// [top, top+height) and returns the crossings, if any, in registration
// order.
func (o *Observer) SetViewport(top, height int) []Crossing {
	var crossings []Crossing
	for _, t := range o.seq {
		visible := visibleFraction(t.region, top, height) >= t.threshold
		if visible == t.visible {
			continue
		}
		t.visible = visible
		crossings = append(crossings, Crossing{ID: t.id, Visible: visible})
	}
	return crossings
}

// visibleFraction returns the fraction of the region inside the viewport.
func visibleFraction(r Region, top, height int) float64 {
	if r.Height <= 0 || height <= 0 {
		return 0
	}
	lo := max(r.Top, top)
	hi := min(r.Top+r.Height, top+height)
	if hi <= lo {
		return 0
	}
	return float64(hi-lo) / float64(r.Height)
}
