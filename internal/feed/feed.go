// Package feed holds the ordered, deduplicated collection of items that make
// up a vertically scrolling video feed, together with the pagination state
// used to grow it.
package feed

import "context"

// Creator identifies who posted an item.
type Creator struct {
	Name      string
	AvatarRef string
}

// Item is a single feed entry. Immutable once fetched; owned by the Store.
type Item struct {
	ID            string // opaque, unique, stable across pages
	MediaRef      string // locator for the video source
	PosterRef     string // locator for the preview image
	Title         string
	Description   string
	Creator       Creator
	ReactionCount int
}

// Page is one fetched page of items.
type Page struct {
	Items      []Item
	NextCursor string
	End        bool // source signalled end-of-data explicitly
}

// Source is the external paginated data source. The empty cursor requests
// the first page. A returned error means the page could not be fetched and
// the same cursor may be retried; it is distinct from end-of-data, which is
// reported through Page.End or an empty page.
type Source interface {
	FetchPage(ctx context.Context, cursor string) (Page, error)
}
